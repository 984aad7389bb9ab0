package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/workdesk/workdesk-client/app"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("WORKDESK_PASSWORD")
			}
			if email == "" || password == "" {
				return fmt.Errorf("--email and --password (or WORKDESK_PASSWORD) are required")
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.app.Login().Submit(ctx, email, password); err != nil {
				return err
			}
			u := c.app.Session().User()
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session and forget the token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			_ = c.session(ctx, app.RouteDashboard)
			c.app.Logout(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteDashboard); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c.app.Session().User())
		},
	}
}

func (c *cli) newThemeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "theme <name>",
		Short: "Switch the UI theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.visit(ctx, app.RouteSettings); err != nil {
				return err
			}
			return c.app.Settings().SetTheme(ctx, args[0])
		},
	}
}
