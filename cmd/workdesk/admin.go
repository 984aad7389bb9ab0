package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
)

func (c *cli) newFilesCmd() *cobra.Command {
	files := &cobra.Command{Use: "files", Short: "Manage uploaded files"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			out, err := c.app.Files().List(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	var board, card, retention int
	upload := &cobra.Command{
		Use:   "upload <path>",
		Short: "Attach a file to a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			req := client.UploadFileRequest{Filename: filepath.Base(f.Name()), Content: f, CardID: card}
			if retention > 0 {
				req.RetentionDays = &retention
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			out, err := c.app.BoardDetail(board).UploadFile(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	upload.Flags().IntVar(&board, "board", 0, "Board id")
	upload.Flags().IntVar(&card, "card", 0, "Card id")
	upload.Flags().IntVar(&retention, "retention-days", 0, "Delete after this many days")
	_ = upload.MarkFlagRequired("card")

	var output string
	download := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			d, err := c.app.Files().Download(ctx, id)
			if err != nil {
				return err
			}
			return writeDownload(cmd, d, output)
		},
	}
	download.Flags().StringVarP(&output, "output", "o", "", "Output path (default: server filename)")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.session(ctx, app.RouteBoards); err != nil {
				return err
			}
			return c.app.Files().Delete(ctx, id)
		},
	}

	files.AddCommand(list, upload, download, del)
	return files
}

func (c *cli) newUsersCmd() *cobra.Command {
	users := &cobra.Command{Use: "users", Short: "Administer accounts (admins only)"}

	var search string
	var pending bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := c.visit(ctx, app.RouteAdmin); err != nil {
				return err
			}
			var (
				out []client.User
				err error
			)
			if pending {
				out, err = c.app.Admin().Pending(ctx)
			} else {
				out, err = c.app.Admin().Users(ctx, search)
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	list.Flags().StringVar(&search, "search", "", "Name or email filter")
	list.Flags().BoolVar(&pending, "pending", false, "Accounts awaiting approval")

	decide := func(use string, approve bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " <user-id>",
			Short: fmt.Sprintf("%s a pending account", use),
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				ctx, cancel := withTimeout(cmd)
				defer cancel()
				if err := c.visit(ctx, app.RouteAdmin); err != nil {
					return err
				}
				var u *client.User
				if approve {
					u, err = c.app.Admin().Approve(ctx, id)
				} else {
					u, err = c.app.Admin().Reject(ctx, id)
				}
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), u)
			},
		}
	}

	users.AddCommand(list, decide("approve", true), decide("reject", false))
	return users
}
