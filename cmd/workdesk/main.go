package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
	"github.com/workdesk/workdesk-client/internal/config"
	"github.com/workdesk/workdesk-client/tokenstore"
)

const requestTimeout = 30 * time.Second

func main() {
	c := &cli{}
	if err := c.execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// cli carries the flags and the App every subcommand works against.
type cli struct {
	apiURL string
	debug  bool

	cfg   *config.Config
	store tokenstore.Store
	app   *app.App
}

// execute runs one command line. The app and the token store are released
// whether or not the command succeeds; cobra skips post-run hooks on error.
func (c *cli) execute(args []string, stdout, stderr io.Writer) error {
	root := c.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	defer c.close()
	return root.Execute()
}

// close drains background work, such as a pending theme save, then closes
// the token store.
func (c *cli) close() {
	if c.app != nil {
		_ = c.app.Close()
	}
	if c.store != nil {
		if err := tokenstore.Close(c.store); err != nil {
			log.Warn().Err(err).Msg("could not close token store")
		}
	}
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "workdesk",
		Short:         "Command-line client for the workdesk project-management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API root (default $WORKDESK_API_URL)")
	root.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Enable verbose debug output")

	root.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		c.newThemeCmd(),
		c.newBoardsCmd(),
		c.newCardsCmd(),
		c.newContactsCmd(),
		c.newCalendarCmd(),
		c.newNotificationsCmd(),
		c.newChatCmd(),
		c.newSearchCmd(),
		c.newReportCmd(),
		c.newFilesCmd(),
		c.newUsersCmd(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if c.debug {
		level = "debug"
	}
	logger := config.InitLogger(cmd.ErrOrStderr(), level)
	if c.apiURL != "" {
		cfg.APIURL = c.apiURL
	}

	store, err := cfg.OpenTokenStore()
	if err != nil {
		return err
	}
	c.store = store
	a, err := app.New(cfg.APIURL,
		app.WithLogger(logger),
		app.WithCachePolicy(cfg.CachePolicy()),
		app.WithNotice(func(msg string) { fmt.Fprintln(cmd.ErrOrStderr(), "error:", msg) }),
		app.WithClientOptions(
			client.WithTokenStore(store),
			client.WithHTTPTimeout(cfg.HTTPTimeout),
			client.WithDebugLogging(cfg.Debug || c.debug),
		),
	)
	if err != nil {
		return err
	}
	c.cfg, c.app = cfg, a
	log.Debug().Str("api_url", cfg.APIURL).Str("command", cmd.Name()).Msg("cli ready")
	return nil
}

// session restores the stored login and routes to path. Commands that need
// a user call it first.
func (c *cli) session(ctx context.Context, path string) error {
	r, err := c.app.Start(ctx, path)
	if err != nil && !client.IsUnauthorized(err) {
		return err
	}
	if r.Path == app.RouteLogin {
		return fmt.Errorf("not logged in; run `workdesk login`")
	}
	return nil
}

// visit is session plus the role gate of path.
func (c *cli) visit(ctx context.Context, path string) error {
	if err := c.session(ctx, path); err != nil {
		return err
	}
	if _, err := c.app.Visit(path); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), requestTimeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
