// Package mcp serves the workdesk page controllers as MCP tools.
package mcp

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"
	client "github.com/workdesk/workdesk-client"
	"github.com/workdesk/workdesk-client/app"
	"github.com/workdesk/workdesk-client/internal/config"
	"github.com/workdesk/workdesk-client/mcp/internal/handlers"
	"github.com/workdesk/workdesk-client/tokenstore"
)

const (
	serverName    = "workdesk-mcp-server"
	serverVersion = "0.1.0"
)

// NewServer builds an MCP server with every tool group registered.
func NewServer(a *app.App) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	groups := []struct {
		name string
		h    handlers.Registerer
	}{
		{"session", handlers.NewSessionHandler(a)},
		{"board", handlers.NewBoardHandler(a)},
		{"contact", handlers.NewContactHandler(a)},
		{"calendar", handlers.NewCalendarHandler(a)},
		{"notification", handlers.NewNotificationHandler(a)},
		{"chat", handlers.NewChatHandler(a)},
		{"search", handlers.NewSearchHandler(a)},
		{"report", handlers.NewReportHandler(a)},
	}
	for _, g := range groups {
		if err := g.h.RegisterTools(s); err != nil {
			return nil, err
		}
		log.Debug().Str("group", g.name).Msg("registered tools")
	}
	return s, nil
}

// Run loads configuration, restores the stored session and serves until
// interrupted.
func Run() error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	logger := config.InitLogger(os.Stderr, cfg.LogLevel)

	store, err := cfg.OpenTokenStore()
	if err != nil {
		return err
	}
	defer func() { _ = tokenstore.Close(store) }()

	a, err := app.New(cfg.APIURL,
		app.WithLogger(logger),
		app.WithCachePolicy(cfg.CachePolicy()),
		app.WithNotice(func(msg string) { logger.Warn().Msg(msg) }),
		app.WithClientOptions(
			client.WithTokenStore(store),
			client.WithHTTPTimeout(cfg.HTTPTimeout),
			client.WithDebugLogging(cfg.Debug),
		),
	)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := a.Start(ctx, app.RouteDashboard); err != nil {
		log.Warn().Err(err).Msg("stored session not restored; use the login tool")
	}

	s, err := NewServer(a)
	if err != nil {
		return err
	}

	if useStdio(cfg.MCPTransport) {
		log.Info().Msg("Starting workdesk MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(ctx, s, cfg)
}

func serveHTTP(ctx context.Context, s *server.MCPServer, cfg *config.Config) error {
	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(30*time.Second),
	)
	srv := &http.Server{
		Addr:        cfg.MCPAddr,
		Handler:     streamSrv,
		ReadTimeout: cfg.HTTPReadTimeout,
		// No write deadline: SSE streams stay open.
		WriteTimeout: 0,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.MCPAddr).Msg("Starting workdesk MCP server (Streamable HTTP)")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down MCP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during HTTP server shutdown")
	}
	if err := streamSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during MCP server shutdown")
	}
	return nil
}

// useStdio picks the transport; auto means stdio when stdin is not a
// terminal, i.e. the server was launched by another process.
func useStdio(transport string) bool {
	switch transport {
	case config.TransportStdio:
		return true
	case config.TransportHTTP:
		return false
	}
	if fi, err := os.Stdin.Stat(); err == nil {
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
