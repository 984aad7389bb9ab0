// Package config loads the client runtime configuration from the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
	"github.com/workdesk/workdesk-client/querycache"
	"github.com/workdesk/workdesk-client/tokenstore"
)

// MCP transports.
const (
	TransportAuto  = "auto"
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Token store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Config holds the client configuration.
// Environment variables are parsed from the WORKDESK_ prefix.
type Config struct {
	APIURL     string `envconfig:"API_URL" default:"http://localhost:8000/api/v1"`
	TokenStore string `envconfig:"TOKEN_STORE" default:"file"`
	// Home overrides the data directory (~/.workdesk). It has no envconfig
	// tag so only WORKDESK_HOME is read, never $HOME.
	Home        string
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Query cache policy
	RefetchInterval time.Duration `envconfig:"REFETCH_INTERVAL" default:"0s"`
	StaleTime       time.Duration `envconfig:"STALE_TIME" default:"0s"`
	GCTime          time.Duration `envconfig:"GC_TIME" default:"5m"`
	MaxEntries      int           `envconfig:"MAX_ENTRIES" default:"512"`

	Debug    bool   `envconfig:"DEBUG" default:"false"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// MCP server
	MCPTransport    string        `envconfig:"MCP_TRANSPORT" default:"auto"`
	MCPAddr         string        `envconfig:"MCP_ADDR" default:":11546"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	switch c.TokenStore {
	case StoreFile, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("unsupported TOKEN_STORE: %s", c.TokenStore)
	}
	if c.APIURL == "" {
		return fmt.Errorf("API_URL cannot be empty")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0")
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("MAX_ENTRIES must be > 0")
	}
	switch c.MCPTransport {
	case TransportAuto, TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("unsupported MCP_TRANSPORT: %s", c.MCPTransport)
	}
	return nil
}

// OpenTokenStore opens the configured token store, under Home when set.
func (c *Config) OpenTokenStore() (tokenstore.Store, error) {
	var path string
	if c.Home != "" {
		if err := os.MkdirAll(c.Home, 0o700); err != nil {
			return nil, err
		}
		switch c.TokenStore {
		case StoreFile:
			path = filepath.Join(c.Home, "token.json")
		case StoreSQLite:
			path = filepath.Join(c.Home, "state.db")
		}
	}
	return tokenstore.Open(c.TokenStore, path)
}

// CachePolicy maps the cache settings onto a querycache.Policy.
func (c *Config) CachePolicy() querycache.Policy {
	return querycache.Policy{
		StaleTime:           c.StaleTime,
		GCTime:              c.GCTime,
		MaxEntries:          c.MaxEntries,
		RefetchInterval:     c.RefetchInterval,
		RefetchOnInvalidate: true,
	}
}

// New creates a Config by parsing environment variables.
// Example: WORKDESK_API_URL, WORKDESK_TOKEN_STORE
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("WORKDESK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("api_url", cfg.APIURL).
		Str("token_store", cfg.TokenStore).
		Dur("http_timeout", cfg.HTTPTimeout).
		Dur("refetch_interval", cfg.RefetchInterval).
		Int("max_entries", cfg.MaxEntries).
		Msg("Configuration loaded")

	return &cfg, nil
}
