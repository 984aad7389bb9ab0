package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIURL)
	assert.Equal(t, StoreFile, cfg.TokenStore)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 5*time.Minute, cfg.GCTime)
	assert.Equal(t, 512, cfg.MaxEntries)
	assert.Zero(t, cfg.RefetchInterval)
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("WORKDESK_API_URL", "https://pm.example.com/api/v1")
	t.Setenv("WORKDESK_TOKEN_STORE", "sqlite")
	t.Setenv("WORKDESK_REFETCH_INTERVAL", "30s")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "https://pm.example.com/api/v1", cfg.APIURL)
	assert.Equal(t, StoreSQLite, cfg.TokenStore)

	p := cfg.CachePolicy()
	assert.Equal(t, 30*time.Second, p.RefetchInterval)
	assert.True(t, p.RefetchOnInvalidate)
}

func TestConfigLoad_Invalid(t *testing.T) {
	t.Setenv("WORKDESK_TOKEN_STORE", "redis")
	_, err := New()
	assert.Error(t, err)
}

func TestConfigLoad_BadDuration(t *testing.T) {
	t.Setenv("WORKDESK_HTTP_TIMEOUT", "soon")
	_, err := New()
	assert.Error(t, err)
}

func TestInitLogger(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	var buf bytes.Buffer
	l := InitLogger(&buf, "warn")
	l.Info().Msg("hidden")
	l.Warn().Err(errors.New("boom")).Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "boom")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigLoad_MCPTransport(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, TransportAuto, cfg.MCPTransport)
	assert.Equal(t, ":11546", cfg.MCPAddr)

	t.Setenv("WORKDESK_MCP_TRANSPORT", "carrier-pigeon")
	_, err = New()
	assert.Error(t, err)
}

func TestOpenTokenStore_UnderHome(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{TokenStore: StoreFile, Home: dir}

	s, err := cfg.OpenTokenStore()
	require.NoError(t, err)
	require.NoError(t, s.Save("tok"))

	again, err := (&Config{TokenStore: StoreFile, Home: dir}).OpenTokenStore()
	require.NoError(t, err)
	got, err := again.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}
