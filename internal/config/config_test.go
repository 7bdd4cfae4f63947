package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SPLITLEDGER_AUTH_JWT_SECRET", testSecret)

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, DriverSQLite, cfg.Store.Driver)
	require.Equal(t, "./data/ledger.db", cfg.Store.Path)
	require.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Precedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
listen_addr: ":9000"
store:
  driver: bolt
  path: /tmp/from-file.db
auth:
  jwt_secret: `+testSecret+`
  token_ttl: 1h
log:
  level: warn
`), 0o600))

	t.Setenv("SPLITLEDGER_LOG_LEVEL", "error")

	cfg, err := Load([]string{"--config", file, "--store-driver", "memory"})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.ListenAddr)
	require.Equal(t, DriverMemory, cfg.Store.Driver, "flag beats file")
	require.Equal(t, "error", cfg.Log.Level, "env beats file")
	require.Equal(t, time.Hour, cfg.Auth.TokenTTL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		ListenAddr: ":8080",
		Store:      StoreConfig{Driver: "redis"},
		Auth:       AuthConfig{JWTSecret: "short"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.ErrorContains(t, err, "unknown store.driver")
	require.ErrorContains(t, err, "jwt_secret")
	require.ErrorContains(t, err, "token_ttl")

	_, err = Load([]string{"--store-driver", "sqlite"})
	require.ErrorContains(t, err, "jwt_secret")
}
