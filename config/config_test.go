package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the duration of the test
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

var allKeys = []string{
	KeyDatabaseURL, KeyDBHost, KeyDBPort, KeyDBUser, KeyDBPassword, KeyDBName,
	KeyDBSSLMode, KeyDBMaxOpenConns, KeyDBMaxIdleConns, KeyPort, KeyEnv,
	KeyLogDir, KeyShutdownTimeout,
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t, allKeys...)

	cfg, err := LoadConfig(missingEnvFile(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "inventory", cfg.DBName)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, 10, cfg.DBMaxOpenConns)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigPrecedence(t *testing.T) {
	clearEnv(t, allKeys...)

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=fromfile\nPORT=7000\nLOG_DIR=/tmp/fromfile\n"), 0o600))

	t.Setenv(KeyPort, "9000")
	t.Setenv(KeyEnv, "production")
	t.Setenv(KeyShutdownTimeout, "3s")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "", "")
	flags.String("log-dir", "", "")
	flags.String("db-url", "", "")
	require.NoError(t, flags.Parse([]string{"--log-dir", "/var/log/inventory"}))

	cfg, err := LoadConfig(envFile, flags)
	require.NoError(t, err)

	assert.Equal(t, "fromfile", cfg.DBName, "env file fills unset variables")
	assert.Equal(t, "9000", cfg.Port, "environment beats env file")
	assert.Equal(t, "/var/log/inventory", cfg.LogDir, "flags beat everything")
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	clearEnv(t, allKeys...)
	t.Setenv(KeyShutdownTimeout, "0s")

	_, err := LoadConfig(missingEnvFile(t), nil)
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "inv",
		DBPassword: "p@ss word",
		DBName:     "stock",
		DBSSLMode:  "require",
	}
	assert.Equal(t, "postgres://inv:p%40ss%20word@db:5433/stock?sslmode=require", cfg.DSN())

	cfg.DatabaseURL = "postgres://other/db"
	assert.Equal(t, "postgres://other/db", cfg.DSN())
}
