package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	DatabaseURL     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	Port            string
	Env             string
	LogDir          string
	ShutdownTimeout time.Duration
}

// Config keys. Environment variables use the same names.
const (
	KeyDatabaseURL     = "DATABASE_URL"
	KeyDBHost          = "DB_HOST"
	KeyDBPort          = "DB_PORT"
	KeyDBUser          = "DB_USER"
	KeyDBPassword      = "DB_PASSWORD"
	KeyDBName          = "DB_NAME"
	KeyDBSSLMode       = "DB_SSLMODE"
	KeyDBMaxOpenConns  = "DB_MAX_OPEN_CONNS"
	KeyDBMaxIdleConns  = "DB_MAX_IDLE_CONNS"
	KeyPort            = "PORT"
	KeyEnv             = "ENV"
	KeyLogDir          = "LOG_DIR"
	KeyShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

var defaults = map[string]interface{}{
	KeyDBHost:          "localhost",
	KeyDBPort:          "5432",
	KeyDBUser:          "postgres",
	KeyDBPassword:      "postgres",
	KeyDBName:          "inventory",
	KeyDBSSLMode:       "disable",
	KeyDBMaxOpenConns:  10,
	KeyDBMaxIdleConns:  5,
	KeyPort:            "8080",
	KeyEnv:             "development",
	KeyLogDir:          "logs",
	KeyShutdownTimeout: 10 * time.Second,
}

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"port":    KeyPort,
	"log-dir": KeyLogDir,
	"db-url":  KeyDatabaseURL,
}

// LoadConfig loads configuration from an optional .env file, the process
// environment and command line flags, in increasing order of precedence.
// A missing env file is not an error.
func LoadConfig(envFile string, flags *pflag.FlagSet) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s file: %v", envFile, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %v", name, err)
				}
			}
		}
	}

	config := &Config{
		DatabaseURL:     v.GetString(KeyDatabaseURL),
		DBHost:          v.GetString(KeyDBHost),
		DBPort:          v.GetString(KeyDBPort),
		DBUser:          v.GetString(KeyDBUser),
		DBPassword:      v.GetString(KeyDBPassword),
		DBName:          v.GetString(KeyDBName),
		DBSSLMode:       v.GetString(KeyDBSSLMode),
		DBMaxOpenConns:  v.GetInt(KeyDBMaxOpenConns),
		DBMaxIdleConns:  v.GetInt(KeyDBMaxIdleConns),
		Port:            v.GetString(KeyPort),
		Env:             v.GetString(KeyEnv),
		LogDir:          v.GetString(KeyLogDir),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),
	}

	if config.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	if config.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("%s must be positive", KeyShutdownTimeout)
	}

	return config, nil
}

// DSN returns the postgres connection string. DATABASE_URL wins over the
// individual DB_* settings.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSSLMode}}.Encode(),
	}
	return u.String()
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}
