package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env    string `mapstructure:"env"`      // current application environment (local, dev, production etc)
	HTTP   HTTP   `mapstructure:"http"`     // HTTP server section
	DB     DB     `mapstructure:"database"` // database configuration section
	Auth   Auth   `mapstructure:"auth"`     // authentication section
	Review Review `mapstructure:"review"`   // review session policy section
}

// HTTP contains HTTP server parameters.
type HTTP struct {
	Addr            string        `mapstructure:"addr"`             // listen address
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // graceful shutdown deadline
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
	QueryTimeout    time.Duration `mapstructure:"query_timeout"`     // per-call deadline on store operations
}

// Auth contains authentication parameters.
type Auth struct {
	JWTSecret string `mapstructure:"-"` // HMAC secret shared with the identity provider, loaded from environment
}

// Review contains review session policy parameters.
type Review struct {
	PassThreshold  int           `mapstructure:"pass_threshold"`   // percent needed to report a pass
	SessionMaxIdle time.Duration `mapstructure:"session_max_idle"` // idle time before an abandoned session is evicted
	SweepSchedule  string        `mapstructure:"sweep_schedule"`   // cron spec for the session sweep
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("database.query_timeout", "5s")
	v.SetDefault("review.pass_threshold", 70)
	v.SetDefault("review.session_max_idle", "2h")
	v.SetDefault("review.sweep_schedule", "@every 15m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.Auth.JWTSecret = v.GetString("jwt_secret")
	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
