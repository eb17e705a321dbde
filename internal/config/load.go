package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. MINTY_DATABASE_URL for database.url.
const EnvPrefix = "MINTY"

var defaults = map[string]any{
	"server.port":                   8080,
	"server.log_level":              "info",
	"server.read_timeout":           15 * time.Second,
	"server.write_timeout":          15 * time.Second,
	"server.shutdown_timeout":       10 * time.Second,
	"database.max_open_conns":       10,
	"database.max_idle_conns":       5,
	"database.conn_max_lifetime":    30 * time.Minute,
	"database.slow_query_threshold": 200 * time.Millisecond,
	"database.migrate_on_start":     false,
	"tracing.enabled":               false,
	"tracing.service_name":          "minty-api",
	"tracing.sample_ratio":          1.0,
	"tracing.insecure":              false,
	"api.default_page_size":         24,
}

// keys without a default still need to be bound so that AutomaticEnv values
// are visible to Unmarshal.
var boundKeys = []string{
	"database.url",
	"tracing.endpoint",
}

// Option adjusts the loader.
type Option func(*viper.Viper)

// WithConfigFile reads settings from an explicit file instead of searching
// for config.yaml in the working directory.
func WithConfigFile(path string) Option {
	return func(v *viper.Viper) {
		v.SetConfigFile(path)
	}
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(opts ...Option) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range boundKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	for _, opt := range opts {
		opt(v)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
