package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns       int           `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold" validate:"gte=0"`
	MigrateOnStart     bool          `mapstructure:"migrate_on_start"`
}

// TracingConfig controls OpenTelemetry export. With Enabled false, or no
// endpoint, spans are created against a no-op provider.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint" validate:"required_if=Enabled true"`
	ServiceName string  `mapstructure:"service_name" validate:"required"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
	Insecure    bool    `mapstructure:"insecure"`
}

// APIConfig contains representation and paging settings.
type APIConfig struct {
	DefaultPageSize int `mapstructure:"default_page_size" validate:"gt=0,lte=100"`
}
