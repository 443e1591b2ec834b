package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"        validate:"required"`
	Database      DatabaseConfig      `mapstructure:"database"      validate:"required"`
	Subscriptions SubscriptionsConfig `mapstructure:"subscriptions" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error fatal"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds"     validate:"gte=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL                     string `mapstructure:"url"                        validate:"required,url"`
	MaxConns                int32  `mapstructure:"max_conns"                  validate:"gt=0"`
	MinConns                int32  `mapstructure:"min_conns"                  validate:"gte=0,ltefield=MaxConns"`
	MaxConnLifetimeMinutes  int    `mapstructure:"max_conn_lifetime_minutes"  validate:"gt=0"`
	ConnectRetries          uint64 `mapstructure:"connect_retries"`
	MigrationsTable         string `mapstructure:"migrations_table"           validate:"required"`
	AutoMigrate             bool   `mapstructure:"auto_migrate"`
}

// SubscriptionsConfig tunes the subscription use cases.
type SubscriptionsConfig struct {
	// TopLimit is the number of services returned by the popularity ranking.
	TopLimit int `mapstructure:"top_limit" validate:"gt=0,lte=100"`
	// AddRetries bounds how often AddSubscription is retried after losing
	// a get-or-create race on the service name.
	AddRetries uint64 `mapstructure:"add_retries" validate:"lte=10"`
}
