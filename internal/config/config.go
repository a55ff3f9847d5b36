package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Session  SessionConfig  `mapstructure:"session"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig selects the key-value backend and how to reach it.
type DatabaseConfig struct {
	// Driver is one of "postgres", "sqlite" or "memory".
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite memory"`
	// URL is a postgres connection string or a sqlite file path.
	// It is ignored by the memory driver.
	URL string `mapstructure:"url" validate:"required_unless=Driver memory"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"required,gte=4,lte=31"`
	MinPasswordLength    int    `mapstructure:"min_password_length"    validate:"required,gte=6,lte=72"`
	// RemoteLoginURL, when set, delegates credential checks to an external
	// login service instead of the local user store.
	RemoteLoginURL string `mapstructure:"remote_login_url" validate:"omitempty,url"`
}

// CatalogConfig points at an optional YAML product catalog.
// The built-in catalog is used when Path is empty.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// SessionConfig controls eviction of idle in-memory sessions.
type SessionConfig struct {
	IdleTimeoutMinutes   int `mapstructure:"idle_timeout_minutes"   validate:"required,gt=0"`
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"required,gt=0"`
}
