package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port      string `envconfig:"PORT" default:"8975"`
	Host      string `envconfig:"HOST" default:"0.0.0.0"`
	BaseURL   string `envconfig:"BASE_URL" default:"http://localhost:8975"`
	StaticDir string `envconfig:"STATIC_DIR" default:"static"`
}

// StorageConfig holds storage root configuration. Root may be a bare
// folder name, resolved against the working directory at startup.
type StorageConfig struct {
	Root           string   `envconfig:"STORAGE_ROOT" default:"artera"`
	DefaultFolders []string `envconfig:"STORAGE_DEFAULT_FOLDERS" default:"logo,potentials"`
}

// AuthConfig holds JWT authentication configuration. When Enabled is false
// the mutation endpoints are left open. PasswordHash, when set, is a bcrypt
// hash every login password is checked against; empty means any non-empty
// credentials are accepted.
type AuthConfig struct {
	Enabled         bool   `envconfig:"AUTH_ENABLED" default:"false"`
	Secret          string `envconfig:"JWT_SECRET_KEY" default:"your-secret-key-change-this-in-production"`
	TokenTTLMinutes int    `envconfig:"JWT_ACCESS_TOKEN_EXPIRE_MINUTES" default:"1440"`
	PasswordHash    string `envconfig:"AUTH_PASSWORD_HASH" default:""`
}

// CORSConfig holds allowed CORS origins ("*" for all).
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:      "8975",
			Host:      "0.0.0.0",
			BaseURL:   "http://localhost:8975",
			StaticDir: "static",
		},
		Storage: StorageConfig{
			Root:           "artera",
			DefaultFolders: []string{"logo", "potentials"},
		},
		Auth: AuthConfig{
			Enabled:         false,
			Secret:          "your-secret-key-change-this-in-production",
			TokenTTLMinutes: 1440,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
	}
}
