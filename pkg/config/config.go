// Package config provides unified configuration for the shelfd server.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (SHELFD_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the shelfd server.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Users         UsersConfig         `yaml:"users"`
	Auth          AuthConfig          `yaml:"auth"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`             // default: 8080
	ReadTimeout     time.Duration `yaml:"read_timeout"`     // default: 30s
	WriteTimeout    time.Duration `yaml:"write_timeout"`    // default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // default: 10s
	MaxBodySize     int64         `yaml:"max_body_size"`    // default: 1 MB
}

// UsersConfig holds account store settings.
type UsersConfig struct {
	// Path of the JSON file holding the username→password_hash mapping.
	Path string `yaml:"path"` // default: "users.json"

	// BootstrapUsername and BootstrapPassword seed one account when the
	// store starts empty. Set BootstrapUsername to "" to disable seeding.
	BootstrapUsername     string `yaml:"bootstrap_username"`      // default: "admin"
	BootstrapPassword     string `yaml:"bootstrap_password"`      // default: "admin123"
	BootstrapPasswordFile string `yaml:"bootstrap_password_file"` // _file variant for bootstrap_password
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig holds per-account rate limiting for authenticated
// mutations.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"` // default: false
	RPS     float64 `yaml:"rps"`     // default: 10
	Burst   int     `yaml:"burst"`   // default: 20
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`

	// Debug is a comma-separated list of debug categories (see pkg/debug).
	// SHELFD_DEBUG overrides it.
	Debug string `yaml:"debug"`

	// LogLevel sets the slog level: ERROR, WARN, INFO, DEBUG, or TRACE.
	// SHELFD_LOG_LEVEL overrides it.
	LogLevel string `yaml:"log_level"` // default: "INFO"
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodySize:     1 << 20,
		},
		Users: UsersConfig{
			Path:              "users.json",
			BootstrapUsername: "admin",
			BootstrapPassword: "admin123",
		},
		Auth: AuthConfig{
			RateLimit: RateLimitConfig{
				Enabled: false,
				RPS:     10,
				Burst:   20,
			},
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
			LogLevel: "INFO",
		},
	}
}
