package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// server.port must be positive.
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	// server.max_body_size must be positive.
	if c.Server.MaxBodySize <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_size must be > 0, got %d", c.Server.MaxBodySize))
	}

	// users.path is required.
	if c.Users.Path == "" {
		errs = append(errs, errors.New("users.path is required"))
	}

	// A bootstrap account needs a password.
	if c.Users.BootstrapUsername != "" && c.Users.BootstrapPassword == "" && c.Users.BootstrapPasswordFile == "" {
		errs = append(errs, errors.New("users.bootstrap_password or users.bootstrap_password_file is required when users.bootstrap_username is set"))
	}

	// Rate limit parameters must be sane when enabled.
	if c.Auth.RateLimit.Enabled {
		if c.Auth.RateLimit.RPS <= 0 {
			errs = append(errs, fmt.Errorf("auth.rate_limit.rps must be > 0, got %g", c.Auth.RateLimit.RPS))
		}
		if c.Auth.RateLimit.Burst <= 0 {
			errs = append(errs, fmt.Errorf("auth.rate_limit.burst must be > 0, got %d", c.Auth.RateLimit.Burst))
		}
	}

	// Metrics path must be rooted when metrics are enabled.
	if c.Observability.Metrics.Enabled && !strings.HasPrefix(c.Observability.Metrics.Path, "/") {
		errs = append(errs, fmt.Errorf("observability.metrics.path must start with \"/\", got %q", c.Observability.Metrics.Path))
	}

	return errors.Join(errs...)
}
