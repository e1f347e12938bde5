package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, SHELFD_CONFIG env, ./config.yaml, /etc/shelfd/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. SHELFD_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/shelfd/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	// Check SHELFD_CONFIG env var.
	if envPath := os.Getenv("SHELFD_CONFIG"); envPath != "" {
		return envPath
	}

	// Check common locations.
	candidates := []string{
		"config.yaml",
		"/etc/shelfd/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps SHELFD_* environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SHELFD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SHELFD_USERS_FILE"); v != "" {
		cfg.Users.Path = v
	}
	if v := os.Getenv("SHELFD_BOOTSTRAP_USERNAME"); v != "" {
		cfg.Users.BootstrapUsername = v
	}
	if v := os.Getenv("SHELFD_BOOTSTRAP_PASSWORD"); v != "" {
		cfg.Users.BootstrapPassword = v
	}
	if v := os.Getenv("SHELFD_RATE_LIMIT"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Auth.RateLimit.Enabled = enabled
		}
	}
	if v := os.Getenv("SHELFD_METRICS"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Observability.Metrics.Enabled = enabled
		}
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. A _file field overrides the inline value, which otherwise
// holds a built-in default.
func resolveFileReferences(cfg *Config) error {
	// users.bootstrap_password_file -> users.bootstrap_password
	if cfg.Users.BootstrapPasswordFile != "" {
		val, err := readSecretFile(cfg.Users.BootstrapPasswordFile)
		if err != nil {
			return fmt.Errorf("users.bootstrap_password_file: %w", err)
		}
		cfg.Users.BootstrapPassword = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
