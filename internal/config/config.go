// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the usage telemetry service.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete service configuration.
type Config struct {
	Version string `toml:"version"`

	// HTTP API settings
	Server ServerConfig `toml:"server"`

	// Transaction ledger settings
	Ledger LedgerConfig `toml:"ledger"`

	// Client-side telemetry settings
	Telemetry TelemetryConfig `toml:"telemetry"`

	// Logging settings
	Logging LoggingConfig `toml:"logging"`
}

// ServerConfig contains the HTTP API configuration.
type ServerConfig struct {
	// Host is the listen address.
	Host string `toml:"host"`
	// Port is the listen port.
	Port int `toml:"port"`
	// AuthTokens maps bearer tokens to the user IDs they authenticate.
	AuthTokens map[string]string `toml:"auth_tokens"`
	// AllowedIPs restricts API access to these addresses or CIDR ranges
	// when non-empty.
	AllowedIPs []string `toml:"allowed_ips"`
	// RateLimitPerSecond is the sustained per-client request rate.
	RateLimitPerSecond float64 `toml:"rate_limit_per_second"`
	// RateLimitBurst is the per-client burst allowance.
	RateLimitBurst int `toml:"rate_limit_burst"`
	// ReadTimeoutSecs bounds reading a whole request including the body.
	ReadTimeoutSecs int `toml:"read_timeout_secs"`
	// WriteTimeoutSecs bounds writing the response.
	WriteTimeoutSecs int `toml:"write_timeout_secs"`
	// ShutdownTimeoutSecs bounds graceful shutdown before in-flight
	// requests are dropped.
	ShutdownTimeoutSecs int `toml:"shutdown_timeout_secs"`
}

// LedgerConfig contains transaction store configuration.
type LedgerConfig struct {
	// Path is the SQLite database location (empty = ~/.librechat/ledger.db).
	Path string `toml:"path"`
}

// TelemetryConfig contains client-side telemetry display configuration.
type TelemetryConfig struct {
	// PrefsPath is the display preference file (empty = ~/.librechat/prefs.json).
	PrefsPath string `toml:"prefs_path"`
	// RefreshIntervalSecs is how often the dashboard re-queries the ledger.
	RefreshIntervalSecs int `toml:"refresh_interval_secs"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File enables rotated file output when non-empty.
	File string `toml:"file"`
	// MaxSizeMB rolls the log file over past this size.
	MaxSizeMB int `toml:"max_size_mb"`
	// MaxBackups is how many rolled files to keep.
	MaxBackups int `toml:"max_backups"`
	// MaxAgeDays drops rolled files older than this.
	MaxAgeDays int `toml:"max_age_days"`
	// Compress gzips rolled files.
	Compress bool `toml:"compress"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ReadTimeout returns the request read timeout as a duration.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSecs) * time.Second
}

// WriteTimeout returns the response write timeout as a duration.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSecs) * time.Second
}

// ShutdownTimeout returns the graceful shutdown bound as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSecs) * time.Second
}

// RefreshInterval returns the dashboard refresh cadence as a duration.
func (c TelemetryConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSecs) * time.Second
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Server: ServerConfig{
			Host:                "127.0.0.1",
			Port:                3090,
			AuthTokens:          map[string]string{},
			RateLimitPerSecond:  10,
			RateLimitBurst:      20,
			ReadTimeoutSecs:     10,
			WriteTimeoutSecs:    30,
			ShutdownTimeoutSecs: 5,
		},

		Ledger: LedgerConfig{
			Path: "",
		},

		Telemetry: TelemetryConfig{
			PrefsPath:           "",
			RefreshIntervalSecs: 30,
		},

		Logging: LoggingConfig{
			Level:      "info",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
			Compress:   false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the service configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".librechat"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// defaultLedgerPath resolves the ledger database location when the config
// leaves it empty.
func defaultLedgerPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return "ledger.db"
	}
	return filepath.Join(dir, "ledger.db")
}

// defaultPrefsPath resolves the preference file location when the config
// leaves it empty.
func defaultPrefsPath() string {
	dir, err := ConfigDir()
	if err != nil {
		return "prefs.json"
	}
	return filepath.Join(dir, "prefs.json")
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration: .env file, then the TOML config file named by
// LIBRECHAT_CONFIG or at the default location, then LIBRECHAT_* overrides.
// A missing config file falls back to defaults silently.
func Load() (*Config, error) {
	loadDotEnv()

	path := os.Getenv("LIBRECHAT_CONFIG")
	if path == "" {
		var err error
		path, err = ConfigPath()
		if err != nil {
			return nil, err
		}
	}

	return LoadFromPath(path)
}

// LoadFromPath loads configuration from an explicit TOML file path, applying
// defaults, environment overrides, and validation. A missing file yields
// defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// loadDotEnv loads the first .env file found in the working directory or
// the config directory. Absence is not an error.
func loadDotEnv() {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to a TOML file atomically with 0600
// permissions; auth tokens live in this file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# usage telemetry configuration file")
	fmt.Fprintln(&buf, "# edit with care; values are validated on load")
	fmt.Fprintln(&buf, "")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// DEFAULT FILLING
// =============================================================================

// SetDefaults fills any zero-valued field with its default so later code
// never re-checks for emptiness.
func (c *Config) SetDefaults() {
	d := Default()

	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Server.Port == 0 {
		c.Server.Port = d.Server.Port
	}
	if c.Server.AuthTokens == nil {
		c.Server.AuthTokens = map[string]string{}
	}
	if c.Server.RateLimitPerSecond == 0 {
		c.Server.RateLimitPerSecond = d.Server.RateLimitPerSecond
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = d.Server.RateLimitBurst
	}
	if c.Server.ReadTimeoutSecs == 0 {
		c.Server.ReadTimeoutSecs = d.Server.ReadTimeoutSecs
	}
	if c.Server.WriteTimeoutSecs == 0 {
		c.Server.WriteTimeoutSecs = d.Server.WriteTimeoutSecs
	}
	if c.Server.ShutdownTimeoutSecs == 0 {
		c.Server.ShutdownTimeoutSecs = d.Server.ShutdownTimeoutSecs
	}

	if c.Ledger.Path == "" {
		c.Ledger.Path = defaultLedgerPath()
	}

	if c.Telemetry.PrefsPath == "" {
		c.Telemetry.PrefsPath = defaultPrefsPath()
	}
	if c.Telemetry.RefreshIntervalSecs == 0 {
		c.Telemetry.RefreshIntervalSecs = d.Telemetry.RefreshIntervalSecs
	}

	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.MaxSizeMB == 0 {
		c.Logging.MaxSizeMB = d.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = d.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays == 0 {
		c.Logging.MaxAgeDays = d.Logging.MaxAgeDays
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every violation found.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be in range 1-65535, got %d", c.Server.Port),
		})
	}
	if c.Server.RateLimitPerSecond <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit_per_second",
			Message: "must be positive",
		})
	}
	if c.Server.RateLimitBurst < 1 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit_burst",
			Message: "must be at least 1",
		})
	}
	if c.Server.ReadTimeoutSecs <= 0 || c.Server.WriteTimeoutSecs <= 0 {
		errs = append(errs, ValidationError{
			Field:   "server timeouts",
			Message: "read and write timeouts must be positive",
		})
	}

	if c.Ledger.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "ledger.path",
			Message: "must not be empty",
		})
	}

	if c.Telemetry.RefreshIntervalSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "telemetry.refresh_interval_secs",
			Message: "must be at least 1",
		})
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be debug, info, warn, or error, got %q", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies LIBRECHAT_* environment variables over the
// loaded configuration.
func (c *Config) ApplyEnvOverrides() {
	if host := os.Getenv("LIBRECHAT_HOST"); host != "" {
		c.Server.Host = host
	}
	if port := os.Getenv("LIBRECHAT_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	// LIBRECHAT_AUTH_TOKENS holds comma-separated token:user pairs.
	if tokens := os.Getenv("LIBRECHAT_AUTH_TOKENS"); tokens != "" {
		if c.Server.AuthTokens == nil {
			c.Server.AuthTokens = map[string]string{}
		}
		for _, pair := range strings.Split(tokens, ",") {
			token, user, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if ok && token != "" && user != "" {
				c.Server.AuthTokens[token] = user
			}
		}
	}

	if path := os.Getenv("LIBRECHAT_LEDGER_PATH"); path != "" {
		c.Ledger.Path = path
	}
	if path := os.Getenv("LIBRECHAT_PREFS_PATH"); path != "" {
		c.Telemetry.PrefsPath = path
	}

	if level := os.Getenv("LIBRECHAT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("LIBRECHAT_LOG_FILE"); file != "" {
		c.Logging.File = file
	}
}
