// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for librechat.
//
// Command: config [subcommand]
// Short:   View and modify configuration
// Aliases: (none)
//
// Subcommands:
//   show (default)      Display current configuration
//   set <key> <value>   Set a configuration value
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   librechat config                        Show current config (default)
//   librechat config show --json            Config in JSON format
//   librechat config set port 8090          Change the API port
//   librechat config set log_level debug    Raise log verbosity
//   librechat config reset                  Reset to defaults
//   librechat config path                   Show config file location
//
// Configuration Keys:
//   host                   API listen address
//   port                   API listen port
//   ledger_path            SQLite transaction database location
//   prefs_path             Display preference file location
//   refresh_interval_secs  Dashboard refresh cadence in seconds
//   log_level              Log verbosity (debug/info/warn/error)
//   log_file               Log file path (empty = stderr only)
//
// Flags:
//   --json              Output in JSON format
package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OmarMoust/LibreChat/internal/config"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	// Config value style
	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("82")) // Green

	// Config value muted (for unset fields)
	configMutedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")) // Dim

	// Path style
	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// =============================================================================
// HANDLE CONFIG
// =============================================================================

// HandleConfig handles the "config" command.
func HandleConfig(args Args) {
	if err := handleConfigCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

func handleConfigCommand(args Args) error {
	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			return handleConfigShowJSON()
		}
		return handleConfigShow()

	case "set":
		return handleConfigSet(args.ConfigKey, args.ConfigVal)

	case "reset":
		return handleConfigReset()

	case "path":
		if args.JSON {
			return handleConfigPathJSON()
		}
		return handleConfigPath()

	default:
		return fmt.Errorf("unknown config subcommand: %s (want show, set, reset, or path)", args.Subcommand)
	}
}

// =============================================================================
// SHOW
// =============================================================================

// handleConfigShow displays the current effective configuration.
func handleConfigShow() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
		cfg.SetDefaults()
	}

	separator := strings.Repeat("=", 41)
	fmt.Println()
	fmt.Println(TitleStyle.Render("librechat Configuration"))
	fmt.Println(SeparatorStyle.Render(separator))
	fmt.Println()

	// Server section
	fmt.Println(SectionStyle.Render("[server]"))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("host:"),
		configValueStyle.Render(cfg.Server.Host))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("port:"),
		configValueStyle.Render(strconv.Itoa(cfg.Server.Port)))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("auth_tokens:"),
		configMutedStyle.Render(describeAuthTokens(len(cfg.Server.AuthTokens))))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("rate_limit:"),
		configValueStyle.Render(fmt.Sprintf("%.1f req/s, burst %d",
			cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst)))
	fmt.Println()

	// Ledger section
	fmt.Println(SectionStyle.Render("[ledger]"))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("path:"),
		configValueStyle.Render(cfg.Ledger.Path))
	fmt.Println()

	// Telemetry section
	fmt.Println(SectionStyle.Render("[telemetry]"))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("prefs_path:"),
		configValueStyle.Render(cfg.Telemetry.PrefsPath))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("refresh_interval:"),
		configValueStyle.Render(fmt.Sprintf("%d seconds", cfg.Telemetry.RefreshIntervalSecs)))
	fmt.Println()

	// Logging section
	fmt.Println(SectionStyle.Render("[logging]"))
	fmt.Printf("  %s%s\n",
		LabelStyle.Render("level:"),
		configValueStyle.Render(cfg.Logging.Level))
	logFile := cfg.Logging.File
	if logFile == "" {
		fmt.Printf("  %s%s\n",
			LabelStyle.Render("file:"),
			configMutedStyle.Render("(stderr only)"))
	} else {
		fmt.Printf("  %s%s\n",
			LabelStyle.Render("file:"),
			configValueStyle.Render(logFile))
	}
	fmt.Println()

	fmt.Println(SeparatorStyle.Render(strings.Repeat("-", 41)))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(configFilePath()))
	fmt.Println()

	return nil
}

// handleConfigShowJSON outputs the effective configuration in JSON format.
func handleConfigShowJSON() error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
		cfg.SetDefaults()
	}

	data := ConfigData{
		Server: ConfigServerInfo{
			Host:               cfg.Server.Host,
			Port:               cfg.Server.Port,
			AuthTokensSet:      len(cfg.Server.AuthTokens),
			RateLimitPerSecond: cfg.Server.RateLimitPerSecond,
			RateLimitBurst:     cfg.Server.RateLimitBurst,
		},
		Ledger: ConfigLedgerInfo{
			Path: cfg.Ledger.Path,
		},
		Telemetry: ConfigTelemetryInfo{
			PrefsPath:           cfg.Telemetry.PrefsPath,
			RefreshIntervalSecs: cfg.Telemetry.RefreshIntervalSecs,
		},
		Logging: ConfigLoggingInfo{
			Level: cfg.Logging.Level,
			File:  cfg.Logging.File,
		},
		Path: configFilePath(),
	}

	resp := NewJSONResponse("config show", data)
	return resp.Print()
}

// =============================================================================
// SET
// =============================================================================

// handleConfigSet changes one value in the config file. Environment
// overrides are deliberately not persisted: the file is re-read raw so a
// LIBRECHAT_* variable active in this shell does not leak into it.
func handleConfigSet(key, value string) error {
	if key == "" {
		return fmt.Errorf("no config key provided\nUsage: librechat config set <key> <value>")
	}
	if value == "" {
		return fmt.Errorf("no config value provided\nUsage: librechat config set %s <value>", key)
	}

	path := configFilePath()
	cfg := config.Default()
	if _, err := os.Stat(path); err == nil {
		if err := config.LoadTOML(cfg, path); err != nil {
			return WrapError(err, "failed to read config file")
		}
	}

	// Accept both dot and underscore notation for section-qualified keys.
	key = strings.ToLower(key)
	keyNorm := strings.ReplaceAll(key, ".", "_")

	switch keyNorm {
	case "host", "server_host":
		cfg.Server.Host = value

	case "port", "server_port":
		port, err := strconv.Atoi(value)
		if err != nil || port < 1 || port > 65535 {
			return NewValidationErrorWithExample("port", value,
				"must be an integer in range 1-65535", "config set port 8090")
		}
		cfg.Server.Port = port

	case "ledger_path":
		cfg.Ledger.Path = value

	case "prefs_path", "telemetry_prefs_path":
		cfg.Telemetry.PrefsPath = value

	case "refresh_interval_secs", "refresh_interval", "telemetry_refresh_interval_secs":
		secs, err := strconv.Atoi(value)
		if err != nil || secs < 1 {
			return NewValidationErrorWithExample("refresh_interval_secs", value,
				"must be a positive integer", "config set refresh_interval_secs 15")
		}
		cfg.Telemetry.RefreshIntervalSecs = secs

	case "log_level", "logging_level":
		level := strings.ToLower(value)
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return NewValidationErrorWithExample("log_level", value,
				"must be debug, info, warn, or error", "config set log_level debug")
		}
		cfg.Logging.Level = level
		value = level

	case "log_file", "logging_file":
		cfg.Logging.File = value

	default:
		return fmt.Errorf("unknown config key: %s\n\nValid keys:\n"+
			"  host                   - API listen address\n"+
			"  port                   - API listen port\n"+
			"  ledger_path            - SQLite transaction database location\n"+
			"  prefs_path             - Display preference file location\n"+
			"  refresh_interval_secs  - Dashboard refresh cadence in seconds\n"+
			"  log_level              - Log verbosity (debug/info/warn/error)\n"+
			"  log_file               - Log file path (empty = stderr only)", key)
	}

	// Validate the whole file as it will be read back at load time.
	checked := *cfg
	checked.SetDefaults()
	if err := checked.Validate(); err != nil {
		return fmt.Errorf("invalid configuration value: %w", err)
	}

	if err := config.SaveTOML(cfg, path); err != nil {
		return WrapError(err, "failed to save config")
	}

	fmt.Printf("%s %s = %s\n",
		SuccessStyle.Render("[OK]"),
		keyNorm,
		value)

	return nil
}

// =============================================================================
// RESET AND PATH
// =============================================================================

// handleConfigReset writes the built-in defaults back to the config file.
func handleConfigReset() error {
	if err := config.SaveTOML(config.Default(), configFilePath()); err != nil {
		return WrapError(err, "failed to save config")
	}

	fmt.Printf("%s Configuration reset to defaults\n", SuccessStyle.Render("[OK]"))
	fmt.Printf("Config file: %s\n", configPathStyle.Render(configFilePath()))

	return nil
}

// handleConfigPath shows the config file path.
func handleConfigPath() error {
	path := configFilePath()
	fmt.Println(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "%s (file does not exist - will be created on first use)\n",
			configMutedStyle.Render("Note"))
	}

	return nil
}

// handleConfigPathJSON outputs the config path in JSON format.
func handleConfigPathJSON() error {
	path := configFilePath()
	_, err := os.Stat(path)
	exists := !os.IsNotExist(err)

	data := map[string]interface{}{
		"path":   path,
		"exists": exists,
	}

	resp := NewJSONResponse("config path", data)
	return resp.Print()
}

// =============================================================================
// HELPERS
// =============================================================================

// configFilePath resolves the config file location, honoring the same
// LIBRECHAT_CONFIG override the loader uses.
func configFilePath() string {
	if path := os.Getenv("LIBRECHAT_CONFIG"); path != "" {
		return path
	}
	path, err := config.ConfigPath()
	if err != nil {
		return "config.toml"
	}
	return path
}

// describeAuthTokens summarizes how many API tokens are configured without
// showing any of them.
func describeAuthTokens(n int) string {
	if n == 0 {
		return "(none configured)"
	}
	if n == 1 {
		return "1 token configured"
	}
	return fmt.Sprintf("%d tokens configured", n)
}
