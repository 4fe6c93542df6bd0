// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for
// the usage telemetry service.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ServerConfig: HTTP listener, auth tokens, rate limiting, timeouts
//   - LedgerConfig: transaction database location
//   - LoggingConfig: level and optional rotated file output
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (LIBRECHAT_*)
//   - a .env file in the working directory or config directory
//   - ~/.librechat/config.toml
//   - Built-in defaults
//
// Every field has a working default; a missing config file is not an error.
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Access settings:
//
//	addr := cfg.Server.Addr()
//	dbPath := cfg.Ledger.Path
package config
