// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line interface parsing and execution for
// librechat.
//
// This package implements all CLI commands for the token usage telemetry
// service, covering both the interactive dashboard and the non-interactive
// reporting commands.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - JSONResponse: Standardized JSON envelope for machine-readable output
//
// # Usage
//
// Parse and execute commands:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdSummary:
//	    cli.HandleSummary(args)
//	case cli.CmdTransactions:
//	    cli.HandleTransactions(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Core Commands:
//   - dashboard: Interactive usage dashboard (default)
//   - serve: Run the usage HTTP API
//   - summary: Aggregated usage report for a period
//   - transactions: Paginated transaction listing
//   - console: Interactive query console
//   - config: Configuration management
//
// Reporting commands support --json for piping into other tools.
package cli
