// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command routing for librechat.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdDashboard Command = iota
	CmdServe
	CmdSummary
	CmdTransactions
	CmdConsole
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	JSON    bool   // Output in JSON format
	User    string // Scope queries to one user ID
	Period  string // Usage period (day, week, month, all)

	// Command-specific
	Subcommand   string
	ConfigKey    string
	ConfigVal    string
	Limit        int
	Offset       int
	Model        string
	Conversation string
	Start        string
	End          string
	Host         string
	Port         int

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `librechat - token usage telemetry for LLM chat deployments

Librechat records every token transaction in a local ledger and turns
it into live dashboards and usage reports.

It provides:
  - An interactive terminal dashboard with live generation telemetry
  - Aggregated usage summaries per user, model, and day
  - A paginated transaction ledger backed by SQLite
  - A small authenticated HTTP API for the same data

Usage:
  librechat                       Start the dashboard (default)
  librechat serve                 Run the usage HTTP API
  librechat summary [period]      Aggregated usage report
  librechat transactions, tx      List ledger transactions
  librechat console               Interactive query console
  librechat config [show|set]     Configuration
  librechat version               Show version information
  librechat help                  Show this help

Summary Command:
  librechat summary               Report for the default period (month)
  librechat summary week          Report for the last 7 days
    --period PERIOD               day, week, month, or all
    --user ID                     Scope to one user
    --json                        Machine-readable output

Transactions Command:
  librechat transactions          First page of recent transactions
    --limit N                     Page size (default 25, max 1000)
    --offset N                    Page start
    --model NAME                  Filter by model
    --conversation ID             Filter by conversation
    --start DATE                  Inclusive lower bound (YYYY-MM-DD or 24h, 7d)
    --end DATE                    Inclusive upper bound (YYYY-MM-DD)
    --user ID                     Scope to one user
    --json                        Machine-readable output

Serve Command:
  librechat serve                 Listen on the configured address
    --host ADDR                   Override listen host
    --port N                      Override listen port

Console Commands (inside librechat console):
  summary [period]                Usage report
  transactions [--limit N]        Transaction listing
  period <p>                      Set the default period
  user <id>                       Set the default user scope
  telemetry [on|off]              Toggle the live rate badge
  help                            Command reference
  quit                            Leave the console

Config Commands:
  librechat config show           Display current configuration
  librechat config set KEY VALUE  Set a configuration value
  librechat config reset          Reset to default configuration
  librechat config path           Show configuration file path
    --json                        Machine-readable output

  Keys: host, port, ledger_path, prefs_path, refresh_interval_secs,
        log_level, log_file

Global Flags:
  -q, --quiet     Minimal output
  -v, --verbose   Debug output
  --json          Output in JSON format
  --user ID       Scope to one user
  --period PERIOD Usage period (day, week, month, all)

Examples:
  # Dashboards
  librechat                           Open the dashboard
  librechat --period week             Open the dashboard on the week view
  librechat --user alice              Dashboard scoped to one user

  # Reports
  librechat summary                   Monthly usage report
  librechat summary day --user alice  Today's usage for alice
  librechat summary --json            Summary for scripts and SIEM ingest
  librechat tx --limit 50             Last 50 transactions
  librechat tx --model gpt-4o --json  Model-filtered transactions as JSON
  librechat tx --start 7d             Transactions from the last 7 days

  # Service
  librechat serve                     Run the HTTP API
  librechat serve --port 8090         Override the listen port

  # Configuration
  librechat config show               Show current configuration
  librechat config set port 8090      Change the API port
  librechat config path               Show config file location

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("librechat version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses the given argument list. Split from Parse so tests can
// drive it without touching os.Args.
func ParseArgs(args []string) (Command, Args) {
	// Parse global flags first
	remaining, parsedArgs := parseGlobalFlags(args)

	// If no remaining args, default to the dashboard
	if len(remaining) == 0 {
		return CmdDashboard, parsedArgs
	}

	// Check first argument for command
	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsedArgs.Raw = remaining

	switch cmd {
	case "dashboard", "dash", "tui":
		return CmdDashboard, parsedArgs

	case "serve", "server":
		parseServeArgs(&parsedArgs, remaining)
		return CmdServe, parsedArgs

	case "summary", "usage":
		parseSummaryArgs(&parsedArgs, remaining)
		return CmdSummary, parsedArgs

	case "transactions", "tx", "ledger":
		parseTransactionsArgs(&parsedArgs, remaining)
		return CmdTransactions, parsedArgs

	case "console", "repl":
		return CmdConsole, parsedArgs

	case "config":
		parseConfigArgs(&parsedArgs, remaining)
		return CmdConfig, parsedArgs

	case "version", "--version":
		return CmdVersion, parsedArgs

	case "help", "-h", "--help":
		return CmdHelp, parsedArgs

	default:
		// Unknown command - restore it and fall back to the dashboard
		parsedArgs.Raw = append([]string{cmd}, remaining...)
		return CmdDashboard, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--user":
			if i+1 < len(args) {
				i++
				parsedArgs.User = args[i]
			}
		case "--period":
			if i+1 < len(args) {
				i++
				parsedArgs.Period = args[i]
			}
		default:
			// Check for --flag=value format
			if strings.HasPrefix(arg, "--user=") {
				parsedArgs.User = strings.TrimPrefix(arg, "--user=")
			} else if strings.HasPrefix(arg, "--period=") {
				parsedArgs.Period = strings.TrimPrefix(arg, "--period=")
			} else {
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// parseServeArgs parses serve command specific arguments.
func parseServeArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.Host = parser.Flag("host")
	args.Port = parser.FlagIntOrDefault("port", 0)
}

// parseSummaryArgs parses summary command specific arguments. The period
// can be given positionally ("summary week") or as --period.
func parseSummaryArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	if p := parser.Positional(0); p != "" {
		args.Period = p
	}
	if p := parser.Flag("period"); p != "" {
		args.Period = p
	}
	if u := parser.Flag("user"); u != "" {
		args.User = u
	}
	if parser.BoolFlag("json") {
		args.JSON = true
	}
}

// parseTransactionsArgs parses transactions command specific arguments.
func parseTransactionsArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.Limit = parser.FlagIntOrDefault("limit", 0)
	args.Offset = parser.FlagIntOrDefault("offset", 0)
	args.Model = parser.Flag("model")
	args.Conversation = parser.Flag("conversation")
	args.Start = parser.Flag("start")
	args.End = parser.Flag("end")
	if u := parser.Flag("user"); u != "" {
		args.User = u
	}
	if parser.BoolFlag("json") {
		args.JSON = true
	}
}

// parseConfigArgs parses config command specific arguments.
func parseConfigArgs(args *Args, remaining []string) {
	parser := NewArgParser(remaining)
	args.Subcommand = parser.Subcommand()
	args.ConfigKey = parser.Positional(1)
	args.ConfigVal = parser.Positional(2)
	if parser.BoolFlag("json") {
		args.JSON = true
	}
}

// =============================================================================
// COMMAND HANDLERS
// =============================================================================

// HandleVersion handles the "version" command.
func HandleVersion() {
	PrintVersion()
}

// HandleVersionWithJSON handles the "version" command with JSON output support.
func HandleVersionWithJSON(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp handles the "help" command.
func HandleHelp() {
	PrintUsage()
}
