// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// console.go - Interactive console command handler for librechat.
//
// Handles the "librechat console" command which provides an interactive REPL
// for exploring the usage ledger without restarting the process between
// queries.
//
// Command: console
// Short:   Start an interactive usage console
// Aliases: repl
//
// Examples:
//   librechat console                 Start the console
//   librechat console --user alice    Start scoped to one user
//
// Interactive Commands (during console):
//   summary [period]    Usage summary for the session period
//   transactions        Recent transactions (alias: tx)
//   period [name]       Show or set the period (day, week, month, all)
//   user [id|clear]     Show, set, or clear the user scope
//   telemetry [on|off]  Show or change the dashboard telemetry preference
//   help, h             Show available commands
//   quit, q, exit       Leave the console
//   Ctrl+C, Ctrl+D      Leave the console
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"golang.org/x/text/unicode/norm"

	"github.com/OmarMoust/LibreChat/internal/config"
	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	// Welcome banner style
	welcomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)

	// Command style
	commandStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ConsoleInput provides input history and line editing for the console.
type ConsoleInput struct {
	line        *liner.State
	historyFile string
}

// NewConsoleInput creates a ConsoleInput with input history support.
func NewConsoleInput() *ConsoleInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	historyFile := filepath.Join(configDir, "console_history")

	in := &ConsoleInput{
		line:        line,
		historyFile: historyFile,
	}

	in.LoadHistory()

	return in
}

// LoadHistory loads command history from file.
func (c *ConsoleInput) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
// Supports history navigation with arrow keys.
func (c *ConsoleInput) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}

	return input, nil
}

// SaveHistory persists command history to file with owner-only permissions.
func (c *ConsoleInput) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}

	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	c.line.WriteHistory(f)
}

// Close saves history and closes the liner.
func (c *ConsoleInput) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// SESSION STATE
// =============================================================================

// ConsoleSession holds the state for an interactive console session.
type ConsoleSession struct {
	// Data access
	Store  *ledger.Store
	Prefs  *prefs.Store
	Agg    *usage.Aggregator
	Config *config.Config

	// Query scope, adjustable with the period and user commands
	UserID string
	Period usage.Period

	// Tracking
	StartTime time.Time
	Queries   int

	// Input history handler
	Input *ConsoleInput
}

// NewConsoleSession creates a console session scoped by the CLI args.
func NewConsoleSession(cfg *config.Config, store *ledger.Store, prefStore *prefs.Store, args Args) *ConsoleSession {
	return &ConsoleSession{
		Store:     store,
		Prefs:     prefStore,
		Agg:       usage.NewAggregator(store),
		Config:    cfg,
		UserID:    resolveUserID(args),
		Period:    resolvePeriod(args.Period),
		StartTime: time.Now(),
		Input:     NewConsoleInput(),
	}
}

// scopeLabel names the current user scope for display.
func (s *ConsoleSession) scopeLabel() string {
	if s.UserID == "" {
		return "all users"
	}
	return s.UserID
}

// =============================================================================
// CONSOLE HANDLER
// =============================================================================

// HandleConsole handles the "console" command.
func HandleConsole(args Args) {
	if err := handleConsoleCommand(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(GetExitCode(err))
	}
}

// handleConsoleCommand runs the interactive REPL until quit or EOF.
func handleConsoleCommand(args Args) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	prefStore, err := prefs.Open(cfg.Telemetry.PrefsPath)
	if err != nil {
		return WrapError(err, "failed to open preferences")
	}
	defer prefStore.Close()

	session := NewConsoleSession(cfg, store, prefStore, args)
	defer session.Input.Close()

	if !args.Quiet {
		printConsoleWelcome(session)
	}

	for {
		input, err := session.Input.ReadInput(promptStyle.Render("librechat> "))
		if err != nil {
			if err == liner.ErrPromptAborted {
				// Ctrl+C pressed - exit gracefully
				fmt.Println()
				printConsoleExit(session)
				return nil
			}
			// EOF (Ctrl+D) or other error - exit gracefully
			fmt.Println()
			printConsoleExit(session)
			return nil
		}

		// Normalize compatibility forms so full-width input matches commands.
		input = strings.TrimSpace(norm.NFKC.String(input))
		if input == "" {
			continue
		}

		output, quit, err := runConsoleLine(session, input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		if output != "" {
			fmt.Println(output)
		}
		if quit {
			printConsoleExit(session)
			return nil
		}
	}
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// runConsoleLine executes one console line.
// Returns the output to print and whether the session should end.
func runConsoleLine(session *ConsoleSession, input string) (string, bool, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", false, nil
	}

	command := strings.ToLower(fields[0])
	rest := fields[1:]

	switch command {
	case "summary", "usage":
		out, err := consoleSummary(session, rest)
		return out, false, err

	case "transactions", "tx":
		out, err := consoleTransactions(session, rest)
		return out, false, err

	case "period":
		return consolePeriod(session, rest), false, nil

	case "user":
		return consoleUser(session, rest), false, nil

	case "telemetry":
		out, err := consoleTelemetry(session, rest)
		return out, false, err

	case "help", "h", "?":
		return consoleHelp(), false, nil

	case "quit", "q", "exit":
		return "", true, nil

	default:
		return "", false, fmt.Errorf("unknown command: %s (type help for commands)", command)
	}
}

// consoleSummary aggregates usage for the session scope. A positional
// argument overrides the session period for this query only.
func consoleSummary(session *ConsoleSession, args []string) (string, error) {
	period := session.Period
	if len(args) > 0 {
		period = usage.ParsePeriod(args[0])
	}

	summary, err := session.Agg.Summarize(context.Background(), session.UserID, period, time.Now())
	if err != nil {
		return "", WrapError(err, "failed to summarize ledger")
	}
	session.Queries++

	md := buildSummaryMarkdown(summary, session.UserID)
	if IsStdoutTTY() {
		return renderMarkdown(md), nil
	}
	return md, nil
}

// consoleTransactions lists recent transactions for the session scope.
// Accepts --limit and --model the same way the transactions command does.
func consoleTransactions(session *ConsoleSession, args []string) (string, error) {
	parser := NewArgParser(args)
	limit := ledger.ClampLimit(parser.FlagIntOrDefault("limit", defaultTransactionsLimit))

	filter := ledger.Filter{
		UserID: session.UserID,
		Model:  parser.Flag("model"),
	}
	if start, ok := session.Period.Window(time.Now().UTC()); ok {
		filter.StartDate = start
	}

	txs, total, err := session.Store.List(context.Background(), filter, limit, 0)
	if err != nil {
		return "", WrapError(err, "failed to list ledger")
	}
	session.Queries++

	if len(txs) == 0 {
		return DimStyle.Render("No transactions recorded"), nil
	}

	table := renderTransactionsTable(txs)
	status := DimStyle.Render(transactionsStatusLine(len(txs), total, limit, 0))
	return table + status, nil
}

// consolePeriod shows or sets the session period.
func consolePeriod(session *ConsoleSession, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("%s %s",
			InfoStyle.Render("[Period]"),
			commandStyle.Render(session.Period.String()))
	}

	period := usage.Period(strings.ToLower(args[0]))
	if !period.Valid() {
		return WarningStyle.Render(fmt.Sprintf("[Warning] unknown period %q, keeping %s (want day, week, month, or all)",
			args[0], session.Period))
	}

	session.Period = period
	return fmt.Sprintf("%s Period set to %s",
		commandStyle.Render("[OK]"),
		period)
}

// consoleUser shows, sets, or clears the session user scope.
func consoleUser(session *ConsoleSession, args []string) string {
	if len(args) == 0 {
		return fmt.Sprintf("%s %s",
			InfoStyle.Render("[User]"),
			commandStyle.Render(session.scopeLabel()))
	}

	if strings.EqualFold(args[0], "clear") {
		session.UserID = ""
		return fmt.Sprintf("%s Scope cleared, querying all users",
			commandStyle.Render("[OK]"))
	}

	session.UserID = args[0]
	return fmt.Sprintf("%s Scope set to user %s",
		commandStyle.Render("[OK]"),
		session.UserID)
}

// consoleTelemetry shows or changes the dashboard telemetry preference.
// Dashboards watching the preference file pick the change up live.
func consoleTelemetry(session *ConsoleSession, args []string) (string, error) {
	if len(args) == 0 {
		state := "off"
		if session.Prefs.ShowTokenTelemetry() {
			state = "on"
		}
		return fmt.Sprintf("%s Token telemetry is %s",
			InfoStyle.Render("[Telemetry]"),
			commandStyle.Render(state)), nil
	}

	enabled, err := ParseBoolString(args[0])
	if err != nil {
		return "", NewValidationErrorWithExample("telemetry", args[0],
			"not a boolean", "telemetry on")
	}

	if err := session.Prefs.SetShowTokenTelemetry(enabled); err != nil {
		return "", WrapError(err, "failed to save preference")
	}

	state := "off"
	if enabled {
		state = "on"
	}
	return fmt.Sprintf("%s Token telemetry turned %s",
		commandStyle.Render("[OK]"),
		state), nil
}

// =============================================================================
// DISPLAY FUNCTIONS
// =============================================================================

// printConsoleWelcome prints the welcome banner.
func printConsoleWelcome(session *ConsoleSession) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("librechat usage console"))
	fmt.Println(DimStyle.Render(strings.Repeat("─", 30)))
	fmt.Printf("%s %s\n",
		DimStyle.Render("Ledger:"),
		commandStyle.Render(session.Config.Ledger.Path))
	fmt.Printf("%s %s\n",
		DimStyle.Render("Scope:"),
		commandStyle.Render(session.scopeLabel()))
	fmt.Printf("%s %s\n",
		DimStyle.Render("Period:"),
		commandStyle.Render(session.Period.String()))
	fmt.Println()
	fmt.Println(DimStyle.Render("Type a command and press Enter. Commands: help, quit"))
	fmt.Println()
}

// consoleHelp lists available commands.
func consoleHelp() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(SectionStyle.Render("Available Commands"))
	b.WriteString("\n")
	b.WriteString(DimStyle.Render(strings.Repeat("─", 20)))
	b.WriteString("\n\n")

	commands := []struct {
		cmd  string
		desc string
	}{
		{"summary [period]", "Usage summary for the session period"},
		{"transactions", "Recent transactions (alias: tx)"},
		{"period [name]", "Show or set the period (day, week, month, all)"},
		{"user [id|clear]", "Show, set, or clear the user scope"},
		{"telemetry [on|off]", "Show or change the telemetry preference"},
		{"help, h", "Show this help"},
		{"quit, q", "Leave the console"},
	}

	for _, c := range commands {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-20s", c.cmd)),
			DimStyle.Render(c.desc)))
	}

	b.WriteString("\n")
	b.WriteString(DimStyle.Render("Tip: Ctrl+D exits, arrow keys navigate history"))
	b.WriteString("\n")
	return b.String()
}

// printConsoleExit prints the session summary on exit.
func printConsoleExit(session *ConsoleSession) {
	if session.Queries == 0 {
		fmt.Println(DimStyle.Render("Goodbye!"))
		return
	}

	elapsed := time.Since(session.StartTime).Round(time.Second)

	fmt.Printf("%s %d queries in %s\n",
		DimStyle.Render("[Session]"),
		session.Queries,
		elapsed)
	fmt.Println(DimStyle.Render("Goodbye!"))
}
