// librechat usage telemetry - token accounting dashboard and API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"

	"github.com/OmarMoust/LibreChat/internal/cli"
	"github.com/OmarMoust/LibreChat/internal/config"
	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/logging"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/ui/dashboard"
	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// Version information (set at build time)
var (
	Version   = "1.2.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// prefsWatchDebounce coalesces editor write bursts into one reload.
const prefsWatchDebounce = 200 * time.Millisecond

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// Parse CLI arguments
	cmd, args := cli.Parse()

	// Route to appropriate handler
	switch cmd {
	case cli.CmdDashboard:
		runDashboard(args)
	case cli.CmdServe:
		cli.HandleServe(args)
	case cli.CmdSummary:
		cli.HandleSummary(args)
	case cli.CmdTransactions:
		cli.HandleTransactions(args)
	case cli.CmdConsole:
		cli.HandleConsole(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersionWithJSON(args)
	case cli.CmdHelp:
		cli.HandleHelp()
	default:
		runDashboard(args)
	}
}

// =============================================================================
// DASHBOARD BOOTSTRAP
// =============================================================================

// runDashboard starts the full-screen usage dashboard.
func runDashboard(args cli.Args) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen belongs to the TUI; logs go to the configured
	// file or nowhere.
	logging.SilenceTerminal(cfg.Logging)

	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open ledger: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	prefStore, err := prefs.Open(cfg.Telemetry.PrefsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open preferences: %v\n", err)
		os.Exit(1)
	}
	defer prefStore.Close()

	// Watch the preference file so writers elsewhere flip displays live.
	// The dashboard still works without the watcher.
	if watcher, err := prefs.NewWatcher(prefStore, prefsWatchDebounce); err != nil {
		log.WithError(err).Warn("preference watching disabled")
	} else if err := watcher.Watch(); err != nil {
		log.WithError(err).Warn("preference watching disabled")
		watcher.Close()
	} else {
		defer watcher.Close()
	}

	// Initialize the theme
	theme := styles.NewTheme()

	userID := args.User
	if userID == "" {
		userID = os.Getenv("LIBRECHAT_USER_ID")
	}

	// Create the application model
	m := dashboard.New(theme, store, prefStore, userID)
	defer m.Close()

	// Apply CLI args to model (CLI args override config)
	if args.Period != "" {
		m.SetPeriod(usage.ParsePeriod(args.Period))
	}
	m.SetRefreshInterval(cfg.Telemetry.RefreshInterval())

	// Create the Bubble Tea program
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)

	// Run the program
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running librechat: %v\n", err)
		os.Exit(1)
	}
}
