// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package dashboard provides the terminal usage dashboard for LibreChat token
telemetry.

The dashboard is a Bubble Tea program with two tabbed views over one user's
ledger: Summary (totals cards, per-model share bars, daily sparkline) and
Transactions (paged table). Both views follow a reporting period cycled
with d/w/m/a and reload on a timer or on r.

# Key Components

## Model (model.go)

The Model struct is the central Bubble Tea model:
  - ledger store and usage aggregator handles for data loads
  - active tab, reporting period, and transactions page state
  - presentation components (header, summary panel, model bars,
    sparkline, rate badge, status bar)
  - a rate estimator for one tracked generation at a time

## Update Loop (update.go)

Handles all Bubble Tea messages:
  - keyboard input (tabs, periods, paging, refresh, telemetry toggle)
  - load replies, with stale replies matched by period and page
  - estimator sampling ticks, started on stream begin and stopped when
    the estimator leaves the streaming state
  - preference broadcasts from the subscription channel

## Commands (commands.go)

Command constructors for ledger loads (bounded by a timeout), the
estimator and refresh timers, and the preference subscription wait.

## View Rendering (view.go)

Layout is header + tab bar + content + status bar, with the rate badge
right-aligned on the tab row and a centered help overlay on ?.

# Usage

Create a dashboard model and run it as a Bubble Tea program:

	model := dashboard.New(styles.NewTheme(), store, prefsStore, userID)
	defer model.Close()
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}

Generation progress can be forwarded from an embedding program with
Program.Send(GenerationProgressMsg{...}); the rate badge then shows the
live estimate and, after the stream finishes, the finalized summary.

# Telemetry Preference

The "show token telemetry" preference is read at construction and the
model subscribes to the preference store; both in-process toggles (the t
key) and external file edits picked up by the watcher reach the badge
through the same broadcast. Close releases the subscription.
*/
package dashboard
