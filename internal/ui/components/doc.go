// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual building blocks for the usage
dashboard TUI.

Each component is a small struct holding display state, mutated through
Set* methods and rendered with View(). Components do not run their own
update loops; the dashboard model owns Bubble Tea and pushes fresh data
in after every refresh.

# Components

Header (header.go) - Application header with brand title, user label, and
active period.

RateBadge (ratebadge.go) - Live token-generation rate for the response in
flight, with a final summary once the stream settles.

SummaryPanel (summary.go) - Aggregate cards for total, prompt, and
completion tokens plus spend and transaction count.

ModelBars (modelbars.go) - Horizontal per-model share bars for the usage
breakdown.

Sparkline (sparkline.go) - Daily token series chart rendered with
asciigraph.

TransactionColumns / TransactionRows (transactions.go) - Adapters that
shape ledger transactions for the bubbles table component.

# Theme Integration

All components accept a *styles.Theme for consistent styling:

	theme := styles.NewTheme()
	header := components.NewHeader(theme)
	header.SetWidth(80)
	header.SetUser("user-a")
	view := header.View()

# Helper Functions

Shared helpers live in helpers.go:
  - toStr() - Integer to string conversion without fmt
  - fmtNumber() - Thousands-separated integer formatting
  - fmtPercent() - Fixed single-decimal percentage formatting
*/
package components
