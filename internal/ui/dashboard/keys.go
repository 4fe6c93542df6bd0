// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the dashboard. Each binding
// carries help text for the help overlay.
type KeyMap struct {
	NextTab  key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	PeriodDay   key.Binding
	PeriodWeek  key.Binding
	PeriodMonth key.Binding
	PeriodAll   key.Binding

	PrevPage key.Binding
	NextPage key.Binding

	Refresh         key.Binding
	ToggleTelemetry key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the default key bindings for the dashboard.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "switch view"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("PgDn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("Home/g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("End/G", "go to bottom"),
		),
		PeriodDay: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "day period"),
		),
		PeriodWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "week period"),
		),
		PeriodMonth: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month period"),
		),
		PeriodAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all time"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "previous page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next page"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleTelemetry: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle telemetry"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/C-c", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the most commonly used shortcuts.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped for the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Views and navigation
		{k.NextTab, k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		// Report window
		{k.PeriodDay, k.PeriodWeek, k.PeriodMonth, k.PeriodAll},
		// Transactions paging
		{k.PrevPage, k.NextPage},
		// Actions
		{k.Refresh, k.ToggleTelemetry, k.Help, k.Quit},
	}
}
