// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/telemetry"
)

// loadTimeout bounds every ledger read issued from the dashboard.
const loadTimeout = 5 * time.Second

// errNoStore is returned through the loaded messages when the dashboard
// was constructed without a ledger store.
var errNoStore = errors.New("dashboard: no ledger store")

// =============================================================================
// DATA LOAD COMMANDS
// =============================================================================

// loadSummaryCmd loads the usage summary for the current period. The
// period is captured before the closure so a reply can be matched against
// the period the user is still looking at.
func (m Model) loadSummaryCmd() tea.Cmd {
	agg := m.aggregator
	userID := m.userID
	period := m.period

	return func() tea.Msg {
		if agg == nil {
			return SummaryLoadedMsg{Period: period, Err: errNoStore}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		summary, err := agg.Summarize(ctx, userID, period, time.Now())
		return SummaryLoadedMsg{Period: period, Summary: summary, Err: err}
	}
}

// loadTransactionsCmd loads one page of transactions at the current
// offset, bounded to the current period window. Values are captured
// before the closure to avoid reading the model from the command
// goroutine.
func (m Model) loadTransactionsCmd() tea.Cmd {
	store := m.store
	userID := m.userID
	period := m.period
	limit := m.txLimit
	offset := m.txOffset

	return func() tea.Msg {
		if store == nil {
			return TransactionsLoadedMsg{Period: period, Offset: offset, Err: errNoStore}
		}

		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		f := ledger.Filter{UserID: userID}
		if start, bounded := period.Window(time.Now()); bounded {
			f.StartDate = start
		}

		txs, total, err := store.List(ctx, f, limit, offset)
		return TransactionsLoadedMsg{
			Period:       period,
			Offset:       offset,
			Transactions: txs,
			Total:        total,
			Err:          err,
		}
	}
}

// =============================================================================
// TIMER COMMANDS
// =============================================================================

// telemetryTick schedules the next estimator sample. The handler
// reschedules only while the estimator is streaming.
func telemetryTick() tea.Cmd {
	return tea.Tick(telemetry.SampleInterval, func(t time.Time) tea.Msg {
		return TelemetryTickMsg{Time: t}
	})
}

// refreshTick schedules the next auto refresh.
func refreshTick(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return RefreshTickMsg{Time: t}
	})
}

// =============================================================================
// PREFERENCE COMMANDS
// =============================================================================

// waitPrefs blocks on the subscription channel and delivers the next
// preference broadcast. The handler re-arms it after each delivery. A nil
// message is returned when the channel closes on unsubscribe.
func waitPrefs(ch chan prefs.Preferences) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return PrefsChangedMsg{Prefs: p}
	}
}

// togglePrefsCmd flips the durable telemetry preference. The display
// change arrives through the subscription broadcast.
func (m Model) togglePrefsCmd() tea.Cmd {
	store := m.prefsStore
	return func() tea.Msg {
		if store == nil {
			return nil
		}
		enabled, err := store.ToggleTelemetry()
		return PrefsToggledMsg{Enabled: enabled, Err: err}
	}
}
