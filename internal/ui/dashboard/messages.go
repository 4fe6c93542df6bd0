// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/model"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// DATA MESSAGES
// =============================================================================

// SummaryLoadedMsg delivers the result of a usage summary load. Period
// records which reporting window the load was issued for so that a reply
// arriving after the user has already cycled periods can be discarded.
type SummaryLoadedMsg struct {
	Period  usage.Period
	Summary *usage.UsageSummary
	Err     error
}

// TransactionsLoadedMsg delivers one page of transactions. Period and
// Offset record which window and page the load was issued for; a reply
// the user has already navigated away from is discarded.
type TransactionsLoadedMsg struct {
	Period       usage.Period
	Offset       int
	Transactions []*ledger.Transaction
	Total        int64
	Err          error
}

// =============================================================================
// TELEMETRY MESSAGES
// =============================================================================

// GenerationProgressMsg reports progress of a tracked generation to the
// rate estimator. An embedding program forwards stream progress with
// Program.Send; TextLen is the cumulative text length so far and Producing
// is false once the generation has finished.
type GenerationProgressMsg struct {
	MessageID string
	TextLen   int
	Producing bool
}

// ProgressFromThread derives the progress signal from the chat core's
// message forest. The estimator tracks the latest message in depth-first
// order; a message that ended in error stops counting as producing even
// when its unfinished flag was never cleared. An embedding chat program
// sends the result with Program.Send whenever the thread changes.
func ProgressFromThread(roots []*model.Message) GenerationProgressMsg {
	latest := model.Latest(roots)
	if latest == nil {
		return GenerationProgressMsg{}
	}
	return GenerationProgressMsg{
		MessageID: latest.MessageID,
		TextLen:   len(latest.Text),
		Producing: latest.Unfinished && !latest.Error,
	}
}

// TelemetryTickMsg drives one estimator sample. It is rescheduled only
// while the estimator is streaming; when the stream ends the tick loop
// stops until the next generation starts one.
type TelemetryTickMsg struct {
	Time time.Time
}

// =============================================================================
// REFRESH MESSAGES
// =============================================================================

// RefreshTickMsg triggers a periodic reload of summary and transactions.
type RefreshTickMsg struct {
	Time time.Time
}

// =============================================================================
// PREFERENCE MESSAGES
// =============================================================================

// PrefsChangedMsg delivers a preference broadcast from the subscription
// channel. Both in-process toggles and external file edits picked up by the
// watcher arrive through this message.
type PrefsChangedMsg struct {
	Prefs prefs.Preferences
}

// PrefsToggledMsg reports the outcome of a telemetry toggle initiated from
// the dashboard. The visibility change itself arrives separately via
// PrefsChangedMsg through the subscription.
type PrefsToggledMsg struct {
	Enabled bool
	Err     error
}
