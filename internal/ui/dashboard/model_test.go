// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/OmarMoust/LibreChat/internal/ledger"
	"github.com/OmarMoust/LibreChat/internal/prefs"
	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// FIXTURES
// =============================================================================

// newTestModel builds a model without backing stores. Update paths are
// safe to exercise; the load commands report errNoStore.
func newTestModel(t *testing.T) Model {
	t.Helper()
	return New(styles.NewTheme(), nil, nil, "user-a")
}

func openLedger(t *testing.T) *ledger.Store {
	t.Helper()
	s, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func openPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	s, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.json"))
	if err != nil {
		t.Fatalf("open prefs: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func sampleSummary(p usage.Period) *usage.UsageSummary {
	model := "gpt-4o"
	return &usage.UsageSummary{
		TotalTokens:      15480,
		TotalCost:        1.25,
		PromptTokens:     9000,
		CompletionTokens: 6480,
		TransactionCount: 42,
		Period:           p,
		ModelBreakdown:   []usage.ModelUsage{{ModelID: &model, Tokens: 15480, Cost: 1.25, Count: 42}},
		DailyUsage: []usage.DailyUsage{
			{Date: "2025-06-01", Tokens: 7000, Cost: 0.60},
			{Date: "2025-06-02", Tokens: 8480, Cost: 0.65},
		},
	}
}

func sampleTransactions(n int) []*ledger.Transaction {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	txs := make([]*ledger.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, &ledger.Transaction{
			ID:             fmt.Sprintf("tx-%02d", i),
			UserID:         "user-a",
			ConversationID: "conv-1",
			TokenType:      ledger.TokenTypePrompt,
			RawAmount:      -int64(100 + i),
			Model:          "gpt-4o",
			CreatedAt:      base.Add(time.Duration(i) * time.Minute),
		})
	}
	return txs
}

// press runs one key through Update and returns the resulting model.
func press(t *testing.T, m Model, k string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(k))
	return updated.(Model), cmd
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

// resize pushes a window size through Update.
func resize(t *testing.T, m Model, w, h int) Model {
	t.Helper()
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(Model)
}

// =============================================================================
// CONSTRUCTION TESTS
// =============================================================================

func TestTabString(t *testing.T) {
	tests := []struct {
		tab  Tab
		want string
	}{
		{TabSummary, "Summary"},
		{TabTransactions, "Transactions"},
		{Tab(9), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.tab.String(); got != tc.want {
			t.Errorf("Tab(%d).String() = %q, want %q", tc.tab, got, tc.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	m := newTestModel(t)

	if m.Period() != usage.PeriodMonth {
		t.Errorf("default period = %q, want month", m.Period())
	}
	if m.ActiveTab() != TabSummary {
		t.Errorf("default tab = %v, want Summary", m.ActiveTab())
	}
	if m.txLimit != defaultPageSize {
		t.Errorf("default page size = %d, want %d", m.txLimit, defaultPageSize)
	}
	if m.refreshEvery != defaultRefreshInterval {
		t.Errorf("default refresh interval = %v, want %v", m.refreshEvery, defaultRefreshInterval)
	}
	if !m.loadingSummary || !m.loadingTx {
		t.Error("a fresh model should be loading both views")
	}
	if !m.TelemetryVisible() {
		t.Error("telemetry should default to visible without a preference store")
	}
}

func TestNewNilThemeFallsBack(t *testing.T) {
	m := New(nil, nil, nil, "user-a")
	if m.theme == nil {
		t.Fatal("nil theme should fall back to the default theme")
	}
	if v := m.View(); !strings.Contains(v, "Loading") {
		t.Errorf("zero-size view = %q, want loading placeholder", v)
	}
}

func TestNewReadsStoredTelemetryPreference(t *testing.T) {
	ps := openPrefs(t)
	if _, err := ps.ToggleTelemetry(); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	m := New(styles.NewTheme(), nil, ps, "user-a")
	defer m.Close()

	if m.TelemetryVisible() {
		t.Error("a stored disable should hide the badge at mount")
	}
}

// =============================================================================
// SETTER TESTS
// =============================================================================

func TestSetPeriodNormalizesUnknown(t *testing.T) {
	m := newTestModel(t)

	m.SetPeriod(usage.PeriodWeek)
	if m.Period() != usage.PeriodWeek {
		t.Errorf("period = %q, want week", m.Period())
	}

	m.SetPeriod(usage.Period("fortnight"))
	if m.Period() != usage.PeriodMonth {
		t.Errorf("unknown period = %q, want month fallback", m.Period())
	}
}

func TestSetPageSizeClamps(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, ledger.DefaultListLimit},
		{-5, 1},
		{10, 10},
		{5000, ledger.MaxListLimit},
	}

	for _, tc := range tests {
		m := newTestModel(t)
		m.SetPageSize(tc.in)
		if m.txLimit != tc.want {
			t.Errorf("SetPageSize(%d): limit = %d, want %d", tc.in, m.txLimit, tc.want)
		}
	}
}

func TestSetRefreshIntervalFloorsAtZero(t *testing.T) {
	m := newTestModel(t)

	m.SetRefreshInterval(-time.Second)
	if m.refreshEvery != 0 {
		t.Errorf("negative interval = %v, want 0", m.refreshEvery)
	}

	m.SetRefreshInterval(time.Minute)
	if m.refreshEvery != time.Minute {
		t.Errorf("interval = %v, want 1m", m.refreshEvery)
	}
}

// =============================================================================
// LIFECYCLE TESTS
// =============================================================================

func TestInitSchedulesStartupWork(t *testing.T) {
	m := newTestModel(t)
	if m.Init() == nil {
		t.Fatal("Init should schedule the first loads")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	ps := openPrefs(t)
	m := New(styles.NewTheme(), nil, ps, "user-a")

	m.Close()
	m.Close()
}
