// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package usage turns the raw transaction ledger into per-user summary
// reports.
package usage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/OmarMoust/LibreChat/internal/ledger"
)

func newTestAggregator(t *testing.T) (*Aggregator, *ledger.Store) {
	t.Helper()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return NewAggregator(store), store
}

func seed(t *testing.T, store *ledger.Store, txs ...*ledger.Transaction) {
	t.Helper()
	require.NoError(t, store.InsertBatch(context.Background(), txs))
}

// =============================================================================
// PROMPT ACCOUNTING
// =============================================================================

func TestPromptTokens(t *testing.T) {
	tests := []struct {
		name string
		tx   ledger.Transaction
		want int64
	}{
		{
			name: "structured breakdown wins when positive",
			tx:   ledger.Transaction{RawAmount: -999, InputTokens: 200, WriteTokens: 50, ReadTokens: 30},
			want: 280,
		},
		{
			name: "raw fallback for pre-structured rows",
			tx:   ledger.Transaction{RawAmount: -120},
			want: 120,
		},
		{
			name: "zero structured sum falls back per record",
			tx:   ledger.Transaction{RawAmount: -75, InputTokens: 0, WriteTokens: 0, ReadTokens: 0},
			want: 75,
		},
		{
			name: "negative structured terms count by magnitude",
			tx:   ledger.Transaction{RawAmount: -10, InputTokens: -40, ReadTokens: -5},
			want: 45,
		},
		{
			name: "positive raw amount still counts by magnitude",
			tx:   ledger.Transaction{RawAmount: 60},
			want: 60,
		},
		{
			name: "empty record",
			tx:   ledger.Transaction{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PromptTokens(&tt.tx); got != tt.want {
				t.Errorf("PromptTokens() = %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// SUMMARIZE
// =============================================================================

func TestSummarize_MixedLedgerShapes(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	seed(t, store,
		// Pre-structured prompt row: raw amount only.
		&ledger.Transaction{
			UserID: "u1", TokenType: ledger.TokenTypePrompt,
			RawAmount: -100, TokenValue: -15,
			CreatedAt: now.Add(-1 * time.Hour),
		},
		// Structured prompt row: breakdown wins over the raw amount.
		&ledger.Transaction{
			UserID: "u1", TokenType: ledger.TokenTypePrompt,
			RawAmount: -999, InputTokens: 200, WriteTokens: 50, ReadTokens: 30,
			TokenValue: -30, CreatedAt: now.Add(-2 * time.Hour),
		},
		&ledger.Transaction{
			UserID: "u1", TokenType: ledger.TokenTypeCompletion,
			RawAmount: -150, TokenValue: -20,
			CreatedAt: now.Add(-3 * time.Hour),
		},
		// Credits row: counted and costed, contributes no tokens.
		&ledger.Transaction{
			UserID: "u1", TokenType: ledger.TokenTypeCredits,
			RawAmount: 1000, TokenValue: 100,
			CreatedAt: now.Add(-4 * time.Hour),
		},
	)

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, now)
	require.NoError(t, err)

	if s.PromptTokens != 380 {
		t.Errorf("PromptTokens = %d, want 380", s.PromptTokens)
	}
	if s.CompletionTokens != 150 {
		t.Errorf("CompletionTokens = %d, want 150", s.CompletionTokens)
	}
	if s.TotalTokens != s.PromptTokens+s.CompletionTokens {
		t.Errorf("TotalTokens = %d, want prompt+completion = %d", s.TotalTokens, s.PromptTokens+s.CompletionTokens)
	}
	if s.TransactionCount != 4 {
		t.Errorf("TransactionCount = %d, want 4", s.TransactionCount)
	}
	if s.TotalCost != 165 {
		t.Errorf("TotalCost = %v, want 165", s.TotalCost)
	}
	if s.Period != PeriodAll {
		t.Errorf("Period = %q, want %q", s.Period, PeriodAll)
	}
}

func TestSummarize_PeriodWindows(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	seed(t, store,
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -1, CreatedAt: now.Add(-2 * time.Hour)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -2, CreatedAt: now.AddDate(0, 0, -3)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -4, CreatedAt: now.AddDate(0, 0, -20)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -8, CreatedAt: now.AddDate(0, 0, -90)},
	)

	tests := []struct {
		period     Period
		wantCount  int64
		wantTokens int64
	}{
		{PeriodDay, 1, 1},
		{PeriodWeek, 2, 3},
		{PeriodMonth, 3, 7},
		{PeriodAll, 4, 15},
	}

	for _, tt := range tests {
		s, err := agg.Summarize(context.Background(), "u1", tt.period, now)
		require.NoError(t, err)
		if s.TransactionCount != tt.wantCount {
			t.Errorf("period %q: TransactionCount = %d, want %d", tt.period, s.TransactionCount, tt.wantCount)
		}
		if s.TotalTokens != tt.wantTokens {
			t.Errorf("period %q: TotalTokens = %d, want %d", tt.period, s.TotalTokens, tt.wantTokens)
		}
	}
}

func TestSummarize_UnknownPeriodFallsBackToMonth(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	seed(t, store,
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -5, CreatedAt: now.AddDate(0, 0, -10)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -9, CreatedAt: now.AddDate(0, 0, -60)},
	)

	s, err := agg.Summarize(context.Background(), "u1", Period("fortnight"), now)
	require.NoError(t, err)

	if s.Period != PeriodMonth {
		t.Errorf("Period = %q, want fallback to %q", s.Period, PeriodMonth)
	}
	if s.TransactionCount != 1 {
		t.Errorf("TransactionCount = %d, want 1 (month window only)", s.TransactionCount)
	}
}

func TestSummarize_ModelBreakdownTopTen(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// 12 named models with descending weight plus one model-less row heavy
	// enough to rank.
	var txs []*ledger.Transaction
	for i := 0; i < 12; i++ {
		txs = append(txs, &ledger.Transaction{
			UserID:    "u1",
			TokenType: ledger.TokenTypeCompletion,
			RawAmount: int64(-(120 - 10*i)),
			Model:     fmt.Sprintf("model-%02d", i),
			CreatedAt: now.Add(-time.Duration(i+1) * time.Minute),
		})
	}
	txs = append(txs, &ledger.Transaction{
		UserID:    "u1",
		TokenType: ledger.TokenTypeCompletion,
		RawAmount: -500,
		CreatedAt: now.Add(-30 * time.Minute),
	})
	seed(t, store, txs...)

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, now)
	require.NoError(t, err)

	if len(s.ModelBreakdown) != 10 {
		t.Fatalf("ModelBreakdown length = %d, want 10", len(s.ModelBreakdown))
	}
	for i := 1; i < len(s.ModelBreakdown); i++ {
		if s.ModelBreakdown[i].Tokens > s.ModelBreakdown[i-1].Tokens {
			t.Errorf("ModelBreakdown not sorted: entry %d has %d tokens after %d",
				i, s.ModelBreakdown[i].Tokens, s.ModelBreakdown[i-1].Tokens)
		}
	}

	// The model-less bucket leads and keeps a nil id.
	if s.ModelBreakdown[0].ModelID != nil {
		t.Errorf("heaviest bucket ModelID = %v, want nil", *s.ModelBreakdown[0].ModelID)
	}
	if s.ModelBreakdown[0].Tokens != 500 {
		t.Errorf("heaviest bucket tokens = %d, want 500", s.ModelBreakdown[0].Tokens)
	}

	var countSum int64
	for _, m := range s.ModelBreakdown {
		countSum += m.Count
	}
	if countSum > s.TransactionCount {
		t.Errorf("breakdown count sum %d exceeds TransactionCount %d", countSum, s.TransactionCount)
	}
}

func TestSummarize_BreakdownTiesKeepArrivalOrder(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// Equal token weight; alpha arrives first in scan order.
	seed(t, store,
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -50, Model: "alpha", CreatedAt: now.Add(-2 * time.Hour)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -50, Model: "beta", CreatedAt: now.Add(-1 * time.Hour)},
	)

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, now)
	require.NoError(t, err)
	require.Len(t, s.ModelBreakdown, 2)

	if got := *s.ModelBreakdown[0].ModelID; got != "alpha" {
		t.Errorf("first tied entry = %q, want alpha (arrival order)", got)
	}
	if got := *s.ModelBreakdown[1].ModelID; got != "beta" {
		t.Errorf("second tied entry = %q, want beta", got)
	}
}

func TestSummarize_DailySeries(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// Out-of-order days, plus a UTC midnight boundary pair.
	seed(t, store,
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -30, TokenValue: -3, CreatedAt: time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypePrompt, RawAmount: -10, TokenValue: -1, CreatedAt: time.Date(2025, 6, 12, 23, 30, 0, 0, time.UTC)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypePrompt, RawAmount: -20, TokenValue: -2, CreatedAt: time.Date(2025, 6, 13, 0, 30, 0, 0, time.UTC)},
		&ledger.Transaction{UserID: "u1", TokenType: ledger.TokenTypeCompletion, RawAmount: -40, TokenValue: -4, CreatedAt: time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)},
	)

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, now)
	require.NoError(t, err)
	require.Len(t, s.DailyUsage, 3)

	wantDates := []string{"2025-06-12", "2025-06-13", "2025-06-14"}
	wantTokens := []int64{10, 20, 70}
	wantCost := []float64{1, 2, 7}
	for i, d := range s.DailyUsage {
		if d.Date != wantDates[i] {
			t.Errorf("DailyUsage[%d].Date = %q, want %q", i, d.Date, wantDates[i])
		}
		if d.Tokens != wantTokens[i] {
			t.Errorf("DailyUsage[%d].Tokens = %d, want %d", i, d.Tokens, wantTokens[i])
		}
		if d.Cost != wantCost[i] {
			t.Errorf("DailyUsage[%d].Cost = %v, want %v", i, d.Cost, wantCost[i])
		}
	}

	for i := 1; i < len(s.DailyUsage); i++ {
		if s.DailyUsage[i].Date <= s.DailyUsage[i-1].Date {
			t.Errorf("daily keys not strictly ascending at %d: %q then %q",
				i, s.DailyUsage[i-1].Date, s.DailyUsage[i].Date)
		}
	}
}

func TestSummarize_DailyUsesRawAmountOnly(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	// Structured prompt row with a zero raw amount: the breakdown feeds
	// promptTokens, but the daily series sums raw amounts only.
	seed(t, store, &ledger.Transaction{
		UserID: "u1", TokenType: ledger.TokenTypePrompt,
		RawAmount: 0, InputTokens: 300,
		CreatedAt: now.Add(-1 * time.Hour),
	})

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, now)
	require.NoError(t, err)

	if s.PromptTokens != 300 {
		t.Errorf("PromptTokens = %d, want 300", s.PromptTokens)
	}
	require.Len(t, s.DailyUsage, 1)
	if s.DailyUsage[0].Tokens != 0 {
		t.Errorf("DailyUsage tokens = %d, want 0 (raw amount only)", s.DailyUsage[0].Tokens)
	}
}

func TestSummarize_MatchesBothUserIdentityForms(t *testing.T) {
	agg, store := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	canonical := "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09"
	_, legacy := ledger.UserKeys(canonical)

	seed(t, store,
		&ledger.Transaction{UserID: canonical, TokenType: ledger.TokenTypeCompletion, RawAmount: -10, CreatedAt: now.Add(-1 * time.Hour)},
		&ledger.Transaction{UserID: legacy, TokenType: ledger.TokenTypeCompletion, RawAmount: -20, CreatedAt: now.Add(-2 * time.Hour)},
	)

	for _, id := range []string{canonical, legacy} {
		s, err := agg.Summarize(context.Background(), id, PeriodAll, now)
		require.NoError(t, err)
		if s.TotalTokens != 30 {
			t.Errorf("Summarize(%q) TotalTokens = %d, want 30 (both identity forms)", id, s.TotalTokens)
		}
	}
}

func TestSummarize_EmptyLedger(t *testing.T) {
	agg, _ := newTestAggregator(t)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	s, err := agg.Summarize(context.Background(), "nobody", PeriodWeek, now)
	require.NoError(t, err)

	if s.TotalTokens != 0 || s.TransactionCount != 0 || s.TotalCost != 0 {
		t.Errorf("empty ledger summary not zeroed: %+v", s)
	}
	if s.ModelBreakdown == nil || len(s.ModelBreakdown) != 0 {
		t.Errorf("ModelBreakdown = %v, want empty non-nil slice", s.ModelBreakdown)
	}
	if s.DailyUsage == nil || len(s.DailyUsage) != 0 {
		t.Errorf("DailyUsage = %v, want empty non-nil slice", s.DailyUsage)
	}
}

func TestSummarize_LedgerFailureReturnsNoPartialSummary(t *testing.T) {
	agg, store := newTestAggregator(t)
	require.NoError(t, store.Close())

	s, err := agg.Summarize(context.Background(), "u1", PeriodAll, time.Now())
	require.Error(t, err)
	if s != nil {
		t.Errorf("failed summarize returned partial summary %+v", s)
	}
}
