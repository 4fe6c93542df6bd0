// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package usage turns the raw transaction ledger into per-user summary
// reports.
package usage

import (
	"context"
	"sort"
	"time"

	"github.com/OmarMoust/LibreChat/internal/ledger"
)

// maxModelBreakdown caps the per-model breakdown at the heaviest consumers.
const maxModelBreakdown = 10

// dateKeyFormat is the daily grouping key layout, applied in UTC.
const dateKeyFormat = "2006-01-02"

// =============================================================================
// REPORT SHAPE
// =============================================================================

// UsageSummary is the derived usage report for one user and period. It is
// recomputed per request and never cached.
type UsageSummary struct {
	TotalTokens      int64        `json:"totalTokens"`
	TotalCost        float64      `json:"totalCost"`
	PromptTokens     int64        `json:"promptTokens"`
	CompletionTokens int64        `json:"completionTokens"`
	TransactionCount int64        `json:"transactionCount"`
	Period           Period       `json:"period"`
	ModelBreakdown   []ModelUsage `json:"modelBreakdown"`
	DailyUsage       []DailyUsage `json:"dailyUsage"`
}

// ModelUsage is one model's share of the summary window. ModelID is nil for
// the bucket of rows recorded without a model; that bucket is kept as its
// own group, never folded into a named model.
type ModelUsage struct {
	ModelID *string `json:"modelId"`
	Tokens  int64   `json:"tokens"`
	Cost    float64 `json:"cost"`
	Count   int64   `json:"count"`
}

// DailyUsage is one UTC calendar day's totals.
type DailyUsage struct {
	Date   string  `json:"date"`
	Tokens int64   `json:"tokens"`
	Cost   float64 `json:"cost"`
}

// =============================================================================
// PROMPT ACCOUNTING
// =============================================================================

// PromptTokens returns the token magnitude of a prompt transaction using
// tiered accounting: the structured input/write/read sum when that sum is
// positive, otherwise the absolute raw amount. The tier choice is made per
// record, so a ledger mixing rows written before and after structured
// accounting existed still sums correctly.
func PromptTokens(tx *ledger.Transaction) int64 {
	if structured := tx.StructuredTokenSum(); structured > 0 {
		return structured
	}
	return tx.AbsRawAmount()
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator computes usage summaries over a transaction ledger.
type Aggregator struct {
	store *ledger.Store
}

// NewAggregator creates an aggregator reading from store.
func NewAggregator(store *ledger.Store) *Aggregator {
	return &Aggregator{store: store}
}

// Summarize computes the usage report for one user over the given period,
// resolved against now. Unknown periods report as month. A ledger failure
// aborts the whole computation; no partial summary is returned.
func (a *Aggregator) Summarize(ctx context.Context, userID string, period Period, now time.Time) (*UsageSummary, error) {
	p := ParsePeriod(string(period))

	f := ledger.Filter{UserID: userID}
	if start, bounded := p.Window(now); bounded {
		f.StartDate = start
	}

	summary := &UsageSummary{
		Period:         p,
		ModelBreakdown: []ModelUsage{},
		DailyUsage:     []DailyUsage{},
	}

	// Model groups keep their first-seen order so the descending sort
	// below breaks token ties by arrival.
	models := make(map[string]*ModelUsage)
	var modelOrder []string
	days := make(map[string]*DailyUsage)

	err := a.store.Scan(ctx, f, func(tx *ledger.Transaction) error {
		summary.TransactionCount++
		summary.TotalCost += tx.AbsTokenValue()

		var tokens int64
		switch tx.TokenType {
		case ledger.TokenTypePrompt:
			tokens = PromptTokens(tx)
			summary.PromptTokens += tokens
		case ledger.TokenTypeCompletion:
			tokens = tx.AbsRawAmount()
			summary.CompletionTokens += tokens
		}

		group, ok := models[tx.Model]
		if !ok {
			group = &ModelUsage{}
			if tx.Model != "" {
				id := tx.Model
				group.ModelID = &id
			}
			models[tx.Model] = group
			modelOrder = append(modelOrder, tx.Model)
		}
		group.Tokens += tokens
		group.Cost += tx.AbsTokenValue()
		group.Count++

		dateKey := tx.CreatedAt.UTC().Format(dateKeyFormat)
		day, ok := days[dateKey]
		if !ok {
			day = &DailyUsage{Date: dateKey}
			days[dateKey] = day
		}
		day.Tokens += tx.AbsRawAmount()
		day.Cost += tx.AbsTokenValue()

		return nil
	})
	if err != nil {
		return nil, err
	}

	summary.TotalTokens = summary.PromptTokens + summary.CompletionTokens

	breakdown := make([]ModelUsage, 0, len(modelOrder))
	for _, key := range modelOrder {
		breakdown = append(breakdown, *models[key])
	}
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Tokens > breakdown[j].Tokens
	})
	if len(breakdown) > maxModelBreakdown {
		breakdown = breakdown[:maxModelBreakdown]
	}
	summary.ModelBreakdown = breakdown

	dates := make([]string, 0, len(days))
	for key := range days {
		dates = append(dates, key)
	}
	sort.Strings(dates)
	for _, key := range dates {
		summary.DailyUsage = append(summary.DailyUsage, *days[key])
	}

	return summary, nil
}
