// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package usage turns the raw transaction ledger into per-user summary
// reports: period-bounded token totals, a per-model breakdown, and a daily
// time series.
//
// Summaries are recomputed from scratch on every call. There is no cache to
// invalidate; the ledger is append-only from this subsystem's viewpoint, so
// concurrent Summarize calls for different users or periods are safe.
//
// Token accounting is tiered. Prompt rows written after structured
// accounting existed carry an input/write/read breakdown; older rows carry
// only a signed raw amount. PromptTokens picks between the two per record,
// never globally, so mixed-era ledgers aggregate correctly.
//
// Day boundaries for the daily series are computed in UTC.
package usage
