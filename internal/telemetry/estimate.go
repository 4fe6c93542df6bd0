// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry estimates live token throughput during generation.
package telemetry

// CharsPerToken is the heuristic ratio of characters to tokens. Roughly
// four characters of English text map to one model token. This is an
// approximation for display purposes, not a tokenizer.
const CharsPerToken = 4

// EstimateTokens approximates the token count for text of the given length
// in characters, rounding up. Non-positive lengths estimate to 0.
func EstimateTokens(charCount int) int {
	if charCount <= 0 {
		return 0
	}
	return (charCount + CharsPerToken - 1) / CharsPerToken
}
