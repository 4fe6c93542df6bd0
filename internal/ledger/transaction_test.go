// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import "testing"

func TestTokenTypeValid(t *testing.T) {
	tests := []struct {
		tt   TokenType
		want bool
	}{
		{TokenTypePrompt, true},
		{TokenTypeCompletion, true},
		{TokenTypeCredits, true},
		{TokenType(""), false},
		{TokenType("PROMPT"), false},
		{TokenType("refund"), false},
	}

	for _, tt := range tests {
		if got := tt.tt.Valid(); got != tt.want {
			t.Errorf("TokenType(%q).Valid() = %v, want %v", tt.tt, got, tt.want)
		}
	}
}

func TestUserKeys(t *testing.T) {
	tests := []struct {
		name          string
		in            string
		wantCanonical string
		wantLegacy    string
	}{
		{
			name:          "dashed uuid",
			in:            "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09",
			wantCanonical: "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09",
			wantLegacy:    "6f1b0a527c4e4b8e9f3d2a6c8e5b1d09",
		},
		{
			name:          "undashed hex normalizes to the same pair",
			in:            "6f1b0a527c4e4b8e9f3d2a6c8e5b1d09",
			wantCanonical: "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09",
			wantLegacy:    "6f1b0a527c4e4b8e9f3d2a6c8e5b1d09",
		},
		{
			name:          "uppercase input lowercases",
			in:            "6F1B0A52-7C4E-4B8E-9F3D-2A6C8E5B1D09",
			wantCanonical: "6f1b0a52-7c4e-4b8e-9f3d-2a6c8e5b1d09",
			wantLegacy:    "6f1b0a527c4e4b8e9f3d2a6c8e5b1d09",
		},
		{
			name:          "non-uuid identifier passes through",
			in:            "service-account-7",
			wantCanonical: "service-account-7",
			wantLegacy:    "service-account-7",
		},
		{
			name:          "empty passes through",
			in:            "",
			wantCanonical: "",
			wantLegacy:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, legacy := UserKeys(tt.in)
			if canonical != tt.wantCanonical {
				t.Errorf("canonical = %q, want %q", canonical, tt.wantCanonical)
			}
			if legacy != tt.wantLegacy {
				t.Errorf("legacy = %q, want %q", legacy, tt.wantLegacy)
			}
		})
	}
}

func TestTransactionMagnitudes(t *testing.T) {
	tx := &Transaction{
		RawAmount:   -1250,
		InputTokens: -300,
		WriteTokens: 120,
		ReadTokens:  -80,
		TokenValue:  -42.5,
	}

	if got := tx.AbsRawAmount(); got != 1250 {
		t.Errorf("AbsRawAmount() = %d, want 1250", got)
	}
	if got := tx.StructuredTokenSum(); got != 500 {
		t.Errorf("StructuredTokenSum() = %d, want 500", got)
	}
	if got := tx.AbsTokenValue(); got != 42.5 {
		t.Errorf("AbsTokenValue() = %v, want 42.5", got)
	}
}

func TestStructuredTokenSum_MissingFieldsAreZero(t *testing.T) {
	tx := &Transaction{RawAmount: -90}
	if got := tx.StructuredTokenSum(); got != 0 {
		t.Errorf("StructuredTokenSum() = %d, want 0", got)
	}

	tx.InputTokens = 64
	if got := tx.StructuredTokenSum(); got != 64 {
		t.Errorf("StructuredTokenSum() = %d, want 64", got)
	}
}
