// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TOKEN TYPE
// =============================================================================

// TokenType classifies what a transaction accounts for.
type TokenType string

const (
	// TokenTypePrompt records tokens sent to the model. Newer writers fill
	// the structured input/write/read breakdown; older rows carry only the
	// raw amount.
	TokenTypePrompt TokenType = "prompt"
	// TokenTypeCompletion records tokens generated by the model.
	TokenTypeCompletion TokenType = "completion"
	// TokenTypeCredits records balance adjustments (grants, refills).
	TokenTypeCredits TokenType = "credits"
)

// Valid reports whether the token type is one of the known classifications.
func (t TokenType) Valid() bool {
	switch t {
	case TokenTypePrompt, TokenTypeCompletion, TokenTypeCredits:
		return true
	default:
		return false
	}
}

// String returns the string representation of the token type.
func (t TokenType) String() string {
	return string(t)
}

// =============================================================================
// TRANSACTION
// =============================================================================

// Transaction is one immutable usage record. Usage rows store RawAmount
// negative (tokens consumed); the sign carries no reporting meaning beyond
// requiring an absolute value before summation.
type Transaction struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	ConversationID string    `json:"conversationId,omitempty"`
	TokenType      TokenType `json:"tokenType"`

	RawAmount int64 `json:"rawAmount"`

	// Structured prompt breakdown; additive, meaningful only for
	// TokenTypePrompt rows written after structured accounting existed.
	InputTokens int64 `json:"inputTokens,omitempty"`
	WriteTokens int64 `json:"writeTokens,omitempty"`
	ReadTokens  int64 `json:"readTokens,omitempty"`

	// TokenValue is the internal credit cost of the transaction. It is not
	// a currency amount.
	TokenValue float64 `json:"tokenValue,omitempty"`
	Rate       float64 `json:"rate,omitempty"`

	Model   string `json:"model,omitempty"`
	Context string `json:"context,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AbsRawAmount returns the magnitude of the raw token amount.
func (t *Transaction) AbsRawAmount() int64 {
	if t.RawAmount < 0 {
		return -t.RawAmount
	}
	return t.RawAmount
}

// StructuredTokenSum returns the structured prompt breakdown total, taking
// each term's magnitude and treating missing fields as zero.
func (t *Transaction) StructuredTokenSum() int64 {
	return absInt64(t.InputTokens) + absInt64(t.WriteTokens) + absInt64(t.ReadTokens)
}

// AbsTokenValue returns the magnitude of the internal credit cost.
func (t *Transaction) AbsTokenValue() float64 {
	if t.TokenValue < 0 {
		return -t.TokenValue
	}
	return t.TokenValue
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// =============================================================================
// USER IDENTITY
// =============================================================================

// UserKeys returns the representations under which a user's rows may be
// stored: the canonical dashed UUID string and the legacy undashed hex of
// the same bytes, as written by older ledger writers. Identifiers that are
// not UUIDs come back unchanged in both positions.
func UserKeys(userID string) (canonical, legacy string) {
	u, err := uuid.Parse(userID)
	if err != nil {
		return userID, userID
	}
	return u.String(), hex.EncodeToString(u[:])
}
