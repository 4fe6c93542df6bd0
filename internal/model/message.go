// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message structures shared with the chat core.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/OmarMoust/LibreChat/internal/telemetry"
	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// NoParent marks a root message in flat parent-linked storage.
const NoParent = "00000000-0000-0000-0000-000000000000"

// Message is a single message in a conversation thread. The chat core owns
// creation and mutation; telemetry consumes messages read-only.
type Message struct {
	// Identity and tree links
	MessageID      string `json:"messageId"`
	ParentID       string `json:"parentMessageId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`

	// Content
	Role Role   `json:"role"`
	Text string `json:"text"`

	// Model that produced an assistant message, when known.
	Model string `json:"model,omitempty"`

	// TokenCount is the recorded token count from the ledger write path.
	// Zero means it was never recorded; consumers fall back to estimation.
	TokenCount int `json:"tokenCount,omitempty"`

	// Unfinished is true while generation is actively producing output
	// for this message.
	Unfinished bool `json:"unfinished,omitempty"`

	// Error marks a generation that ended abnormally.
	Error bool `json:"error,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// Children are populated by BuildTree, in sibling arrival order.
	Children []*Message `json:"children,omitempty"`
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, text string) *Message {
	return &Message{
		MessageID: uuid.NewString(),
		ParentID:  NoParent,
		Role:      role,
		Text:      text,
		CreatedAt: time.Now(),
	}
}

// IsCreatedByUser reports whether the message came from the human side of
// the conversation.
func (m *Message) IsCreatedByUser() bool {
	return m.Role == RoleUser
}

// EstimatedTokens returns the recorded token count when present, otherwise
// a heuristic estimate from the text length.
func (m *Message) EstimatedTokens() int {
	if m.TokenCount > 0 {
		return m.TokenCount
	}
	return telemetry.EstimateTokens(len(m.Text))
}

// Preview returns a truncated single-line preview of the message text.
func (m *Message) Preview(maxRunes int) string {
	return util.TruncateRunes(m.Text, maxRunes)
}
