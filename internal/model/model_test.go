// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message structures shared with the chat core.
package model

import (
	"strings"
	"testing"
)

func msg(id, parent string, role Role, text string, tokens int) *Message {
	return &Message{
		MessageID:  id,
		ParentID:   parent,
		Role:       role,
		Text:       text,
		TokenCount: tokens,
	}
}

// =============================================================================
// TREE CONSTRUCTION TESTS
// =============================================================================

func TestBuildTree_LinearThread(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "hi", 1),
		msg("b", "a", RoleAssistant, "hello", 2),
		msg("c", "b", RoleUser, "how are you", 3),
	}

	roots := BuildTree(flat)

	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	if roots[0].MessageID != "a" {
		t.Errorf("root = %s, want a", roots[0].MessageID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].MessageID != "b" {
		t.Fatalf("a's children wrong: %+v", roots[0].Children)
	}
	if len(roots[0].Children[0].Children) != 1 {
		t.Fatalf("b should have one child")
	}
}

func TestBuildTree_BranchedThread(t *testing.T) {
	// Two regenerations branch from the same user message.
	flat := []*Message{
		msg("a", NoParent, RoleUser, "question", 0),
		msg("b1", "a", RoleAssistant, "first answer", 0),
		msg("b2", "a", RoleAssistant, "second answer", 0),
	}

	roots := BuildTree(flat)

	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
	children := roots[0].Children
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}
	// Sibling arrival order is preserved.
	if children[0].MessageID != "b1" || children[1].MessageID != "b2" {
		t.Errorf("sibling order = [%s, %s], want [b1, b2]",
			children[0].MessageID, children[1].MessageID)
	}
}

func TestBuildTree_OrphanPromotedToRoot(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "hi", 0),
		msg("x", "missing-parent", RoleAssistant, "stray", 0),
	}

	roots := BuildTree(flat)

	if len(roots) != 2 {
		t.Fatalf("roots = %d, want 2 (orphan promoted)", len(roots))
	}
}

func TestBuildTree_EmptyParentIsRoot(t *testing.T) {
	flat := []*Message{msg("a", "", RoleUser, "hi", 0)}

	roots := BuildTree(flat)
	if len(roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(roots))
	}
}

func TestBuildTree_RelinksOnRebuild(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "hi", 0),
		msg("b", "a", RoleAssistant, "hello", 0),
	}

	BuildTree(flat)
	roots := BuildTree(flat)

	// Children must not accumulate across rebuilds.
	if len(roots[0].Children) != 1 {
		t.Errorf("children after rebuild = %d, want 1", len(roots[0].Children))
	}
}

// =============================================================================
// TRAVERSAL TESTS
// =============================================================================

func TestFlatten_DepthFirstOrder(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "", 0),
		msg("b", "a", RoleAssistant, "", 0),
		msg("c", "b", RoleUser, "", 0),
		msg("d", "a", RoleAssistant, "", 0), // second branch under a
		msg("e", NoParent, RoleUser, "", 0), // second root
	}

	out := Flatten(BuildTree(flat))

	var order []string
	for _, m := range out {
		order = append(order, m.MessageID)
	}
	got := strings.Join(order, ",")
	want := "a,b,c,d,e"
	if got != want {
		t.Errorf("DFS order = %s, want %s", got, want)
	}
}

func TestWalk_EarlyStop(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "", 0),
		msg("b", "a", RoleAssistant, "", 0),
		msg("c", "b", RoleUser, "", 0),
	}
	roots := BuildTree(flat)

	visited := 0
	Walk(roots, func(m *Message) bool {
		visited++
		return m.MessageID != "b"
	})

	if visited != 2 {
		t.Errorf("visited = %d, want 2 (stop at b)", visited)
	}
}

func TestLatest(t *testing.T) {
	if got := Latest(nil); got != nil {
		t.Errorf("Latest(nil) = %v, want nil", got)
	}

	flat := []*Message{
		msg("a", NoParent, RoleUser, "", 0),
		msg("b", "a", RoleAssistant, "", 0),
		msg("c", "a", RoleAssistant, "", 0),
	}
	latest := Latest(BuildTree(flat))
	if latest == nil || latest.MessageID != "c" {
		t.Errorf("Latest = %v, want c", latest)
	}
}

// =============================================================================
// TOKEN COUNTING TESTS
// =============================================================================

func TestTokenTotal_MixedRecordedAndEstimated(t *testing.T) {
	msgs := []*Message{
		msg("a", NoParent, RoleUser, "irrelevant text", 120), // recorded wins
		msg("b", "a", RoleAssistant, "12345678", 0),          // 8 chars -> 2 tokens
		msg("c", "b", RoleUser, "", 0),                       // empty -> 0
	}

	if got := TokenTotal(msgs); got != 122 {
		t.Errorf("TokenTotal = %d, want 122", got)
	}
}

func TestThreadTokenTotal(t *testing.T) {
	flat := []*Message{
		msg("a", NoParent, RoleUser, "abcd", 0),     // 1 token
		msg("b", "a", RoleAssistant, "abcdefgh", 0), // 2 tokens
	}

	if got := ThreadTokenTotal(BuildTree(flat)); got != 3 {
		t.Errorf("ThreadTokenTotal = %d, want 3", got)
	}
}

func TestMessage_EstimatedTokens(t *testing.T) {
	m := msg("a", NoParent, RoleAssistant, "12345", 0)
	if got := m.EstimatedTokens(); got != 2 {
		t.Errorf("EstimatedTokens = %d, want 2 (ceil 5/4)", got)
	}

	m.TokenCount = 40
	if got := m.EstimatedTokens(); got != 40 {
		t.Errorf("EstimatedTokens = %d, want recorded 40", got)
	}
}

func TestMessage_IsCreatedByUser(t *testing.T) {
	if !msg("a", NoParent, RoleUser, "", 0).IsCreatedByUser() {
		t.Error("user message should report IsCreatedByUser")
	}
	if msg("b", NoParent, RoleAssistant, "", 0).IsCreatedByUser() {
		t.Error("assistant message should not report IsCreatedByUser")
	}
}
