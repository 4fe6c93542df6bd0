// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message structures shared with the chat core.
package model

// =============================================================================
// TREE CONSTRUCTION
// =============================================================================

// BuildTree links a flat message list into a forest using ParentID
// references. Input order is preserved: siblings keep their relative order,
// and roots appear in arrival order. A message whose parent is absent from
// the list is promoted to a root rather than dropped, so a partially loaded
// thread still renders.
//
// The given messages are linked in place; their Children slices are reset
// before linking.
func BuildTree(flat []*Message) []*Message {
	byID := make(map[string]*Message, len(flat))
	for _, m := range flat {
		m.Children = nil
		byID[m.MessageID] = m
	}

	var roots []*Message
	for _, m := range flat {
		if m.ParentID == "" || m.ParentID == NoParent {
			roots = append(roots, m)
			continue
		}
		parent, ok := byID[m.ParentID]
		if !ok || parent == m {
			roots = append(roots, m)
			continue
		}
		parent.Children = append(parent.Children, m)
	}
	return roots
}

// =============================================================================
// TRAVERSAL
// =============================================================================

// Walk visits every message in the forest depth-first, parents before
// children, siblings in order. It stops early when fn returns false.
func Walk(roots []*Message, fn func(*Message) bool) {
	for _, root := range roots {
		if !walkNode(root, fn) {
			return
		}
	}
}

func walkNode(m *Message, fn func(*Message) bool) bool {
	if m == nil {
		return true
	}
	if !fn(m) {
		return false
	}
	for _, child := range m.Children {
		if !walkNode(child, fn) {
			return false
		}
	}
	return true
}

// Flatten returns a linear, order-preserving depth-first traversal of the
// forest.
func Flatten(roots []*Message) []*Message {
	var out []*Message
	Walk(roots, func(m *Message) bool {
		out = append(out, m)
		return true
	})
	return out
}

// Latest returns the last message in depth-first order, the one a live
// telemetry display should track. Returns nil for an empty forest.
func Latest(roots []*Message) *Message {
	var last *Message
	Walk(roots, func(m *Message) bool {
		last = m
		return true
	})
	return last
}

// =============================================================================
// CUMULATIVE TOKEN COUNTING
// =============================================================================

// TokenTotal sums token counts across messages, using each message's
// recorded count when present and the heuristic estimate otherwise.
func TokenTotal(msgs []*Message) int {
	total := 0
	for _, m := range msgs {
		total += m.EstimatedTokens()
	}
	return total
}

// ThreadTokenTotal flattens a forest and sums its token counts.
func ThreadTokenTotal(roots []*Message) int {
	total := 0
	Walk(roots, func(m *Message) bool {
		total += m.EstimatedTokens()
		return true
	})
	return total
}
