// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the message structures shared with the chat core.
//
// Messages arrive as a flat, parent-linked list and are consumed read-only
// by the telemetry displays. The package links them into a tree, provides
// one generic depth-first traversal, and computes cumulative token counts
// with a heuristic fallback for messages whose counts were never recorded.
//
// # Key Types
//
//   - Message: a single chat message with tree links and telemetry flags
//   - Role: sender enumeration (user, assistant, system)
//
// # Usage
//
// Link a stored thread and compute its cumulative token footprint:
//
//	roots := model.BuildTree(rows)
//	thread := model.Flatten(roots)
//	total := model.TokenTotal(thread)
//
// Find the message a live rate estimator should track:
//
//	if latest := model.Latest(roots); latest != nil && latest.Unfinished {
//	    est.Observe(latest.MessageID, len(latest.Text), true)
//	}
package model
