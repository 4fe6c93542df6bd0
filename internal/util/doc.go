// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the telemetry subsystem.
//
// This package contains file and string utilities used by the preference
// store, the configuration layer, and the terminal views.
//
// # Key Functions
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// String Utilities:
//   - TruncateWidth: display-width-aware truncation with ellipsis
//   - PadRight, PadLeft: display-width-aware column padding
//   - FormatCount: compact token-count formatting (12.3K, 1.2M)
//
// # Usage
//
//	// Persist a preferences file without risking partial writes
//	err := util.AtomicWriteFile(path, data, 0600)
//
//	// Fit a model name into a table column
//	cell := util.PadRight(util.TruncateWidth(model, 24), 24)
package util
