// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the telemetry subsystem.
package util

import (
	"strconv"
)

// FormatCount renders a token count compactly for badges and bars:
// 999 -> "999", 12345 -> "12.3K", 4567890 -> "4.6M".
func FormatCount(n int64) string {
	neg := n < 0
	if neg {
		n = -n
	}
	var s string
	switch {
	case n >= 1_000_000:
		s = strconv.FormatFloat(float64(n)/1_000_000, 'f', 1, 64) + "M"
	case n >= 1_000:
		s = strconv.FormatFloat(float64(n)/1_000, 'f', 1, 64) + "K"
	default:
		s = strconv.FormatInt(n, 10)
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatDurationSecs renders a duration given in seconds as "850ms" below
// one second and "2.5s" at or above it.
func FormatDurationSecs(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 1 {
		return strconv.Itoa(int(seconds*1000)) + "ms"
	}
	return strconv.FormatFloat(seconds, 'f', 1, 64) + "s"
}
