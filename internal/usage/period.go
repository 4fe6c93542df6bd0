// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package usage turns the raw transaction ledger into per-user summary
// reports.
package usage

import "time"

// Period names a relative reporting window resolved against wall-clock
// time at request time. It is never persisted.
type Period string

const (
	// PeriodDay covers the trailing 24 hours.
	PeriodDay Period = "day"
	// PeriodWeek covers the trailing 7 days.
	PeriodWeek Period = "week"
	// PeriodMonth covers the trailing 30 days.
	PeriodMonth Period = "month"
	// PeriodAll places no lower bound on the window.
	PeriodAll Period = "all"
)

// ParsePeriod maps a raw period name to a known Period. Unrecognized values
// fall back to PeriodMonth rather than erroring, favoring availability over
// strictness.
func ParsePeriod(raw string) Period {
	switch Period(raw) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return Period(raw)
	default:
		return PeriodMonth
	}
}

// Valid reports whether the period is one of the known names.
func (p Period) Valid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodAll:
		return true
	default:
		return false
	}
}

// String returns the period name.
func (p Period) String() string {
	return string(p)
}

// Window resolves the period to the start of its half-open window
// [start, now). PeriodAll is unbounded and returns bounded=false; unknown
// periods resolve like PeriodMonth.
func (p Period) Window(now time.Time) (start time.Time, bounded bool) {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodAll:
		return time.Time{}, false
	default:
		return now.AddDate(0, 0, -30), true
	}
}
