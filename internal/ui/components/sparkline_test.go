// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// SPARKLINE TESTS
// =============================================================================

func TestSparklineEmpty(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSparkline(theme)

	view := s.View()
	if !strings.Contains(view, "DAILY TOKENS") {
		t.Error("View() should carry the chart title")
	}
	if !strings.Contains(view, "No daily usage recorded") {
		t.Errorf("View() with no data = %q, want placeholder", view)
	}
}

func TestSparklineView(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSparkline(theme)
	s.SetSize(80, 6)
	s.SetDaily([]usage.DailyUsage{
		{Date: "2025-06-01", Tokens: 1200},
		{Date: "2025-06-02", Tokens: 3400},
		{Date: "2025-06-03", Tokens: 800},
	})

	view := s.View()
	if !strings.Contains(view, "DAILY TOKENS") {
		t.Error("View() should carry the chart title")
	}
	if !strings.Contains(view, "2025-06-01 .. 2025-06-03") {
		t.Errorf("View() = %q, want date-range caption", view)
	}
	if len(strings.Split(view, "\n")) < 4 {
		t.Error("View() should render a multi-line chart")
	}
}

func TestSparklineSingleDay(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSparkline(theme)
	s.SetDaily([]usage.DailyUsage{
		{Date: "2025-06-01", Tokens: 500},
	})

	view := s.View()
	if !strings.Contains(view, "2025-06-01") {
		t.Error("View() single-day caption should be the bare date")
	}
	if strings.Contains(view, "..") {
		t.Error("View() single-day caption should not render a range")
	}
}

func TestSparklineConstantSeries(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSparkline(theme)
	s.SetDaily([]usage.DailyUsage{
		{Date: "2025-06-01", Tokens: 100},
		{Date: "2025-06-02", Tokens: 100},
		{Date: "2025-06-03", Tokens: 100},
	})

	view := s.View()
	if view == "" {
		t.Error("View() should render a flat series")
	}
}

func TestSparklineTightWidth(t *testing.T) {
	theme := styles.NewTheme()
	s := NewSparkline(theme)
	s.SetSize(15, 4)
	s.SetDaily([]usage.DailyUsage{
		{Date: "2025-06-01", Tokens: 10},
		{Date: "2025-06-02", Tokens: 20},
	})

	view := s.View()
	if view == "" {
		t.Error("View() should render at tight widths")
	}
}
