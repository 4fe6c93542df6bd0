// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// SPARKLINE - Daily token series chart
// =============================================================================

const (
	// axisReserve is the room asciigraph takes for Y-axis labels.
	axisReserve = 10
	// minPlotWidth keeps the chart legible on tight terminals.
	minPlotWidth = 20
	// defaultPlotHeight is the chart height in rows.
	defaultPlotHeight = 6
)

// Sparkline charts the daily token series of the active summary window.
type Sparkline struct {
	theme  *styles.Theme
	daily  []usage.DailyUsage
	width  int
	height int
}

// NewSparkline creates an empty sparkline.
func NewSparkline(theme *styles.Theme) *Sparkline {
	return &Sparkline{
		theme:  theme,
		width:  80,
		height: defaultPlotHeight,
	}
}

// SetDaily replaces the charted series.
func (s *Sparkline) SetDaily(daily []usage.DailyUsage) {
	s.daily = daily
}

// SetSize updates the chart dimensions.
func (s *Sparkline) SetSize(width, height int) {
	s.width = width
	if height > 0 {
		s.height = height
	}
}

// View renders the titled chart, or a muted placeholder when the window
// holds no days.
func (s *Sparkline) View() string {
	title := s.theme.SparklineTitle.Render("DAILY TOKENS")

	if len(s.daily) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			s.theme.SparklineAxis.Render("No daily usage recorded"))
	}

	values := make([]float64, len(s.daily))
	for i, d := range s.daily {
		values[i] = float64(d.Tokens)
	}

	plotWidth := s.width - axisReserve
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}

	height := s.height
	if height < 3 {
		height = 3
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(s.dateRange()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		s.theme.Sparkline.Render(graph))
}

// dateRange captions the chart with the window's first and last day.
func (s *Sparkline) dateRange() string {
	first := s.daily[0].Date
	last := s.daily[len(s.daily)-1].Date
	if first == last {
		return first
	}
	return first + " .. " + last
}
