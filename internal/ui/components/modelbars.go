// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// MODEL BARS - Per-model share of the summary window
// =============================================================================

// NoModelLabel is shown for the bucket of transactions recorded without a
// model.
const NoModelLabel = "(no model)"

const (
	// maxLabelWidth caps how much room model names may take.
	maxLabelWidth = 24
	// minBarWidth keeps bars readable on tight terminals.
	minBarWidth = 10
	// valueReserve is the room kept for the trailing "1,234,567 tok (45.6%)".
	valueReserve = 26
)

// ModelBars renders one horizontal bar per model, scaled to each model's
// share of the window's total tokens.
type ModelBars struct {
	theme       *styles.Theme
	breakdown   []usage.ModelUsage
	totalTokens int64
	width       int
}

// NewModelBars creates an empty model bar chart.
func NewModelBars(theme *styles.Theme) *ModelBars {
	return &ModelBars{
		theme: theme,
		width: 80,
	}
}

// SetBreakdown replaces the displayed breakdown. totalTokens is the
// summary's overall token count used to scale the bars.
func (m *ModelBars) SetBreakdown(breakdown []usage.ModelUsage, totalTokens int64) {
	m.breakdown = breakdown
	m.totalTokens = totalTokens
}

// SetWidth updates the available width.
func (m *ModelBars) SetWidth(width int) {
	m.width = width
}

// View renders one line per model: padded label, share bar, token count
// and percentage.
func (m *ModelBars) View() string {
	if len(m.breakdown) == 0 {
		return m.theme.BarValue.Render("No model usage recorded")
	}

	labelWidth := m.labelWidth()

	barWidth := m.width - labelWidth - valueReserve
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	var b strings.Builder
	for i := range m.breakdown {
		mu := &m.breakdown[i]
		if i > 0 {
			b.WriteString("\n")
		}

		label := NoModelLabel
		if mu.ModelID != nil {
			label = *mu.ModelID
		}
		label = util.TruncateWidth(label, labelWidth)

		percent := 0.0
		if m.totalTokens > 0 {
			percent = float64(mu.Tokens) / float64(m.totalTokens) * 100
		}

		b.WriteString(m.theme.BarLabel.Render(util.PadRight(label, labelWidth)))
		b.WriteString(" ")
		b.WriteString(m.renderBar(barWidth, percent))
		b.WriteString(" ")
		b.WriteString(m.theme.BarValue.Render(
			fmtNumber(int(mu.Tokens)) + " tok (" + fmtPercent(percent) + ")"))
	}

	return b.String()
}

// labelWidth returns the widest label in the breakdown, capped at
// maxLabelWidth.
func (m *ModelBars) labelWidth() int {
	w := 0
	for i := range m.breakdown {
		label := NoModelLabel
		if m.breakdown[i].ModelID != nil {
			label = *m.breakdown[i].ModelID
		}
		if lw := util.StringWidth(label); lw > w {
			w = lw
		}
	}
	if w > maxLabelWidth {
		w = maxLabelWidth
	}
	return w
}

// renderBar renders a share bar with separately styled filled and empty
// spans.
func (m *ModelBars) renderBar(width int, percent float64) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(float64(width)*percent/100 + 0.5)
	if filled > width {
		filled = width
	}

	return m.theme.BarFilled.Render(strings.Repeat(styles.ProgressFull, filled)) +
		m.theme.BarEmpty.Render(strings.Repeat(styles.ProgressEmpty, width-filled))
}
