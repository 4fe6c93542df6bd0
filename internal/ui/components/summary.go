// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/usage"
)

// =============================================================================
// SUMMARY PANEL - Aggregate usage cards
// =============================================================================

// SummaryPanel displays the aggregate figures of a usage summary as a row
// of cards: total, prompt, and completion tokens, spend, and transaction
// count.
type SummaryPanel struct {
	theme   *styles.Theme
	summary *usage.UsageSummary
	width   int
}

// NewSummaryPanel creates an empty summary panel.
func NewSummaryPanel(theme *styles.Theme) *SummaryPanel {
	return &SummaryPanel{
		theme: theme,
		width: 80,
	}
}

// SetSummary replaces the displayed summary. Pass nil to show the loading
// state.
func (p *SummaryPanel) SetSummary(summary *usage.UsageSummary) {
	p.summary = summary
}

// SetWidth updates the available width.
func (p *SummaryPanel) SetWidth(width int) {
	p.width = width
}

// View renders the panel for the current width.
func (p *SummaryPanel) View() string {
	if p.summary == nil {
		return p.theme.LoadingText.Render("Loading usage summary...")
	}

	if p.width < 60 {
		return p.viewNarrow()
	}
	return p.viewCards()
}

// viewNarrow renders plain label/value lines for tight terminals.
func (p *SummaryPanel) viewNarrow() string {
	s := p.summary

	var b strings.Builder
	b.WriteString(p.renderLine("Total tokens", fmtNumber(int(s.TotalTokens))))
	b.WriteString("\n")
	b.WriteString(p.renderLine("Prompt", fmtNumber(int(s.PromptTokens))))
	b.WriteString("\n")
	b.WriteString(p.renderLine("Completion", fmtNumber(int(s.CompletionTokens))))
	b.WriteString("\n")
	b.WriteString(p.renderLine("Spend", fmtCost(s.TotalCost)))
	b.WriteString("\n")
	b.WriteString(p.renderLine("Transactions", fmtNumber(int(s.TransactionCount))))
	return b.String()
}

// viewCards renders bordered cards, one row when they fit and two rows
// otherwise.
func (p *SummaryPanel) viewCards() string {
	s := p.summary

	cards := []string{
		p.renderCard("TOTAL", fmtNumber(int(s.TotalTokens)), "tok"),
		p.renderCard("PROMPT", fmtNumber(int(s.PromptTokens)), "tok"),
		p.renderCard("COMPLETION", fmtNumber(int(s.CompletionTokens)), "tok"),
		p.renderCard("SPEND", fmtCost(s.TotalCost), "credits"),
		p.renderCard("COUNT", fmtNumber(int(s.TransactionCount)), ""),
	}

	if p.width < 100 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// renderCard renders a single bordered card.
func (p *SummaryPanel) renderCard(title, value, unit string) string {
	valueLine := p.theme.CardValue.Render(value)
	if unit != "" {
		valueLine += " " + p.theme.CardUnit.Render(unit)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		p.theme.CardTitle.Render(title),
		valueLine)

	return p.theme.Card.Render(content)
}

// renderLine renders one "label: value" line for the narrow layout.
func (p *SummaryPanel) renderLine(label, value string) string {
	return p.theme.CardTitle.Render(label+": ") + p.theme.CardValue.Render(value)
}
