// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderDashboard renders the complete dashboard.
// Layout: header + tab bar + [error banner] + content + status bar. The
// content area is pre-sized in handleResize with conservative constants;
// actual heights are measured here and the content is clamped on mismatch.
func (m Model) renderDashboard() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelpOverlay()
	}

	header := m.header.View()
	tabBar := m.renderTabBar()
	status := m.statusBar.View()

	var errBanner string
	if m.lastErr != nil && m.loadedOnce {
		errBanner = m.renderErrorBanner()
	}

	availableHeight := m.height -
		lipgloss.Height(header) -
		lipgloss.Height(tabBar) -
		lipgloss.Height(status)
	if errBanner != "" {
		availableHeight -= lipgloss.Height(errBanner)
	}
	if availableHeight < 1 {
		availableHeight = 1
	}

	content := m.renderContent(availableHeight)

	if lipgloss.Height(content) != availableHeight {
		content = lipgloss.NewStyle().
			Height(availableHeight).
			MaxHeight(availableHeight).
			Width(m.width).
			Render(content)
	}

	if errBanner != "" {
		return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, errBanner, content, status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, tabBar, content, status)
}

// =============================================================================
// TAB BAR
// =============================================================================

// renderTabBar renders the tab labels with the rate badge right-aligned
// on the same row.
func (m Model) renderTabBar() string {
	var tabs []string
	for _, tab := range []Tab{TabSummary, TabTransactions} {
		if tab == m.activeTab {
			tabs = append(tabs, m.theme.TabActive.Render(tab.String()))
		} else {
			tabs = append(tabs, m.theme.Tab.Render(tab.String()))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	row := left
	if badge := m.rateBadge.View(); badge != "" {
		spacing := m.width - lipgloss.Width(left) - lipgloss.Width(badge) - 1
		if spacing < 1 {
			spacing = 1
		}
		row = left + strings.Repeat(" ", spacing) + badge
	}

	return m.theme.TabBar.Width(m.width).Render(row)
}

// =============================================================================
// CONTENT
// =============================================================================

func (m Model) renderContent(height int) string {
	switch m.activeTab {
	case TabTransactions:
		return m.renderTransactions(height)
	default:
		return m.renderSummary(height)
	}
}

func (m Model) renderSummary(height int) string {
	if m.summaryData == nil {
		if m.loadingSummary {
			return m.renderLoading(height)
		}
		if m.lastErr != nil {
			return m.renderErrorState(height)
		}
	}
	return m.viewport.View()
}

func (m Model) renderTransactions(height int) string {
	if m.transactions == nil {
		if m.loadingTx {
			return m.renderLoading(height)
		}
		if m.lastErr != nil {
			return m.renderErrorState(height)
		}
	}
	if len(m.transactions) == 0 {
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
			m.theme.LoadingText.Render("No transactions recorded"))
	}
	return m.txTable.View() + "\n" + m.renderPageLine()
}

// summaryContent builds the scrollable summary tab content: totals cards,
// per-model share bars, and the daily sparkline.
func (m Model) summaryContent() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.summary.View(),
		"",
		m.theme.SparklineTitle.Render("MODEL USAGE"),
		m.modelBars.View(),
		"",
		m.sparkline.View(),
	)
}

// renderPageLine renders the pagination indicator under the table.
func (m Model) renderPageLine() string {
	pages := int((m.txTotal + int64(m.txLimit) - 1) / int64(m.txLimit))
	if pages < 1 {
		pages = 1
	}
	current := m.txOffset/m.txLimit + 1

	left := m.theme.ShortcutDesc.Render(
		fmt.Sprintf("page %d/%d of %d transactions", current, pages, m.txTotal))
	hint := m.theme.ShortcutKey.Render("h/l") + m.theme.ShortcutDesc.Render(" page")

	spacing := m.width - lipgloss.Width(left) - lipgloss.Width(hint) - 2
	if spacing < 1 {
		spacing = 1
	}
	return " " + left + strings.Repeat(" ", spacing) + hint
}

// =============================================================================
// LOADING AND ERROR STATES
// =============================================================================

func (m Model) renderLoading(height int) string {
	line := m.spinner.View() + " " + m.theme.LoadingText.Render("Loading usage data...")
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, line)
}

// renderErrorState renders the full-area error box shown when the first
// load fails and there is no data to fall back to.
func (m Model) renderErrorState(height int) string {
	body := m.theme.ErrorTitle.Render("Cannot load usage data") + "\n\n" +
		m.theme.ErrorMessage.Render(m.lastErr.Error()) + "\n\n" +
		m.theme.ShortcutKey.Render("r") + m.theme.ShortcutDesc.Render(" retry") + "  " +
		m.theme.ShortcutKey.Render("q") + m.theme.ShortcutDesc.Render(" quit")
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center,
		m.theme.ErrorBox.Render(body))
}

// renderErrorBanner renders the slim refresh-failure line shown above the
// content when stale data is still on screen.
func (m Model) renderErrorBanner() string {
	line := m.theme.ErrorTitle.Render("refresh failed: ") +
		m.theme.ErrorMessage.Render(m.lastErr.Error())
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(line)
}

// =============================================================================
// HELP OVERLAY
// =============================================================================

// renderHelpOverlay renders the centered keyboard shortcut reference.
func (m Model) renderHelpOverlay() string {
	var b strings.Builder
	b.WriteString(m.theme.CardTitle.Render("KEYBOARD SHORTCUTS"))
	b.WriteString("\n")

	for _, group := range m.keyMap.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(m.theme.ShortcutKey.Render(util.PadRight(h.Key, 10)))
			b.WriteString(" ")
			b.WriteString(m.theme.ShortcutDesc.Render(h.Desc))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.theme.ShortcutDesc.Render("press ? to close"))

	box := m.theme.Card.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
