// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom bar with refresh state and shortcuts
// =============================================================================

// Status represents the dashboard's data-loading state
type Status int

const (
	StatusReady Status = iota
	StatusLoading
	StatusRefreshing
	StatusWatching
	StatusError
)

// String returns the display string for the status
func (s Status) String() string {
	switch s {
	case StatusReady:
		return "Ready"
	case StatusLoading:
		return "Loading..."
	case StatusRefreshing:
		return "Refreshing..."
	case StatusWatching:
		return "Watching"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns an icon for the status
// ACCESSIBILITY: Uses distinct shapes alongside colors for colorblind users
func (s Status) Icon() string {
	switch s {
	case StatusReady:
		return styles.StatusIndicators.Success
	case StatusLoading, StatusRefreshing:
		return styles.StatusIndicators.Pending
	case StatusWatching:
		return styles.StatusIndicators.Active
	case StatusError:
		return styles.StatusIndicators.Error
	default:
		return "?"
	}
}

// StatusBar represents the bottom status bar
type StatusBar struct {
	Status        Status    // Current data-loading state
	TxCount       int       // Transactions loaded in the table
	TotalTokens   int       // Token total of the active window
	LastRefresh   time.Time // When data was last fetched
	Width         int       // Available width
	ShowShortcuts bool      // Show keyboard shortcuts
	theme         *styles.Theme
}

// NewStatusBar creates a new StatusBar component
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Status:        StatusLoading,
		Width:         80,
		ShowShortcuts: true,
		theme:         theme,
	}
}

// SetWidth updates the status bar width
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetStatus updates the current status
func (s *StatusBar) SetStatus(status Status) {
	s.Status = status
}

// SetCounts updates the transaction and token figures
func (s *StatusBar) SetCounts(txCount, totalTokens int) {
	s.TxCount = txCount
	s.TotalTokens = totalTokens
}

// SetLastRefresh records when data was last fetched
func (s *StatusBar) SetLastRefresh(at time.Time) {
	s.LastRefresh = at
}

// View renders the status bar
func (s *StatusBar) View() string {
	// Choose layout based on width
	if s.Width < 60 {
		return s.viewNarrow()
	}
	if s.Width < 100 {
		return s.viewMedium()
	}
	return s.viewWide()
}

// viewNarrow renders a compact status bar for narrow terminals
// Format: [OK] 42tx 1.2M
func (s *StatusBar) viewNarrow() string {
	statusStyle := s.getStatusStyle()

	parts := []string{
		statusStyle.Render(s.Status.Icon()),
		lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(toStr(s.TxCount) + "tx"),
		lipgloss.NewStyle().Foreground(styles.TextMuted).Render(fmtNumber(s.TotalTokens)),
	}

	result := strings.Join(parts, " ")

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Width(s.Width).
		Render(result)
}

// viewMedium renders a medium-width status bar
// Format: Ready | 42 tx | 1,234,567 tok | shortcuts
func (s *StatusBar) viewMedium() string {
	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	parts := []string{}

	statusStyle := s.getStatusStyle()
	parts = append(parts, statusStyle.Render(s.Status.String()))

	countStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	parts = append(parts, countStyle.Render(fmtNumber(s.TxCount)+" tx"))

	tokenStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	parts = append(parts, tokenStyle.Render(fmtNumber(s.TotalTokens)+" tok"))

	if s.ShowShortcuts {
		parts = append(parts, s.renderShortcutsCompact())
	}

	result := strings.Join(parts, separator)

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// viewWide renders a full-featured status bar for wide terminals
// Format: [OK] Ready | 42 tx | 1,234,567 tok | 14:30:05        shortcuts
func (s *StatusBar) viewWide() string {
	// Left section: status and figures
	leftParts := []string{}

	statusStyle := s.getStatusStyle()
	leftParts = append(leftParts, statusStyle.Render(s.Status.Icon()+" "+s.Status.String()))

	countStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	leftParts = append(leftParts, countStyle.Render(fmtNumber(s.TxCount)+" transactions"))

	tokenStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	leftParts = append(leftParts, tokenStyle.Render(fmtNumber(s.TotalTokens)+" tok"))

	if !s.LastRefresh.IsZero() {
		refreshStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
		leftParts = append(leftParts, refreshStyle.Render("refreshed "+s.LastRefresh.Format("15:04:05")))
	}

	leftSep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	leftSection := strings.Join(leftParts, leftSep)

	// Right section: shortcuts
	rightSection := ""
	if s.ShowShortcuts {
		rightSection = s.renderShortcuts()
	}

	// Calculate spacing
	leftWidth := lipgloss.Width(leftSection)
	rightWidth := lipgloss.Width(rightSection)

	spacing := s.Width - leftWidth - rightWidth - 4 // Account for padding
	if spacing < 1 {
		spacing = 1
	}

	result := leftSection + strings.Repeat(" ", spacing) + rightSection

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(styles.Overlay).
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Padding(0, 1).
		Width(s.Width).
		Render(result)
}

// ==========================================================================
// HELPER RENDER METHODS
// ==========================================================================

// renderShortcuts renders keyboard shortcut hints
func (s *StatusBar) renderShortcuts() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("tab") + s.theme.ShortcutDesc.Render(" view"),
		s.theme.ShortcutKey.Render("d/w/m/a") + s.theme.ShortcutDesc.Render(" period"),
		s.theme.ShortcutKey.Render("r") + s.theme.ShortcutDesc.Render(" refresh"),
		s.theme.ShortcutKey.Render("q") + s.theme.ShortcutDesc.Render(" quit"),
	}

	return strings.Join(shortcuts, "  ")
}

// renderShortcutsCompact renders the shortest useful shortcut hints
func (s *StatusBar) renderShortcutsCompact() string {
	shortcuts := []string{
		s.theme.ShortcutKey.Render("tab"),
		s.theme.ShortcutKey.Render("r"),
		s.theme.ShortcutKey.Render("q"),
	}

	return strings.Join(shortcuts, " ")
}

// getStatusStyle returns the style for the current status
// ACCESSIBILITY: Uses high contrast colors with bold for colorblind users
func (s *StatusBar) getStatusStyle() lipgloss.Style {
	switch s.Status {
	case StatusReady:
		return lipgloss.NewStyle().Foreground(styles.SuccessHighContrast).Bold(true)
	case StatusLoading, StatusRefreshing:
		return lipgloss.NewStyle().Foreground(styles.WarningHighContrast).Bold(true)
	case StatusWatching:
		return lipgloss.NewStyle().Foreground(styles.InfoHighContrast).Bold(true)
	case StatusError:
		return lipgloss.NewStyle().Foreground(styles.ErrorHighContrast).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(styles.TextMuted)
	}
}
