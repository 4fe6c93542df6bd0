// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/OmarMoust/LibreChat/internal/ui/styles"
)

// =============================================================================
// HEADER COMPONENT - Title bar with brand, user, and active period
// =============================================================================

// Header represents the dashboard title bar component
type Header struct {
	Title       string // Brand title (default: "librechat")
	UserLabel   string // User whose usage is displayed
	PeriodLabel string // Active summary period (day/week/month/all)
	Width       int    // Available width
	theme       *styles.Theme
}

// NewHeader creates a new Header component with default values
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "librechat",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetUser updates the user label
func (h *Header) SetUser(user string) {
	h.UserLabel = user
}

// SetPeriod updates the active period label
func (h *Header) SetPeriod(period string) {
	h.PeriodLabel = period
}

// View renders the boxed two-line header
func (h *Header) View() string {
	// Ensure minimum width
	width := h.Width
	if width < 40 {
		width = 40
	}

	// Calculate inner width (accounting for borders and padding)
	innerWidth := width - 6

	brand := h.renderBrand()

	// Subtitle line with user and period
	subtitleParts := []string{}

	if h.UserLabel != "" {
		userStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary)
		subtitleParts = append(subtitleParts, userStyle.Render(h.UserLabel))
	}

	if h.PeriodLabel != "" {
		periodStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
		subtitleParts = append(subtitleParts, periodStyle.Render("["+strings.ToUpper(h.PeriodLabel)+"]"))
	}

	subtitle := strings.Join(subtitleParts, " ")

	// Center the content
	brandLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Render(brand)

	subtitleLine := lipgloss.NewStyle().
		Width(innerWidth).
		Align(lipgloss.Center).
		Foreground(styles.TextMuted).
		Render(subtitle)

	content := lipgloss.JoinVertical(lipgloss.Center, brandLine, subtitleLine)

	headerBox := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Background(styles.SurfaceDim).
		Padding(0, 2).
		Width(width)

	return headerBox.Render(content)
}

// ViewCompact renders a compact single-line header for narrow terminals
func (h *Header) ViewCompact() string {
	// Compact format: < librechat > | user | [PERIOD]
	parts := []string{h.renderBrand()}

	if h.UserLabel != "" {
		userStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted)
		parts = append(parts, userStyle.Render(h.UserLabel))
	}

	if h.PeriodLabel != "" {
		periodStyle := lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)
		parts = append(parts, periodStyle.Render("["+strings.ToUpper(h.PeriodLabel)+"]"))
	}

	separator := lipgloss.NewStyle().
		Foreground(styles.Overlay).
		Render(" | ")

	return strings.Join(parts, separator)
}

// renderBrand renders the bracketed brand title, with a gradient on
// true color terminals
func (h *Header) renderBrand() string {
	accentStyle := lipgloss.NewStyle().
		Foreground(styles.Purple)

	var title string
	if h.theme != nil && h.theme.HasTrueColor {
		start := lipgloss.Color(styles.GradientStart.Dark)
		end := lipgloss.Color(styles.GradientEnd.Dark)
		if !h.theme.IsDark {
			start = lipgloss.Color(styles.GradientStart.Light)
			end = lipgloss.Color(styles.GradientEnd.Light)
		}
		title = GradientTitle(h.Title, start, end)
	} else {
		title = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan).
			Render(h.Title)
	}

	return accentStyle.Render("< ") + title + accentStyle.Render(" >")
}

// =============================================================================
// GRADIENT TITLE (for terminals with true color support)
// =============================================================================

// GradientTitle creates a gradient text effect
// Note: This works best in terminals with true color support
func GradientTitle(text string, startColor, endColor lipgloss.Color) string {
	if len(text) == 0 {
		return ""
	}

	// For short text, just use the start color
	if len(text) < 3 {
		return lipgloss.NewStyle().Foreground(startColor).Render(text)
	}

	// Build gradient character by character
	var result strings.Builder
	chars := []rune(text)
	n := len(chars)

	for i, char := range chars {
		// Calculate interpolation factor
		t := float64(i) / float64(n-1)

		color := interpolateColor(startColor, endColor, t)

		style := lipgloss.NewStyle().Foreground(color)
		result.WriteString(style.Render(string(char)))
	}

	return result.String()
}

// interpolateColor interpolates between two hex colors
func interpolateColor(start, end lipgloss.Color, t float64) lipgloss.Color {
	startHex := string(start)
	endHex := string(end)

	// Handle # prefix
	if len(startHex) > 0 && startHex[0] == '#' {
		startHex = startHex[1:]
	}
	if len(endHex) > 0 && endHex[0] == '#' {
		endHex = endHex[1:]
	}

	// Parse hex colors (default to white if parsing fails)
	sr, sg, sb := parseHexColor(startHex)
	er, eg, eb := parseHexColor(endHex)

	// Interpolate each channel
	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))

	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses a hex color string into RGB components
func parseHexColor(hex string) (r, g, b uint8) {
	if len(hex) < 6 {
		return 255, 255, 255 // Default to white
	}

	r = parseHexByte(hex[0:2])
	g = parseHexByte(hex[2:4])
	b = parseHexByte(hex[4:6])
	return
}

// parseHexByte parses a two-character hex string into a byte
func parseHexByte(s string) uint8 {
	if len(s) != 2 {
		return 255
	}

	var result uint8
	for _, c := range s {
		result *= 16
		switch {
		case c >= '0' && c <= '9':
			result += uint8(c - '0')
		case c >= 'a' && c <= 'f':
			result += uint8(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			result += uint8(c - 'A' + 10)
		default:
			return 255
		}
	}
	return result
}

// formatHexColor formats RGB values as a hex color string
func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}
