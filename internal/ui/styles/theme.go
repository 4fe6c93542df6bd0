// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the usage dashboard.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the dashboard.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// TAB BAR STYLES
	// ==========================================================================

	TabBar      lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	PeriodLabel lipgloss.Style
	PeriodValue lipgloss.Style

	// ==========================================================================
	// SUMMARY CARD STYLES
	// ==========================================================================

	Card      lipgloss.Style
	CardTitle lipgloss.Style
	CardValue lipgloss.Style
	CardUnit  lipgloss.Style

	// ==========================================================================
	// TOKEN RATE BADGE STYLES
	// ==========================================================================

	BadgeLive  lipgloss.Style
	BadgeFinal lipgloss.Style
	BadgeIdle  lipgloss.Style

	// ==========================================================================
	// MODEL BREAKDOWN STYLES
	// ==========================================================================

	BarLabel  lipgloss.Style
	BarFilled lipgloss.Style
	BarEmpty  lipgloss.Style
	BarValue  lipgloss.Style

	// ==========================================================================
	// SPARKLINE STYLES
	// ==========================================================================

	Sparkline      lipgloss.Style
	SparklineTitle lipgloss.Style
	SparklineAxis  lipgloss.Style

	// ==========================================================================
	// TRANSACTION TABLE STYLES
	// ==========================================================================

	TableHeader   lipgloss.Style
	TableRow      lipgloss.Style
	TableSelected lipgloss.Style
	TableCredit   lipgloss.Style
	TableDebit    lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// SPINNER AND LOADING STYLES
	// ==========================================================================

	Spinner     lipgloss.Style
	LoadingText lipgloss.Style

	// ==========================================================================
	// ERROR BOX STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style

	// ==========================================================================
	// ACCESSIBILITY: Status indicator styles with shapes and high contrast
	// ==========================================================================

	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	InfoStyle    lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	// Detect terminal capabilities
	colorProfile := termenv.ColorProfile()
	hasTrueColor := colorProfile == termenv.TrueColor
	isDark := termenv.HasDarkBackground()

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: hasTrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 2).
		Align(lipgloss.Center)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Tab bar
	t.TabBar = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextMuted).
		Padding(0, 2)

	t.TabActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Purple).
		Bold(true).
		Padding(0, 2)

	t.PeriodLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PeriodValue = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	// Summary cards
	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		MarginRight(1)

	t.CardTitle = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.CardValue = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true)

	t.CardUnit = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Token rate badge
	t.BadgeLive = lipgloss.NewStyle().
		Foreground(RateLive).
		Bold(true)

	t.BadgeFinal = lipgloss.NewStyle().
		Foreground(RateFinal)

	t.BadgeIdle = lipgloss.NewStyle().
		Foreground(RateIdle)

	// Model breakdown bars
	t.BarLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.BarFilled = lipgloss.NewStyle().
		Foreground(Purple)

	t.BarEmpty = lipgloss.NewStyle().
		Foreground(OverlayDim)

	t.BarValue = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Sparkline
	t.Sparkline = lipgloss.NewStyle().
		Foreground(SparklineColor)

	t.SparklineTitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.SparklineAxis = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Transaction table
	t.TableHeader = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(Overlay)

	t.TableRow = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.TableSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true)

	t.TableCredit = lipgloss.NewStyle().
		Foreground(Emerald)

	t.TableDebit = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Status bar
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Spinner and loading
	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Error boxes
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Rose).
		Padding(1, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	// Accessibility status styles
	t.SuccessStyle = lipgloss.NewStyle().
		Foreground(SuccessHighContrast).
		Bold(true)

	t.ErrorStyle = lipgloss.NewStyle().
		Foreground(ErrorHighContrast).
		Bold(true)

	t.WarningStyle = lipgloss.NewStyle().
		Foreground(WarningHighContrast).
		Bold(true)

	t.InfoStyle = lipgloss.NewStyle().
		Foreground(InfoHighContrast).
		Bold(true)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
