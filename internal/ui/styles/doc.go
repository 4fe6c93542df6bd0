// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the usage dashboard.

This package defines the color palette, theme, and animation primitives
used by the dashboard TUI and the CLI output helpers. All colors use
Lip Gloss AdaptiveColor for automatic light/dark terminal detection.

# Color System (colors.go)

## Primary Accent Colors

  - Purple - Primary accent for headings and selections
  - Cyan - Brand color for info and key hints
  - Emerald - Success states and the live streaming indicator
  - Amber - Warnings and caution states
  - Rose - Errors and critical alerts

## Telemetry Colors

The token-rate badge and usage charts use dedicated tokens:

	RateLive        - Badge color while a response is streaming
	RateFinal       - Badge color once a stream settles
	RateIdle        - Badge color when nothing is streaming
	PromptShare     - Prompt-token share in split bars
	CompletionShare - Completion-token share in split bars
	SparklineColor  - Daily usage sparkline

## Surface and Text Colors

Layered surfaces (Surface, SurfaceDim, SurfaceBright, Overlay) and a
hierarchical text system (TextPrimary, TextSecondary, TextMuted,
TextInverse) give the dashboard depth without hard-coding terminal
backgrounds.

# Theme System (theme.go)

The Theme struct provides runtime color adaptation:

	theme := styles.NewTheme()
	if theme.IsDark {
		// Dark terminal detected
	}
	theme.SetSize(width, height)
	switch theme.GetLayoutMode() {
	case styles.LayoutNarrow:
		// stack the summary cards vertically
	}

# Animation System (animations.go)

Pre-defined spinner styles (BrailleSpinner, DotsSpinner, PulseSpinner)
feed the bubbles spinner component, and RenderProgressBar draws the
ASCII share bars used in the model breakdown.

# Usage Example

	import "github.com/OmarMoust/LibreChat/internal/ui/styles"

	theme := styles.NewTheme()
	badge := theme.BadgeLive.Render("142 tok/s")
	bar := styles.RenderProgressBar(24, 62.5)
*/
package styles
