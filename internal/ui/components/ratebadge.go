// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/OmarMoust/LibreChat/internal/telemetry"
	"github.com/OmarMoust/LibreChat/internal/ui/styles"
	"github.com/OmarMoust/LibreChat/internal/util"
)

// =============================================================================
// RATE BADGE COMPONENT - Live token throughput for the response in flight
// =============================================================================

// RateBadge renders the current token-generation rate. While a response
// streams it shows the smoothed live rate; once the stream settles it shows
// the final average with total tokens and duration; otherwise it reads idle.
type RateBadge struct {
	estimator *telemetry.Estimator
	theme     *styles.Theme
	visible   bool
}

// NewRateBadge creates a rate badge bound to the given estimator.
func NewRateBadge(theme *styles.Theme, estimator *telemetry.Estimator) *RateBadge {
	return &RateBadge{
		estimator: estimator,
		theme:     theme,
		visible:   true,
	}
}

// SetVisible toggles whether the badge renders at all.
func (b *RateBadge) SetVisible(visible bool) {
	b.visible = visible
}

// Visible reports whether the badge is currently shown.
func (b *RateBadge) Visible() bool {
	return b.visible
}

// View renders the badge for the estimator's current state.
func (b *RateBadge) View() string {
	if !b.visible || b.estimator == nil {
		return ""
	}

	if b.estimator.State() == telemetry.StateStreaming {
		rate := b.estimator.LiveRate()
		if rate <= 0 {
			// Window not warm yet; show activity without a number.
			return b.theme.BadgeLive.Render("... tok/s")
		}
		return b.theme.BadgeLive.Render("~" + fmtNumber(rate) + " tok/s")
	}

	if final, ok := b.estimator.Final(); ok {
		return b.theme.BadgeFinal.Render(
			fmtNumber(final.Rate) + " tok/s | " +
				util.FormatCount(int64(final.TotalTokens)) + " tok | " +
				util.FormatDurationSecs(final.Duration))
	}

	return b.theme.BadgeIdle.Render("idle")
}
