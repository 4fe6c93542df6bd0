// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/OmarMoust/LibreChat/internal/telemetry"
	"github.com/OmarMoust/LibreChat/internal/ui/styles"
)

// =============================================================================
// RATE BADGE TESTS
// =============================================================================

func TestRateBadgeIdle(t *testing.T) {
	theme := styles.NewTheme()
	badge := NewRateBadge(theme, telemetry.NewEstimator())

	view := badge.View()
	if !strings.Contains(view, "idle") {
		t.Errorf("View() = %q, want idle badge", view)
	}
}

func TestRateBadgeNilEstimator(t *testing.T) {
	theme := styles.NewTheme()
	badge := NewRateBadge(theme, nil)

	if view := badge.View(); view != "" {
		t.Errorf("View() with nil estimator = %q, want empty", view)
	}
}

func TestRateBadgeHidden(t *testing.T) {
	theme := styles.NewTheme()
	badge := NewRateBadge(theme, telemetry.NewEstimator())

	if !badge.Visible() {
		t.Error("badge should start visible")
	}

	badge.SetVisible(false)
	if badge.Visible() {
		t.Error("SetVisible(false) did not hide badge")
	}
	if view := badge.View(); view != "" {
		t.Errorf("View() while hidden = %q, want empty", view)
	}

	badge.SetVisible(true)
	if view := badge.View(); view == "" {
		t.Error("View() after re-showing should render")
	}
}

func TestRateBadgeStreamingWarmup(t *testing.T) {
	theme := styles.NewTheme()
	est := telemetry.NewEstimator()
	badge := NewRateBadge(theme, est)

	// Stream just started: no rate yet, badge shows activity only.
	est.Observe("msg-1", 40, true)
	if est.State() != telemetry.StateStreaming {
		t.Fatalf("State() = %v, want streaming", est.State())
	}

	view := badge.View()
	if !strings.Contains(view, "... tok/s") {
		t.Errorf("View() during warmup = %q, want %q", view, "... tok/s")
	}
}

func TestRateBadgeFinal(t *testing.T) {
	theme := styles.NewTheme()
	est := telemetry.NewEstimator()
	badge := NewRateBadge(theme, est)

	est.Observe("msg-1", 400, true)
	est.Tick()
	time.Sleep(600 * time.Millisecond)
	est.Tick()
	est.Observe("msg-1", 2000, false)

	if _, ok := est.Final(); !ok {
		t.Fatal("estimator should have published final stats")
	}

	view := badge.View()
	if !strings.Contains(view, "tok/s") {
		t.Errorf("View() after finish = %q, want final rate", view)
	}
	// Final badge carries total tokens and duration alongside the rate.
	if !strings.Contains(view, " tok | ") {
		t.Errorf("View() after finish = %q, want token total segment", view)
	}
	if !strings.Contains(view, "500") {
		t.Errorf("View() after finish = %q, want total of 500 tokens", view)
	}
}
