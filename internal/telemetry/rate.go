// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry estimates live token throughput during generation.
package telemetry

import (
	"math"
	"time"
)

// =============================================================================
// ESTIMATOR STATE MACHINE
// =============================================================================

// State is the estimator's resting state. Finalization is a transition, not
// a resting state: publishing FinalStats returns the estimator to StateIdle
// in the same step.
type State int

const (
	// StateIdle means no active sample window. Entered at construction,
	// after finalization, and whenever the tracked message changes.
	StateIdle State = iota
	// StateStreaming means the tracked message is producing output and
	// the window is being sampled on each tick.
	StateStreaming
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

const (
	// SampleInterval is the cadence at which callers should invoke Tick
	// while a generation is streaming.
	SampleInterval = 200 * time.Millisecond

	// WindowHorizon bounds how far back retained samples reach. Rates are
	// computed over at most this span, which smooths bursts without
	// lagging far behind the stream.
	WindowHorizon = 2 * time.Second

	// minFinalDuration gates finalization: generations shorter than this
	// publish nothing, since a rate computed over a near-instant response
	// is noise.
	minFinalDuration = 500 * time.Millisecond

	// windowCapacity comfortably covers WindowHorizon/SampleInterval
	// samples plus irregular extra ticks.
	windowCapacity = 32
)

// FinalStats is the one-time summary published when a generation finishes.
type FinalStats struct {
	// Rate is the average tokens/second over the whole generation.
	Rate int
	// TotalTokens is the estimated token count of the final text.
	TotalTokens int
	// Duration is the generation length in seconds.
	Duration float64
}

// Estimator converts an intermittently growing text buffer into a smoothed
// tokens-per-second figure, and publishes a final average when the
// generation completes.
//
// One instance tracks one message slot at a time. All methods must be
// called from a single goroutine (in the TUI, the bubbletea update loop).
type Estimator struct {
	now func() time.Time

	state     State
	messageID string
	textLen   int
	startTime time.Time
	window    *sampleWindow
	liveRate  int
	final     *FinalStats
}

// NewEstimator returns an idle estimator using the wall clock.
func NewEstimator() *Estimator {
	return &Estimator{
		now:    time.Now,
		window: newSampleWindow(windowCapacity),
	}
}

// Observe feeds the estimator the current snapshot of the tracked message:
// its identity, the length of its visible text, and whether generation is
// actively producing output. Call it on every stream update and once more
// with producing=false when the generation finishes.
//
// A change of messageID discards all state for the previous message,
// including published final stats, without finalizing.
func (e *Estimator) Observe(messageID string, textLen int, producing bool) {
	if messageID != e.messageID {
		e.Reset()
		e.messageID = messageID
	}

	switch e.state {
	case StateIdle:
		if producing && textLen > e.textLen {
			e.beginStream()
		}
	case StateStreaming:
		if !producing {
			e.finalize(textLen)
		}
	}

	e.textLen = textLen
}

// Tick takes one sample while streaming: estimate tokens from the current
// text length, append to the window, trim samples beyond the horizon, and
// recompute the live rate. Outside StateStreaming it is a no-op, so a stray
// timer firing after completion cannot corrupt state.
func (e *Estimator) Tick() {
	if e.state != StateStreaming {
		return
	}

	nowMs := e.now().UnixMilli()
	e.window.Push(RateSample{TimestampMs: nowMs, Tokens: EstimateTokens(e.textLen)})
	e.window.TrimBefore(nowMs - WindowHorizon.Milliseconds())
	e.liveRate = windowRate(e.window)
}

// State returns the current resting state.
func (e *Estimator) State() State {
	return e.state
}

// LiveRate returns the instantaneous tokens/second while streaming, or 0
// when the window holds fewer than two samples or the estimator is idle.
// Displays should show the value only when it is positive.
func (e *Estimator) LiveRate() int {
	return e.liveRate
}

// Final returns the last published end-of-generation stats. The value
// persists through StateIdle and is cleared when the next generation starts
// streaming or the tracked message changes.
func (e *Estimator) Final() (FinalStats, bool) {
	if e.final == nil {
		return FinalStats{}, false
	}
	return *e.final, true
}

// Reset discards all state and returns to StateIdle without publishing.
// Call it when the tracked message stops being the active one or the
// component is torn down.
func (e *Estimator) Reset() {
	e.state = StateIdle
	e.messageID = ""
	e.textLen = 0
	e.startTime = time.Time{}
	e.window.Clear()
	e.liveRate = 0
	e.final = nil
}

// beginStream enters StateStreaming: record the start time, clear the
// window and any stats left over from the previous generation.
func (e *Estimator) beginStream() {
	e.state = StateStreaming
	e.startTime = e.now()
	e.window.Clear()
	e.liveRate = 0
	e.final = nil
}

// finalize leaves StateStreaming when producing flips false. It publishes
// FinalStats only for generations that ran longer than minFinalDuration,
// produced text, and estimate to at least one token; anything shorter is
// suppressed rather than shown as a misleading spike.
func (e *Estimator) finalize(finalTextLen int) {
	duration := e.now().Sub(e.startTime).Seconds()
	totalTokens := EstimateTokens(finalTextLen)

	if finalTextLen > 0 && duration > minFinalDuration.Seconds() && totalTokens > 0 {
		e.final = &FinalStats{
			Rate:        int(math.Round(float64(totalTokens) / duration)),
			TotalTokens: totalTokens,
			Duration:    duration,
		}
	}

	e.state = StateIdle
	e.startTime = time.Time{}
	e.window.Clear()
	e.liveRate = 0
}

// windowRate computes tokens/second across the retained window. Fewer than
// two samples report 0 rather than an undefined or flickering value;
// negative and non-finite results clamp to 0.
func windowRate(w *sampleWindow) int {
	if w.Len() < 2 {
		return 0
	}

	oldest := w.Oldest()
	newest := w.Newest()

	elapsedMs := newest.TimestampMs - oldest.TimestampMs
	if elapsedMs <= 0 {
		return 0
	}

	rate := float64(newest.Tokens-oldest.Tokens) / (float64(elapsedMs) / 1000.0)
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0
	}
	return int(math.Round(rate))
}
