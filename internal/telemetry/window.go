// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry estimates live token throughput during generation.
package telemetry

// RateSample pairs a wall-clock timestamp with the cumulative estimated
// token count observed at that instant.
type RateSample struct {
	TimestampMs int64
	Tokens      int
}

// sampleWindow is a fixed-capacity deque of samples ordered by time.
// Pushing onto a full window evicts the oldest sample, so memory stays
// bounded no matter how long a generation runs. The estimator trims on
// every insert, which keeps the retained span at the window horizon.
type sampleWindow struct {
	buf  []RateSample
	head int
	n    int
}

func newSampleWindow(capacity int) *sampleWindow {
	if capacity < 2 {
		capacity = 2
	}
	return &sampleWindow{buf: make([]RateSample, capacity)}
}

// Len returns the number of retained samples.
func (w *sampleWindow) Len() int {
	return w.n
}

// Push appends a sample at the back, evicting the oldest when full.
func (w *sampleWindow) Push(s RateSample) {
	if w.n == len(w.buf) {
		// Overwriting the slot at head makes the new sample the back
		// once head advances past it.
		w.buf[w.head] = s
		w.head = (w.head + 1) % len(w.buf)
		return
	}
	w.buf[(w.head+w.n)%len(w.buf)] = s
	w.n++
}

// TrimBefore drops samples older than the cutoff from the front.
func (w *sampleWindow) TrimBefore(cutoffMs int64) {
	for w.n > 0 && w.buf[w.head].TimestampMs < cutoffMs {
		w.head = (w.head + 1) % len(w.buf)
		w.n--
	}
}

// Oldest returns the front sample. Callers must check Len first.
func (w *sampleWindow) Oldest() RateSample {
	return w.buf[w.head]
}

// Newest returns the back sample. Callers must check Len first.
func (w *sampleWindow) Newest() RateSample {
	return w.buf[(w.head+w.n-1)%len(w.buf)]
}

// Clear discards all samples.
func (w *sampleWindow) Clear() {
	w.head = 0
	w.n = 0
}
