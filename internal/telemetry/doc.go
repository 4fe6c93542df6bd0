// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry estimates live token throughput while a response is
// being generated.
//
// The estimator watches a growing text buffer, samples it on a fixed
// cadence into a short sliding window, and reports a smoothed
// tokens-per-second figure. When generation completes it publishes a
// one-time final summary (average rate, total estimated tokens, duration).
//
// # Key Types
//
//   - Estimator: per-message sliding-window rate state machine
//   - RateSample: one (timestamp, cumulative tokens) observation
//   - FinalStats: the published end-of-generation summary
//
// # Usage
//
// Drive one estimator per displayed message from a single goroutine:
//
//	est := telemetry.NewEstimator()
//	est.Observe(msgID, len(text), producing)  // on every stream update
//	est.Tick()                                // every telemetry.SampleInterval
//	if r := est.LiveRate(); r > 0 {
//	    // show "42 tok/s"
//	}
//	if final, ok := est.Final(); ok {
//	    // show "~120 tokens · 48 tok/s"
//	}
//
// Token counts are heuristic (~4 characters per token), not tokenizer
// output; they exist to give the user a feel for generation speed.
package telemetry
