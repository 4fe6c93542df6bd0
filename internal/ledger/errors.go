// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
package ledger

import "errors"

var (
	// ErrQueryFailure wraps any transport or storage error from the query
	// layer. Callers surface it; no partial results accompany it.
	ErrQueryFailure = errors.New("ledger query failure")

	// ErrInvalidTransaction rejects writes with a missing user, an unknown
	// token type, or other malformed fields.
	ErrInvalidTransaction = errors.New("invalid transaction")

	// ErrClosed reports use of a store after Close.
	ErrClosed = errors.New("ledger store closed")
)

// QueryError carries the failing operation alongside the underlying cause.
// It matches ErrQueryFailure under errors.Is.
type QueryError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return "ledger " + e.Op + ": " + e.Err.Error()
}

// Unwrap exposes the underlying driver error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support so any QueryError matches ErrQueryFailure.
func (e *QueryError) Is(target error) bool {
	return target == ErrQueryFailure
}

// queryError wraps a storage failure with its operation name.
func queryError(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}
