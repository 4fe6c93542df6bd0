// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ledger stores and queries per-user token-usage transactions.
//
// The ledger is append-only from this subsystem's viewpoint: the billing
// subsystem writes transactions through Insert/InsertBatch as usage
// happens, and the query layer reads them back filtered, sorted, and
// paginated. No aggregation happens here; summary math lives in the usage
// package, which shares this package's filter construction through Scan.
//
// # Key Types
//
//   - Transaction: one immutable usage record
//   - Filter: conjunctive query constraints (user, window, model, conversation)
//   - Store: SQLite-backed persistence with WAL tuning
//
// # Identity
//
// Historical rows may carry the owning user under either its canonical
// dashed UUID form or a legacy undashed hex form; UserKeys derives both and
// every user-scoped query matches either representation.
package ledger
