// Package domain defines the billing records persisted by rubico and the
// input and patch payloads that produce them.
//
// This package contains type definitions only. It imports nothing internal,
// so store, validate, calc and state can all depend on it.
//
// Key rules:
//   - ID and CreatedAt are assigned by the store and never change.
//   - Customer addresses are embedded by value; shipping may equal billing
//     but never aliases it.
//   - Invoice.CustomerName / CustomerEmail are snapshots taken when the
//     invoice is created and are not refreshed when the customer changes.
//   - Invoice totals are derived values, recomputed by calc on every write.
package domain
