// Package store provides SQLite-backed durable storage for rubico records.
//
// The store keeps two independent collections, customers and invoices. Each
// is a table mapping a generated id to the record's JSON, plus the creation
// time used for ordering:
//
//	customers(id TEXT PRIMARY KEY, created_at INTEGER, data TEXT)
//	invoices (id TEXT PRIMARY KEY, created_at INTEGER, data TEXT)
//
// # Guarantees
//
//   - GetAll returns records newest first (created_at DESC, then insertion
//     order DESC). An empty collection yields an empty, non-nil slice.
//   - Create assigns a fresh id and creation time and writes the record in a
//     single statement; a failed write is never reported as success.
//   - Update is a read-modify-write inside one transaction. id and createdAt
//     survive any patch. A missing id is reported as absent, not an error.
//   - Delete is idempotent.
//   - Every SQL or encoding failure surfaces as *PersistenceError.
//
// Deleting a customer does not touch invoices that reference it. Email
// uniqueness is not enforced here; see package validate.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout: Wait for locks (default 5 seconds)
//   - One open connection: SQLite has a single writer
//
// The schema is applied with golang-migrate from the embedded migrations
// directory every time a store is opened.
package store
