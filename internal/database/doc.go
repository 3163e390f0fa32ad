// Package database provides SQLite-based storage for audit snapshots.
//
// This package implements the AuditDB, which stores:
//   - One denormalized snapshot row per completed audit run
//   - The full report JSON for lossless export rebuilds
//   - Per-day score history for trend correlation
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
