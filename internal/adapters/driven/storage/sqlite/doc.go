// Package sqlite provides the SQLite-backed auth event log.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and applied on open.
//
// # Data Location
//
// By default, the database is stored at ~/.connect/data/events.db
//
// # Thread Safety
//
// All operations are thread-safe. The store relies on database-level locking
// provided by SQLite in WAL mode.
package sqlite
