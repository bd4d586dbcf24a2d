// Package records persists reviewable records in SQLite and answers the
// filtered, ordered queries that drive review navigation.
//
// The Store owns one database file. Records are created in bulk by the
// importer through InsertBatch, mutated only through the review fields
// (confirmed tags, notes, reviewed flag), and never deleted individually.
// Every mutation runs in its own transaction so readers observe either the
// previous or the new state of a record, never a mix.
//
// Writers hold an exclusive advisory lock on "<store>.lock" for as long as the
// Store is open; read-only handles skip the lock and rely on SQLite WAL
// isolation. Schema changes bump schemaVersion; older stores must be
// re-imported.
package records
