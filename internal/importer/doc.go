// Package importer turns a dataset worksheet into review records.
//
// An import is all-or-nothing at the dataset level: a missing required column
// aborts before anything is written, and every accepted row is stored in a
// single transaction. Rows failing the minimal field checks are skipped and
// reported. Rows whose fingerprint is already stored, or repeated earlier in
// the same dataset, are counted as duplicates and never touch existing review
// state, so re-running an import is always safe.
package importer
