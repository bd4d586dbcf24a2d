// Package workspace manages the directory of review stores: listing,
// naming, renaming and deleting store files.
//
// A store is a SQLite file plus its -wal, -shm and .lock sidecars; every
// operation here treats them as one unit. Rename and delete take the
// reviewer lock first and refuse to touch a store another session holds.
package workspace
