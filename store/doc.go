// Package store implements the column-oriented persistence layer of MashDB.
//
// Each database is a directory, each table a subdirectory holding a
// schema.json and one JSON array file per column under columns/. Writes go
// through a stage-then-swap protocol: new column content is written to a
// temporary file next to the target, a commit manifest is recorded, and the
// temporary files are renamed into place. A crash mid-commit is repaired
// from the manifest the next time the table is opened.
//
// The store runs over a billy filesystem, so the same code serves an
// in-memory store for tests and an on-disk store for real data:
//
//	st := store.NewMemoryStore()
//	st, err := store.NewFileStore("/var/lib/mashdb")
package store
