// Package records persists person and course documents in SQLite.
//
// The Store exposes the two logically-coupled "collections" the engine must
// keep consistent: the role-specific primary collections (students, faculty)
// and the generic index collection (people), every document keyed by its
// opaque identifier. No foreign keys tie the collections together; the
// consistency package owns detecting and repairing drift between them.
//
// Writes come in two flavors: Put replaces a document outright, Merge only
// backfills fields the stored document leaves empty, so repair passes never
// clobber data written by earlier runs.
package records
