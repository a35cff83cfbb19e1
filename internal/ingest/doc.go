// Package ingest orchestrates batch identity resolution and enrollment.
//
// Each input record walks the same path: normalize, match against the store,
// then either repair the winner's dual-store presence or mint a fresh
// identifier and create both documents, and finally append the resolved
// identity to the enrollment accumulator. When every record is consumed the
// accumulated enrollment is persisted as one course document under a
// sequentially allocated course identifier.
//
// The pipeline is deliberately sequential: a record is fully resolved before
// the next begins, so allocations made earlier in the run are visible to
// later records. Input problems skip the record; an invariant violation
// fails the record; allocator exhaustion or store failure aborts the batch
// with nothing committed.
package ingest
