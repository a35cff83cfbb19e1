// Package consistency keeps the primary and index collections from drifting.
//
// Every resolved identity must have a document at its key in both the
// role-specific primary collection and the generic index collection. The
// Enforcer checks both sides after a match is accepted and backfills a
// missing side with a minimal reconstructed record via merge-write, so
// interrupted earlier runs are healed without clobbering existing fields. An
// identity absent from both sides is an invariant violation and is surfaced,
// never repaired by inventing a new record.
//
// Audit extends the same check across the whole store for the doctor
// command.
package consistency
