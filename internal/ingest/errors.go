package ingest

import (
	"errors"

	"rosterly/internal/consistency"
	"rosterly/internal/identity"
)

// Kind buckets a failure for the run report and for abort decisions.
type Kind string

const (
	// KindInput covers malformed input records; the record is skipped and
	// the batch continues.
	KindInput Kind = "input"
	// KindInvariant covers dual-store invariant violations; the record
	// errors but the batch continues.
	KindInvariant Kind = "invariant"
	// KindExhausted covers allocator exhaustion; the batch aborts.
	KindExhausted Kind = "exhausted"
	// KindStore covers store I/O failures; the batch aborts.
	KindStore Kind = "store"
)

// Classify maps an error onto the failure taxonomy.
func Classify(err error) Kind {
	switch {
	case errors.Is(err, identity.ErrExhausted):
		return KindExhausted
	case errors.Is(err, consistency.ErrInvariantViolation):
		return KindInvariant
	default:
		return KindStore
	}
}

// AbortsBatch reports whether a failure of this kind must stop the run
// before the aggregate document is committed.
func (k Kind) AbortsBatch() bool {
	return k == KindExhausted || k == KindStore
}
