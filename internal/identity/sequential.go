package identity

import (
	"context"
	"fmt"
)

// SuffixLister enumerates the identifiers already present in a prefix
// namespace, malformed keys included.
type SuffixLister interface {
	ListIdentifiers(ctx context.Context, prefix Prefix) ([]string, error)
}

// AllocateSequential returns the identifier one past the highest existing
// numeric suffix in the namespace. Course numbering stays monotonic this way
// even though person identifiers are drawn randomly. Keys that do not parse
// as identifiers are ignored for numbering purposes.
func AllocateSequential(ctx context.Context, lister SuffixLister, prefix Prefix) (ID, error) {
	existing, err := lister.ListIdentifiers(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("list %s identifiers: %w", prefix, err)
	}

	max := 0
	for _, raw := range existing {
		got, number, err := Parse(raw)
		if err != nil || got != prefix {
			continue
		}
		if number > max {
			max = number
		}
	}

	next := max + 1
	if next >= 1_000_000 {
		return "", fmt.Errorf("allocate %s identifier: %w", prefix, ErrExhausted)
	}
	return Format(prefix, next), nil
}
