package identity

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"log/slog"

	"rosterly/internal/logging"
)

// ErrExhausted is returned when no free identifier is found within the retry
// bound. It is fatal for the batch: the allocator never falls back to a
// possibly-colliding value.
var ErrExhausted = errors.New("identifier namespace exhausted")

// Keyspace answers whether an identifier is already taken anywhere in its
// prefix namespace. A student identifier, for example, must be absent from
// both the students collection and the generic index collection.
type Keyspace interface {
	IdentifierTaken(ctx context.Context, id ID) (bool, error)
}

// Allocator mints previously-unused identifiers.
type Allocator struct {
	keyspace    Keyspace
	logger      *slog.Logger
	maxAttempts int
	intn        func(int) int
	reserved    map[ID]struct{}
}

// Option customizes allocator construction.
type Option func(*Allocator)

// WithMaxAttempts overrides the bounded-retry limit.
func WithMaxAttempts(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.maxAttempts = n
		}
	}
}

// WithRand injects the random draw used for person identifiers. Tests use it
// to force collisions deterministically.
func WithRand(intn func(int) int) Option {
	return func(a *Allocator) {
		if intn != nil {
			a.intn = intn
		}
	}
}

// NewAllocator constructs an allocator over the provided keyspace.
func NewAllocator(keyspace Keyspace, logger *slog.Logger, opts ...Option) *Allocator {
	if logger == nil {
		logger = logging.NewNop()
	}
	alloc := &Allocator{
		keyspace:    keyspace,
		logger:      logger,
		maxAttempts: 100,
		intn:        rand.Intn,
		reserved:    make(map[ID]struct{}),
	}
	for _, opt := range opts {
		opt(alloc)
	}
	return alloc
}

// Allocate draws random zero-padded suffixes until it finds an identifier
// absent from every store in the prefix namespace, or fails with
// ErrExhausted after the retry bound. The returned identifier is reserved
// in-process so later allocations in the same run cannot reuse it before the
// caller persists it.
func (a *Allocator) Allocate(ctx context.Context, prefix Prefix) (ID, error) {
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		candidate := Format(prefix, a.intn(1_000_000))

		if _, held := a.reserved[candidate]; held {
			continue
		}
		taken, err := a.keyspace.IdentifierTaken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check identifier %s: %w", candidate, err)
		}
		if taken {
			a.logger.Debug("identifier collision, retrying",
				logging.String("candidate", string(candidate)),
				logging.Int("attempt", attempt))
			continue
		}

		a.reserved[candidate] = struct{}{}
		a.logger.Debug("identifier allocated",
			logging.String("id", string(candidate)),
			logging.Int("attempts", attempt))
		return candidate, nil
	}
	return "", fmt.Errorf("allocate %s identifier after %d attempts: %w", prefix, a.maxAttempts, ErrExhausted)
}
