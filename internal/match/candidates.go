package match

import (
	"context"
	"fmt"

	"log/slog"

	"rosterly/internal/identity"
	"rosterly/internal/logging"
	"rosterly/internal/naming"
	"rosterly/internal/records"
)

// Type classifies how a candidate was matched.
type Type string

const (
	TypeExactName      Type = "exact-name"
	TypeFuzzyName      Type = "fuzzy-name"
	TypeGradePreferred Type = "grade-preferred"
)

// Candidate is an ephemeral match result; it is never persisted.
type Candidate struct {
	Person     records.PersonRecord
	Collection records.Collection
	Type       Type
	Confidence int
	Reasons    []string
}

// Directory abstracts the brute-force collection scan so an indexed lookup
// can replace it later without changing matching policy.
type Directory interface {
	ListPersons(ctx context.Context, collection records.Collection) ([]records.PersonRecord, error)
}

// Matcher finds candidate records for a normalized name.
type Matcher struct {
	directory Directory
	logger    *slog.Logger
}

// NewMatcher constructs a matcher over the directory.
func NewMatcher(directory Directory, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Matcher{directory: directory, logger: logger}
}

// FindExact returns candidates whose normalized stored full name equals the
// normalized input, plus the malformed records skipped along the way.
func (m *Matcher) FindExact(ctx context.Context, collection records.Collection, normalized string) ([]Candidate, []records.PersonRecord, error) {
	return m.scan(ctx, collection, func(rec records.PersonRecord) (Type, bool) {
		if naming.Normalize(rec.FullName()) == normalized && normalized != "" {
			return TypeExactName, true
		}
		return "", false
	})
}

// FindCompound returns candidates passing both the given-name and
// family-name predicates against an email-derived name. Full normalized
// equality upgrades the candidate to an exact match.
func (m *Matcher) FindCompound(ctx context.Context, collection records.Collection, name naming.NormalizedName) ([]Candidate, []records.PersonRecord, error) {
	return m.scan(ctx, collection, func(rec records.PersonRecord) (Type, bool) {
		if !CompoundMatches(name, rec.FirstName, rec.LastName) {
			return "", false
		}
		if naming.Normalize(rec.FullName()) == name.Full {
			return TypeExactName, true
		}
		return TypeFuzzyName, true
	})
}

func (m *Matcher) scan(ctx context.Context, collection records.Collection, predicate func(records.PersonRecord) (Type, bool)) ([]Candidate, []records.PersonRecord, error) {
	persons, err := m.directory.ListPersons(ctx, collection)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", collection, err)
	}

	var candidates []Candidate
	var malformed []records.PersonRecord
	for _, rec := range persons {
		if !identity.Valid(rec.ID) {
			m.logger.Warn("malformed identifier excluded from matching",
				logging.String("id", rec.ID),
				logging.String("collection", string(collection)),
				logging.String("display_name", rec.DisplayName))
			malformed = append(malformed, rec)
			continue
		}
		matchType, ok := predicate(rec)
		if !ok {
			continue
		}
		m.logger.Debug("candidate matched",
			logging.String("id", rec.ID),
			logging.String("match_type", string(matchType)),
			logging.String("stored_name", rec.FullName()))
		candidates = append(candidates, Candidate{
			Person:     rec,
			Collection: collection,
			Type:       matchType,
		})
	}
	return candidates, malformed, nil
}
