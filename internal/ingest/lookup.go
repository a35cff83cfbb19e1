package ingest

import (
	"context"
	"strings"

	"rosterly/internal/match"
	"rosterly/internal/naming"
	"rosterly/internal/records"
)

// LookupResult is a dry resolution: candidates scored, nothing written.
type LookupResult struct {
	Query      string
	Candidates []match.Candidate
	Malformed  []string
	// Accepted is set when the best candidate clears the configured
	// confidence threshold. Unlike the import paths, the score is
	// authoritative here.
	Accepted  bool
	Ambiguous bool
	Winner    *match.Candidate
}

// Lookup resolves one name or email against the store without writing.
// Queries containing "@" take the compound email path; everything else takes
// the exact-name path.
func (p *Pipeline) Lookup(ctx context.Context, query, cohort string) (LookupResult, error) {
	result := LookupResult{Query: query}

	var (
		candidates []match.Candidate
		malformed  []records.PersonRecord
		normalized string
		attrs      match.Attributes
		err        error
	)
	if strings.Contains(query, "@") {
		name, nameErr := naming.FromEmail(query)
		if nameErr != nil {
			return result, nameErr
		}
		normalized = name.Full
		attrs = match.Attributes{ContactEmail: query}
		candidates, malformed, err = p.matcher.FindCompound(ctx, records.CollectionStudents, name)
	} else {
		normalized = naming.Normalize(query)
		candidates, malformed, err = p.matcher.FindExact(ctx, records.CollectionStudents, normalized)
	}
	if err != nil {
		return result, err
	}
	result.Malformed = malformedIDs(malformed)

	for i := range candidates {
		score := match.Score(candidates[i].Person, attrs)
		candidates[i].Confidence = score.Confidence
		candidates[i].Reasons = score.Reasons
	}
	result.Candidates = candidates

	if len(candidates) == 0 {
		return result, nil
	}

	pick := match.PickWinner(p.logger, candidates, normalized, cohort, p.cfg.Matching.PreferCohort)
	result.Ambiguous = pick.Ambiguous
	winner := pick.Winner
	result.Winner = &winner
	result.Accepted = winner.Confidence >= p.cfg.Matching.ConfidenceThreshold
	return result, nil
}
