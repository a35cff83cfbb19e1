package match

import (
	"log/slog"

	"rosterly/internal/logging"
	"rosterly/internal/naming"
)

// Pick is the outcome of tie-breaking a candidate set.
type Pick struct {
	Winner Candidate
	// Ambiguous is set when scan order, not a tie-break rule, selected the
	// winner. The full candidate list rides along for audit.
	Ambiguous  bool
	Candidates []Candidate
}

// PickWinner applies the tie-break policy to a non-empty candidate set:
// prefer candidates in the expected cohort, then an exact case-insensitive
// full-name equality, and otherwise take the first candidate in scan order
// flagged ambiguous.
func PickWinner(logger *slog.Logger, candidates []Candidate, normalizedFull, expectedCohort string, preferCohort bool) Pick {
	if logger == nil {
		logger = logging.NewNop()
	}
	if len(candidates) == 1 {
		return Pick{Winner: candidates[0], Candidates: candidates}
	}

	pool := candidates
	if preferCohort && expectedCohort != "" {
		inCohort := make([]Candidate, 0, len(pool))
		for _, cand := range pool {
			if naming.Normalize(cand.Person.Cohort) == naming.Normalize(expectedCohort) {
				inCohort = append(inCohort, cand)
			}
		}
		if len(inCohort) > 0 {
			for i := range inCohort {
				inCohort[i].Type = TypeGradePreferred
			}
			logger.Info("cohort preference narrowed candidates",
				logging.String("cohort", expectedCohort),
				logging.Int("before", len(pool)),
				logging.Int("after", len(inCohort)))
			pool = inCohort
		}
	}
	if len(pool) == 1 {
		return Pick{Winner: pool[0], Candidates: candidates}
	}

	exact := make([]Candidate, 0, len(pool))
	for _, cand := range pool {
		if naming.Normalize(cand.Person.FullName()) == normalizedFull {
			exact = append(exact, cand)
		}
	}
	if len(exact) == 1 {
		logger.Info("exact name equality broke the tie",
			logging.String("winner", exact[0].Person.ID))
		return Pick{Winner: exact[0], Candidates: candidates}
	}
	if len(exact) > 0 {
		pool = exact
	}

	logger.Warn("ambiguous match, taking first candidate in scan order",
		logging.String("winner", pool[0].Person.ID),
		logging.Int("candidates", len(candidates)))
	return Pick{Winner: pool[0], Ambiguous: true, Candidates: candidates}
}
