package match

import (
	"math"

	"rosterly/internal/naming"
	"rosterly/internal/records"
)

// Attributes carries the secondary identifiers an input record may supply.
type Attributes struct {
	Guardians    []string
	ContactEmail string
	DateOfBirth  string
}

// ScoreResult is the scorer's verdict for one candidate.
type ScoreResult struct {
	Confidence int
	Reasons    []string
}

// NameOnlyConfidence is reported when no secondary identifier is comparable
// on both sides. The value is policy, not statistics; callers treating the
// score as authoritative compare it against the configured threshold.
const NameOnlyConfidence = 50

// Score compares every secondary identifier present on both sides and
// reports the fraction that agree, as a 0-100 percentage. Attributes present
// on only one side are not counted against the candidate.
func Score(person records.PersonRecord, incoming Attributes) ScoreResult {
	matchScore := 0
	totalChecks := 0
	var reasons []string

	if len(incoming.Guardians) > 0 && len(person.Guardians) > 0 {
		totalChecks++
		if guardiansOverlap(incoming.Guardians, person.Guardians) {
			matchScore++
			reasons = append(reasons, "guardian name matched")
		} else {
			reasons = append(reasons, "guardian name differed")
		}
	}

	if incoming.ContactEmail != "" && person.ContactEmail != "" {
		totalChecks++
		if naming.Normalize(incoming.ContactEmail) == naming.Normalize(person.ContactEmail) {
			matchScore++
			reasons = append(reasons, "contact email matched")
		} else {
			reasons = append(reasons, "contact email differed")
		}
	}

	if incoming.DateOfBirth != "" && person.DateOfBirth != "" {
		totalChecks++
		if naming.Normalize(incoming.DateOfBirth) == naming.Normalize(person.DateOfBirth) {
			matchScore++
			reasons = append(reasons, "date of birth matched")
		} else {
			reasons = append(reasons, "date of birth differed")
		}
	}

	if totalChecks == 0 {
		return ScoreResult{
			Confidence: NameOnlyConfidence,
			Reasons:    []string{"name match only"},
		}
	}

	confidence := int(math.Round(float64(matchScore) / float64(totalChecks) * 100))
	return ScoreResult{Confidence: confidence, Reasons: reasons}
}

func guardiansOverlap(incoming, stored []string) bool {
	for _, a := range incoming {
		na := naming.Normalize(a)
		if na == "" {
			continue
		}
		for _, b := range stored {
			if na == naming.Normalize(b) {
				return true
			}
		}
	}
	return false
}
