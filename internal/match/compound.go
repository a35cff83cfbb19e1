package match

import (
	"strings"

	"rosterly/internal/naming"
)

// GivenNameMatches reports whether two given names plausibly refer to the
// same person. Containment in either direction covers truncated or expanded
// usage ("moh" in an email against "mohammed" on file).
func GivenNameMatches(a, b string) bool {
	na := naming.Normalize(dotsToSpaces(a))
	nb := naming.Normalize(dotsToSpaces(b))
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// FamilyNameMatches reports whether two family names match once internal
// whitespace is stripped. Equality, containment in either direction, or any
// single token of one side equalling the other side's compacted form all
// count, so a compound surname written "Bint Zabir" on file matches
// "bintzabir" from an email and vice versa.
func FamilyNameMatches(a, b string) bool {
	na := naming.Normalize(dotsToSpaces(a))
	nb := naming.Normalize(dotsToSpaces(b))
	ca := naming.Compact(na)
	cb := naming.Compact(nb)
	if ca == "" || cb == "" {
		return false
	}
	if ca == cb || strings.Contains(ca, cb) || strings.Contains(cb, ca) {
		return true
	}
	for _, token := range strings.Fields(na) {
		if token == cb {
			return true
		}
	}
	for _, token := range strings.Fields(nb) {
		if token == ca {
			return true
		}
	}
	return false
}

// CompoundMatches requires both the given and family predicates to pass.
func CompoundMatches(incoming naming.NormalizedName, storedFirst, storedLast string) bool {
	return GivenNameMatches(incoming.Given, storedFirst) &&
		FamilyNameMatches(incoming.Family, storedLast)
}

// dotsToSpaces opens up email-derived segments such as "bin.yusuf" so they
// compare token-wise against stored names.
func dotsToSpaces(s string) string {
	return strings.ReplaceAll(s, ".", " ")
}
