package naming

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizedName is a canonicalized person name.
type NormalizedName struct {
	// Full is the lowercased, whitespace-collapsed full name.
	Full string
	// Given and Family are populated when the source distinguishes them,
	// such as an email local part. Both are normalized.
	Given  string
	Family string
}

// Normalize lowercases raw, trims it, and collapses internal whitespace runs
// to single spaces. Pure function; no locale-aware folding is performed.
func Normalize(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

// NormalizeName canonicalizes a free-text full name.
func NormalizeName(raw string) NormalizedName {
	return NormalizedName{Full: Normalize(raw)}
}

// FromEmail derives a normalized name from an email address. The local part
// is split on dots: the first segment is the given name, the remaining
// segments (dots preserved) form the family name.
func FromEmail(email string) (NormalizedName, error) {
	trimmed := strings.TrimSpace(strings.ToLower(email))
	local, _, found := strings.Cut(trimmed, "@")
	if !found || local == "" {
		return NormalizedName{}, fmt.Errorf("email %q: no local part", email)
	}

	segments := strings.Split(local, ".")
	given := segments[0]
	family := ""
	if len(segments) > 1 {
		family = strings.Join(segments[1:], ".")
	}

	full := given
	if family != "" {
		full += " " + family
	}
	return NormalizedName{Full: full, Given: given, Family: family}, nil
}

var titleCaser = cases.Title(language.Und)

// DisplayName renders a normalized name for human-facing fields, title-cased.
func DisplayName(name NormalizedName) string {
	if name.Given == "" && name.Family == "" {
		return titleCaser.String(name.Full)
	}
	parts := make([]string, 0, 2)
	if name.Given != "" {
		parts = append(parts, titleCaser.String(name.Given))
	}
	if name.Family != "" {
		parts = append(parts, titleCaser.String(strings.ReplaceAll(name.Family, ".", " ")))
	}
	return strings.Join(parts, " ")
}

// DisplayParts renders the given and family components for storage in
// first/last name fields, title-cased with email dots opened up.
func DisplayParts(name NormalizedName) (string, string) {
	given := titleCaser.String(name.Given)
	family := titleCaser.String(strings.ReplaceAll(name.Family, ".", " "))
	return given, family
}

// Compact strips every internal whitespace run, for compound family-name
// comparison ("Bint Zabir" -> "bintzabir").
func Compact(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), "")
}
