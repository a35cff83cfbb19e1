package identity

import (
	"fmt"
	"strconv"
	"strings"
)

// Prefix is the role namespace an identifier belongs to.
type Prefix string

const (
	PrefixStudent Prefix = "TS"
	PrefixFaculty Prefix = "TL"
	PrefixCourse  Prefix = "TC"
)

const suffixDigits = 6

var allPrefixes = []Prefix{PrefixStudent, PrefixFaculty, PrefixCourse}

// ID is an opaque record identifier of the form <Prefix><6 digits>.
type ID string

// Format builds an identifier from a prefix and numeric suffix.
func Format(prefix Prefix, number int) ID {
	return ID(fmt.Sprintf("%s%0*d", prefix, suffixDigits, number))
}

// Parse splits an identifier into prefix and suffix. A non-nil error marks
// the identifier as malformed; malformed identifiers are excluded from
// matching and surfaced for manual reconciliation, never silently matched.
func Parse(raw string) (Prefix, int, error) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) != len("TS")+suffixDigits {
		return "", 0, fmt.Errorf("identifier %q: wrong length", raw)
	}
	prefix := Prefix(trimmed[:2])
	if !knownPrefix(prefix) {
		return "", 0, fmt.Errorf("identifier %q: unknown prefix %q", raw, string(prefix))
	}
	suffix := trimmed[2:]
	number, err := strconv.Atoi(suffix)
	if err != nil || strings.ContainsAny(suffix, "+- ") {
		return "", 0, fmt.Errorf("identifier %q: non-numeric suffix", raw)
	}
	if number < 0 {
		return "", 0, fmt.Errorf("identifier %q: negative suffix", raw)
	}
	return prefix, number, nil
}

// Valid reports whether raw is a well-formed identifier.
func Valid(raw string) bool {
	_, _, err := Parse(raw)
	return err == nil
}

// HasPrefix reports whether raw is well-formed and carries the given prefix.
func HasPrefix(raw string, prefix Prefix) bool {
	got, _, err := Parse(raw)
	return err == nil && got == prefix
}

func knownPrefix(p Prefix) bool {
	for _, known := range allPrefixes {
		if p == known {
			return true
		}
	}
	return false
}
