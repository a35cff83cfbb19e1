package match_test

import (
	"testing"

	"rosterly/internal/match"
	"rosterly/internal/naming"
)

func TestGivenNameMatchesContainment(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"sara", "Sara", true},
		{"moh", "Mohammed", true},
		{"Mohammed", "moh", true},
		{"sara", "omar", false},
		{"", "sara", false},
		{"sara", "", false},
	}
	for _, tc := range cases {
		if got := match.GivenNameMatches(tc.a, tc.b); got != tc.want {
			t.Fatalf("GivenNameMatches(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFamilyNameMatchesCompoundSymmetry(t *testing.T) {
	if !match.FamilyNameMatches("Bint Zabir", "bintzabir") {
		t.Fatal("spaced vs compact compound surname should match")
	}
	if !match.FamilyNameMatches("bintzabir", "Bint Zabir") {
		t.Fatal("compact vs spaced compound surname should match")
	}
}

func TestFamilyNameMatchesTokenAgainstCompact(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Khan", "khan", true},
		{"bin.yusuf", "Bin Yusuf", true},
		{"Al Farsi", "alfarsi", true},
		{"Khan", "Hadid", false},
		{"", "khan", false},
	}
	for _, tc := range cases {
		if got := match.FamilyNameMatches(tc.a, tc.b); got != tc.want {
			t.Fatalf("FamilyNameMatches(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestCompoundMatchesRequiresBothPredicates(t *testing.T) {
	name, err := naming.FromEmail("sara.khan@domain.org")
	if err != nil {
		t.Fatalf("FromEmail failed: %v", err)
	}

	if !match.CompoundMatches(name, "Sara", "Khan") {
		t.Fatal("matching given and family names should pass")
	}
	if match.CompoundMatches(name, "Sara", "Hadid") {
		t.Fatal("family mismatch should fail the compound predicate")
	}
	if match.CompoundMatches(name, "Omar", "Khan") {
		t.Fatal("given mismatch should fail the compound predicate")
	}
}
