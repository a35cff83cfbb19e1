package naming_test

import (
	"testing"

	"rosterly/internal/naming"
)

func TestNormalizeCollapsesWhitespace(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"  Ali   Khan ", "ali khan"},
		{"SARA\tKHAN", "sara khan"},
		{"", ""},
		{"  ", ""},
		{"Bint  Zabir", "bint zabir"},
	}
	for _, tc := range cases {
		if got := naming.Normalize(tc.raw); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFromEmailSplitsLocalPart(t *testing.T) {
	name, err := naming.FromEmail("Sara.Khan@domain.org")
	if err != nil {
		t.Fatalf("FromEmail failed: %v", err)
	}
	if name.Given != "sara" {
		t.Fatalf("given = %q, want sara", name.Given)
	}
	if name.Family != "khan" {
		t.Fatalf("family = %q, want khan", name.Family)
	}
	if name.Full != "sara khan" {
		t.Fatalf("full = %q, want %q", name.Full, "sara khan")
	}
}

func TestFromEmailPreservesDotsInFamilyName(t *testing.T) {
	name, err := naming.FromEmail("omar.bin.yusuf@domain.org")
	if err != nil {
		t.Fatalf("FromEmail failed: %v", err)
	}
	if name.Given != "omar" {
		t.Fatalf("given = %q, want omar", name.Given)
	}
	if name.Family != "bin.yusuf" {
		t.Fatalf("family = %q, want bin.yusuf", name.Family)
	}
}

func TestFromEmailRejectsNonAddresses(t *testing.T) {
	for _, raw := range []string{"", "no-at-sign", "@domain.org"} {
		if _, err := naming.FromEmail(raw); err == nil {
			t.Fatalf("FromEmail(%q) should fail", raw)
		}
	}
}

func TestDisplayNameTitleCases(t *testing.T) {
	name, err := naming.FromEmail("sara.khan@domain.org")
	if err != nil {
		t.Fatalf("FromEmail failed: %v", err)
	}
	if got := naming.DisplayName(name); got != "Sara Khan" {
		t.Fatalf("DisplayName = %q, want Sara Khan", got)
	}
}

func TestCompactStripsInternalWhitespace(t *testing.T) {
	if got := naming.Compact("Bint Zabir"); got != "bintzabir" {
		t.Fatalf("Compact = %q, want bintzabir", got)
	}
	if got := naming.Compact("bintzabir"); got != "bintzabir" {
		t.Fatalf("Compact = %q, want bintzabir", got)
	}
}

func TestAliasTableResolvesInDeclaredOrder(t *testing.T) {
	table := naming.AliasTable{"name": {"NAME", "name"}}

	record := map[string]string{"NAME": "Ali Khan", "name": "shadowed"}
	value, ok := table.Resolve(record, "name")
	if !ok || value != "Ali Khan" {
		t.Fatalf("Resolve = %q/%v, want Ali Khan/true", value, ok)
	}

	record = map[string]string{"NAME": "  ", "name": "Ali Khan"}
	value, ok = table.Resolve(record, "name")
	if !ok || value != "Ali Khan" {
		t.Fatalf("Resolve should skip blank aliases, got %q/%v", value, ok)
	}

	if _, ok := table.Resolve(map[string]string{}, "name"); ok {
		t.Fatal("Resolve should report absence")
	}
}
