package identity_test

import (
	"testing"

	"rosterly/internal/identity"
)

func TestParseAcceptsWellFormedIdentifiers(t *testing.T) {
	cases := []struct {
		raw    string
		prefix identity.Prefix
		number int
	}{
		{"TS000001", identity.PrefixStudent, 1},
		{"TL999999", identity.PrefixFaculty, 999999},
		{"TC000100", identity.PrefixCourse, 100},
	}
	for _, tc := range cases {
		prefix, number, err := identity.Parse(tc.raw)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", tc.raw, err)
		}
		if prefix != tc.prefix || number != tc.number {
			t.Fatalf("Parse(%q) = %v/%d, want %v/%d", tc.raw, prefix, number, tc.prefix, tc.number)
		}
	}
}

func TestParseRejectsMalformedIdentifiers(t *testing.T) {
	malformed := []string{
		"",
		"TS1234",
		"TS1234567",
		"XX123456",
		"TSABCDEF",
		"TS12345a",
		"TS-12345",
		"ts123456",
		"TS 23456",
	}
	for _, raw := range malformed {
		if _, _, err := identity.Parse(raw); err == nil {
			t.Fatalf("Parse(%q) should fail", raw)
		}
		if identity.Valid(raw) {
			t.Fatalf("Valid(%q) should be false", raw)
		}
	}
}

func TestFormatZeroPads(t *testing.T) {
	if got := identity.Format(identity.PrefixStudent, 42); got != "TS000042" {
		t.Fatalf("Format = %q, want TS000042", got)
	}
}

func TestHasPrefix(t *testing.T) {
	if !identity.HasPrefix("TS123456", identity.PrefixStudent) {
		t.Fatal("TS123456 should carry the student prefix")
	}
	if identity.HasPrefix("TL123456", identity.PrefixStudent) {
		t.Fatal("TL123456 should not carry the student prefix")
	}
	if identity.HasPrefix("garbage", identity.PrefixStudent) {
		t.Fatal("malformed identifier should not carry any prefix")
	}
}
