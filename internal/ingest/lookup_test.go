package ingest_test

import (
	"context"
	"testing"

	"rosterly/internal/testsupport"
)

func TestLookupByNameScoresWithoutWriting(t *testing.T) {
	pipeline, store := newPipeline(t)
	ctx := context.Background()

	stored := testsupport.Student("TS000010", "Ali", "Khan")
	stored.Cohort = "grade3"
	testsupport.SeedPerson(t, store, stored)

	result, err := pipeline.Lookup(ctx, "ali khan", "grade3")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result.Winner == nil || result.Winner.Person.ID != "TS000010" {
		t.Fatalf("winner = %+v, want TS000010", result.Winner)
	}
	// Only the name was comparable, so the score sits at the midpoint.
	if result.Winner.Confidence != 50 {
		t.Fatalf("confidence = %d, want 50", result.Winner.Confidence)
	}
	if !result.Accepted {
		t.Fatal("midpoint score meets the default threshold")
	}
}

func TestLookupByEmailUsesCompoundPath(t *testing.T) {
	pipeline, store := newPipeline(t)
	ctx := context.Background()

	stored := testsupport.Student("TS000011", "Omar", "Bin Yusuf")
	stored.ContactEmail = "omar.bin.yusuf@domain.example"
	testsupport.SeedPerson(t, store, stored)

	result, err := pipeline.Lookup(ctx, "omar.bin.yusuf@domain.example", "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result.Winner == nil || result.Winner.Person.ID != "TS000011" {
		t.Fatalf("winner = %+v, want TS000011", result.Winner)
	}
	if result.Winner.Confidence <= 50 {
		t.Fatalf("matching email should lift confidence above the midpoint, got %d", result.Winner.Confidence)
	}
}

func TestLookupBelowThresholdIsNotAccepted(t *testing.T) {
	pipeline, store := newPipeline(t,
		testsupport.WithConfidenceThreshold(80))
	ctx := context.Background()

	testsupport.SeedPerson(t, store, testsupport.Student("TS000012", "Ali", "Khan"))

	result, err := pipeline.Lookup(ctx, "ali khan", "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result.Winner == nil {
		t.Fatal("expected a winner")
	}
	if result.Accepted {
		t.Fatalf("confidence %d must not clear threshold 80", result.Winner.Confidence)
	}
}

func TestLookupNoCandidates(t *testing.T) {
	pipeline, _ := newPipeline(t)

	result, err := pipeline.Lookup(context.Background(), "nobody here", "")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if result.Winner != nil || result.Accepted || len(result.Candidates) != 0 {
		t.Fatalf("empty store must resolve to nothing: %+v", result)
	}
}
