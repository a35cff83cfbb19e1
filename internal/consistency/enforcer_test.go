package consistency_test

import (
	"context"
	"errors"
	"testing"

	"rosterly/internal/consistency"
	"rosterly/internal/records"
	"rosterly/internal/testsupport"
)

func TestEnsurePresenceNoOpWhenConsistent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	rec := testsupport.Student("TS000001", "Ali", "Khan")
	testsupport.SeedPerson(t, store, rec)

	enforcer := consistency.NewEnforcer(store, nil)
	report, err := enforcer.EnsurePresence(context.Background(), rec)
	if err != nil {
		t.Fatalf("EnsurePresence failed: %v", err)
	}
	if report.Repaired() {
		t.Fatalf("consistent identity should need no repair: %+v", report)
	}
	if !report.PrimaryPresent || !report.IndexPresent {
		t.Fatalf("presence flags wrong: %+v", report)
	}
}

func TestEnsurePresenceBackfillsMissingIndex(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := testsupport.Student("TS000002", "Sara", "Khan")
	rec.Cohort = "grade3"
	if err := store.PutPerson(ctx, records.CollectionStudents, rec); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	report, err := enforcer.EnsurePresence(ctx, rec)
	if err != nil {
		t.Fatalf("EnsurePresence failed: %v", err)
	}
	if !report.Repaired() {
		t.Fatal("expected index backfill")
	}

	mirrored, err := store.GetPerson(ctx, records.CollectionPeople, "TS000002")
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if mirrored == nil {
		t.Fatal("index record missing after repair")
	}
	if !mirrored.Active {
		t.Fatal("backfilled record should be active")
	}
	if mirrored.FirstName != "Sara" || mirrored.LastName != "Khan" {
		t.Fatalf("backfilled names wrong: %+v", mirrored)
	}
}

func TestEnsurePresenceBackfillsMissingPrimary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := testsupport.Student("TS000003", "Omar", "Yusuf")
	if err := store.PutPerson(ctx, records.CollectionPeople, rec); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	report, err := enforcer.EnsurePresence(ctx, rec)
	if err != nil {
		t.Fatalf("EnsurePresence failed: %v", err)
	}
	if len(report.Backfilled) != 1 || report.Backfilled[0] != records.CollectionStudents {
		t.Fatalf("expected students backfill, got %+v", report)
	}

	primary, err := store.GetPerson(ctx, records.CollectionStudents, "TS000003")
	if err != nil || primary == nil {
		t.Fatalf("primary record missing after repair: %v", err)
	}
}

func TestEnsurePresenceDoesNotClobberExistingFields(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.Student("TS000004", "Lina", "Hadid")
	stored.ContactEmail = "lina@stored.example"
	if err := store.PutPerson(ctx, records.CollectionStudents, stored); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}
	partial := testsupport.Student("TS000004", "", "")
	partial.DisplayName = "Lina Hadid"
	if err := store.PutPerson(ctx, records.CollectionPeople, partial); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	if _, err := enforcer.EnsurePresence(ctx, stored); err != nil {
		t.Fatalf("EnsurePresence failed: %v", err)
	}

	got, err := store.GetPerson(ctx, records.CollectionStudents, "TS000004")
	if err != nil {
		t.Fatalf("GetPerson failed: %v", err)
	}
	if got.ContactEmail != "lina@stored.example" {
		t.Fatalf("repair clobbered stored email: %q", got.ContactEmail)
	}
}

func TestEnsurePresenceIdempotent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	rec := testsupport.Student("TS000005", "Idris", "Aman")
	if err := store.PutPerson(ctx, records.CollectionStudents, rec); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	first, err := enforcer.EnsurePresence(ctx, rec)
	if err != nil {
		t.Fatalf("first EnsurePresence failed: %v", err)
	}
	if !first.Repaired() {
		t.Fatal("first call should repair")
	}

	second, err := enforcer.EnsurePresence(ctx, rec)
	if err != nil {
		t.Fatalf("second EnsurePresence failed: %v", err)
	}
	if second.Repaired() {
		t.Fatalf("second call should write nothing: %+v", second)
	}
}

func TestEnsurePresenceRefusesToFabricate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)

	enforcer := consistency.NewEnforcer(store, nil)
	_, err := enforcer.EnsurePresence(context.Background(), testsupport.Student("TS000006", "Ghost", "Record"))
	if !errors.Is(err, consistency.ErrInvariantViolation) {
		t.Fatalf("want ErrInvariantViolation, got %v", err)
	}

	// The violation must not be papered over with a fabricated identity.
	got, getErr := store.GetPerson(context.Background(), records.CollectionStudents, "TS000006")
	if getErr != nil {
		t.Fatalf("GetPerson failed: %v", getErr)
	}
	if got != nil {
		t.Fatal("enforcer fabricated a record for a missing identity")
	}
}

func TestAuditFindsMalformedAndDrifted(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	testsupport.SeedPerson(t, store, testsupport.Student("TS000007", "Ali", "Khan"))
	// Drifted: primary only.
	if err := store.PutPerson(ctx, records.CollectionStudents, testsupport.Student("TS000008", "Sara", "Khan")); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}
	// Malformed key.
	legacy := testsupport.Student("legacy-9", "Old", "Import")
	if err := store.PutPerson(ctx, records.CollectionStudents, legacy); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	report, err := enforcer.Audit(ctx, store, false)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if len(report.Malformed) != 1 || report.Malformed[0].ID != "legacy-9" {
		t.Fatalf("unexpected malformed list: %+v", report.Malformed)
	}
	if len(report.Drifted) != 1 || report.Drifted[0].Record.ID != "TS000008" {
		t.Fatalf("unexpected drift list: %+v", report.Drifted)
	}
	if report.Repaired != 0 {
		t.Fatalf("repair not requested but %d repairs reported", report.Repaired)
	}
}

func TestAuditRepairHealsDrift(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	if err := store.PutPerson(ctx, records.CollectionStudents, testsupport.Student("TS000009", "Hana", "Rafiq")); err != nil {
		t.Fatalf("PutPerson failed: %v", err)
	}

	enforcer := consistency.NewEnforcer(store, nil)
	report, err := enforcer.Audit(ctx, store, true)
	if err != nil {
		t.Fatalf("Audit failed: %v", err)
	}
	if report.Repaired != 1 {
		t.Fatalf("repaired = %d, want 1", report.Repaired)
	}

	mirrored, err := store.GetPerson(ctx, records.CollectionPeople, "TS000009")
	if err != nil || mirrored == nil {
		t.Fatalf("drifted identity not healed: %v", err)
	}

	// Second audit finds nothing to do.
	again, err := enforcer.Audit(ctx, store, true)
	if err != nil {
		t.Fatalf("second Audit failed: %v", err)
	}
	if len(again.Drifted) != 0 || again.Repaired != 0 {
		t.Fatalf("audit should be clean after repair: %+v", again)
	}
}
