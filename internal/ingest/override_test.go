package ingest_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rosterly/internal/ingest"
	"rosterly/internal/overrides"
	"rosterly/internal/records"
	"rosterly/internal/testsupport"
)

func TestManualOverrideCorrectsMatchedRecord(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	ctx := context.Background()

	stored := testsupport.Student("TS000020", "Ali", "Khan")
	stored.ContactEmail = "wrong@domain.example"
	testsupport.SeedPerson(t, store, stored)

	path := filepath.Join(t.TempDir(), "overrides.json")
	table := `[{"id": "TS000020", "email": "ali.khan@domain.example", "cohort": "grade4"}]`
	if err := os.WriteFile(path, []byte(table), 0o644); err != nil {
		t.Fatalf("write override table: %v", err)
	}

	pipeline := ingest.New(store, overrides.NewCatalog(path, nil), cfg, nil)
	report, err := pipeline.ImportRoster(ctx, "Math", "grade3",
		[]ingest.RosterRecord{{"NAME": "Ali Khan"}})
	if err != nil {
		t.Fatalf("ImportRoster failed: %v", err)
	}

	for _, collection := range []records.Collection{records.CollectionStudents, records.CollectionPeople} {
		got, err := store.GetPerson(ctx, collection, "TS000020")
		if err != nil || got == nil {
			t.Fatalf("GetPerson(%s) failed: %v", collection, err)
		}
		if got.ContactEmail != "ali.khan@domain.example" || got.Cohort != "grade4" {
			t.Fatalf("override not applied in %s: %+v", collection, got)
		}
	}

	course, err := store.GetCourse(ctx, report.CourseID)
	if err != nil || course == nil {
		t.Fatalf("course missing: %v", err)
	}
	if course.Enrollment[0].Email != "ali.khan@domain.example" {
		t.Fatalf("enrollment snapshot carries stale email: %+v", course.Enrollment[0])
	}
}

func TestOverrideCatalogAbsentIsNoOp(t *testing.T) {
	pipeline, _ := newPipeline(t)

	report, err := pipeline.ImportRoster(context.Background(), "Math", "grade3",
		[]ingest.RosterRecord{{"NAME": "Ali Khan"}})
	if err != nil {
		t.Fatalf("ImportRoster failed: %v", err)
	}
	if report.Count(ingest.OutcomeCreated) != 1 {
		t.Fatalf("creation should proceed without an override table: %+v", report.Outcomes)
	}
}
