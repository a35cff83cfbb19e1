package testsupport

import (
	"context"
	"testing"

	"rosterly/internal/config"
	"rosterly/internal/records"
)

// MustOpenStore opens a record store for the config and closes it with the test.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// SeedPerson writes a person into both its primary collection and the index
// collection, the consistent steady state most tests start from.
func SeedPerson(t testing.TB, store *records.Store, rec records.PersonRecord) {
	t.Helper()

	primary, err := records.PrimaryFor(rec.Role)
	if err != nil {
		t.Fatalf("primary collection for %s: %v", rec.Role, err)
	}
	ctx := context.Background()
	if err := store.PutPerson(ctx, primary, rec); err != nil {
		t.Fatalf("seed %s into %s: %v", rec.ID, primary, err)
	}
	if err := store.PutPerson(ctx, records.CollectionPeople, rec); err != nil {
		t.Fatalf("seed %s into people: %v", rec.ID, err)
	}
}

// Student returns a minimal active student record for tests.
func Student(id, first, last string) records.PersonRecord {
	return records.PersonRecord{
		ID:          id,
		DisplayName: first + " " + last,
		FirstName:   first,
		LastName:    last,
		Role:        records.RoleStudent,
		Active:      true,
	}
}
