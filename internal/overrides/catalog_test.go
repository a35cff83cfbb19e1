package overrides_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"rosterly/internal/overrides"
)

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "overrides.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLookupFindsEntry(t *testing.T) {
	path := writeCatalog(t, `[{"id": "TS000001", "email": "corrected@school.example"}]`)
	catalog := overrides.NewCatalog(path, nil)

	entry, ok, err := catalog.Lookup("TS000001")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if !ok {
		t.Fatal("expected override to be found")
	}
	if entry.Email != "corrected@school.example" {
		t.Fatalf("email = %q", entry.Email)
	}

	if _, ok, _ := catalog.Lookup("TS999999"); ok {
		t.Fatal("unknown identifier should have no override")
	}
}

func TestNilCatalogAnswersEmpty(t *testing.T) {
	catalog := overrides.NewCatalog("", nil)
	if catalog != nil {
		t.Fatal("empty path should yield nil catalog")
	}
	if _, ok, err := catalog.Lookup("TS000001"); ok || err != nil {
		t.Fatalf("nil catalog lookup = %v/%v", ok, err)
	}
}

func TestMissingFileIsNotAnError(t *testing.T) {
	catalog := overrides.NewCatalog(filepath.Join(t.TempDir(), "absent.json"), nil)
	if _, ok, err := catalog.Lookup("TS000001"); ok || err != nil {
		t.Fatalf("missing file lookup = %v/%v", ok, err)
	}
}

func TestCatalogReloadsOnMtimeChange(t *testing.T) {
	path := writeCatalog(t, `[{"id": "TS000001", "cohort": "grade3"}]`)
	catalog := overrides.NewCatalog(path, nil)

	if _, ok, err := catalog.Lookup("TS000001"); err != nil || !ok {
		t.Fatalf("initial lookup = %v/%v", ok, err)
	}

	if err := os.WriteFile(path, []byte(`[{"id": "TS000002", "cohort": "grade4"}]`), 0o644); err != nil {
		t.Fatalf("rewrite catalog: %v", err)
	}
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("bump mtime: %v", err)
	}

	if _, ok, err := catalog.Lookup("TS000001"); err != nil || ok {
		t.Fatalf("stale entry survived reload: %v/%v", ok, err)
	}
	entry, ok, err := catalog.Lookup("TS000002")
	if err != nil || !ok {
		t.Fatalf("new entry not loaded: %v/%v", ok, err)
	}
	if entry.Cohort != "grade4" {
		t.Fatalf("cohort = %q", entry.Cohort)
	}
}

func TestMalformedCatalogSurfacesError(t *testing.T) {
	path := writeCatalog(t, `{not json]`)
	catalog := overrides.NewCatalog(path, nil)

	if _, _, err := catalog.Lookup("TS000001"); err == nil {
		t.Fatal("expected parse error")
	}
}
