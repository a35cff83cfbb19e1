package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const personColumns = "id, display_name, first_name, last_name, role, contact_email, date_of_birth, guardians_json, cohort, active, created_at, updated_at"

func scanPerson(scanner interface{ Scan(dest ...any) error }) (*PersonRecord, error) {
	var (
		rec       PersonRecord
		role      string
		guardians string
		active    int64
		created   string
		updated   string
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.DisplayName,
		&rec.FirstName,
		&rec.LastName,
		&role,
		&rec.ContactEmail,
		&rec.DateOfBirth,
		&guardians,
		&rec.Cohort,
		&active,
		&created,
		&updated,
	); err != nil {
		return nil, err
	}

	rec.Role = Role(role)
	rec.Active = active != 0
	if guardians != "" {
		if err := json.Unmarshal([]byte(guardians), &rec.Guardians); err != nil {
			return nil, fmt.Errorf("decode guardians for %s: %w", rec.ID, err)
		}
	}
	rec.CreatedAt = parseTimestamp(created)
	rec.UpdatedAt = parseTimestamp(updated)
	return &rec, nil
}

func parseTimestamp(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts
	}
	return time.Time{}
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return time.Now().UTC().Format(time.RFC3339Nano)
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func encodeGuardians(guardians []string) (string, error) {
	if len(guardians) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(guardians)
	if err != nil {
		return "", fmt.Errorf("encode guardians: %w", err)
	}
	return string(data), nil
}

// GetPerson fetches a document by identifier. Absence is not an error; the
// record pointer is nil when no document exists at the key.
func (s *Store) GetPerson(ctx context.Context, collection Collection, id string) (*PersonRecord, error) {
	table, err := personTable(collection)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		"SELECT "+personColumns+" FROM "+table+" WHERE id = ?", id)
	rec, err := scanPerson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get person %s from %s: %w", id, table, err)
	}
	return rec, nil
}

// PutPerson writes a full document at its identifier, replacing any existing
// document at that key.
func (s *Store) PutPerson(ctx context.Context, collection Collection, rec PersonRecord) error {
	table, err := personTable(collection)
	if err != nil {
		return err
	}
	if rec.ID == "" {
		return errors.New("person record requires an identifier")
	}

	guardians, err := encodeGuardians(rec.Guardians)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO `+table+` (`+personColumns+`)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             display_name = excluded.display_name,
             first_name = excluded.first_name,
             last_name = excluded.last_name,
             role = excluded.role,
             contact_email = excluded.contact_email,
             date_of_birth = excluded.date_of_birth,
             guardians_json = excluded.guardians_json,
             cohort = excluded.cohort,
             active = excluded.active,
             updated_at = excluded.updated_at`,
		rec.ID,
		rec.DisplayName,
		rec.FirstName,
		rec.LastName,
		string(rec.Role),
		rec.ContactEmail,
		rec.DateOfBirth,
		guardians,
		rec.Cohort,
		boolToInt(rec.Active),
		formatTimestamp(rec.CreatedAt),
		formatTimestamp(rec.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put person %s into %s: %w", rec.ID, table, err)
	}
	return nil
}

// MergePerson backfills only the fields the stored document leaves empty.
// When no document exists at the key, the incoming record is inserted whole.
// The boolean reports whether anything was written, so callers can verify
// repair idempotence.
func (s *Store) MergePerson(ctx context.Context, collection Collection, rec PersonRecord) (bool, error) {
	existing, err := s.GetPerson(ctx, collection, rec.ID)
	if err != nil {
		return false, err
	}
	if existing == nil {
		if err := s.PutPerson(ctx, collection, rec); err != nil {
			return false, err
		}
		return true, nil
	}

	merged := *existing
	changed := false
	fill := func(target *string, incoming string) {
		if *target == "" && incoming != "" {
			*target = incoming
			changed = true
		}
	}
	fill(&merged.DisplayName, rec.DisplayName)
	fill(&merged.FirstName, rec.FirstName)
	fill(&merged.LastName, rec.LastName)
	fill(&merged.ContactEmail, rec.ContactEmail)
	fill(&merged.DateOfBirth, rec.DateOfBirth)
	fill(&merged.Cohort, rec.Cohort)
	if merged.Role == "" && rec.Role != "" {
		merged.Role = rec.Role
		changed = true
	}
	if len(merged.Guardians) == 0 && len(rec.Guardians) > 0 {
		merged.Guardians = append([]string{}, rec.Guardians...)
		changed = true
	}

	if !changed {
		return false, nil
	}

	merged.UpdatedAt = time.Now().UTC()
	if err := s.PutPerson(ctx, collection, merged); err != nil {
		return false, err
	}
	return true, nil
}

// ListPersons scans every document in a collection. Matching is a
// brute-force pass over this list; the interface boundary in the match
// package exists so an indexed lookup can replace the scan without touching
// matching policy.
func (s *Store) ListPersons(ctx context.Context, collection Collection) ([]PersonRecord, error) {
	table, err := personTable(collection)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+personColumns+" FROM "+table+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []PersonRecord
	for rows.Next() {
		rec, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// ArchivePerson marks a document inactive. Person documents are never hard
// deleted by the engine.
func (s *Store) ArchivePerson(ctx context.Context, collection Collection, id string) error {
	table, err := personTable(collection)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx,
		"UPDATE "+table+" SET active = 0, updated_at = ? WHERE id = ?",
		formatTimestamp(time.Time{}), id)
	if err != nil {
		return fmt.Errorf("archive %s in %s: %w", id, table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("archive %s in %s: %w", id, table, err)
	}
	if affected == 0 {
		return fmt.Errorf("archive %s in %s: no such document", id, table)
	}
	return nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
