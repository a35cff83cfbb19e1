package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PutCourse writes a course document at its identifier.
func (s *Store) PutCourse(ctx context.Context, doc CourseDocument) error {
	if doc.ID == "" {
		return errors.New("course document requires an identifier")
	}

	enrollment, err := json.Marshal(doc.Enrollment)
	if err != nil {
		return fmt.Errorf("encode enrollment for %s: %w", doc.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO courses (id, title, cohort, enrollment_json, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             title = excluded.title,
             cohort = excluded.cohort,
             enrollment_json = excluded.enrollment_json,
             updated_at = excluded.updated_at`,
		doc.ID,
		doc.Title,
		doc.Cohort,
		string(enrollment),
		formatTimestamp(doc.CreatedAt),
		formatTimestamp(doc.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put course %s: %w", doc.ID, err)
	}
	return nil
}

// GetCourse fetches a course document; nil when absent.
func (s *Store) GetCourse(ctx context.Context, id string) (*CourseDocument, error) {
	var (
		doc        CourseDocument
		enrollment string
		created    string
		updated    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, cohort, enrollment_json, created_at, updated_at FROM courses WHERE id = ?", id).
		Scan(&doc.ID, &doc.Title, &doc.Cohort, &enrollment, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get course %s: %w", id, err)
	}

	if enrollment != "" {
		if err := json.Unmarshal([]byte(enrollment), &doc.Enrollment); err != nil {
			return nil, fmt.Errorf("decode enrollment for %s: %w", id, err)
		}
	}
	doc.CreatedAt = parseTimestamp(created)
	doc.UpdatedAt = parseTimestamp(updated)
	return &doc, nil
}

// ListCourseIDs returns every key in the courses table, malformed keys
// included, for sequential allocation and audits.
func (s *Store) ListCourseIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM courses ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list course ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan course id: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course ids: %w", err)
	}
	return out, nil
}
