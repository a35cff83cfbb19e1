package records

import (
	"context"
	"fmt"

	"rosterly/internal/identity"
)

// namespaceTables lists every table an identifier prefix must stay
// collision-free across.
func namespaceTables(prefix identity.Prefix) ([]string, error) {
	switch prefix {
	case identity.PrefixStudent:
		return []string{string(CollectionStudents), string(CollectionPeople)}, nil
	case identity.PrefixFaculty:
		return []string{string(CollectionFaculty), string(CollectionPeople)}, nil
	case identity.PrefixCourse:
		return []string{"courses"}, nil
	default:
		return nil, fmt.Errorf("unknown identifier prefix %q", prefix)
	}
}

// IdentifierTaken reports whether a document already exists at the key in
// any store sharing the identifier's prefix namespace. Implements
// identity.Keyspace.
func (s *Store) IdentifierTaken(ctx context.Context, id identity.ID) (bool, error) {
	prefix, _, err := identity.Parse(string(id))
	if err != nil {
		return false, err
	}
	tables, err := namespaceTables(prefix)
	if err != nil {
		return false, err
	}

	for _, table := range tables {
		var count int
		err := s.db.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM "+table+" WHERE id = ?", string(id)).Scan(&count)
		if err != nil {
			return false, fmt.Errorf("check %s for %s: %w", table, id, err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

// ListIdentifiers enumerates every key across the prefix's namespace,
// malformed keys included. Implements identity.SuffixLister.
func (s *Store) ListIdentifiers(ctx context.Context, prefix identity.Prefix) ([]string, error) {
	tables, err := namespaceTables(prefix)
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	var out []string
	for _, table := range tables {
		rows, err := s.db.QueryContext(ctx, "SELECT id FROM "+table+" ORDER BY rowid")
		if err != nil {
			return nil, fmt.Errorf("list %s ids: %w", table, err)
		}
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s id: %w", table, err)
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("iterate %s ids: %w", table, err)
		}
		rows.Close()
	}
	return out, nil
}

// CollectionStats summarizes one collection for audits.
type CollectionStats struct {
	Collection Collection
	Total      int
	Inactive   int
}

// Stats returns document counts for every person collection plus courses.
func (s *Store) Stats(ctx context.Context) ([]CollectionStats, int, error) {
	var stats []CollectionStats
	for _, collection := range []Collection{CollectionStudents, CollectionFaculty, CollectionPeople} {
		var total, inactive int
		table := string(collection)
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count %s: %w", table, err)
		}
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM "+table+" WHERE active = 0").Scan(&inactive); err != nil {
			return nil, 0, fmt.Errorf("count inactive %s: %w", table, err)
		}
		stats = append(stats, CollectionStats{Collection: collection, Total: total, Inactive: inactive})
	}

	var courses int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM courses").Scan(&courses); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return stats, courses, nil
}
