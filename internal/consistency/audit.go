package consistency

import (
	"context"
	"fmt"

	"rosterly/internal/identity"
	"rosterly/internal/records"
)

// Auditor is the wider store slice the full-store sweep needs.
type Auditor interface {
	Mirror
	ListPersons(ctx context.Context, collection records.Collection) ([]records.PersonRecord, error)
}

// DriftEntry is one identity present on only one side of the mirror.
type DriftEntry struct {
	Record  records.PersonRecord
	Present records.Collection
	Missing records.Collection
}

// AuditReport summarizes a full-store consistency sweep.
type AuditReport struct {
	Scanned   int
	Malformed []records.PersonRecord
	Drifted   []DriftEntry
	Repaired  int
}

// Audit sweeps every person collection, reporting malformed identifiers and
// one-sided identities. With repair set, each drifted identity is healed via
// EnsurePresence.
func (e *Enforcer) Audit(ctx context.Context, store Auditor, repair bool) (AuditReport, error) {
	report := AuditReport{}

	primaries := []records.Collection{records.CollectionStudents, records.CollectionFaculty}
	indexSeen := map[string]records.PersonRecord{}

	indexPersons, err := store.ListPersons(ctx, records.CollectionPeople)
	if err != nil {
		return report, fmt.Errorf("audit index collection: %w", err)
	}
	report.Scanned += len(indexPersons)
	for _, rec := range indexPersons {
		if !identity.Valid(rec.ID) {
			report.Malformed = append(report.Malformed, rec)
			continue
		}
		indexSeen[rec.ID] = rec
	}

	primarySeen := map[string]struct{}{}
	for _, collection := range primaries {
		persons, err := store.ListPersons(ctx, collection)
		if err != nil {
			return report, fmt.Errorf("audit %s: %w", collection, err)
		}
		report.Scanned += len(persons)
		for _, rec := range persons {
			if !identity.Valid(rec.ID) {
				report.Malformed = append(report.Malformed, rec)
				continue
			}
			primarySeen[rec.ID] = struct{}{}
			if _, ok := indexSeen[rec.ID]; !ok {
				report.Drifted = append(report.Drifted, DriftEntry{
					Record:  rec,
					Present: collection,
					Missing: records.CollectionPeople,
				})
			}
		}
	}

	for id, rec := range indexSeen {
		if _, ok := primarySeen[id]; ok {
			continue
		}
		primary, err := records.PrimaryFor(rec.Role)
		if err != nil {
			// Index-only records without a resolvable role (guardians)
			// have no mirror to enforce.
			continue
		}
		report.Drifted = append(report.Drifted, DriftEntry{
			Record:  rec,
			Present: records.CollectionPeople,
			Missing: primary,
		})
	}

	if repair {
		for _, entry := range report.Drifted {
			if _, err := e.EnsurePresence(ctx, entry.Record); err != nil {
				return report, fmt.Errorf("repair %s: %w", entry.Record.ID, err)
			}
			report.Repaired++
		}
	}

	return report, nil
}
