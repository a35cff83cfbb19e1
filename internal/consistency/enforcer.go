package consistency

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"rosterly/internal/logging"
	"rosterly/internal/records"
)

// ErrInvariantViolation marks an identity that matching accepted but that no
// collection actually holds. Fabricating a replacement would hide the logic
// error, so the enforcer refuses and reports instead.
var ErrInvariantViolation = errors.New("matched identity absent from both collections")

// Mirror is the slice of the record store the enforcer needs.
type Mirror interface {
	GetPerson(ctx context.Context, collection records.Collection, id string) (*records.PersonRecord, error)
	MergePerson(ctx context.Context, collection records.Collection, rec records.PersonRecord) (bool, error)
}

// RepairReport describes what EnsurePresence found and did.
type RepairReport struct {
	ID             string
	PrimaryPresent bool
	IndexPresent   bool
	Backfilled     []records.Collection
}

// Repaired reports whether any write happened.
func (r RepairReport) Repaired() bool {
	return len(r.Backfilled) > 0
}

// Enforcer repairs dual-store presence violations.
type Enforcer struct {
	mirror Mirror
	logger *slog.Logger
}

// NewEnforcer constructs an enforcer over the mirror.
func NewEnforcer(mirror Mirror, logger *slog.Logger) *Enforcer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Enforcer{mirror: mirror, logger: logger}
}

// EnsurePresence verifies the identity exists in both its primary collection
// and the index collection, backfilling whichever side is missing. Calling
// it again on a consistent identity writes nothing.
func (e *Enforcer) EnsurePresence(ctx context.Context, canonical records.PersonRecord) (RepairReport, error) {
	report := RepairReport{ID: canonical.ID}

	primary, err := records.PrimaryFor(canonical.Role)
	if err != nil {
		return report, err
	}

	primaryRec, err := e.mirror.GetPerson(ctx, primary, canonical.ID)
	if err != nil {
		return report, fmt.Errorf("check %s presence: %w", primary, err)
	}
	indexRec, err := e.mirror.GetPerson(ctx, records.CollectionPeople, canonical.ID)
	if err != nil {
		return report, fmt.Errorf("check index presence: %w", err)
	}
	report.PrimaryPresent = primaryRec != nil
	report.IndexPresent = indexRec != nil

	if primaryRec != nil && indexRec != nil {
		return report, nil
	}
	if primaryRec == nil && indexRec == nil {
		return report, fmt.Errorf("identity %s: %w", canonical.ID, ErrInvariantViolation)
	}

	source := canonical
	if primaryRec != nil {
		source = *primaryRec
	} else if indexRec != nil {
		source = *indexRec
	}
	minimal := minimalRecord(source)

	missing := primary
	if primaryRec != nil {
		missing = records.CollectionPeople
	}

	e.logger.Warn("backfilling missing mirror record",
		logging.String("id", canonical.ID),
		logging.String("collection", string(missing)))

	if _, err := e.mirror.MergePerson(ctx, missing, minimal); err != nil {
		return report, fmt.Errorf("backfill %s in %s: %w", canonical.ID, missing, err)
	}
	report.Backfilled = append(report.Backfilled, missing)
	return report, nil
}

// minimalRecord reconstructs just enough of a person to restore the mirror:
// role, names split from the known display name, active, fresh updatedAt.
// Merge-write semantics keep it from clobbering anything already stored.
func minimalRecord(source records.PersonRecord) records.PersonRecord {
	first, last := source.FirstName, source.LastName
	if first == "" && last == "" {
		first, last = splitDisplayName(source.DisplayName)
	}
	display := source.DisplayName
	if display == "" {
		display = strings.TrimSpace(first + " " + last)
	}
	return records.PersonRecord{
		ID:          source.ID,
		DisplayName: display,
		FirstName:   first,
		LastName:    last,
		Role:        source.Role,
		Cohort:      source.Cohort,
		Active:      true,
		UpdatedAt:   time.Now().UTC(),
	}
}

func splitDisplayName(display string) (string, string) {
	fields := strings.Fields(display)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
