package ingest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"log/slog"

	"rosterly/internal/config"
	"rosterly/internal/consistency"
	"rosterly/internal/identity"
	"rosterly/internal/logging"
	"rosterly/internal/match"
	"rosterly/internal/naming"
	"rosterly/internal/overrides"
	"rosterly/internal/records"
)

// Pipeline resolves input records against the store and accumulates one
// course enrollment per run.
type Pipeline struct {
	store     *records.Store
	matcher   *match.Matcher
	enforcer  *consistency.Enforcer
	allocator *identity.Allocator
	catalog   *overrides.Catalog
	aliases   naming.AliasTable
	cfg       *config.Config
	logger    *slog.Logger
}

// PipelineOption customizes pipeline construction.
type PipelineOption func(*Pipeline)

// WithAllocator replaces the identifier allocator, used by tests to force
// collision and exhaustion behavior deterministically.
func WithAllocator(alloc *identity.Allocator) PipelineOption {
	return func(p *Pipeline) {
		if alloc != nil {
			p.allocator = alloc
		}
	}
}

// New wires a pipeline over an open store. catalog may be nil when no
// override table is configured.
func New(store *records.Store, catalog *overrides.Catalog, cfg *config.Config, logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	p := &Pipeline{
		store:     store,
		matcher:   match.NewMatcher(store, logger),
		enforcer:  consistency.NewEnforcer(store, logger),
		allocator: identity.NewAllocator(store, logger, identity.WithMaxAttempts(cfg.Allocator.MaxAttempts)),
		catalog:   catalog,
		aliases:   naming.DefaultAliases,
		cfg:       cfg,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ImportRoster resolves tabular roster rows and persists a course document
// holding the enrollment. A returned error means the batch aborted and no
// course was committed; the partial report is still returned for context.
func (p *Pipeline) ImportRoster(ctx context.Context, courseTitle, cohort string, rows []RosterRecord) (*RunReport, error) {
	report := NewRunReport(courseTitle)
	defer report.finish()

	var enrollment []records.EnrollmentRecord
	for _, row := range rows {
		outcome, enrolled, err := p.resolveRosterRecord(ctx, row, cohort, report)
		report.add(outcome)
		if err != nil {
			return report, fmt.Errorf("record %q: %w", outcome.Input, err)
		}
		if enrolled != nil {
			enrollment = append(enrollment, *enrolled)
		}
	}

	courseID, err := p.assembleCourse(ctx, courseTitle, cohort, enrollment)
	if err != nil {
		return report, err
	}
	report.CourseID = courseID
	return report, nil
}

// ImportEmails resolves grouped email lists and persists a course document
// holding the enrollment. The per-outcome diagnostics are written by the
// caller via RunReport.WriteDiagnostics.
func (p *Pipeline) ImportEmails(ctx context.Context, courseTitle string, groups []EmailGroup) (*RunReport, error) {
	report := NewRunReport(courseTitle)
	defer report.finish()

	var enrollment []records.EnrollmentRecord
	for _, group := range groups {
		for _, email := range group.Emails {
			outcome, enrolled, err := p.resolveEmail(ctx, email, group.Cohort, report)
			report.add(outcome)
			if err != nil {
				return report, fmt.Errorf("email %q: %w", email, err)
			}
			if enrolled != nil {
				enrollment = append(enrollment, *enrolled)
			}
		}
	}

	courseID, err := p.assembleCourse(ctx, courseTitle, "", enrollment)
	if err != nil {
		return report, err
	}
	report.CourseID = courseID
	return report, nil
}

// resolveRosterRecord runs one row through normalize, match, repair-or-create,
// and enroll. The returned error is non-nil only for batch-aborting failures.
func (p *Pipeline) resolveRosterRecord(ctx context.Context, row RosterRecord, batchCohort string, report *RunReport) (Outcome, *records.EnrollmentRecord, error) {
	name, ok := p.aliases.Resolve(row, "name")
	if !ok {
		return Outcome{
			Status:    OutcomeSkipped,
			Error:     "no name column present",
			ErrorKind: KindInput,
		}, nil, nil
	}

	outcome := Outcome{Input: name}
	cohort := batchCohort
	if rowCohort, ok := p.aliases.Resolve(row, "cohort"); ok {
		cohort = rowCohort
	}
	outcome.Cohort = cohort

	attrs := p.rosterAttributes(row)
	normalized := naming.Normalize(name)

	candidates, malformed, err := p.matcher.FindExact(ctx, records.CollectionStudents, normalized)
	if err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}
	report.noteMalformed(malformedIDs(malformed)...)

	if len(candidates) == 0 {
		return p.createStudent(ctx, outcome, records.PersonRecord{
			DisplayName:  strings.Join(strings.Fields(name), " "),
			FirstName:    firstField(name),
			LastName:     restFields(name),
			Role:         records.RoleStudent,
			ContactEmail: attrs.ContactEmail,
			DateOfBirth:  attrs.DateOfBirth,
			Guardians:    attrs.Guardians,
			Cohort:       cohort,
			Active:       true,
		})
	}

	pick := match.PickWinner(p.logger, candidates, normalized, cohort, p.cfg.Matching.PreferCohort)
	score := match.Score(pick.Winner.Person, attrs)
	p.logger.Info("roster record matched",
		logging.String("name", name),
		logging.String("person_id", pick.Winner.Person.ID),
		logging.String("match_type", string(pick.Winner.Type)),
		logging.Int("confidence", score.Confidence),
		logging.Bool("ambiguous", pick.Ambiguous))

	return p.acceptMatch(ctx, outcome, pick, score)
}

// resolveEmail runs one address through the compound-name path.
func (p *Pipeline) resolveEmail(ctx context.Context, email, cohort string, report *RunReport) (Outcome, *records.EnrollmentRecord, error) {
	outcome := Outcome{Input: email, Cohort: cohort}

	name, err := naming.FromEmail(email)
	if err != nil {
		outcome.Status = OutcomeSkipped
		outcome.Error = err.Error()
		outcome.ErrorKind = KindInput
		return outcome, nil, nil
	}

	candidates, malformed, err := p.matcher.FindCompound(ctx, records.CollectionStudents, name)
	if err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}
	report.noteMalformed(malformedIDs(malformed)...)

	if len(candidates) == 0 {
		given, family := naming.DisplayParts(name)
		return p.createStudent(ctx, outcome, records.PersonRecord{
			DisplayName:  naming.DisplayName(name),
			FirstName:    given,
			LastName:     family,
			Role:         records.RoleStudent,
			ContactEmail: strings.ToLower(strings.TrimSpace(email)),
			Cohort:       cohort,
			Active:       true,
		})
	}

	pick := match.PickWinner(p.logger, candidates, name.Full, cohort, p.cfg.Matching.PreferCohort)
	score := match.Score(pick.Winner.Person, match.Attributes{ContactEmail: email})
	p.logger.Info("email matched",
		logging.String("email", email),
		logging.String("person_id", pick.Winner.Person.ID),
		logging.String("match_type", string(pick.Winner.Type)),
		logging.Int("confidence", score.Confidence),
		logging.Bool("ambiguous", pick.Ambiguous))

	return p.acceptMatch(ctx, outcome, pick, score)
}

// acceptMatch repairs the winner's dual-store presence and enrolls it. The
// matched person's stored profile wins over incoming attributes; only
// structural absence is repaired.
func (p *Pipeline) acceptMatch(ctx context.Context, outcome Outcome, pick match.Pick, score match.ScoreResult) (Outcome, *records.EnrollmentRecord, error) {
	winner := pick.Winner.Person
	outcome.Status = OutcomeMatched
	outcome.PersonID = winner.ID
	outcome.MatchType = string(pick.Winner.Type)
	outcome.Confidence = score.Confidence
	outcome.Reasons = score.Reasons
	outcome.Ambiguous = pick.Ambiguous
	if pick.Ambiguous {
		for _, cand := range pick.Candidates {
			outcome.Candidates = append(outcome.Candidates, cand.Person.ID)
		}
	}

	repair, err := p.enforcer.EnsurePresence(ctx, winner)
	if err != nil {
		kind := Classify(err)
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = kind
		if kind.AbortsBatch() {
			return outcome, nil, err
		}
		p.logger.Error("record failed, batch continues",
			logging.String("person_id", winner.ID),
			logging.Error(err))
		return outcome, nil, nil
	}
	if repair.Repaired() {
		outcome.Reasons = append(outcome.Reasons, "mirror record backfilled")
	}

	if err := p.applyOverride(ctx, &outcome, &winner); err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}

	enrolled := records.EnrollmentRecord{
		PersonID: winner.ID,
		Name:     winner.DisplayName,
		Email:    winner.ContactEmail,
		Cohort:   winner.Cohort,
	}
	return outcome, &enrolled, nil
}

// createStudent mints a fresh identifier and writes the full incoming record
// into both collections.
func (p *Pipeline) createStudent(ctx context.Context, outcome Outcome, rec records.PersonRecord) (Outcome, *records.EnrollmentRecord, error) {
	id, err := p.allocator.Allocate(ctx, identity.PrefixStudent)
	if err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = Classify(err)
		return outcome, nil, err
	}
	rec.ID = string(id)
	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now

	if err := p.store.PutPerson(ctx, records.CollectionStudents, rec); err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}
	if err := p.store.PutPerson(ctx, records.CollectionPeople, rec); err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}

	p.logger.Info("person created",
		logging.String("person_id", rec.ID),
		logging.String("display_name", rec.DisplayName),
		logging.String("cohort", rec.Cohort))

	outcome.Status = OutcomeCreated
	outcome.PersonID = rec.ID
	outcome.Reasons = append(outcome.Reasons, "no existing record matched")

	if err := p.applyOverride(ctx, &outcome, &rec); err != nil {
		outcome.Status = OutcomeError
		outcome.Error = err.Error()
		outcome.ErrorKind = KindStore
		return outcome, nil, err
	}

	enrolled := records.EnrollmentRecord{
		PersonID: rec.ID,
		Name:     rec.DisplayName,
		Email:    rec.ContactEmail,
		Cohort:   rec.Cohort,
	}
	return outcome, &enrolled, nil
}

// applyOverride consults the manual override table for the resolved
// identifier and writes the corrected attributes to both collections.
// Overrides are operator corrections, so they do overwrite stored fields.
// The passed record is updated in place so enrollment snapshots carry the
// corrected values.
func (p *Pipeline) applyOverride(ctx context.Context, outcome *Outcome, person *records.PersonRecord) error {
	entry, found, err := p.catalog.Lookup(person.ID)
	if err != nil {
		return fmt.Errorf("consult override catalog: %w", err)
	}
	if !found {
		return nil
	}

	primary, err := records.PrimaryFor(person.Role)
	if err != nil {
		return err
	}
	for _, collection := range []records.Collection{primary, records.CollectionPeople} {
		stored, err := p.store.GetPerson(ctx, collection, person.ID)
		if err != nil {
			return err
		}
		if stored == nil {
			continue
		}
		if entry.Email != "" {
			stored.ContactEmail = entry.Email
		}
		if entry.Cohort != "" {
			stored.Cohort = entry.Cohort
		}
		if entry.DisplayName != "" {
			stored.DisplayName = entry.DisplayName
		}
		stored.UpdatedAt = time.Now().UTC()
		if err := p.store.PutPerson(ctx, collection, *stored); err != nil {
			return err
		}
	}

	if entry.Email != "" {
		person.ContactEmail = entry.Email
	}
	if entry.Cohort != "" {
		person.Cohort = entry.Cohort
	}
	if entry.DisplayName != "" {
		person.DisplayName = entry.DisplayName
	}

	p.logger.Info("manual override applied", logging.String("person_id", person.ID))
	outcome.Reasons = append(outcome.Reasons, "manual override applied")
	return nil
}

// assembleCourse persists the enrollment accumulator under a sequentially
// allocated course identifier.
func (p *Pipeline) assembleCourse(ctx context.Context, title, cohort string, enrollment []records.EnrollmentRecord) (string, error) {
	id, err := identity.AllocateSequential(ctx, p.store, identity.PrefixCourse)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	doc := records.CourseDocument{
		ID:         string(id),
		Title:      title,
		Cohort:     cohort,
		Enrollment: enrollment,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := p.store.PutCourse(ctx, doc); err != nil {
		return "", err
	}

	p.logger.Info("course document written",
		logging.String("course_id", doc.ID),
		logging.Int("enrollment", len(enrollment)))
	return doc.ID, nil
}

func (p *Pipeline) rosterAttributes(row RosterRecord) match.Attributes {
	attrs := match.Attributes{}
	if parents, ok := p.aliases.Resolve(row, "parents"); ok {
		attrs.Guardians = splitGuardians(parents)
	}
	if email, ok := p.aliases.Resolve(row, "email"); ok {
		attrs.ContactEmail = email
	}
	if dob, ok := p.aliases.Resolve(row, "dob"); ok {
		attrs.DateOfBirth = dob
	}
	return attrs
}

// splitGuardians breaks a free-text guardian cell ("Sara Khan & Omar Khan")
// into individual names.
func splitGuardians(raw string) []string {
	separators := func(r rune) bool { return r == '&' || r == ',' || r == ';' }
	var out []string
	for _, part := range strings.FieldsFunc(raw, separators) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func malformedIDs(recs []records.PersonRecord) []string {
	ids := make([]string, 0, len(recs))
	for _, rec := range recs {
		ids = append(ids, rec.ID)
	}
	return ids
}

func firstField(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func restFields(name string) string {
	fields := strings.Fields(name)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}
