package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// OutcomeStatus is the terminal state of one input record.
type OutcomeStatus string

const (
	OutcomeCreated OutcomeStatus = "created"
	OutcomeMatched OutcomeStatus = "matched"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeError   OutcomeStatus = "error"
)

// Outcome records how a single input record resolved, for audit.
type Outcome struct {
	Input      string        `json:"input"`
	Cohort     string        `json:"cohort,omitempty"`
	Status     OutcomeStatus `json:"status"`
	PersonID   string        `json:"person_id,omitempty"`
	MatchType  string        `json:"match_type,omitempty"`
	Confidence int           `json:"confidence"`
	Reasons    []string      `json:"reasons,omitempty"`
	Ambiguous  bool          `json:"ambiguous,omitempty"`
	Candidates []string      `json:"candidates,omitempty"`
	Error      string        `json:"error,omitempty"`
	ErrorKind  Kind          `json:"error_kind,omitempty"`
}

// RunReport is the accumulated result of one batch run. It is a value the
// pipeline returns, not a side effect, so it can be asserted on directly.
type RunReport struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	CourseID    string    `json:"course_id,omitempty"`
	Outcomes    []Outcome `json:"outcomes"`
	MalformedID []string  `json:"malformed_ids,omitempty"`
}

// NewRunReport starts a report for a named input source.
func NewRunReport(source string) *RunReport {
	return &RunReport{
		RunID:     uuid.NewString(),
		Source:    source,
		StartedAt: time.Now().UTC(),
	}
}

func (r *RunReport) add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)
}

func (r *RunReport) noteMalformed(ids ...string) {
	for _, id := range ids {
		seen := false
		for _, existing := range r.MalformedID {
			if existing == id {
				seen = true
				break
			}
		}
		if !seen {
			r.MalformedID = append(r.MalformedID, id)
		}
	}
}

func (r *RunReport) finish() {
	r.FinishedAt = time.Now().UTC()
}

// Count returns how many outcomes carry the status.
func (r *RunReport) Count(status OutcomeStatus) int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			n++
		}
	}
	return n
}

// AmbiguousCount returns how many matches were decided by scan order alone.
func (r *RunReport) AmbiguousCount() int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Ambiguous {
			n++
		}
	}
	return n
}

// WriteDiagnostics serializes the full report for audit, one JSON file per
// run under dir, and returns the file path.
func (r *RunReport) WriteDiagnostics(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure report directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("run-%s.json", r.RunID))
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write run report: %w", err)
	}
	return path, nil
}
