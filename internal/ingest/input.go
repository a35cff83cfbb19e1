package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RosterRecord is one flat tabular input row, column name to value.
type RosterRecord map[string]string

// ReadRosterCSV parses tabular input whose first row names the columns.
// Column names are preserved verbatim; the alias table decides which
// spelling wins later.
func ReadRosterCSV(r io.Reader) ([]RosterRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Exports pad or truncate rows inconsistently; cell counts are not
	// trustworthy. Extra cells are dropped, missing columns stay blank.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []RosterRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		record := make(RosterRecord, len(header))
		for i, value := range row {
			if i >= len(header) || header[i] == "" {
				continue
			}
			record[header[i]] = strings.TrimSpace(value)
		}
		out = append(out, record)
	}
	return out, nil
}

// EmailGroup is a cohort label with the email addresses listed under it.
type EmailGroup struct {
	Cohort string
	Emails []string
}

// ReadEmailGroups parses a line-oriented grouped list: a line ending in ":"
// starts a cohort group, every following non-blank line is one address.
// Lines starting with "#" are comments.
func ReadEmailGroups(r io.Reader) ([]EmailGroup, error) {
	scanner := bufio.NewScanner(r)
	var groups []EmailGroup
	current := -1

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasSuffix(line, ":") {
			groups = append(groups, EmailGroup{Cohort: strings.TrimSpace(strings.TrimSuffix(line, ":"))})
			current = len(groups) - 1
			continue
		}
		if current < 0 {
			groups = append(groups, EmailGroup{})
			current = 0
		}
		groups[current].Emails = append(groups[current].Emails, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read email list: %w", err)
	}
	return groups, nil
}
