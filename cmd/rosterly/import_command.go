package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"rosterly/internal/config"
	"rosterly/internal/ingest"
	"rosterly/internal/logging"
	"rosterly/internal/records"

	"log/slog"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var cohort string
	var course string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import <roster.csv>",
		Short: "Import a tabular roster and resolve each row to an identity",
		Long: `Import a roster export whose first line names the columns. Each row is
resolved against the existing student records: known students are matched,
unknown ones get a freshly allocated identifier, and the whole batch is
committed as one course enrollment.

A per-run diagnostics file with every match decision is written to the
configured report directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(course)
			if title == "" {
				return fmt.Errorf("--course is required")
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open roster %q: %w", path, err)
			}
			defer file.Close()

			rows, err := ingest.ReadRosterCSV(file)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("roster %q has no data rows", path)
			}

			return ctx.withPipeline(func(cfg *config.Config, pipeline *ingest.Pipeline, _ *records.Store, logger *slog.Logger) error {
				report, runErr := pipeline.ImportRoster(cmd.Context(), title, cohort, rows)
				return finishRun(cmd, cfg, logger, report, runErr, jsonOutput)
			})
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course title for the enrollment batch")
	cmd.Flags().StringVar(&cohort, "cohort", "", "Cohort label applied to rows without their own grade column")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")
	return cmd
}

func newImportEmailsCommand(ctx *commandContext) *cobra.Command {
	var course string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import-emails <groups.txt>",
		Short: "Import grouped email lists and resolve each address to an identity",
		Long: `Import a line-oriented email export: a line ending in ":" starts a cohort
group, every following non-blank line is one address. Names are derived from
the local part of each address and matched against stored students with
compound-name tolerance, so "omar.bin.yusuf@" finds a stored "Omar Bin Yusuf".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(course)
			if title == "" {
				return fmt.Errorf("--course is required")
			}

			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open email list %q: %w", path, err)
			}
			defer file.Close()

			groups, err := ingest.ReadEmailGroups(file)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				return fmt.Errorf("email list %q has no addresses", path)
			}

			return ctx.withPipeline(func(cfg *config.Config, pipeline *ingest.Pipeline, _ *records.Store, logger *slog.Logger) error {
				report, runErr := pipeline.ImportEmails(cmd.Context(), title, groups)
				return finishRun(cmd, cfg, logger, report, runErr, jsonOutput)
			})
		},
	}

	cmd.Flags().StringVar(&course, "course", "", "Course title for the enrollment batch")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")
	return cmd
}

// finishRun writes diagnostics and renders the run summary. The diagnostics
// file is written even for aborted runs so the partial outcomes survive.
func finishRun(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, report *ingest.RunReport, runErr error, jsonOutput bool) error {
	var diagnosticsPath string
	if report != nil {
		path, writeErr := report.WriteDiagnostics(cfg.Paths.ReportDir)
		if writeErr != nil {
			logger.Warn("diagnostics not written", logging.Error(writeErr))
		} else {
			diagnosticsPath = path
		}
	}

	if runErr != nil {
		if diagnosticsPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Partial run report: %s\n", diagnosticsPath)
		}
		return fmt.Errorf("import aborted, no course committed: %w", runErr)
	}

	if jsonOutput {
		return writeJSON(cmd, report)
	}
	renderRunReport(cmd, report, diagnosticsPath)
	return nil
}

func renderRunReport(cmd *cobra.Command, report *ingest.RunReport, diagnosticsPath string) {
	out := cmd.OutOrStdout()

	rows := make([][]string, 0, len(report.Outcomes))
	for _, outcome := range report.Outcomes {
		detail := outcome.Error
		if detail == "" && len(outcome.Reasons) > 0 {
			detail = strings.Join(outcome.Reasons, "; ")
		}
		confidence := ""
		if outcome.Status == ingest.OutcomeMatched {
			confidence = fmt.Sprintf("%d", outcome.Confidence)
		}
		rows = append(rows, []string{
			outcome.Input,
			string(outcome.Status),
			outcome.PersonID,
			confidence,
			yesNo(outcome.Ambiguous),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Input", "Status", "Person", "Confidence", "Ambiguous", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft},
	))

	fmt.Fprintf(out, "\nCourse %s committed: %d matched, %d created, %d skipped\n",
		report.CourseID,
		report.Count(ingest.OutcomeMatched),
		report.Count(ingest.OutcomeCreated),
		report.Count(ingest.OutcomeSkipped))
	if n := report.AmbiguousCount(); n > 0 {
		fmt.Fprintf(out, "%d match(es) were ambiguous; review the run report\n", n)
	}
	if len(report.MalformedID) > 0 {
		fmt.Fprintf(out, "%d stored identifier(s) are malformed and were excluded from matching: %s\n",
			len(report.MalformedID), strings.Join(report.MalformedID, ", "))
	}
	if diagnosticsPath != "" {
		fmt.Fprintf(out, "Run report: %s\n", diagnosticsPath)
	}
}
