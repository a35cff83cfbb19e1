package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rosterly/internal/config"
	"rosterly/internal/ingest"
	"rosterly/internal/records"

	"log/slog"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var cohort string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "lookup <name-or-email>",
		Short: "Resolve a name or email against stored records without writing",
		Long: `Run one query through the same matching logic the importers use and show
every candidate with its confidence score. Queries containing "@" take the
email path with compound-name tolerance; everything else is matched as a
name. Nothing is written.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withPipeline(func(cfg *config.Config, pipeline *ingest.Pipeline, _ *records.Store, _ *slog.Logger) error {
				result, err := pipeline.Lookup(cmd.Context(), args[0], cohort)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}

				out := cmd.OutOrStdout()
				if len(result.Candidates) == 0 {
					fmt.Fprintf(out, "No records match %q\n", result.Query)
					return nil
				}

				rows := make([][]string, 0, len(result.Candidates))
				for _, cand := range result.Candidates {
					marker := ""
					if result.Winner != nil && cand.Person.ID == result.Winner.Person.ID {
						marker = "*"
					}
					rows = append(rows, []string{
						marker,
						cand.Person.ID,
						cand.Person.DisplayName,
						cand.Person.Cohort,
						string(cand.Type),
						fmt.Sprintf("%d", cand.Confidence),
						strings.Join(cand.Reasons, "; "),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"", "Person", "Name", "Cohort", "Match", "Confidence", "Reasons"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))

				if result.Ambiguous {
					fmt.Fprintln(out, "\nCandidates are indistinguishable; the winner was picked by scan order")
				}
				fmt.Fprintf(out, "Accepted at threshold %d: %s\n",
					cfg.Matching.ConfidenceThreshold, yesNo(result.Accepted))
				if len(result.Malformed) > 0 {
					fmt.Fprintf(out, "%d stored identifier(s) are malformed and were excluded: %s\n",
						len(result.Malformed), strings.Join(result.Malformed, ", "))
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&cohort, "cohort", "", "Cohort label used to break ties between equal matches")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the lookup result as JSON")
	return cmd
}
