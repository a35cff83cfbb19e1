package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosterly/internal/config"
	"rosterly/internal/consistency"
	"rosterly/internal/records"

	"log/slog"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var repair bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Audit the dual-store mirror and optionally repair drift",
		Long: `Sweep every person collection and report identities present on only one
side of the primary/index mirror, plus records whose stored identifier does
not parse. With --repair, each one-sided identity is backfilled from the side
that exists; existing fields are never overwritten.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *records.Store, logger *slog.Logger) error {
				enforcer := consistency.NewEnforcer(store, logger)
				report, err := enforcer.Audit(cmd.Context(), store, repair)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, report)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scanned %d records\n", report.Scanned)

				if len(report.Drifted) > 0 {
					rows := make([][]string, 0, len(report.Drifted))
					for _, entry := range report.Drifted {
						rows = append(rows, []string{
							entry.Record.ID,
							entry.Record.DisplayName,
							string(entry.Present),
							string(entry.Missing),
						})
					}
					fmt.Fprintln(out, renderTable(
						[]string{"Person", "Name", "Present In", "Missing From"},
						rows,
						nil,
					))
				}

				if len(report.Malformed) > 0 {
					rows := make([][]string, 0, len(report.Malformed))
					for _, rec := range report.Malformed {
						rows = append(rows, []string{rec.ID, rec.DisplayName})
					}
					fmt.Fprintln(out, "\nMalformed identifiers (excluded from matching):")
					fmt.Fprintln(out, renderTable([]string{"Stored ID", "Name"}, rows, nil))
				}

				switch {
				case len(report.Drifted) == 0 && len(report.Malformed) == 0:
					fmt.Fprintln(out, "Store is consistent")
				case repair:
					fmt.Fprintf(out, "Repaired %d of %d drifted identities\n", report.Repaired, len(report.Drifted))
				default:
					fmt.Fprintf(out, "%d drifted identities found; run with --repair to backfill\n", len(report.Drifted))
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Backfill one-sided identities")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the audit report as JSON")
	return cmd
}
