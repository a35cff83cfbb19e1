package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rosterly/internal/config"
	"rosterly/internal/records"

	"log/slog"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show record counts per collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, store *records.Store, _ *slog.Logger) error {
				stats, courses, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, map[string]any{
						"collections": stats,
						"courses":     courses,
					})
				}

				rows := make([][]string, 0, len(stats))
				for _, entry := range stats {
					rows = append(rows, []string{
						string(entry.Collection),
						fmt.Sprintf("%d", entry.Total),
						fmt.Sprintf("%d", entry.Inactive),
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable(
					[]string{"Collection", "Total", "Inactive"},
					rows,
					[]columnAlignment{alignLeft, alignRight, alignRight},
				))
				fmt.Fprintf(out, "\nCourses: %d\n", courses)
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit counts as JSON")
	return cmd
}
