package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rosterly/internal/config"
	"rosterly/internal/identity"
	"rosterly/internal/logging"
	"rosterly/internal/records"

	"log/slog"
)

func newArchiveCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <person-id>",
		Short: "Mark a person record inactive in both collections",
		Long: `Archive a person by identifier. The record stays in the store for history
but is flagged inactive in its primary collection and the index collection.
Archived records still participate in matching so re-imports resolve to the
same identity instead of minting a duplicate.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			prefix, _, err := identity.Parse(id)
			if err != nil {
				return fmt.Errorf("invalid identifier %q: %w", id, err)
			}
			if prefix == identity.PrefixCourse {
				return fmt.Errorf("%q is a course identifier; only people can be archived", id)
			}

			return ctx.withStore(func(cfg *config.Config, store *records.Store, logger *slog.Logger) error {
				primary := records.CollectionStudents
				if prefix == identity.PrefixFaculty {
					primary = records.CollectionFaculty
				}

				for _, collection := range []records.Collection{primary, records.CollectionPeople} {
					if err := store.ArchivePerson(cmd.Context(), collection, id); err != nil {
						return err
					}
				}
				logger.Info("person archived", logging.String("person_id", id))
				fmt.Fprintf(cmd.OutOrStdout(), "Archived %s\n", id)
				return nil
			})
		},
	}
	return cmd
}
