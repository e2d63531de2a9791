package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newConflictsCmd(app *App) *cobra.Command {
	var projects []string
	var conflictType, asOf string
	var csv bool

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Detect overallocation and understaffing conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			opts := contract.ConflictOptions{}
			for _, p := range projects {
				id, err := resolveProjectID(ctx, app, p)
				if err != nil {
					return err
				}
				opts.ProjectScope = append(opts.ProjectScope, id)
			}
			switch conflictType {
			case "":
			case "overallocated":
				opts.Types = []domain.ConflictType{domain.ConflictOverallocatedEmployee}
			case "understaffed":
				opts.Types = []domain.ConflictType{domain.ConflictUnderstaffedProject}
			default:
				return fmt.Errorf("invalid --type %q, expected overallocated or understaffed", conflictType)
			}
			if asOf != "" {
				t, err := time.Parse(domain.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of date %q: %w", asOf, err)
				}
				opts.Now = &t
			}

			if csv {
				return app.Export.ExportConflictsCSV(ctx, cmd.OutOrStdout(), opts)
			}

			conflicts, err := app.Conflicts.GetConflicts(ctx, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatConflicts(conflicts))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&projects, "project", nil, "Scope to projects (name or ID, repeatable)")
	cmd.Flags().StringVar(&conflictType, "type", "", "Only one conflict type (overallocated|understaffed)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Anchor the current week (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&csv, "csv", false, "Emit CSV instead of the styled report")

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show quick stats for the current week",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if asOf != "" {
				t, err := time.Parse(domain.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of date %q: %w", asOf, err)
				}
				now = t
			}

			stats, err := app.Conflicts.GetQuickStats(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatQuickStats(stats))
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "as-of", "", "Anchor the current week (YYYY-MM-DD)")

	return cmd
}
