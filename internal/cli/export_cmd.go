package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export allocation data as CSV",
	}

	cmd.AddCommand(
		newExportAssignmentsCmd(app),
		newExportConflictsCmd(app),
		newExportTimelineCmd(app),
	)

	return cmd
}

// exportWriter opens the --out target, or falls back to the command's
// stdout. The returned closer is a no-op for stdout.
func exportWriter(cmd *cobra.Command, out string) (io.Writer, func() error, error) {
	if out == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", out, err)
	}
	return f, f.Close, nil
}

func newExportAssignmentsCmd(app *App) *cobra.Command {
	var project, week, out string

	cmd := &cobra.Command{
		Use:   "assignments",
		Short: "Export a project's assignments",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			var weekFilter *time.Time
			if week != "" {
				wk, werr := parseWeek(week)
				if werr != nil {
					return werr
				}
				weekFilter = &wk
			}

			w, closeFn, err := exportWriter(cmd, out)
			if err != nil {
				return err
			}
			if err := app.Export.ExportAssignmentsCSV(ctx, w, projectID, weekFilter); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Only one week (YYYY-MM-DD)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults to stdout)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

func newExportConflictsCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Export the current conflict report",
		RunE: func(cmd *cobra.Command, args []string) error {
			w, closeFn, err := exportWriter(cmd, out)
			if err != nil {
				return err
			}
			if err := app.Export.ExportConflictsCSV(context.Background(), w, contract.ConflictOptions{}); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults to stdout)")

	return cmd
}

func newExportTimelineCmd(app *App) *cobra.Command {
	var start, out string
	var weeks int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Export the rolling capacity timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.TimelineRequest{WeekCount: weeks}
			if start != "" {
				wk, err := parseWeek(start)
				if err != nil {
					return err
				}
				req.StartWeek = &wk
			}

			w, closeFn, err := exportWriter(cmd, out)
			if err != nil {
				return err
			}
			if err := app.Export.ExportTimelineCSV(context.Background(), w, req); err != nil {
				closeFn()
				return err
			}
			return closeFn()
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First week (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks, 1-52 (default 12)")
	cmd.Flags().StringVar(&out, "out", "", "Output file (defaults to stdout)")

	return cmd
}
