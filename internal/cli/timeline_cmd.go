package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var start string
	var weeks int
	var csv bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show rolling department capacity over the coming weeks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			req := contract.TimelineRequest{WeekCount: weeks}
			if start != "" {
				wk, err := parseWeek(start)
				if err != nil {
					return err
				}
				req.StartWeek = &wk
			}

			if csv {
				return app.Export.ExportTimelineCSV(ctx, cmd.OutOrStdout(), req)
			}

			entries, err := app.Timeline.GetResourceTimeline(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTimeline(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First week (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Number of weeks, 1-52 (default 12)")
	cmd.Flags().BoolVar(&csv, "csv", false, "Emit CSV instead of the styled view")

	return cmd
}
