package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
)

func newMatchCmd(app *App) *cobra.Command {
	var project, department, week string
	var skills []string
	var minHours float64

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Rank candidates for a project week by skill and availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			wk, err := parseWeek(week)
			if err != nil {
				return err
			}

			req := contract.SkillMatchRequest{
				ProjectID:         projectID,
				WeekStart:         wk,
				RequestedSkills:   skills,
				MinAvailableHours: minHours,
			}
			if department != "" {
				deptID, rerr := resolveDepartmentID(ctx, app, department)
				if rerr != nil {
					return rerr
				}
				req.DepartmentID = deptID
			}

			// With no explicit skills, search with the project's own
			// required skill set.
			if len(req.RequestedSkills) == 0 {
				required, rerr := app.Matches.GetProjectRequiredSkills(ctx, projectID)
				if rerr != nil {
					return rerr
				}
				req.RequestedSkills = required
			}

			matches, err := app.Matches.FindMatches(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatMatches(matches))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&department, "department", "", "Restrict to one department (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD, snapped to Monday)")
	cmd.Flags().StringSliceVar(&skills, "skill", nil, "Requested skill (repeatable; defaults to the project's skills)")
	cmd.Flags().Float64Var(&minHours, "min-hours", 0, "Minimum free hours a candidate must have")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func newAvailableCmd(app *App) *cobra.Command {
	var department, week string
	var minHours float64

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Show free capacity in a department for one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			deptID, err := resolveDepartmentID(ctx, app, department)
			if err != nil {
				return err
			}
			wk, err := parseWeek(week)
			if err != nil {
				return err
			}

			views, err := app.Matches.GetAvailableEmployees(ctx, deptID, wk, minHours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatAvailability(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&department, "department", "", "Department (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD, snapped to Monday)")
	cmd.Flags().Float64Var(&minHours, "min-hours", 0, "Minimum free hours to include")
	_ = cmd.MarkFlagRequired("department")
	_ = cmd.MarkFlagRequired("week")

	return cmd
}

func newSkillsCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "skills",
		Short: "List distinct skills across the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			title := "All Skills"
			var skills []string
			var err error
			if project != "" {
				projectID, rerr := resolveProjectID(ctx, app, project)
				if rerr != nil {
					return rerr
				}
				skills, err = app.Matches.GetProjectRequiredSkills(ctx, projectID)
				title = "Project Skills"
			} else {
				skills, err = app.Matches.GetAllSkills(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatSkills(title, skills))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Only skills held in the project's departments")

	return cmd
}
