package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newAssignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Manage weekly assignments",
	}

	cmd.AddCommand(
		newAssignAddCmd(app),
		newAssignWizardCmd(app),
		newAssignUpdateCmd(app),
		newAssignRemoveCmd(app),
		newAssignListCmd(app),
		newAssignBulkCmd(app),
	)

	return cmd
}

func newAssignAddCmd(app *App) *cobra.Command {
	var project, employee, week, notes string
	var hours float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Assign an employee to a project for one week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			employeeID, err := resolveEmployeeID(ctx, app, employee)
			if err != nil {
				return err
			}
			wk, err := parseWeek(week)
			if err != nil {
				return err
			}

			a, err := app.Allocations.CreateAssignment(ctx, projectID, employeeID, wk, hours, notes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %sh for week of %s (%s)\n",
				formatHoursPlain(a.AssignedHours), formatter.Week(a.WeekStart), a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD, snapped to Monday)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours for the week")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newAssignUpdateCmd(app *App) *cobra.Command {
	var notes string
	var hours float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change an assignment's hours or notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Allocations.UpdateAssignment(context.Background(), args[0], hours, notes); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated assignment %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours for the week")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-text notes")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newAssignRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.Allocations.DeleteAssignment(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No assignment with ID %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed assignment %s\n", args[0])
			return nil
		},
	}
}

func newAssignListCmd(app *App) *cobra.Command {
	var project, employee, week string
	var csv bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments for a project or employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if (project == "") == (employee == "") {
				return fmt.Errorf("exactly one of --project or --employee is required")
			}
			if csv && project == "" {
				return fmt.Errorf("--csv requires --project")
			}

			var weekFilter *time.Time
			if week != "" {
				wk, werr := parseWeek(week)
				if werr != nil {
					return werr
				}
				weekFilter = &wk
			}

			var views []contract.AssignmentView
			var err error
			if project != "" {
				projectID, rerr := resolveProjectID(ctx, app, project)
				if rerr != nil {
					return rerr
				}
				if csv {
					return app.Export.ExportAssignmentsCSV(ctx, cmd.OutOrStdout(), projectID, weekFilter)
				}
				views, err = app.Allocations.ListAssignmentsByProject(ctx, projectID, weekFilter)
			} else {
				employeeID, rerr := resolveEmployeeID(ctx, app, employee)
				if rerr != nil {
					return rerr
				}
				views, err = app.Allocations.ListAssignmentsByEmployee(ctx, employeeID, weekFilter)
			}
			if err != nil {
				return err
			}

			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No assignments found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatAssignmentList(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&employee, "employee", "", "Employee (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Only one week (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&csv, "csv", false, "Emit CSV instead of the styled table (with --project)")

	return cmd
}

// parseAssignmentItem parses an EMPLOYEE:HOURS[:NOTES] bulk item.
func parseAssignmentItem(ctx context.Context, app *App, raw string) (contract.AssignmentItem, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) < 2 {
		return contract.AssignmentItem{}, fmt.Errorf("invalid item %q, expected EMPLOYEE:HOURS[:NOTES]", raw)
	}
	employeeID, err := resolveEmployeeID(ctx, app, parts[0])
	if err != nil {
		return contract.AssignmentItem{}, err
	}
	hours, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return contract.AssignmentItem{}, fmt.Errorf("invalid hours in item %q: %w", raw, err)
	}
	item := contract.AssignmentItem{EmployeeID: employeeID, Hours: hours}
	if len(parts) == 3 {
		item.Notes = parts[2]
	}
	return item, nil
}

func newAssignBulkCmd(app *App) *cobra.Command {
	var project, week string
	var items []string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Assign many employees to one (project, week), best-effort",
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

			parsed := make([]contract.AssignmentItem, 0, len(items))
			for _, raw := range items {
				item, perr := parseAssignmentItem(ctx, app, raw)
				if perr != nil {
					return perr
				}
				parsed = append(parsed, item)
			}

			result, err := app.Allocations.BulkCreateAssignments(ctx, projectID, wk, parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatBulkResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD, snapped to Monday)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Assignment item EMPLOYEE:HOURS[:NOTES] (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newCalendarCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show assignments as a weekly calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			fromWeek := domain.WeekStart(time.Now())
			var err error
			if from != "" {
				if fromWeek, err = parseWeek(from); err != nil {
					return err
				}
			}
			toWeek := fromWeek.AddDate(0, 0, 7*3)
			if to != "" {
				if toWeek, err = parseWeek(to); err != nil {
					return err
				}
			}

			events, err := app.Allocations.GetCalendarEvents(ctx, fromWeek, toWeek)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatCalendar(events))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First week (YYYY-MM-DD, defaults to this week)")
	cmd.Flags().StringVar(&to, "to", "", "Last week (YYYY-MM-DD, defaults to 4 weeks out)")

	return cmd
}
