package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/spf13/cobra"
)

func newRequireCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "require",
		Short: "Manage per-week labor requirements",
	}

	cmd.AddCommand(
		newRequireSetCmd(app),
		newRequireListCmd(app),
		newRequireBulkCmd(app),
		newRequireRemoveCmd(app),
	)

	return cmd
}

func newRequireSetCmd(app *App) *cobra.Command {
	var project, department, week string
	var hours float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set required hours for a (project, department, week)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			deptID, err := resolveDepartmentID(ctx, app, department)
			if err != nil {
				return err
			}
			wk, err := parseWeek(week)
			if err != nil {
				return err
			}

			created, err := app.Allocations.SaveLaborRequirement(ctx, projectID, deptID, wk, hours)
			if err != nil {
				return err
			}
			verb := "Updated"
			if created {
				verb = "Set"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s requirement: %sh for week of %s\n",
				verb, formatHoursPlain(hours), formatter.Week(wk))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&department, "department", "", "Department (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Week (YYYY-MM-DD, snapped to Monday)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Required hours")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("department")
	_ = cmd.MarkFlagRequired("week")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}

func newRequireListCmd(app *App) *cobra.Command {
	var project, week string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a project's requirements with staffing coverage",
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

			views, err := app.Allocations.GetLaborRequirements(ctx, projectID, weekFilter)
			if err != nil {
				return err
			}
			if len(views) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No requirements found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatRequirementList(views))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringVar(&week, "week", "", "Only one week (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// parseRequirementItem parses a DEPARTMENT:WEEK:HOURS bulk item.
func parseRequirementItem(ctx context.Context, app *App, raw string) (contract.RequirementItem, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return contract.RequirementItem{}, fmt.Errorf("invalid item %q, expected DEPARTMENT:WEEK:HOURS", raw)
	}
	deptID, err := resolveDepartmentID(ctx, app, parts[0])
	if err != nil {
		return contract.RequirementItem{}, err
	}
	wk, err := parseWeek(parts[1])
	if err != nil {
		return contract.RequirementItem{}, err
	}
	hours, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return contract.RequirementItem{}, fmt.Errorf("invalid hours in item %q: %w", raw, err)
	}
	return contract.RequirementItem{DepartmentID: deptID, WeekStart: wk, RequiredHours: hours}, nil
}

func newRequireBulkCmd(app *App) *cobra.Command {
	var project string
	var items []string

	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Save many requirements for one project, best-effort",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			parsed := make([]contract.RequirementItem, 0, len(items))
			for _, raw := range items {
				item, perr := parseRequirementItem(ctx, app, raw)
				if perr != nil {
					return perr
				}
				parsed = append(parsed, item)
			}

			result, err := app.Allocations.BulkSaveLaborRequirements(ctx, projectID, parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatBulkResult(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project (name or ID)")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Requirement item DEPARTMENT:WEEK:HOURS (repeatable)")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("item")

	return cmd
}

func newRequireRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a requirement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := app.Allocations.DeleteLaborRequirement(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "No requirement with ID %s\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed requirement %s\n", args[0])
			return nil
		},
	}
}
