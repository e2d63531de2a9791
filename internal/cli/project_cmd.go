package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}

	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectInspectCmd(app),
		newProjectUpdateCmd(app),
	)

	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, description, priority, start, end string
	var departments []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			startDate, err := time.Parse(domain.DateLayout, start)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", start, err)
			}
			endDate, err := time.Parse(domain.DateLayout, end)
			if err != nil {
				return fmt.Errorf("invalid end date %q: %w", end, err)
			}

			deptIDs := make([]string, 0, len(departments))
			for _, d := range departments {
				id, rerr := resolveDepartmentID(ctx, app, d)
				if rerr != nil {
					return rerr
				}
				deptIDs = append(deptIDs, id)
			}

			p := &domain.Project{
				Name:          name,
				Description:   description,
				Priority:      domain.Priority(priority),
				DepartmentIDs: deptIDs,
				StartDate:     startDate,
				EndDate:       endDate,
			}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", p.Name, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&departments, "department", nil, "Department (name or ID, repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatProjectList(projects))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive projects")

	return cmd
}

func newProjectInspectCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "inspect ID",
		Short: "Show a project with its requirements and assignments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
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

			requirements, err := app.Allocations.GetLaborRequirements(ctx, projectID, weekFilter)
			if err != nil {
				return err
			}
			assignments, err := app.Allocations.ListAssignmentsByProject(ctx, projectID, weekFilter)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  %s\n", formatter.Bold(p.Name),
				formatter.PriorityBadge(p.Priority), formatter.StatusPill(p.Status))
			if p.Description != "" {
				fmt.Fprintln(out, formatter.Dim(p.Description))
			}
			fmt.Fprintf(out, "%s → %s\n\n", formatter.Week(p.StartDate), formatter.Week(p.EndDate))

			if len(requirements) > 0 {
				fmt.Fprintf(out, "%s\n", formatter.FormatRequirementList(requirements))
			}
			if len(assignments) > 0 {
				fmt.Fprintf(out, "%s\n", formatter.FormatAssignmentList(assignments))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Only one week (YYYY-MM-DD)")

	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var name, description, priority, status, start, end string
	var departments []string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			p, err := app.Projects.GetByID(ctx, projectID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				p.Name = name
			}
			if cmd.Flags().Changed("description") {
				p.Description = description
			}
			if cmd.Flags().Changed("priority") {
				p.Priority = domain.Priority(priority)
			}
			if cmd.Flags().Changed("status") {
				p.Status = domain.ProjectStatus(status)
			}
			if cmd.Flags().Changed("start") {
				startDate, perr := time.Parse(domain.DateLayout, start)
				if perr != nil {
					return fmt.Errorf("invalid start date %q: %w", start, perr)
				}
				p.StartDate = startDate
			}
			if cmd.Flags().Changed("end") {
				endDate, perr := time.Parse(domain.DateLayout, end)
				if perr != nil {
					return fmt.Errorf("invalid end date %q: %w", end, perr)
				}
				p.EndDate = endDate
			}
			if cmd.Flags().Changed("department") {
				deptIDs := make([]string, 0, len(departments))
				for _, d := range departments {
					id, rerr := resolveDepartmentID(ctx, app, d)
					if rerr != nil {
						return rerr
					}
					deptIDs = append(deptIDs, id)
				}
				p.DepartmentIDs = deptIDs
			}

			if err := app.Projects.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|critical)")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|active|on_hold|completed|cancelled)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&departments, "department", nil, "Replace departments (repeatable)")

	return cmd
}
