package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage staffing templates",
	}

	cmd.AddCommand(
		newTemplateAddCmd(app),
		newTemplateListCmd(app),
		newTemplateShowCmd(app),
		newTemplateFromProjectCmd(app),
		newTemplateInitCmd(app),
		newTemplateDeactivateCmd(app),
	)

	return cmd
}

// parseTemplateHours parses a DEPARTMENT:OFFSET:HOURS cell.
func parseTemplateHours(ctx context.Context, app *App, raw string) (domain.TemplateHours, error) {
	parts := strings.SplitN(raw, ":", 3)
	if len(parts) != 3 {
		return domain.TemplateHours{}, fmt.Errorf("invalid cell %q, expected DEPARTMENT:OFFSET:HOURS", raw)
	}
	deptID, err := resolveDepartmentID(ctx, app, parts[0])
	if err != nil {
		return domain.TemplateHours{}, err
	}
	offset, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.TemplateHours{}, fmt.Errorf("invalid week offset in cell %q: %w", raw, err)
	}
	hours, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return domain.TemplateHours{}, fmt.Errorf("invalid hours in cell %q: %w", raw, err)
	}
	return domain.TemplateHours{DepartmentID: deptID, WeekOffset: offset, Hours: hours}, nil
}

func newTemplateAddCmd(app *App) *cobra.Command {
	var name, description, priority string
	var weeks int
	var cells []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a staffing template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			weekHours := make([]domain.TemplateHours, 0, len(cells))
			deptSet := make(map[string]bool)
			var deptIDs []string
			for _, raw := range cells {
				cell, err := parseTemplateHours(ctx, app, raw)
				if err != nil {
					return err
				}
				weekHours = append(weekHours, cell)
				if !deptSet[cell.DepartmentID] {
					deptSet[cell.DepartmentID] = true
					deptIDs = append(deptIDs, cell.DepartmentID)
				}
			}

			t := &domain.ProjectTemplate{
				Name:          name,
				Description:   description,
				Priority:      domain.Priority(priority),
				DurationWeeks: weeks,
				DepartmentIDs: deptIDs,
				WeekHours:     weekHours,
			}
			if err := app.Templates.Create(ctx, t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s (%s)\n", t.Name, t.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	cmd.Flags().StringVar(&priority, "priority", "", "Default project priority")
	cmd.Flags().IntVar(&weeks, "weeks", 0, "Duration in weeks (1-52)")
	cmd.Flags().StringArrayVar(&cells, "hours", nil, "Hour cell DEPARTMENT:OFFSET:HOURS (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("weeks")

	return cmd
}

func newTemplateListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := app.Templates.List(context.Background())
			if err != nil {
				return err
			}
			if len(templates) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTemplateList(templates))
			return nil
		},
	}
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a template's hour table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Templates.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			names, err := departmentNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.FormatTemplateDetail(t, names))
			return nil
		},
	}
}

func newTemplateFromProjectCmd(app *App) *cobra.Command {
	var project, name, description string

	cmd := &cobra.Command{
		Use:   "from-project",
		Short: "Capture a project's requirement shape as a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			t, err := app.Templates.CreateFromProject(ctx, projectID, name, description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %s from project (%d weeks)\n", t.Name, t.DurationWeeks)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Source project (name or ID)")
	cmd.Flags().StringVar(&name, "name", "", "Template name")
	cmd.Flags().StringVar(&description, "description", "", "Template description")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTemplateInitCmd(app *App) *cobra.Command {
	var template, name, start string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a project and its requirements from a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			wk, err := parseWeek(start)
			if err != nil {
				return err
			}
			p, err := app.Templates.Instantiate(ctx, template, name, wk)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s from template, starting %s\n",
				p.Name, formatter.Week(p.StartDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "template", "", "Template ID")
	cmd.Flags().StringVar(&name, "name", "", "New project name")
	cmd.Flags().StringVar(&start, "start", "", "Start week (YYYY-MM-DD, snapped to Monday)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newTemplateDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Templates.Deactivate(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deactivated template %s\n", args[0])
			return nil
		},
	}
}
