package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// crewplanHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func crewplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardSelectProject builds a select over active projects.
func wizardSelectProject(ctx context.Context, app *App, result *string) (*huh.Form, error) {
	projects, err := app.Projects.List(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, fmt.Errorf("no active projects")
	}

	options := make([]huh.Option[string], 0, len(projects))
	for _, p := range projects {
		label := fmt.Sprintf("%s (%s)", p.Name, p.Priority)
		options = append(options, huh.NewOption(label, p.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Project").
				Options(options...).
				Value(result),
		),
	).WithTheme(crewplanHuhTheme()).WithShowHelp(false), nil
}

// wizardSelectCandidate builds a select over employees available for the
// chosen project and week, ordered by remaining capacity. Employees already
// assigned to the project that week are excluded.
func wizardSelectCandidate(ctx context.Context, a *App, projectID string, week time.Time, result *string) (*huh.Form, error) {
	matches, err := a.skillMatchUseCase().FindMatches(ctx, contract.SkillMatchRequest{
		ProjectID: projectID,
		WeekStart: week,
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no available employees for week of %s", formatter.Week(week))
	}

	options := make([]huh.Option[string], 0, len(matches))
	for _, m := range matches {
		label := fmt.Sprintf("%s (%sh free of %sh)",
			m.EmployeeName, formatHoursPlain(m.AvailableHours), formatHoursPlain(m.AvailableHours+m.AssignedHours))
		options = append(options, huh.NewOption(label, m.EmployeeID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Employee").
				Options(options...).
				Value(result),
		),
	).WithTheme(crewplanHuhTheme()).WithShowHelp(false), nil
}

// wizardInputWeekAndHours collects the week key and hours in one group.
func wizardInputWeekAndHours(week, hours, notes *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Week (YYYY-MM-DD, any day of the week)").
				Placeholder("2025-06-02").
				Value(week).
				Validate(func(s string) error {
					_, err := parseWeek(s)
					return err
				}),
			huh.NewInput().
				Title("Hours").
				Placeholder("20").
				Value(hours).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("enter a positive number of hours")
					}
					return nil
				}),
			huh.NewInput().
				Title("Notes (optional)").
				Value(notes),
		),
	).WithTheme(crewplanHuhTheme()).WithShowHelp(false)
}

func newAssignWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Interactively create an assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("assign wizard requires an interactive terminal")
			}
			ctx := context.Background()

			var projectID string
			form, err := wizardSelectProject(ctx, app, &projectID)
			if err != nil {
				return err
			}
			if err := form.Run(); err != nil {
				return err
			}

			var weekStr, hoursStr, notes string
			if err := wizardInputWeekAndHours(&weekStr, &hoursStr, &notes).Run(); err != nil {
				return err
			}

			wk, err := parseWeek(weekStr)
			if err != nil {
				return err
			}
			hours, err := strconv.ParseFloat(hoursStr, 64)
			if err != nil {
				return err
			}

			var employeeID string
			form, err = wizardSelectCandidate(ctx, app, projectID, wk, &employeeID)
			if err != nil {
				return err
			}
			if err := form.Run(); err != nil {
				return err
			}

			a, err := app.Allocations.CreateAssignment(ctx, projectID, employeeID, wk, hours, notes)
			if err != nil {
				return err
			}

			// Surface any conflict the new assignment just created.
			conflicts, err := app.Conflicts.GetConflicts(ctx, contract.ConflictOptions{Now: &wk})
			if err == nil {
				for _, c := range conflicts {
					if c.EmployeeID == employeeID && c.WeekStart.Equal(wk) {
						fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.StyleYellow.Render("Warning: "+c.Message))
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %sh for week of %s (%s)\n",
				formatHoursPlain(a.AssignedHours), formatter.Week(a.WeekStart), a.ID)
			return nil
		},
	}
}
