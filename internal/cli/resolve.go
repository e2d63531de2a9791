package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// formatHoursPlain formats an hour value without styling or unit suffix.
func formatHoursPlain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseWeek parses a YYYY-MM-DD date and snaps it to its Monday week key.
func parseWeek(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return domain.WeekStart(t), nil
}

// resolveProjectID accepts a full UUID, a UUID prefix, or a project name
// (case-insensitive) and returns the matching project's ID.
func resolveProjectID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("project is required")
	}

	projects, err := app.Projects.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, p := range projects {
		if p.ID == input || strings.EqualFold(p.Name, input) {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range projects {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("project not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("project %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveEmployeeID accepts a full UUID, a UUID prefix, or a full name
// (case-insensitive "First Last") and returns the matching employee's ID.
func resolveEmployeeID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("employee is required")
	}

	employees, err := app.Employees.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, e := range employees {
		if e.ID == input || strings.EqualFold(e.FullName(), input) {
			return e.ID, nil
		}
	}

	var matches []string
	for _, e := range employees {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("employee not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("employee %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveDepartmentID accepts a full UUID, a UUID prefix, or a department
// name (case-insensitive) and returns the matching department's ID.
func resolveDepartmentID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("department is required")
	}

	departments, err := app.Departments.List(ctx, true)
	if err != nil {
		return "", err
	}

	for _, d := range departments {
		if d.ID == input || strings.EqualFold(d.Name, input) {
			return d.ID, nil
		}
	}

	var matches []string
	for _, d := range departments {
		if strings.HasPrefix(d.ID, input) {
			matches = append(matches, d.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("department not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("department %q is ambiguous (%d matches)", input, len(matches))
	}
}

// departmentNames returns id -> name for every department, inactive included.
func departmentNames(ctx context.Context, app *App) (map[string]string, error) {
	departments, err := app.Departments.List(ctx, true)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names, nil
}
