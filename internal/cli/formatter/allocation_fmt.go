package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// FormatRequirementList renders a project's labor requirements with their
// staffing coverage.
func FormatRequirementList(views []contract.LaborRequirementView) string {
	headers := []string{"WEEK", "DEPARTMENT", "REQUIRED", "ASSIGNED", "REMAINING", "STAFFING"}
	rows := make([][]string, 0, len(views))

	for _, v := range views {
		rows = append(rows, []string{
			Week(v.WeekStart),
			Bold(v.DepartmentName),
			Hours(v.RequiredHours),
			Hours(v.AssignedHours),
			Hours(v.RemainingHours),
			fmt.Sprintf("%s %s", StaffingPill(v.StaffingStatus), Dim(Pct(v.StaffingPct))),
		})
	}

	return RenderBox("Labor Requirements", RenderTable(headers, rows))
}

// FormatAssignmentList renders assignments with project and employee names.
func FormatAssignmentList(views []contract.AssignmentView) string {
	headers := []string{"ID", "WEEK", "PROJECT", "EMPLOYEE", "HOURS", "NOTES"}
	rows := make([][]string, 0, len(views))

	for _, v := range views {
		notes := v.Notes
		if notes == "" {
			notes = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(v.ID),
			Week(v.WeekStart),
			Bold(v.ProjectName),
			v.EmployeeName,
			Hours(v.AssignedHours),
			notes,
		})
	}

	return RenderBox("Assignments", RenderTable(headers, rows))
}

// FormatCalendar renders calendar events grouped by week.
func FormatCalendar(events []contract.CalendarEvent) string {
	if len(events) == 0 {
		return Dim("No assignments in range.")
	}

	var b strings.Builder
	var currentWeek string
	for _, ev := range events {
		wk := Week(ev.WeekStart)
		if wk != currentWeek {
			if currentWeek != "" {
				b.WriteString("\n")
			}
			b.WriteString(Header("Week of "+WeekRange(ev.WeekStart)) + "\n")
			currentWeek = wk
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s %s  %s\n",
			Bold(ev.EmployeeName),
			Hours(ev.Hours),
			Dim("on"),
			ev.ProjectName,
			Dim(fmt.Sprintf("(week total %s, %s)", Hours(ev.EmployeeWeekTotal), Pct(ev.UtilizationPct))),
		))
	}
	return b.String()
}

// FormatBulkResult summarizes a best-effort bulk write, listing per-item
// failures after the counters.
func FormatBulkResult(r *contract.BulkResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s created, %s updated",
		StyleGreen.Render(fmt.Sprintf("%d", r.Created)),
		StyleBlue.Render(fmt.Sprintf("%d", r.Updated)),
	))
	if len(r.Errors) > 0 {
		b.WriteString(fmt.Sprintf(", %s failed", StyleRed.Render(fmt.Sprintf("%d", len(r.Errors)))))
		for _, e := range r.Errors {
			b.WriteString(fmt.Sprintf("\n  %s %s", Dim(fmt.Sprintf("item %d:", e.Index)), e.Message))
		}
	}
	return b.String()
}

// FormatWorkload renders an employee's per-week assignment breakdown.
func FormatWorkload(w *contract.EmployeeWorkload) string {
	var b strings.Builder
	b.WriteString(Bold(w.EmployeeName) + "  " + Dim(fmt.Sprintf("capacity %s/week", Hours(w.CapacityHours))) + "\n\n")

	if len(w.Weeks) == 0 {
		b.WriteString(Dim("No assignments in range."))
		return RenderBox("Workload", b.String())
	}

	for i, wk := range w.Weeks {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("%s  %s %s %s\n",
			StyleBlue.Render(Week(wk.WeekStart)),
			Hours(wk.TotalHours),
			PctStyled(wk.UtilizationPct),
			LoadPill(wk.LoadLevel),
		))
		for _, p := range wk.Projects {
			b.WriteString(fmt.Sprintf("  %s %s\n", Hours(p.Hours), p.ProjectName))
		}
	}

	return RenderBox("Workload", b.String())
}

// FormatProjectList renders a styled project list.
func FormatProjectList(projects []*domain.Project) string {
	headers := []string{"ID", "NAME", "PRIORITY", "STATUS", "START", "END"}
	rows := make([][]string, 0, len(projects))

	for _, p := range projects {
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(p.Name),
			PriorityBadge(p.Priority),
			StatusPill(p.Status),
			Week(p.StartDate),
			Week(p.EndDate),
		})
	}

	return RenderBox("Projects", RenderTable(headers, rows))
}

// FormatEmployeeList renders the roster with department names resolved by
// the caller.
func FormatEmployeeList(employees []*domain.Employee, deptNames map[string]string) string {
	headers := []string{"ID", "NAME", "DEPARTMENT", "TITLE", "CAPACITY", "SKILLS"}
	rows := make([][]string, 0, len(employees))

	for _, e := range employees {
		title := e.JobTitle
		if title == "" {
			title = Dim("--")
		}
		skills := strings.Join(e.Skills, ", ")
		if skills == "" {
			skills = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			Bold(e.FullName()),
			deptNames[e.DepartmentID],
			title,
			Hours(e.HoursPerWeek),
			skills,
		})
	}

	return RenderBox("Employees", RenderTable(headers, rows))
}

// FormatDepartmentList renders departments with an active marker.
func FormatDepartmentList(departments []*domain.Department) string {
	headers := []string{"ID", "NAME", "DESCRIPTION", "STATUS"}
	rows := make([][]string, 0, len(departments))

	for _, d := range departments {
		desc := d.Description
		if desc == "" {
			desc = Dim("--")
		}
		status := StyleGreen.Render("● Active")
		if !d.Active {
			status = StyleDim.Render("✖ Inactive")
		}
		rows = append(rows, []string{TruncID(d.ID), Bold(d.Name), desc, status})
	}

	return RenderBox("Departments", RenderTable(headers, rows))
}
