package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
)

// FormatConflicts renders the merged conflict report, one line per conflict
// in detector order.
func FormatConflicts(conflicts []contract.Conflict) string {
	if len(conflicts) == 0 {
		return StyleGreen.Render("✔ No conflicts detected.")
	}

	headers := []string{"PRIORITY", "TYPE", "WEEK", "WHO/WHAT", "DETAIL"}
	rows := make([][]string, 0, len(conflicts))

	for _, c := range conflicts {
		var subject, detail string
		switch c.Type {
		case domain.ConflictOverallocatedEmployee:
			subject = Bold(c.EmployeeName)
			detail = fmt.Sprintf("%s assigned vs %s capacity (%s over) across %s",
				Hours(c.AssignedHours), Hours(c.CapacityHours),
				ConflictColor(c.Priority).Render(Hours(c.Variance)),
				strings.Join(c.ProjectNames, ", "))
		case domain.ConflictUnderstaffedProject:
			subject = Bold(c.ProjectName) + " " + Dim("/ "+c.DepartmentName)
			detail = fmt.Sprintf("%s assigned vs %s required (%s short, %s staffed)",
				Hours(c.AssignedHours), Hours(c.RequiredHours),
				ConflictColor(c.Priority).Render(Hours(c.Variance)),
				Pct(c.StaffingPct))
		}
		rows = append(rows, []string{
			ConflictIndicator(c.Priority),
			string(c.Type),
			Week(c.WeekStart),
			subject,
			detail,
		})
	}

	return RenderBox(fmt.Sprintf("Conflicts (%d)", len(conflicts)), RenderTable(headers, rows))
}

// FormatQuickStats renders the dashboard headline for the current week.
func FormatQuickStats(s *contract.QuickStats) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s  %s\n\n", StyleDim.Render("WEEK OF"), Bold(WeekRange(s.CurrentWeek))))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("ACTIVE PROJECTS "), s.ActiveProjects))
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleDim.Render("ACTIVE EMPLOYEES"), s.ActiveEmployees))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("AVG UTILIZATION "), PctStyled(s.AvgUtilizationPct)))

	over := StyleGreen.Render("0")
	if s.OverallocatedEmployees > 0 {
		over = StyleRed.Render(fmt.Sprintf("%d", s.OverallocatedEmployees))
	}
	under := StyleGreen.Render("0")
	if s.UnderstaffedProjects > 0 {
		under = StyleYellow.Render(fmt.Sprintf("%d", s.UnderstaffedProjects))
	}
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("OVERALLOCATED   "), over))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("UNDERSTAFFED    "), under))

	return RenderBox("This Week", b.String())
}
