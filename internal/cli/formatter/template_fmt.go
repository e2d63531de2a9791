package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// FormatTemplateList renders the staffing template catalog.
func FormatTemplateList(templates []*domain.ProjectTemplate) string {
	headers := []string{"ID", "NAME", "PRIORITY", "WEEKS", "DEPARTMENTS"}
	rows := make([][]string, 0, len(templates))

	for _, t := range templates {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.Name),
			PriorityBadge(t.Priority),
			fmt.Sprintf("%d", t.DurationWeeks),
			fmt.Sprintf("%d", len(t.DepartmentIDs)),
		})
	}

	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatTemplateDetail renders one template's per-week hour table.
func FormatTemplateDetail(t *domain.ProjectTemplate, deptNames map[string]string) string {
	var b strings.Builder
	b.WriteString(Bold(t.Name) + "  " + PriorityBadge(t.Priority) + "\n")
	if t.Description != "" {
		b.WriteString(Dim(t.Description) + "\n")
	}
	b.WriteString(fmt.Sprintf("%s %d weeks\n\n", StyleDim.Render("DURATION"), t.DurationWeeks))

	cells := make([]domain.TemplateHours, len(t.WeekHours))
	copy(cells, t.WeekHours)
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].WeekOffset != cells[j].WeekOffset {
			return cells[i].WeekOffset < cells[j].WeekOffset
		}
		return deptNames[cells[i].DepartmentID] < deptNames[cells[j].DepartmentID]
	})

	headers := []string{"WEEK", "DEPARTMENT", "HOURS"}
	rows := make([][]string, 0, len(cells))
	for _, c := range cells {
		name := deptNames[c.DepartmentID]
		if name == "" {
			name = TruncID(c.DepartmentID)
		}
		rows = append(rows, []string{
			fmt.Sprintf("+%d", c.WeekOffset),
			name,
			Hours(c.Hours),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Template", b.String())
}
