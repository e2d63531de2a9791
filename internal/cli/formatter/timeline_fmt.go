package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/contract"
)

// FormatTimeline renders the rolling capacity view grouped by department,
// one bar per week.
func FormatTimeline(entries []contract.TimelineEntry) string {
	if len(entries) == 0 {
		return Dim("No active departments.")
	}

	var b strings.Builder
	var currentDept string
	for _, e := range entries {
		if e.DepartmentID != currentDept {
			if currentDept != "" {
				b.WriteString("\n")
			}
			b.WriteString(Header(e.DepartmentName) + "\n")
			currentDept = e.DepartmentID
		}
		b.WriteString(fmt.Sprintf("  %s  %s %s %s %s\n",
			StyleBlue.Render(Week(e.WeekStart)),
			utilizationBar(e.UtilizationPct, 20),
			PctStyled(e.UtilizationPct),
			Dim(fmt.Sprintf("%s / %s", Hours(e.AssignedHours), Hours(e.CapacityHours))),
			LoadPill(e.LoadLevel),
		))
	}
	return b.String()
}

// utilizationBar renders a fixed-width bar, filled proportionally and
// colored by load level. Utilization above 100% fills the whole bar.
func utilizationBar(pct float64, width int) string {
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	style := StyleGreen
	switch {
	case pct > 100:
		style = StyleRed
	case pct >= calc.LightBelowPct:
		style = StyleYellow
	}
	return style.Render(strings.Repeat("█", filled)) + StyleDim.Render(strings.Repeat("░", width-filled))
}
