package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/contract"
)

// FormatMatches renders ranked skill-match candidates for a staffing search.
func FormatMatches(matches []contract.SkillMatch) string {
	if len(matches) == 0 {
		return Dim("No available candidates.")
	}

	headers := []string{"MATCH", "NAME", "DEPARTMENT", "MATCHED SKILLS", "AVAILABLE", "UTILIZATION"}
	rows := make([][]string, 0, len(matches))

	for _, m := range matches {
		matched := strings.Join(m.MatchedSkills, ", ")
		if matched == "" {
			matched = Dim("--")
		}
		rows = append(rows, []string{
			matchPctStyled(m.MatchPercentage),
			Bold(m.EmployeeName),
			m.DepartmentName,
			matched,
			Hours(m.AvailableHours),
			Pct(m.UtilizationPct),
		})
	}

	return RenderBox("Candidates", RenderTable(headers, rows))
}

func matchPctStyled(pct float64) string {
	text := Pct(pct)
	switch {
	case pct >= 100:
		return StyleGreen.Render(text)
	case pct >= 50:
		return StyleYellow.Render(text)
	default:
		return StyleDim.Render(text)
	}
}

// FormatAvailability renders per-employee remaining capacity for one week.
func FormatAvailability(views []contract.AvailabilityView) string {
	if len(views) == 0 {
		return Dim("No employees with enough free hours.")
	}

	headers := []string{"NAME", "CAPACITY", "ASSIGNED", "AVAILABLE", "LOAD"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			Bold(v.EmployeeName),
			Hours(v.CapacityHours),
			Hours(v.AssignedHours),
			StyleGreen.Render(Hours(v.AvailableHours)),
			LoadPill(v.LoadLevel),
		})
	}

	return RenderBox("Availability", RenderTable(headers, rows))
}

// FormatSkills renders a flat skill list.
func FormatSkills(title string, skills []string) string {
	if len(skills) == 0 {
		return Dim("No skills recorded.")
	}
	var b strings.Builder
	b.WriteString(Header(title) + "\n")
	for _, s := range skills {
		b.WriteString(fmt.Sprintf("  %s %s\n", StyleBlue.Render("•"), s))
	}
	return b.String()
}
