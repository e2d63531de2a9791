package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

var monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "HOURS"},
		[][]string{
			{"Ada", "40"},
			{"Grace Hopper", "25.5"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4, "header, separator, two rows")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[2], "Ada")
	assert.Contains(t, lines[3], "Grace Hopper")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestHoursAndPct_TrimTrailingZeros(t *testing.T) {
	assert.Equal(t, "37.5h", Hours(37.5))
	assert.Equal(t, "40h", Hours(40))
	assert.Equal(t, "87.5%", Pct(87.5))
	assert.Equal(t, "100%", Pct(100))
}

func TestWeekRange(t *testing.T) {
	assert.Equal(t, "Jun 2 – Jun 8", WeekRange(monday))
}

func TestFormatConflicts_Empty(t *testing.T) {
	out := FormatConflicts(nil)
	assert.Contains(t, out, "No conflicts detected")
}

func TestFormatConflicts_BothTypes(t *testing.T) {
	out := FormatConflicts([]contract.Conflict{
		{
			Type:          domain.ConflictOverallocatedEmployee,
			Priority:      domain.ConflictHigh,
			WeekStart:     monday,
			EmployeeName:  "Ada Lovelace",
			ProjectNames:  []string{"Apollo", "Borealis"},
			AssignedHours: 52,
			CapacityHours: 40,
			Variance:      12,
		},
		{
			Type:           domain.ConflictUnderstaffedProject,
			Priority:       domain.ConflictMedium,
			WeekStart:      monday,
			ProjectName:    "Apollo",
			DepartmentName: "Engineering",
			AssignedHours:  50,
			RequiredHours:  100,
			Variance:       50,
			StaffingPct:    50,
		},
	})

	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Apollo, Borealis")
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "2025-06-02")
}

func TestFormatRequirementList_ShowsCoverage(t *testing.T) {
	out := FormatRequirementList([]contract.LaborRequirementView{
		{
			DepartmentName: "Engineering",
			WeekStart:      monday,
			RequiredHours:  80,
			AssignedHours:  30,
			RemainingHours: 50,
			StaffingPct:    37.5,
			StaffingStatus: domain.StaffingUnderstaffed,
		},
	})

	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "80h")
	assert.Contains(t, out, "37.5%")
	assert.Contains(t, out, "Understaffed")
}

func TestFormatBulkResult_ListsFailures(t *testing.T) {
	out := FormatBulkResult(&contract.BulkResult{
		Created: 2,
		Updated: 1,
		Errors:  []contract.ItemError{{Index: 3, Message: "invalid hours"}},
	})

	assert.Contains(t, out, "2")
	assert.Contains(t, out, "item 3")
	assert.Contains(t, out, "invalid hours")
}

func TestUtilizationBar_Bounds(t *testing.T) {
	assert.Equal(t, 20, strings.Count(utilizationBar(130, 20), "█"), "over 100% fills the bar")
	assert.Equal(t, 20, strings.Count(utilizationBar(0, 20), "░"))
}
