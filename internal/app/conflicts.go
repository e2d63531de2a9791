package app

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// ConflictOptions scopes a conflict scan. Now anchors the current week for
// the understaffing cutoff; nil means time.Now.
type ConflictOptions struct {
	Now          *time.Time
	ProjectScope []string
	Types        []domain.ConflictType
}

// Conflict is one detected allocation problem. Overallocation conflicts fill
// the employee fields; understaffing conflicts fill the project and
// department fields. Variance is always positive: hours over capacity for
// overallocation, hours short of requirement for understaffing.
type Conflict struct {
	Type           domain.ConflictType
	Priority       domain.ConflictPriority
	WeekStart      time.Time
	EmployeeID     string
	EmployeeName   string
	ProjectID      string
	ProjectName    string
	ProjectNames   []string
	DepartmentID   string
	DepartmentName string
	AssignedHours  float64
	CapacityHours  float64
	RequiredHours  float64
	Variance       float64
	UtilizationPct float64
	StaffingPct    float64
	Message        string
}

// ConflictPolicy maps raw conflict numbers onto priority tiers. The detector
// always exposes the raw variance and percentages; callers that want
// different tiers supply their own cut points.
type ConflictPolicy struct {
	// Overallocation variance (hours over capacity) at or above which the
	// conflict is High / Medium.
	OverallocationHighHours   float64
	OverallocationMediumHours float64
	// Understaffing staffing percentage strictly below which the conflict
	// is High / Medium.
	UnderstaffedHighBelowPct   float64
	UnderstaffedMediumBelowPct float64
}

func DefaultConflictPolicy() ConflictPolicy {
	return ConflictPolicy{
		OverallocationHighHours:    8,
		OverallocationMediumHours:  4,
		UnderstaffedHighBelowPct:   50,
		UnderstaffedMediumBelowPct: 75,
	}
}

// QuickStats is the dashboard headline for the current week.
type QuickStats struct {
	GeneratedAt            time.Time
	CurrentWeek            time.Time
	ActiveProjects         int
	ActiveEmployees        int
	AvgUtilizationPct      float64
	OverallocatedEmployees int
	UnderstaffedProjects   int
}
