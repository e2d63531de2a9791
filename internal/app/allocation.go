package app

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// LaborRequirementView decorates a stored requirement with the hours already
// assigned to the owning department that week and the resulting staffing
// classification.
type LaborRequirementView struct {
	ID             string
	ProjectID      string
	DepartmentID   string
	DepartmentName string
	WeekStart      time.Time
	RequiredHours  float64
	AssignedHours  float64
	RemainingHours float64
	StaffingPct    float64
	StaffingStatus domain.StaffingStatus
}

// RequirementItem is one row of a bulk requirement save. All items in a call
// belong to the same project.
type RequirementItem struct {
	DepartmentID  string
	WeekStart     time.Time
	RequiredHours float64
}

// AssignmentItem is one row of a bulk assignment submission for a single
// (project, week) panel.
type AssignmentItem struct {
	EmployeeID string
	Hours      float64
	Notes      string
}

// ItemError records a per-item failure in a best-effort bulk operation.
type ItemError struct {
	Index   int
	Message string
}

// BulkResult accumulates the outcome of a best-effort bulk write. Created
// counts newly inserted rows only; in-place updates land in Updated.
type BulkResult struct {
	Created int
	Updated int
	Errors  []ItemError
}

type AssignmentView struct {
	ID            string
	ProjectID     string
	ProjectName   string
	EmployeeID    string
	EmployeeName  string
	WeekStart     time.Time
	AssignedHours float64
	Notes         string
}

// CalendarEvent is an assignment projected onto the calendar, decorated with
// the employee's total hours for that week across all projects.
type CalendarEvent struct {
	AssignmentID      string
	ProjectID         string
	ProjectName       string
	EmployeeID        string
	EmployeeName      string
	WeekStart         time.Time
	WeekEnd           time.Time
	Hours             float64
	EmployeeWeekTotal float64
	UtilizationPct    float64
}
