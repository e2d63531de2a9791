package app

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// ProjectHours is one project's share of an employee's week.
type ProjectHours struct {
	ProjectID   string
	ProjectName string
	Hours       float64
}

type WorkloadWeek struct {
	WeekStart      time.Time
	Projects       []ProjectHours
	TotalHours     float64
	UtilizationPct float64
	LoadLevel      domain.LoadLevel
}

// EmployeeWorkload is the per-employee view of assigned hours over a week
// range, one entry per week that has at least one assignment.
type EmployeeWorkload struct {
	EmployeeID    string
	EmployeeName  string
	CapacityHours float64
	Weeks         []WorkloadWeek
}
