package app

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// SkillMatchRequest asks for ranked candidates to staff a project in a given
// week. RequestedSkills may be empty, in which case every available candidate
// is a full match.
type SkillMatchRequest struct {
	ProjectID         string
	DepartmentID      string
	WeekStart         time.Time
	RequestedSkills   []string
	MinAvailableHours float64
}

type SkillMatch struct {
	EmployeeID      string
	EmployeeName    string
	DepartmentID    string
	DepartmentName  string
	Skills          []string
	MatchedSkills   []string
	MatchScore      int
	MatchPercentage float64
	AssignedHours   float64
	AvailableHours  float64
	UtilizationPct  float64
}

// AvailabilityView reports an employee's remaining capacity for one week.
type AvailabilityView struct {
	EmployeeID     string
	EmployeeName   string
	DepartmentID   string
	CapacityHours  float64
	AssignedHours  float64
	AvailableHours float64
	UtilizationPct float64
	LoadLevel      domain.LoadLevel
}
