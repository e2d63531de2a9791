package app

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// TimelineRequest scopes a rolling capacity view. StartWeek nil means the
// current week; WeekCount zero takes the default.
type TimelineRequest struct {
	StartWeek *time.Time
	WeekCount int
}

// TimelineEntry is one (department, week) cell of the rolling timeline.
type TimelineEntry struct {
	DepartmentID   string
	DepartmentName string
	WeekIndex      int
	WeekStart      time.Time
	CapacityHours  float64
	AssignedHours  float64
	UtilizationPct float64
	LoadLevel      domain.LoadLevel
}
