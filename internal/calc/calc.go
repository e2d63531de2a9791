// Package calc holds the pure allocation arithmetic: utilization and
// staffing percentages plus their qualitative classifications. Functions
// here have no state and no storage dependencies so every layer computes
// figures identically.
package calc

import (
	"math"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// Fixed policy constants. Callers needing different thresholds wrap these
// functions rather than configuring them.
const (
	// Staffing classification bounds (percent).
	UnderstaffedBelowPct = 85.0
	OverstaffedAbovePct  = 110.0

	// Load level bounds (percent).
	LightBelowPct  = 60.0
	MediumBelowPct = 85.0

	// UnderstaffingGapHours is the minimum shortfall, in hours, before a
	// requirement counts as an understaffing conflict.
	UnderstaffingGapHours = 10.0

	// Hour bounds per record.
	MaxAssignmentHours  = 168.0
	MaxRequirementHours = 9999.99

	// Timeline week-count bounds.
	MinTimelineWeeks     = 1
	MaxTimelineWeeks     = 52
	DefaultTimelineWeeks = 12

	// DefaultCapacityHours is the standard weekly capacity for a new
	// employee.
	DefaultCapacityHours = 40.0
)

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Utilization returns usedHours/totalHours as a percentage rounded to two
// decimals. Zero total yields 0, not an error: a roster with no capacity
// is idle by definition and dashboards must degrade gracefully.
func Utilization(usedHours, totalHours float64) float64 {
	if totalHours == 0 {
		return 0
	}
	return Round2(usedHours / totalHours * 100)
}

// StaffingPercentage returns assignedHours/requiredHours as a percentage
// rounded to two decimals. Zero requirement yields 100: a requirement for
// no hours is fully staffed by definition.
func StaffingPercentage(assignedHours, requiredHours float64) float64 {
	if requiredHours == 0 {
		return 100
	}
	return Round2(assignedHours / requiredHours * 100)
}

// StaffingStatusFor buckets a staffing percentage.
func StaffingStatusFor(pct float64) domain.StaffingStatus {
	if pct < UnderstaffedBelowPct {
		return domain.StaffingUnderstaffed
	}
	if pct > OverstaffedAbovePct {
		return domain.StaffingOverstaffed
	}
	return domain.StaffingAdequate
}

// LoadLevelFor buckets a utilization percentage.
func LoadLevelFor(utilizationPct float64) domain.LoadLevel {
	if utilizationPct < LightBelowPct {
		return domain.LoadLight
	}
	if utilizationPct < MediumBelowPct {
		return domain.LoadMedium
	}
	return domain.LoadHeavy
}
