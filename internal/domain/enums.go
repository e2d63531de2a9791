package domain

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriorities is the canonical set of accepted project priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// StaffingStatus classifies how well a labor requirement is covered by
// assigned hours. Derived, never stored.
type StaffingStatus string

const (
	StaffingUnderstaffed StaffingStatus = "Understaffed"
	StaffingAdequate     StaffingStatus = "Adequate"
	StaffingOverstaffed  StaffingStatus = "Overstaffed"
)

// LoadLevel is the qualitative utilization bucket for an employee or
// department in a given week. Derived, never stored.
type LoadLevel string

const (
	LoadLight  LoadLevel = "Light"
	LoadMedium LoadLevel = "Medium"
	LoadHeavy  LoadLevel = "Heavy"
)

type ConflictType string

const (
	ConflictOverallocatedEmployee ConflictType = "OverallocatedEmployee"
	ConflictUnderstaffedProject   ConflictType = "UnderstaffedProject"
)

// ConflictPriority ranks detected conflicts for display and notification.
type ConflictPriority string

const (
	ConflictHigh   ConflictPriority = "High"
	ConflictMedium ConflictPriority = "Medium"
	ConflictLow    ConflictPriority = "Low"
)

// Rank maps a conflict priority to a sortable weight; higher sorts first.
func (p ConflictPriority) Rank() int {
	switch p {
	case ConflictHigh:
		return 3
	case ConflictMedium:
		return 2
	case ConflictLow:
		return 1
	default:
		return 0
	}
}
