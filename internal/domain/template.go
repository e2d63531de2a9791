package domain

import "time"

// TemplateHours is one cell of a template's per-week hour table: the hours
// a department needs in the given week offset from project start.
type TemplateHours struct {
	DepartmentID string
	WeekOffset   int
	Hours        float64
}

// ProjectTemplate captures a reusable staffing shape: which departments a
// project uses and how many hours each needs per week. Department ids and
// the hour table are stored as structured child rows, not encoded strings.
type ProjectTemplate struct {
	ID            string
	Name          string
	Description   string
	Priority      Priority
	DurationWeeks int

	DepartmentIDs []string
	WeekHours     []TemplateHours

	Active    bool
	CreatedAt time.Time
}
