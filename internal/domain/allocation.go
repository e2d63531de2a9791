package domain

import "time"

// LaborRequirement is the hours a (project, department) pair needs staffed
// for one week. One row per (project, department, week) key; writes are
// upserts, never duplicates.
type LaborRequirement struct {
	ID           string
	ProjectID    string
	DepartmentID string

	// WeekStart is always a Monday key produced by WeekStart.
	WeekStart time.Time

	RequiredHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Assignment commits a slice of one employee's week to one project.
// At most one assignment may exist per (project, employee, week); the
// storage layer enforces this atomically.
type Assignment struct {
	ID         string
	ProjectID  string
	EmployeeID string

	// WeekStart is always a Monday key produced by WeekStart.
	WeekStart time.Time

	AssignedHours float64
	Notes         string

	CreatedAt time.Time
	UpdatedAt time.Time
}
