package domain

import "time"

type Project struct {
	ID          string
	Name        string
	Description string
	Priority    Priority
	Status      ProjectStatus

	// DepartmentIDs are the departments staffed on this project,
	// stored as first-class rows rather than an encoded list.
	DepartmentIDs []string

	StartDate time.Time
	EndDate   time.Time

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
