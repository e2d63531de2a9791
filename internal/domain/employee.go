package domain

import "time"

type Department struct {
	ID          string
	Name        string
	Description string
	Active      bool
	CreatedAt   time.Time
}

// Employee is a roster member. Capacity and skills feed the allocation
// engine; the roster itself is maintained by HR-side commands and treated
// as read-mostly input everywhere else.
type Employee struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	DepartmentID string
	JobTitle     string

	// HoursPerWeek is the standard weekly capacity. Defaults to 40.
	HoursPerWeek float64

	// Skills is an ordered list of free-text tokens. Matching is
	// case-insensitive and substring-based in both directions.
	Skills []string

	Active   bool
	HireDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
