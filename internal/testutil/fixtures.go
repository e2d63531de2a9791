package testutil

import (
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/google/uuid"
)

// Monday is a fixed Monday week key used across tests.
var Monday = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)

// Department options

func NewTestDepartment(name string) *domain.Department {
	return &domain.Department{
		ID:        uuid.New().String(),
		Name:      name,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// Employee options

type EmployeeOption func(*domain.Employee)

func WithCapacity(hours float64) EmployeeOption {
	return func(e *domain.Employee) {
		e.HoursPerWeek = hours
	}
}

func WithSkills(skills ...string) EmployeeOption {
	return func(e *domain.Employee) {
		e.Skills = skills
	}
}

func WithInactive() EmployeeOption {
	return func(e *domain.Employee) {
		e.Active = false
	}
}

func NewTestEmployee(departmentID, firstName, lastName string, opts ...EmployeeOption) *domain.Employee {
	now := time.Now().UTC()
	e := &domain.Employee{
		ID:           uuid.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        firstName + "@example.com",
		DepartmentID: departmentID,
		HoursPerWeek: 40,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project options

type ProjectOption func(*domain.Project)

func WithPriority(p domain.Priority) ProjectOption {
	return func(proj *domain.Project) {
		proj.Priority = p
	}
}

func WithProjectStatus(s domain.ProjectStatus) ProjectOption {
	return func(proj *domain.Project) {
		proj.Status = s
	}
}

func WithDepartments(ids ...string) ProjectOption {
	return func(proj *domain.Project) {
		proj.DepartmentIDs = ids
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		Priority:  domain.PriorityMedium,
		Status:    domain.ProjectActive,
		StartDate: Monday,
		EndDate:   Monday.AddDate(0, 3, 0),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Allocation fixtures

func NewTestAssignment(projectID, employeeID string, weekStart time.Time, hours float64) *domain.Assignment {
	now := time.Now().UTC()
	return &domain.Assignment{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		EmployeeID:    employeeID,
		WeekStart:     domain.WeekStart(weekStart),
		AssignedHours: hours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func NewTestRequirement(projectID, departmentID string, weekStart time.Time, hours float64) *domain.LaborRequirement {
	now := time.Now().UTC()
	return &domain.LaborRequirement{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		DepartmentID:  departmentID,
		WeekStart:     domain.WeekStart(weekStart),
		RequiredHours: hours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
