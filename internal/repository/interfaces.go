package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
)

// EmployeeWeekHours is a pre-aggregated (employee, week) total of assigned
// hours across every project, used by conflict detection and availability.
type EmployeeWeekHours struct {
	EmployeeID string
	WeekStart  time.Time
	TotalHours float64
}

// DepartmentWeekHours is a pre-aggregated (project, department, week) total
// of assigned hours, joining assignments to the owning employee's
// department. Understaffing checks consume this directly.
type DepartmentWeekHours struct {
	ProjectID    string
	DepartmentID string
	WeekStart    time.Time
	TotalHours   float64
}

type DepartmentRepo interface {
	Create(ctx context.Context, d *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Department, error)
	Update(ctx context.Context, d *domain.Department) error
	Deactivate(ctx context.Context, id string) error
}

type EmployeeRepo interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Deactivate(ctx context.Context, id string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

type RequirementRepo interface {
	// Upsert writes the requirement for its (project, department, week)
	// key, inserting or updating in place. Returns true when a new row
	// was created.
	Upsert(ctx context.Context, r *domain.LaborRequirement) (bool, error)
	GetByID(ctx context.Context, id string) (*domain.LaborRequirement, error)
	ListByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]*domain.LaborRequirement, error)
	ListFromWeek(ctx context.Context, weekStart time.Time) ([]*domain.LaborRequirement, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type AssignmentRepo interface {
	// Create inserts a new assignment. An occupied (project, employee,
	// week) key fails with ErrDuplicateAssignment and leaves the
	// existing row unchanged.
	Create(ctx context.Context, a *domain.Assignment) error
	GetByID(ctx context.Context, id string) (*domain.Assignment, error)
	GetByKey(ctx context.Context, projectID, employeeID string, weekStart time.Time) (*domain.Assignment, error)
	ListByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]*domain.Assignment, error)
	ListByEmployee(ctx context.Context, employeeID string, weekStart *time.Time) ([]*domain.Assignment, error)
	ListByWeekRange(ctx context.Context, from, to time.Time) ([]*domain.Assignment, error)
	ListAll(ctx context.Context) ([]*domain.Assignment, error)
	// Update rewrites hours and notes for an existing row; the key never
	// changes. Unknown ids fail with ErrNotFound.
	Update(ctx context.Context, a *domain.Assignment) error
	// Delete removes the row if present and reports whether it did.
	// Missing ids are not an error.
	Delete(ctx context.Context, id string) (bool, error)
	SumByEmployeeWeek(ctx context.Context) ([]EmployeeWeekHours, error)
	SumByDepartmentWeek(ctx context.Context) ([]DepartmentWeekHours, error)
}

type TemplateRepo interface {
	Create(ctx context.Context, t *domain.ProjectTemplate) error
	GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error)
	List(ctx context.Context) ([]*domain.ProjectTemplate, error)
	Deactivate(ctx context.Context, id string) error
}
