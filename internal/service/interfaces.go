package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
)

type DepartmentService interface {
	Create(ctx context.Context, d *domain.Department) error
	GetByID(ctx context.Context, id string) (*domain.Department, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Department, error)
	Update(ctx context.Context, d *domain.Department) error
	Deactivate(ctx context.Context, id string) error
}

type EmployeeService interface {
	Create(ctx context.Context, e *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Employee, error)
	ListByDepartment(ctx context.Context, departmentID string) ([]*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) error
	Deactivate(ctx context.Context, id string) error
	GetWorkload(ctx context.Context, employeeID string, from, to time.Time) (*contract.EmployeeWorkload, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
}

// AllocationService owns the assignment ledger and the labor requirement
// store: every durable write to either goes through here.
type AllocationService interface {
	GetLaborRequirements(ctx context.Context, projectID string, weekStart *time.Time) ([]contract.LaborRequirementView, error)
	SaveLaborRequirement(ctx context.Context, projectID, departmentID string, weekStart time.Time, requiredHours float64) (created bool, err error)
	BulkSaveLaborRequirements(ctx context.Context, projectID string, items []contract.RequirementItem) (*contract.BulkResult, error)
	DeleteLaborRequirement(ctx context.Context, id string) (bool, error)

	CreateAssignment(ctx context.Context, projectID, employeeID string, weekStart time.Time, hours float64, notes string) (*domain.Assignment, error)
	UpdateAssignment(ctx context.Context, id string, hours float64, notes string) error
	DeleteAssignment(ctx context.Context, id string) (bool, error)
	BulkCreateAssignments(ctx context.Context, projectID string, weekStart time.Time, items []contract.AssignmentItem) (*contract.BulkResult, error)
	ListAssignmentsByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]contract.AssignmentView, error)
	ListAssignmentsByEmployee(ctx context.Context, employeeID string, weekStart *time.Time) ([]contract.AssignmentView, error)
	GetCalendarEvents(ctx context.Context, from, to time.Time) ([]contract.CalendarEvent, error)
}

type ConflictService interface {
	GetConflicts(ctx context.Context, opts contract.ConflictOptions) ([]contract.Conflict, error)
	GetQuickStats(ctx context.Context, now time.Time) (*contract.QuickStats, error)
}

type SkillMatchService interface {
	FindMatches(ctx context.Context, req contract.SkillMatchRequest) ([]contract.SkillMatch, error)
	GetAllSkills(ctx context.Context) ([]string, error)
	GetProjectRequiredSkills(ctx context.Context, projectID string) ([]string, error)
	GetAvailableEmployees(ctx context.Context, departmentID string, weekStart time.Time, minAvailableHours float64) ([]contract.AvailabilityView, error)
}

type TimelineService interface {
	GetResourceTimeline(ctx context.Context, req contract.TimelineRequest) ([]contract.TimelineEntry, error)
}

type TemplateService interface {
	Create(ctx context.Context, t *domain.ProjectTemplate) error
	CreateFromProject(ctx context.Context, projectID, name, description string) (*domain.ProjectTemplate, error)
	List(ctx context.Context) ([]*domain.ProjectTemplate, error)
	GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error)
	Deactivate(ctx context.Context, id string) error
	// Instantiate creates a project plus its requirements from a template,
	// all-or-nothing.
	Instantiate(ctx context.Context, templateID, projectName string, startWeek time.Time) (*domain.Project, error)
}

type ExportService interface {
	ExportAssignmentsCSV(ctx context.Context, w io.Writer, projectID string, weekStart *time.Time) error
	ExportConflictsCSV(ctx context.Context, w io.Writer, opts contract.ConflictOptions) error
	ExportTimelineCSV(ctx context.Context, w io.Writer, req contract.TimelineRequest) error
}
