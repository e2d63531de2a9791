package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/google/uuid"
)

type employeeService struct {
	employees   repository.EmployeeRepo
	projects    repository.ProjectRepo
	assignments repository.AssignmentRepo
}

func NewEmployeeService(
	employees repository.EmployeeRepo,
	projects repository.ProjectRepo,
	assignments repository.AssignmentRepo,
) EmployeeService {
	return &employeeService{
		employees:   employees,
		projects:    projects,
		assignments: assignments,
	}
}

func (s *employeeService) Create(ctx context.Context, e *domain.Employee) error {
	if err := validateRequired("firstName", e.FirstName); err != nil {
		return err
	}
	if err := validateRequired("lastName", e.LastName); err != nil {
		return err
	}
	if err := validateRequired("departmentId", e.DepartmentID); err != nil {
		return err
	}
	if err := validateCapacity(e.HoursPerWeek); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.HoursPerWeek == 0 {
		e.HoursPerWeek = calc.DefaultCapacityHours
	}
	e.Active = true
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	return s.employees.Create(ctx, e)
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	return s.employees.GetByID(ctx, id)
}

func (s *employeeService) List(ctx context.Context, includeInactive bool) ([]*domain.Employee, error) {
	return s.employees.List(ctx, includeInactive)
}

func (s *employeeService) ListByDepartment(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	return s.employees.ListByDepartment(ctx, departmentID)
}

func (s *employeeService) Update(ctx context.Context, e *domain.Employee) error {
	if err := validateCapacity(e.HoursPerWeek); err != nil {
		return err
	}
	e.UpdatedAt = time.Now().UTC()
	return s.employees.Update(ctx, e)
}

func (s *employeeService) Deactivate(ctx context.Context, id string) error {
	return s.employees.Deactivate(ctx, id)
}

// GetWorkload summarizes one employee's assigned hours per week over a date
// range, broken down by project, with utilization against their capacity.
func (s *employeeService) GetWorkload(ctx context.Context, employeeID string, from, to time.Time) (*contract.EmployeeWorkload, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListByEmployee(ctx, employeeID, nil)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	projNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projNames[p.ID] = p.Name
	}

	fromWeek := domain.WeekStart(from)
	toWeek := domain.WeekStart(to)

	byWeek := make(map[time.Time][]contract.ProjectHours)
	for _, a := range assignments {
		if a.WeekStart.Before(fromWeek) || a.WeekStart.After(toWeek) {
			continue
		}
		byWeek[a.WeekStart] = append(byWeek[a.WeekStart], contract.ProjectHours{
			ProjectID:   a.ProjectID,
			ProjectName: projNames[a.ProjectID],
			Hours:       a.AssignedHours,
		})
	}

	weeks := make([]time.Time, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })

	workload := &contract.EmployeeWorkload{
		EmployeeID:    emp.ID,
		EmployeeName:  emp.FullName(),
		CapacityHours: emp.HoursPerWeek,
	}
	for _, week := range weeks {
		shares := byWeek[week]
		sort.Slice(shares, func(i, j int) bool { return shares[i].ProjectName < shares[j].ProjectName })
		var total float64
		for _, share := range shares {
			total += share.Hours
		}
		pct := calc.Utilization(total, emp.HoursPerWeek)
		workload.Weeks = append(workload.Weeks, contract.WorkloadWeek{
			WeekStart:      week,
			Projects:       shares,
			TotalHours:     total,
			UtilizationPct: pct,
			LoadLevel:      calc.LoadLevelFor(pct),
		})
	}
	return workload, nil
}
