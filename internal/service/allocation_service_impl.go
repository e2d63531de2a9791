package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/google/uuid"
)

type allocationService struct {
	requirements repository.RequirementRepo
	assignments  repository.AssignmentRepo
	employees    repository.EmployeeRepo
	projects     repository.ProjectRepo
	departments  repository.DepartmentRepo
	observer     UseCaseObserver
}

func NewAllocationService(
	requirements repository.RequirementRepo,
	assignments repository.AssignmentRepo,
	employees repository.EmployeeRepo,
	projects repository.ProjectRepo,
	departments repository.DepartmentRepo,
	observers ...UseCaseObserver,
) AllocationService {
	return &allocationService{
		requirements: requirements,
		assignments:  assignments,
		employees:    employees,
		projects:     projects,
		departments:  departments,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *allocationService) GetLaborRequirements(ctx context.Context, projectID string, weekStart *time.Time) ([]contract.LaborRequirementView, error) {
	reqs, err := s.requirements.ListByProject(ctx, projectID, weekStart)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, nil
	}

	deptNames, err := s.departmentNames(ctx)
	if err != nil {
		return nil, err
	}

	sums, err := s.assignments.SumByDepartmentWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assigned hours: %w", err)
	}
	assigned := make(map[string]float64, len(sums))
	for _, sum := range sums {
		if sum.ProjectID != projectID {
			continue
		}
		assigned[deptWeekKey(sum.DepartmentID, sum.WeekStart)] = sum.TotalHours
	}

	views := make([]contract.LaborRequirementView, 0, len(reqs))
	for _, req := range reqs {
		hours := assigned[deptWeekKey(req.DepartmentID, req.WeekStart)]
		pct := calc.StaffingPercentage(hours, req.RequiredHours)
		views = append(views, contract.LaborRequirementView{
			ID:             req.ID,
			ProjectID:      req.ProjectID,
			DepartmentID:   req.DepartmentID,
			DepartmentName: deptNames[req.DepartmentID],
			WeekStart:      req.WeekStart,
			RequiredHours:  req.RequiredHours,
			AssignedHours:  hours,
			RemainingHours: calc.Round2(req.RequiredHours - hours),
			StaffingPct:    pct,
			StaffingStatus: calc.StaffingStatusFor(pct),
		})
	}
	return views, nil
}

func (s *allocationService) SaveLaborRequirement(ctx context.Context, projectID, departmentID string, weekStart time.Time, requiredHours float64) (bool, error) {
	if err := validateRequired("projectId", projectID); err != nil {
		return false, err
	}
	if err := validateRequired("departmentId", departmentID); err != nil {
		return false, err
	}
	if err := validateNotZero("weekStart", weekStart); err != nil {
		return false, err
	}
	if err := validateRequirementHours(requiredHours); err != nil {
		return false, err
	}

	now := time.Now().UTC()
	req := &domain.LaborRequirement{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		DepartmentID:  departmentID,
		WeekStart:     domain.WeekStart(weekStart),
		RequiredHours: requiredHours,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.requirements.Upsert(ctx, req)
}

// BulkSaveLaborRequirements saves each item independently and accumulates
// the outcome; a bad item does not roll back the others.
func (s *allocationService) BulkSaveLaborRequirements(ctx context.Context, projectID string, items []contract.RequirementItem) (result *contract.BulkResult, err error) {
	if err := validateRequired("projectId", projectID); err != nil {
		return nil, err
	}

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "bulk-save-requirements",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": projectID, "items": len(items)},
		})
	}()

	result = &contract.BulkResult{}
	for i, item := range items {
		created, err := s.SaveLaborRequirement(ctx, projectID, item.DepartmentID, item.WeekStart, item.RequiredHours)
		if err != nil {
			result.Errors = append(result.Errors, contract.ItemError{Index: i, Message: err.Error()})
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	return result, nil
}

func (s *allocationService) DeleteLaborRequirement(ctx context.Context, id string) (bool, error) {
	return s.requirements.Delete(ctx, id)
}

func (s *allocationService) CreateAssignment(ctx context.Context, projectID, employeeID string, weekStart time.Time, hours float64, notes string) (*domain.Assignment, error) {
	if err := validateRequired("projectId", projectID); err != nil {
		return nil, err
	}
	if err := validateRequired("employeeId", employeeID); err != nil {
		return nil, err
	}
	if err := validateNotZero("weekStart", weekStart); err != nil {
		return nil, err
	}
	if err := validateAssignmentHours(hours); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	a := &domain.Assignment{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		EmployeeID:    employeeID,
		WeekStart:     domain.WeekStart(weekStart),
		AssignedHours: hours,
		Notes:         notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.assignments.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *allocationService) UpdateAssignment(ctx context.Context, id string, hours float64, notes string) error {
	if err := validateAssignmentHours(hours); err != nil {
		return err
	}
	a, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	a.AssignedHours = hours
	a.Notes = notes
	a.UpdatedAt = time.Now().UTC()
	return s.assignments.Update(ctx, a)
}

func (s *allocationService) DeleteAssignment(ctx context.Context, id string) (bool, error) {
	return s.assignments.Delete(ctx, id)
}

// BulkCreateAssignments upserts each (employee, hours) item for one project
// and week: existing keys are updated in place, missing keys inserted.
// Created counts inserts only, so re-running the identical call reports zero
// creates.
func (s *allocationService) BulkCreateAssignments(ctx context.Context, projectID string, weekStart time.Time, items []contract.AssignmentItem) (result *contract.BulkResult, err error) {
	if err := validateRequired("projectId", projectID); err != nil {
		return nil, err
	}
	if err := validateNotZero("weekStart", weekStart); err != nil {
		return nil, err
	}
	week := domain.WeekStart(weekStart)

	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "bulk-assign",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": projectID, "week": week.Format(domain.DateLayout), "items": len(items)},
		})
	}()

	result = &contract.BulkResult{}
	for i, item := range items {
		if err := s.upsertAssignmentItem(ctx, projectID, week, item, result); err != nil {
			result.Errors = append(result.Errors, contract.ItemError{Index: i, Message: err.Error()})
		}
	}
	return result, nil
}

func (s *allocationService) upsertAssignmentItem(ctx context.Context, projectID string, week time.Time, item contract.AssignmentItem, result *contract.BulkResult) error {
	if err := validateRequired("employeeId", item.EmployeeID); err != nil {
		return err
	}
	if err := validateAssignmentHours(item.Hours); err != nil {
		return err
	}

	existing, err := s.assignments.GetByKey(ctx, projectID, item.EmployeeID, week)
	switch {
	case err == nil:
		existing.AssignedHours = item.Hours
		existing.Notes = item.Notes
		existing.UpdatedAt = time.Now().UTC()
		if err := s.assignments.Update(ctx, existing); err != nil {
			return err
		}
		result.Updated++
		return nil
	case errors.Is(err, repository.ErrNotFound):
		if _, err := s.CreateAssignment(ctx, projectID, item.EmployeeID, week, item.Hours, item.Notes); err != nil {
			return err
		}
		result.Created++
		return nil
	default:
		return err
	}
}

func (s *allocationService) ListAssignmentsByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]contract.AssignmentView, error) {
	assignments, err := s.assignments.ListByProject(ctx, projectID, weekStart)
	if err != nil {
		return nil, err
	}
	return s.buildAssignmentViews(ctx, assignments)
}

func (s *allocationService) ListAssignmentsByEmployee(ctx context.Context, employeeID string, weekStart *time.Time) ([]contract.AssignmentView, error) {
	assignments, err := s.assignments.ListByEmployee(ctx, employeeID, weekStart)
	if err != nil {
		return nil, err
	}
	return s.buildAssignmentViews(ctx, assignments)
}

// GetCalendarEvents projects assignments in a week range onto the calendar,
// decorating each with the employee's cross-project total for that week.
func (s *allocationService) GetCalendarEvents(ctx context.Context, from, to time.Time) ([]contract.CalendarEvent, error) {
	assignments, err := s.assignments.ListByWeekRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	empNames, capacities, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, err
	}
	projNames, err := s.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	weekTotals := make(map[string]float64)
	for _, a := range assignments {
		weekTotals[empWeekKey(a.EmployeeID, a.WeekStart)] += a.AssignedHours
	}

	events := make([]contract.CalendarEvent, 0, len(assignments))
	for _, a := range assignments {
		total := weekTotals[empWeekKey(a.EmployeeID, a.WeekStart)]
		events = append(events, contract.CalendarEvent{
			AssignmentID:      a.ID,
			ProjectID:         a.ProjectID,
			ProjectName:       projNames[a.ProjectID],
			EmployeeID:        a.EmployeeID,
			EmployeeName:      empNames[a.EmployeeID],
			WeekStart:         a.WeekStart,
			WeekEnd:           domain.WeekEnd(a.WeekStart),
			Hours:             a.AssignedHours,
			EmployeeWeekTotal: total,
			UtilizationPct:    calc.Utilization(total, capacities[a.EmployeeID]),
		})
	}
	return events, nil
}

func (s *allocationService) buildAssignmentViews(ctx context.Context, assignments []*domain.Assignment) ([]contract.AssignmentView, error) {
	if len(assignments) == 0 {
		return nil, nil
	}
	empNames, _, err := s.employeeIndex(ctx)
	if err != nil {
		return nil, err
	}
	projNames, err := s.projectNames(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]contract.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, contract.AssignmentView{
			ID:            a.ID,
			ProjectID:     a.ProjectID,
			ProjectName:   projNames[a.ProjectID],
			EmployeeID:    a.EmployeeID,
			EmployeeName:  empNames[a.EmployeeID],
			WeekStart:     a.WeekStart,
			AssignedHours: a.AssignedHours,
			Notes:         a.Notes,
		})
	}
	return views, nil
}

func (s *allocationService) employeeIndex(ctx context.Context) (names map[string]string, capacities map[string]float64, err error) {
	employees, err := s.employees.List(ctx, true)
	if err != nil {
		return nil, nil, fmt.Errorf("loading employees: %w", err)
	}
	names = make(map[string]string, len(employees))
	capacities = make(map[string]float64, len(employees))
	for _, e := range employees {
		names[e.ID] = e.FullName()
		capacities[e.ID] = e.HoursPerWeek
	}
	return names, capacities, nil
}

func (s *allocationService) projectNames(ctx context.Context) (map[string]string, error) {
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (s *allocationService) departmentNames(ctx context.Context) (map[string]string, error) {
	departments, err := s.departments.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading departments: %w", err)
	}
	names := make(map[string]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	return names, nil
}

func deptWeekKey(departmentID string, week time.Time) string {
	return departmentID + "|" + week.Format(domain.DateLayout)
}

func empWeekKey(employeeID string, week time.Time) string {
	return employeeID + "|" + week.Format(domain.DateLayout)
}
