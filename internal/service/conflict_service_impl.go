package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/app"
	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
)

type conflictService struct {
	employees    repository.EmployeeRepo
	projects     repository.ProjectRepo
	departments  repository.DepartmentRepo
	requirements repository.RequirementRepo
	assignments  repository.AssignmentRepo
	policy       app.ConflictPolicy
}

func NewConflictService(
	employees repository.EmployeeRepo,
	projects repository.ProjectRepo,
	departments repository.DepartmentRepo,
	requirements repository.RequirementRepo,
	assignments repository.AssignmentRepo,
	policy app.ConflictPolicy,
) ConflictService {
	return &conflictService{
		employees:    employees,
		projects:     projects,
		departments:  departments,
		requirements: requirements,
		assignments:  assignments,
		policy:       policy,
	}
}

// conflictIndex holds the per-scan lookup structures built once from a
// snapshot of the roster and ledger.
type conflictIndex struct {
	empByID        map[string]*domain.Employee
	projNames      map[string]string
	deptNames      map[string]string
	empWeekHours map[string]float64
	empWeekProj  map[string]map[string]bool
	deptProjWeek map[string]float64
}

func splitEmpWeekKey(key string) (employeeID string, week time.Time, ok bool) {
	i := strings.LastIndexByte(key, '|')
	if i < 0 {
		return "", time.Time{}, false
	}
	week, err := time.Parse(domain.DateLayout, key[i+1:])
	if err != nil {
		return "", time.Time{}, false
	}
	return key[:i], week, true
}

func (s *conflictService) buildIndex(ctx context.Context) (*conflictIndex, error) {
	employees, err := s.employees.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	projects, err := s.projects.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	departments, err := s.departments.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("loading departments: %w", err)
	}
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading assignments: %w", err)
	}

	idx := &conflictIndex{
		empByID:      make(map[string]*domain.Employee, len(employees)),
		projNames:    make(map[string]string, len(projects)),
		deptNames:    make(map[string]string, len(departments)),
		empWeekHours: make(map[string]float64),
		empWeekProj:  make(map[string]map[string]bool),
		deptProjWeek: make(map[string]float64),
	}
	for _, e := range employees {
		idx.empByID[e.ID] = e
	}
	for _, p := range projects {
		idx.projNames[p.ID] = p.Name
	}
	for _, d := range departments {
		idx.deptNames[d.ID] = d.Name
	}

	for _, a := range assignments {
		emp, ok := idx.empByID[a.EmployeeID]
		if !ok {
			continue
		}

		deptKey := a.ProjectID + "|" + deptWeekKey(emp.DepartmentID, a.WeekStart)
		idx.deptProjWeek[deptKey] += a.AssignedHours

		// Deactivated employees keep counting toward department coverage
		// but are never reported as overallocated.
		if !emp.Active {
			continue
		}
		key := empWeekKey(a.EmployeeID, a.WeekStart)
		idx.empWeekHours[key] += a.AssignedHours
		if idx.empWeekProj[key] == nil {
			idx.empWeekProj[key] = make(map[string]bool)
		}
		idx.empWeekProj[key][a.ProjectID] = true
	}
	return idx, nil
}

func (s *conflictService) GetConflicts(ctx context.Context, opts contract.ConflictOptions) ([]contract.Conflict, error) {
	now := time.Now().UTC()
	if opts.Now != nil {
		now = *opts.Now
	}
	currentWeek := domain.WeekStart(now)

	idx, err := s.buildIndex(ctx)
	if err != nil {
		return nil, err
	}

	scope := make(map[string]bool, len(opts.ProjectScope))
	for _, id := range opts.ProjectScope {
		scope[id] = true
	}

	var conflicts []contract.Conflict
	if conflictTypeWanted(opts.Types, domain.ConflictOverallocatedEmployee) {
		conflicts = append(conflicts, s.overallocated(idx, scope)...)
	}
	if conflictTypeWanted(opts.Types, domain.ConflictUnderstaffedProject) {
		under, err := s.understaffed(ctx, idx, scope, currentWeek)
		if err != nil {
			return nil, err
		}
		conflicts = append(conflicts, under...)
	}

	sortConflicts(conflicts)
	return conflicts, nil
}

// overallocated emits one conflict per (employee, week) whose hours summed
// across every project exceed the employee's capacity. Summing within a
// single project would undercount and miss real conflicts.
func (s *conflictService) overallocated(idx *conflictIndex, scope map[string]bool) []contract.Conflict {
	var conflicts []contract.Conflict
	for key, total := range idx.empWeekHours {
		employeeID, week, ok := splitEmpWeekKey(key)
		if !ok {
			continue
		}
		emp := idx.empByID[employeeID]
		if emp == nil || total <= emp.HoursPerWeek {
			continue
		}

		var names []string
		inScope := len(scope) == 0
		for projectID := range idx.empWeekProj[key] {
			if scope[projectID] {
				inScope = true
			}
			names = append(names, idx.projNames[projectID])
		}
		if !inScope {
			continue
		}
		sort.Strings(names)

		variance := calc.Round2(total - emp.HoursPerWeek)
		conflicts = append(conflicts, contract.Conflict{
			Type:           domain.ConflictOverallocatedEmployee,
			Priority:       s.overallocationPriority(variance),
			WeekStart:      week,
			EmployeeID:     emp.ID,
			EmployeeName:   emp.FullName(),
			ProjectNames:   names,
			AssignedHours:  total,
			CapacityHours:  emp.HoursPerWeek,
			Variance:       variance,
			UtilizationPct: calc.Utilization(total, emp.HoursPerWeek),
			Message: fmt.Sprintf("%s is assigned %.1fh against a %.1fh capacity (%s)",
				emp.FullName(), total, emp.HoursPerWeek, strings.Join(names, ", ")),
		})
	}
	return conflicts
}

// understaffed emits one conflict per requirement at or after the current
// week whose department coverage falls short by more than the fixed gap.
// Past weeks are settled history and never flagged.
func (s *conflictService) understaffed(ctx context.Context, idx *conflictIndex, scope map[string]bool, currentWeek time.Time) ([]contract.Conflict, error) {
	reqs, err := s.requirements.ListFromWeek(ctx, currentWeek)
	if err != nil {
		return nil, fmt.Errorf("loading requirements: %w", err)
	}

	var conflicts []contract.Conflict
	for _, req := range reqs {
		if len(scope) > 0 && !scope[req.ProjectID] {
			continue
		}
		assigned := idx.deptProjWeek[req.ProjectID+"|"+deptWeekKey(req.DepartmentID, req.WeekStart)]
		gap := req.RequiredHours - assigned
		if gap <= calc.UnderstaffingGapHours {
			continue
		}

		pct := calc.StaffingPercentage(assigned, req.RequiredHours)
		conflicts = append(conflicts, contract.Conflict{
			Type:           domain.ConflictUnderstaffedProject,
			Priority:       s.understaffingPriority(pct),
			WeekStart:      req.WeekStart,
			ProjectID:      req.ProjectID,
			ProjectName:    idx.projNames[req.ProjectID],
			DepartmentID:   req.DepartmentID,
			DepartmentName: idx.deptNames[req.DepartmentID],
			AssignedHours:  assigned,
			RequiredHours:  req.RequiredHours,
			Variance:       calc.Round2(gap),
			StaffingPct:    pct,
			Message: fmt.Sprintf("%s / %s needs %.1fh, has %.1fh for week of %s",
				idx.projNames[req.ProjectID], idx.deptNames[req.DepartmentID],
				req.RequiredHours, assigned, req.WeekStart.Format(domain.DateLayout)),
		})
	}
	return conflicts, nil
}

func (s *conflictService) overallocationPriority(variance float64) domain.ConflictPriority {
	switch {
	case variance >= s.policy.OverallocationHighHours:
		return domain.ConflictHigh
	case variance >= s.policy.OverallocationMediumHours:
		return domain.ConflictMedium
	default:
		return domain.ConflictLow
	}
}

func (s *conflictService) understaffingPriority(staffingPct float64) domain.ConflictPriority {
	switch {
	case staffingPct < s.policy.UnderstaffedHighBelowPct:
		return domain.ConflictHigh
	case staffingPct < s.policy.UnderstaffedMediumBelowPct:
		return domain.ConflictMedium
	default:
		return domain.ConflictLow
	}
}

func sortConflicts(conflicts []contract.Conflict) {
	sort.Slice(conflicts, func(i, j int) bool {
		ci, cj := conflicts[i], conflicts[j]
		if ci.Priority.Rank() != cj.Priority.Rank() {
			return ci.Priority.Rank() > cj.Priority.Rank()
		}
		if ci.Variance != cj.Variance {
			return ci.Variance > cj.Variance
		}
		if !ci.WeekStart.Equal(cj.WeekStart) {
			return ci.WeekStart.Before(cj.WeekStart)
		}
		return ci.EmployeeName+ci.ProjectName < cj.EmployeeName+cj.ProjectName
	})
}

func conflictTypeWanted(types []domain.ConflictType, t domain.ConflictType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if want == t {
			return true
		}
	}
	return false
}

func (s *conflictService) GetQuickStats(ctx context.Context, now time.Time) (*contract.QuickStats, error) {
	currentWeek := domain.WeekStart(now)

	projects, err := s.projects.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	var activeProjects int
	for _, p := range projects {
		if p.Status == domain.ProjectActive {
			activeProjects++
		}
	}

	employees, err := s.employees.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}

	sums, err := s.assignments.SumByEmployeeWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weekly totals: %w", err)
	}
	weekHours := make(map[string]float64, len(sums))
	for _, sum := range sums {
		if sum.WeekStart.Equal(currentWeek) {
			weekHours[sum.EmployeeID] = sum.TotalHours
		}
	}

	var utilizationSum float64
	for _, e := range employees {
		utilizationSum += calc.Utilization(weekHours[e.ID], e.HoursPerWeek)
	}
	var avgUtilization float64
	if len(employees) > 0 {
		avgUtilization = calc.Round2(utilizationSum / float64(len(employees)))
	}

	conflicts, err := s.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	if err != nil {
		return nil, err
	}
	overEmployees := make(map[string]bool)
	underProjects := make(map[string]bool)
	for _, c := range conflicts {
		switch c.Type {
		case domain.ConflictOverallocatedEmployee:
			if c.WeekStart.Equal(currentWeek) {
				overEmployees[c.EmployeeID] = true
			}
		case domain.ConflictUnderstaffedProject:
			underProjects[c.ProjectID] = true
		}
	}

	return &contract.QuickStats{
		GeneratedAt:            now,
		CurrentWeek:            currentWeek,
		ActiveProjects:         activeProjects,
		ActiveEmployees:        len(employees),
		AvgUtilizationPct:      avgUtilization,
		OverallocatedEmployees: len(overEmployees),
		UnderstaffedProjects:   len(underProjects),
	}, nil
}
