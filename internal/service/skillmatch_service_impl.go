package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
)

type skillMatchService struct {
	employees   repository.EmployeeRepo
	projects    repository.ProjectRepo
	departments repository.DepartmentRepo
	assignments repository.AssignmentRepo
}

func NewSkillMatchService(
	employees repository.EmployeeRepo,
	projects repository.ProjectRepo,
	departments repository.DepartmentRepo,
	assignments repository.AssignmentRepo,
) SkillMatchService {
	return &skillMatchService{
		employees:   employees,
		projects:    projects,
		departments: departments,
		assignments: assignments,
	}
}

// skillsMatch reports whether an employee skill token satisfies a requested
// token. The comparison is substring-based in both directions and
// case-insensitive, so "Postgres" matches a request for "PostgreSQL" and
// vice versa.
func skillsMatch(employeeSkill, requestedSkill string) bool {
	e := strings.ToLower(strings.TrimSpace(employeeSkill))
	r := strings.ToLower(strings.TrimSpace(requestedSkill))
	if e == "" || r == "" {
		return false
	}
	return strings.Contains(e, r) || strings.Contains(r, e)
}

func (s *skillMatchService) FindMatches(ctx context.Context, req contract.SkillMatchRequest) ([]contract.SkillMatch, error) {
	if err := validateRequired("projectId", req.ProjectID); err != nil {
		return nil, err
	}
	if err := validateNotZero("weekStart", req.WeekStart); err != nil {
		return nil, err
	}
	week := domain.WeekStart(req.WeekStart)

	candidates, err := s.candidatePool(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	// Employees already on this project for the target week are not
	// candidates; the caller should update their assignment instead.
	taken, err := s.assignments.ListByProject(ctx, req.ProjectID, &week)
	if err != nil {
		return nil, fmt.Errorf("loading existing assignments: %w", err)
	}
	excluded := make(map[string]bool, len(taken))
	for _, a := range taken {
		excluded[a.EmployeeID] = true
	}

	weekHours, err := s.weekHours(ctx, week)
	if err != nil {
		return nil, err
	}
	deptNames, err := s.departmentNames(ctx)
	if err != nil {
		return nil, err
	}

	var matches []contract.SkillMatch
	for _, emp := range candidates {
		if excluded[emp.ID] {
			continue
		}
		assigned := weekHours[emp.ID]
		available := emp.HoursPerWeek - assigned
		if available < req.MinAvailableHours {
			continue
		}

		matched, score, pct := scoreSkills(emp.Skills, req.RequestedSkills)
		matches = append(matches, contract.SkillMatch{
			EmployeeID:      emp.ID,
			EmployeeName:    emp.FullName(),
			DepartmentID:    emp.DepartmentID,
			DepartmentName:  deptNames[emp.DepartmentID],
			Skills:          emp.Skills,
			MatchedSkills:   matched,
			MatchScore:      score,
			MatchPercentage: pct,
			AssignedHours:   assigned,
			AvailableHours:  calc.Round2(available),
			UtilizationPct:  calc.Utilization(assigned, emp.HoursPerWeek),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		mi, mj := matches[i], matches[j]
		if mi.MatchPercentage != mj.MatchPercentage {
			return mi.MatchPercentage > mj.MatchPercentage
		}
		if mi.MatchScore != mj.MatchScore {
			return mi.MatchScore > mj.MatchScore
		}
		if mi.AvailableHours != mj.AvailableHours {
			return mi.AvailableHours > mj.AvailableHours
		}
		return mi.EmployeeName < mj.EmployeeName
	})
	return matches, nil
}

// scoreSkills computes the matched subset of requested skills and the match
// percentage. An empty request matches every candidate fully, scored by how
// many skills they bring.
func scoreSkills(employeeSkills, requestedSkills []string) (matched []string, score int, pct float64) {
	if len(requestedSkills) == 0 {
		return employeeSkills, len(employeeSkills), 100
	}
	for _, want := range requestedSkills {
		for _, have := range employeeSkills {
			if skillsMatch(have, want) {
				matched = append(matched, want)
				break
			}
		}
	}
	score = len(matched)
	if score == 0 {
		return matched, 0, 0
	}
	return matched, score, calc.Round1(float64(score) / float64(len(requestedSkills)) * 100)
}

func (s *skillMatchService) GetAllSkills(ctx context.Context) ([]string, error) {
	employees, err := s.employees.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	return distinctSkills(employees), nil
}

// GetProjectRequiredSkills returns the union of skills held across the
// project's departments, a rough picture of what the project's staff pool
// can offer.
func (s *skillMatchService) GetProjectRequiredSkills(ctx context.Context, projectID string) ([]string, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var pool []*domain.Employee
	for _, deptID := range project.DepartmentIDs {
		employees, err := s.employees.ListByDepartment(ctx, deptID)
		if err != nil {
			return nil, fmt.Errorf("loading department %s employees: %w", deptID, err)
		}
		pool = append(pool, employees...)
	}
	return distinctSkills(pool), nil
}

func (s *skillMatchService) GetAvailableEmployees(ctx context.Context, departmentID string, weekStart time.Time, minAvailableHours float64) ([]contract.AvailabilityView, error) {
	if err := validateNotZero("weekStart", weekStart); err != nil {
		return nil, err
	}
	week := domain.WeekStart(weekStart)

	candidates, err := s.candidatePool(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	weekHours, err := s.weekHours(ctx, week)
	if err != nil {
		return nil, err
	}

	var views []contract.AvailabilityView
	for _, emp := range candidates {
		assigned := weekHours[emp.ID]
		available := emp.HoursPerWeek - assigned
		if available < minAvailableHours {
			continue
		}
		pct := calc.Utilization(assigned, emp.HoursPerWeek)
		views = append(views, contract.AvailabilityView{
			EmployeeID:     emp.ID,
			EmployeeName:   emp.FullName(),
			DepartmentID:   emp.DepartmentID,
			CapacityHours:  emp.HoursPerWeek,
			AssignedHours:  assigned,
			AvailableHours: calc.Round2(available),
			UtilizationPct: pct,
			LoadLevel:      calc.LoadLevelFor(pct),
		})
	}

	sort.Slice(views, func(i, j int) bool {
		if views[i].AvailableHours != views[j].AvailableHours {
			return views[i].AvailableHours > views[j].AvailableHours
		}
		return views[i].EmployeeName < views[j].EmployeeName
	})
	return views, nil
}

func (s *skillMatchService) candidatePool(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	if departmentID != "" {
		employees, err := s.employees.ListByDepartment(ctx, departmentID)
		if err != nil {
			return nil, fmt.Errorf("loading department employees: %w", err)
		}
		return employees, nil
	}
	employees, err := s.employees.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	return employees, nil
}

// weekHours returns each employee's total assigned hours for one week,
// summed across all projects.
func (s *skillMatchService) weekHours(ctx context.Context, week time.Time) (map[string]float64, error) {
	sums, err := s.assignments.SumByEmployeeWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weekly totals: %w", err)
	}
	hours := make(map[string]float64)
	for _, sum := range sums {
		if sum.WeekStart.Equal(week) {
			hours[sum.EmployeeID] = sum.TotalHours
		}
	}
	return hours, nil
}

func (s *skillMatchService) departmentNames(ctx context.Context) (map[string]string, error) {
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

// distinctSkills dedupes case-insensitively, keeping the first spelling
// seen, and returns the result sorted.
func distinctSkills(employees []*domain.Employee) []string {
	seen := make(map[string]string)
	for _, e := range employees {
		for _, skill := range e.Skills {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			key := strings.ToLower(skill)
			if _, ok := seen[key]; !ok {
				seen[key] = skill
			}
		}
	}
	skills := make([]string, 0, len(seen))
	for _, s := range seen {
		skills = append(skills, s)
	}
	sort.Strings(skills)
	return skills
}
