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
)

type timelineService struct {
	departments repository.DepartmentRepo
	employees   repository.EmployeeRepo
	assignments repository.AssignmentRepo
}

func NewTimelineService(
	departments repository.DepartmentRepo,
	employees repository.EmployeeRepo,
	assignments repository.AssignmentRepo,
) TimelineService {
	return &timelineService{
		departments: departments,
		employees:   employees,
		assignments: assignments,
	}
}

// GetResourceTimeline rolls department capacity against assigned hours over
// N consecutive weeks. Every active department contributes exactly N
// entries, weeks strictly 7 days apart, each week's utilization computed
// independently.
func (s *timelineService) GetResourceTimeline(ctx context.Context, req contract.TimelineRequest) ([]contract.TimelineEntry, error) {
	weekCount := req.WeekCount
	if weekCount == 0 {
		weekCount = calc.DefaultTimelineWeeks
	}
	if err := validateWeekCount(weekCount); err != nil {
		return nil, err
	}

	start := time.Now().UTC()
	if req.StartWeek != nil {
		start = *req.StartWeek
	}
	start = domain.WeekStart(start)

	departments, err := s.departments.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading departments: %w", err)
	}
	sort.Slice(departments, func(i, j int) bool {
		return departments[i].Name < departments[j].Name
	})

	employees, err := s.employees.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("loading employees: %w", err)
	}
	deptOf := make(map[string]string, len(employees))
	capacity := make(map[string]float64, len(departments))
	for _, e := range employees {
		deptOf[e.ID] = e.DepartmentID
		capacity[e.DepartmentID] += e.HoursPerWeek
	}

	sums, err := s.assignments.SumByEmployeeWeek(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading weekly totals: %w", err)
	}
	assigned := make(map[string]float64)
	for _, sum := range sums {
		deptID, ok := deptOf[sum.EmployeeID]
		if !ok {
			continue
		}
		assigned[deptWeekKey(deptID, sum.WeekStart)] += sum.TotalHours
	}

	entries := make([]contract.TimelineEntry, 0, len(departments)*weekCount)
	for _, dept := range departments {
		for i := 0; i < weekCount; i++ {
			week := start.AddDate(0, 0, 7*i)
			hours := assigned[deptWeekKey(dept.ID, week)]
			pct := calc.Utilization(hours, capacity[dept.ID])
			entries = append(entries, contract.TimelineEntry{
				DepartmentID:   dept.ID,
				DepartmentName: dept.Name,
				WeekIndex:      i,
				WeekStart:      week,
				CapacityHours:  capacity[dept.ID],
				AssignedHours:  hours,
				UtilizationPct: pct,
				LoadLevel:      calc.LoadLevelFor(pct),
			})
		}
	}
	return entries, nil
}
