package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *env) conflictService() ConflictService {
	return NewConflictService(e.employees, e.projects, e.departments, e.requirements, e.assignments, contract.DefaultConflictPolicy())
}

func TestGetConflicts_OverallocationSumsAcrossProjects(t *testing.T) {
	e := newEnv(t)
	dept, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	other := testutil.NewTestProject("Borealis", testutil.WithDepartments(dept.ID))
	require.NoError(t, e.projects.Create(ctx, other))

	// 25h + 20h across two projects against a 40h capacity. Neither
	// assignment alone exceeds capacity; only the cross-project sum does.
	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 25, "")
	require.NoError(t, err)
	_, err = alloc.CreateAssignment(ctx, other.ID, ada.ID, testutil.Monday, 20, "")
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	c := conflicts[0]
	assert.Equal(t, domain.ConflictOverallocatedEmployee, c.Type)
	assert.Equal(t, ada.ID, c.EmployeeID)
	assert.Equal(t, 5.0, c.Variance)
	assert.Equal(t, 112.5, c.UtilizationPct)
	assert.Equal(t, []string{"Apollo", "Borealis"}, c.ProjectNames)
	assert.Equal(t, domain.ConflictMedium, c.Priority)
}

func TestGetConflicts_NoConflictAtExactCapacity(t *testing.T) {
	e := newEnv(t)
	_, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 40, "")
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestGetConflicts_UnderstaffedRequiresGapOverThreshold(t *testing.T) {
	e := newEnv(t)
	dept, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	// Gap of exactly 10h: not a conflict. The threshold is strict.
	_, err := alloc.SaveLaborRequirement(ctx, proj.ID, dept.ID, testutil.Monday, 40)
	require.NoError(t, err)
	_, err = alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 30, "")
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// Widen the gap past the threshold.
	_, err = alloc.SaveLaborRequirement(ctx, proj.ID, dept.ID, testutil.Monday, 41)
	require.NoError(t, err)

	conflicts, err = svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)

	c := conflicts[0]
	assert.Equal(t, domain.ConflictUnderstaffedProject, c.Type)
	assert.Equal(t, proj.ID, c.ProjectID)
	assert.Equal(t, dept.ID, c.DepartmentID)
	assert.Equal(t, 11.0, c.Variance)
	assert.Equal(t, 30.0, c.AssignedHours)
	assert.Equal(t, 41.0, c.RequiredHours)
}

func TestGetConflicts_PastWeekUnderstaffingIgnored(t *testing.T) {
	e := newEnv(t)
	dept, _, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	pastWeek := testutil.Monday.AddDate(0, 0, -14)
	_, err := alloc.SaveLaborRequirement(ctx, proj.ID, dept.ID, pastWeek, 20)
	require.NoError(t, err)

	// A 20-hour gap, but the week is already history.
	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestGetConflicts_OverallocationChecksAllQueriedWeeks(t *testing.T) {
	e := newEnv(t)
	_, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	// Overallocation in a past week is still reported; only the
	// understaffing cutoff is anchored to the current week.
	pastWeek := testutil.Monday.AddDate(0, 0, -7)
	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, pastWeek, 50, "")
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictOverallocatedEmployee, conflicts[0].Type)
	assert.Equal(t, pastWeek, conflicts[0].WeekStart)
}

func TestGetConflicts_RankedByPriorityThenVariance(t *testing.T) {
	e := newEnv(t)
	_, ada, grace, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	// Ada: 12h over capacity (High). Grace: 6h over (Medium).
	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 52, "")
	require.NoError(t, err)
	_, err = alloc.CreateAssignment(ctx, proj.ID, grace.ID, testutil.Monday, 46, "")
	require.NoError(t, err)

	// A deep understaffing gap on another department: 0 of 100h (High,
	// bigger variance than Ada's 12).
	design := testutil.NewTestDepartment("Design")
	require.NoError(t, e.departments.Create(ctx, design))
	_, err = alloc.SaveLaborRequirement(ctx, proj.ID, design.ID, testutil.Monday, 100)
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{Now: &now})
	require.NoError(t, err)
	require.Len(t, conflicts, 3)

	assert.Equal(t, domain.ConflictUnderstaffedProject, conflicts[0].Type)
	assert.Equal(t, 100.0, conflicts[0].Variance)
	assert.Equal(t, ada.ID, conflicts[1].EmployeeID)
	assert.Equal(t, domain.ConflictHigh, conflicts[1].Priority)
	assert.Equal(t, grace.ID, conflicts[2].EmployeeID)
	assert.Equal(t, domain.ConflictMedium, conflicts[2].Priority)
}

func TestGetConflicts_TypeFilter(t *testing.T) {
	e := newEnv(t)
	dept, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 50, "")
	require.NoError(t, err)
	_, err = alloc.SaveLaborRequirement(ctx, proj.ID, dept.ID, testutil.Monday, 100)
	require.NoError(t, err)

	now := testutil.Monday
	conflicts, err := svc.GetConflicts(ctx, contract.ConflictOptions{
		Now:   &now,
		Types: []domain.ConflictType{domain.ConflictOverallocatedEmployee},
	})
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, domain.ConflictOverallocatedEmployee, conflicts[0].Type)
}

func TestGetQuickStats(t *testing.T) {
	e := newEnv(t)
	dept, ada, _, proj := seedRoster(t, e)
	alloc := e.allocationService()
	svc := e.conflictService()
	ctx := context.Background()

	// Ada over capacity this week; Grace idle. Requirement short by 55h.
	_, err := alloc.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 45, "")
	require.NoError(t, err)
	_, err = alloc.SaveLaborRequirement(ctx, proj.ID, dept.ID, testutil.Monday, 100)
	require.NoError(t, err)

	stats, err := svc.GetQuickStats(ctx, testutil.Monday)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ActiveProjects)
	assert.Equal(t, 2, stats.ActiveEmployees)
	assert.Equal(t, 1, stats.OverallocatedEmployees)
	assert.Equal(t, 1, stats.UnderstaffedProjects)
	// (112.5 + 0) / 2
	assert.Equal(t, 56.25, stats.AvgUtilizationPct)
	assert.Equal(t, testutil.Monday, stats.CurrentWeek)
}
