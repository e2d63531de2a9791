package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedAllocationFixtures creates a department, an employee in it, and a
// project so assignment rows satisfy their foreign keys.
func seedAllocationFixtures(t *testing.T, database *sql.DB) (*domain.Department, *domain.Employee, *domain.Project) {
	t.Helper()
	ctx := context.Background()

	deptRepo := NewSQLiteDepartmentRepo(database)
	empRepo := NewSQLiteEmployeeRepo(database)
	projRepo := NewSQLiteProjectRepo(database)

	dept := testutil.NewTestDepartment("Engineering")
	require.NoError(t, deptRepo.Create(ctx, dept))

	emp := testutil.NewTestEmployee(dept.ID, "Ada", "Lovelace")
	require.NoError(t, empRepo.Create(ctx, emp))

	proj := testutil.NewTestProject("Apollo", testutil.WithDepartments(dept.ID))
	require.NoError(t, projRepo.Create(ctx, proj))

	return dept, emp, proj
}

func TestAssignmentRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 25)
	a.Notes = "frontend work"
	require.NoError(t, repo.Create(ctx, a))

	fetched, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ProjectID)
	assert.Equal(t, emp.ID, fetched.EmployeeID)
	assert.Equal(t, testutil.Monday, fetched.WeekStart)
	assert.Equal(t, 25.0, fetched.AssignedHours)
	assert.Equal(t, "frontend work", fetched.Notes)
}

func TestAssignmentRepo_Create_NormalizesWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 10)
	a.WeekStart = testutil.Monday.AddDate(0, 0, 3) // Thursday
	require.NoError(t, repo.Create(ctx, a))

	fetched, err := repo.GetByKey(ctx, proj.ID, emp.ID, testutil.Monday)
	require.NoError(t, err)
	assert.Equal(t, testutil.Monday, fetched.WeekStart)
}

func TestAssignmentRepo_Create_DuplicateKeyFails(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	first := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 20)
	require.NoError(t, repo.Create(ctx, first))

	second := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 35)
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, ErrDuplicateAssignment)

	// The existing row is untouched.
	fetched, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 20.0, fetched.AssignedHours)
}

func TestAssignmentRepo_Create_SameEmployeeDifferentProjects(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	projRepo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	other := testutil.NewTestProject("Borealis", testutil.WithDepartments(dept.ID))
	require.NoError(t, projRepo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 25)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(other.ID, emp.ID, testutil.Monday, 20)))

	list, err := repo.ListByEmployee(ctx, emp.ID, &testutil.Monday)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAssignmentRepo_Update(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 15)
	require.NoError(t, repo.Create(ctx, a))

	a.AssignedHours = 30
	a.Notes = "scope grew"
	a.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Update(ctx, a))

	fetched, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 30.0, fetched.AssignedHours)
	assert.Equal(t, "scope grew", fetched.Notes)
}

func TestAssignmentRepo_Update_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	ghost := testutil.NewTestAssignment("p", "e", testutil.Monday, 10)
	err := repo.Update(ctx, ghost)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentRepo_Delete_Idempotent(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 15)
	require.NoError(t, repo.Create(ctx, a))

	removed, err := repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	// Second delete is a no-op, not an error.
	removed, err = repo.Delete(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestAssignmentRepo_ListByProject_WeekFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	nextWeek := testutil.Monday.AddDate(0, 0, 7)
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 10)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, emp.ID, nextWeek, 20)))

	all, err := repo.ListByProject(ctx, proj.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyFirst, err := repo.ListByProject(ctx, proj.ID, &testutil.Monday)
	require.NoError(t, err)
	require.Len(t, onlyFirst, 1)
	assert.Equal(t, 10.0, onlyFirst[0].AssignedHours)
}

func TestAssignmentRepo_SumByEmployeeWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	projRepo := NewSQLiteProjectRepo(database)
	ctx := context.Background()

	other := testutil.NewTestProject("Borealis", testutil.WithDepartments(dept.ID))
	require.NoError(t, projRepo.Create(ctx, other))

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 25)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(other.ID, emp.ID, testutil.Monday, 20)))

	totals, err := repo.SumByEmployeeWeek(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, emp.ID, totals[0].EmployeeID)
	assert.Equal(t, testutil.Monday, totals[0].WeekStart)
	assert.Equal(t, 45.0, totals[0].TotalHours)
}

func TestAssignmentRepo_SumByDepartmentWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)
	empRepo := NewSQLiteEmployeeRepo(database)
	ctx := context.Background()

	colleague := testutil.NewTestEmployee(dept.ID, "Grace", "Hopper")
	require.NoError(t, empRepo.Create(ctx, colleague))

	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, 12)))
	require.NoError(t, repo.Create(ctx, testutil.NewTestAssignment(proj.ID, colleague.ID, testutil.Monday, 18)))

	totals, err := repo.SumByDepartmentWeek(ctx)
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, proj.ID, totals[0].ProjectID)
	assert.Equal(t, dept.ID, totals[0].DepartmentID)
	assert.Equal(t, 30.0, totals[0].TotalHours)
}
