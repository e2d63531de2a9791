package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementRepo_Upsert_InsertsThenUpdates(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	req := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 80)
	created, err := repo.Upsert(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	// Same key again: update in place, not a second row.
	again := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 120)
	created, err = repo.Upsert(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, req.ID, again.ID, "upsert should adopt the existing row's id")

	list, err := repo.ListByProject(ctx, proj.ID, nil)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 120.0, list[0].RequiredHours)
}

func TestRequirementRepo_Upsert_NormalizesWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	friday := testutil.Monday.AddDate(0, 0, 4)
	req := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 40)
	req.WeekStart = friday
	created, err := repo.Upsert(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)

	// A Monday-keyed write for the same week must hit the same row.
	sameWeek := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 60)
	created, err = repo.Upsert(ctx, sameWeek)
	require.NoError(t, err)
	assert.False(t, created)
}

func TestRequirementRepo_ListByProject_WeekFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	nextWeek := testutil.Monday.AddDate(0, 0, 7)
	_, err := repo.Upsert(ctx, testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 40))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, testutil.NewTestRequirement(proj.ID, dept.ID, nextWeek, 60))
	require.NoError(t, err)

	all, err := repo.ListByProject(ctx, proj.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := repo.ListByProject(ctx, proj.ID, &nextWeek)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, 60.0, filtered[0].RequiredHours)
}

func TestRequirementRepo_ListFromWeek(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	pastWeek := testutil.Monday.AddDate(0, 0, -14)
	_, err := repo.Upsert(ctx, testutil.NewTestRequirement(proj.ID, dept.ID, pastWeek, 40))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 60))
	require.NoError(t, err)

	future, err := repo.ListFromWeek(ctx, testutil.Monday)
	require.NoError(t, err)
	require.Len(t, future, 1)
	assert.Equal(t, testutil.Monday, future[0].WeekStart)
}

func TestRequirementRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	req := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 40)
	_, err := repo.Upsert(ctx, req)
	require.NoError(t, err)

	removed, err := repo.Delete(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, req.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRequirementRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRequirementRepo(database)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequirementRepo_Upsert_PreservesCreatedAt(t *testing.T) {
	database := testutil.NewTestDB(t)
	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)
	ctx := context.Background()

	req := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 40)
	req.CreatedAt = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	req.UpdatedAt = req.CreatedAt
	_, err := repo.Upsert(ctx, req)
	require.NoError(t, err)

	later := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, 55)
	_, err = repo.Upsert(ctx, later)
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.CreatedAt, fetched.CreatedAt)
	assert.Equal(t, 55.0, fetched.RequiredHours)
}
