package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTemplate(t *testing.T, deptIDs ...string) *domain.ProjectTemplate {
	t.Helper()
	tmpl := &domain.ProjectTemplate{
		ID:            uuid.New().String(),
		Name:          "Standard Build",
		Description:   "two-phase build",
		Priority:      domain.PriorityMedium,
		DurationWeeks: 4,
		DepartmentIDs: deptIDs,
		Active:        true,
		CreatedAt:     time.Now().UTC(),
	}
	for _, id := range deptIDs {
		for offset := 0; offset < tmpl.DurationWeeks; offset++ {
			tmpl.WeekHours = append(tmpl.WeekHours, domain.TemplateHours{
				DepartmentID: id,
				WeekOffset:   offset,
				Hours:        40,
			})
		}
	}
	return tmpl
}

func TestTemplateRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	deptRepo := NewSQLiteDepartmentRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	dept := testutil.NewTestDepartment("Engineering")
	require.NoError(t, deptRepo.Create(ctx, dept))

	tmpl := newTestTemplate(t, dept.ID)
	require.NoError(t, repo.Create(ctx, tmpl))

	fetched, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Standard Build", fetched.Name)
	assert.Equal(t, 4, fetched.DurationWeeks)
	assert.Equal(t, []string{dept.ID}, fetched.DepartmentIDs)
	require.Len(t, fetched.WeekHours, 4)
	assert.Equal(t, 0, fetched.WeekHours[0].WeekOffset)
	assert.Equal(t, 40.0, fetched.WeekHours[0].Hours)
}

func TestTemplateRepo_List_OmitsDeactivated(t *testing.T) {
	database := testutil.NewTestDB(t)
	deptRepo := NewSQLiteDepartmentRepo(database)
	repo := NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	dept := testutil.NewTestDepartment("Engineering")
	require.NoError(t, deptRepo.Create(ctx, dept))

	keep := newTestTemplate(t, dept.ID)
	require.NoError(t, repo.Create(ctx, keep))

	gone := newTestTemplate(t, dept.ID)
	gone.Name = "Legacy Build"
	require.NoError(t, repo.Create(ctx, gone))
	require.NoError(t, repo.Deactivate(ctx, gone.ID))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, keep.ID, list[0].ID)

	_, err = repo.GetByID(ctx, gone.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemplateRepo_Deactivate_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteTemplateRepo(database)

	err := repo.Deactivate(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}
