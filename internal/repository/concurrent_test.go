package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newConcurrentTestDB creates a file-backed SQLite database in a temp directory.
// Unlike :memory:, a file-backed DB shares state across all connections in the
// pool, which is required to test real concurrent access with WAL mode.
func newConcurrentTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "concurrent_test.db")
	database, err := db.OpenDB(dbPath)
	require.NoError(t, err, "failed to create concurrent test database")
	t.Cleanup(func() { database.Close() })
	return database
}

// retryBusy retries fn with backoff while SQLite reports a busy writer.
// Domain errors (duplicate key, not found) pass through immediately.
func retryBusy(fn func() error) error {
	const maxRetries = 10
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err = fn()
		if err == nil || errors.Is(err, ErrDuplicateAssignment) || errors.Is(err, ErrNotFound) {
			return err
		}
		time.Sleep(time.Millisecond * time.Duration(1<<attempt))
	}
	return err
}

// TestConcurrentAccess_DuplicateAssignment_SingleWinner verifies that when
// many writers race to claim the same (project, employee, week) slot, exactly
// one insert succeeds and every other writer observes the duplicate error.
func TestConcurrentAccess_DuplicateAssignment_SingleWinner(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)

	const workers = 20
	var wg sync.WaitGroup
	var created, duplicate atomic.Int32

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a := testutil.NewTestAssignment(proj.ID, emp.ID, testutil.Monday, float64(10+i))
			err := retryBusy(func() error {
				return repo.Create(ctx, a)
			})
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, ErrDuplicateAssignment):
				duplicate.Add(1)
			default:
				t.Errorf("worker %d: unexpected error: %v", i, err)
			}
		}(i)
	}

	wg.Wait()

	assert.Equal(t, int32(1), created.Load(), "exactly one writer should claim the slot")
	assert.Equal(t, int32(workers-1), duplicate.Load())

	list, err := repo.ListByEmployee(ctx, emp.ID, &testutil.Monday)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// TestConcurrentAccess_ReadDuringWrite verifies that listing assignments does
// not block or observe half-written rows while a writer is adding weeks.
// SQLite WAL mode allows concurrent readers with a single writer, which is the
// normal operating mode here (single-user CLI with occasional writes).
func TestConcurrentAccess_ReadDuringWrite(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	_, emp, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteAssignmentRepo(database)

	const weeks = 20
	var wg sync.WaitGroup

	// Writer goroutine: one assignment per week, sequentially.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < weeks; i++ {
			week := testutil.Monday.AddDate(0, 0, 7*i)
			a := testutil.NewTestAssignment(proj.ID, emp.ID, week, 20)
			if err := retryBusy(func() error { return repo.Create(ctx, a) }); err != nil {
				t.Errorf("writer: create assignment %d: %v", i, err)
				return
			}
		}
	}()

	// Reader goroutines: repeatedly list while writes happen.
	for r := 0; r < 5; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				list, err := repo.ListByEmployee(ctx, emp.ID, nil)
				if err != nil {
					t.Errorf("reader %d: list assignments: %v", reader, err)
					return
				}
				for _, a := range list {
					if a.ID == "" || a.ProjectID == "" {
						t.Errorf("reader %d: got assignment with empty ID", reader)
					}
				}
			}
		}(r)
	}

	wg.Wait()

	list, err := repo.ListByEmployee(ctx, emp.ID, nil)
	require.NoError(t, err)
	assert.Len(t, list, weeks)
}

// TestConcurrentAccess_RequirementUpsert_NoDuplicateRows verifies that racing
// upserts for the same (project, department, week) key converge to a single
// row rather than multiplying.
func TestConcurrentAccess_RequirementUpsert_NoDuplicateRows(t *testing.T) {
	database := newConcurrentTestDB(t)
	ctx := context.Background()

	dept, _, proj := seedAllocationFixtures(t, database)
	repo := NewSQLiteRequirementRepo(database)

	const workers = 20
	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.NewTestRequirement(proj.ID, dept.ID, testutil.Monday, float64(40+i))
			err := retryBusy(func() error {
				_, err := repo.Upsert(ctx, req)
				return err
			})
			if err != nil {
				errCh <- fmt.Errorf("worker %d: %w", i, err)
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}

	list, err := repo.ListByProject(ctx, proj.ID, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1, "racing upserts should converge to one row per key")
}
