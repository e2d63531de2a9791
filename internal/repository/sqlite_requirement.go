package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const requirementColumns = `id, project_id, department_id, week_start, required_hours,
		created_at, updated_at`

// SQLiteRequirementRepo implements RequirementRepo on SQLite. Writes are
// keyed upserts; the UNIQUE (project, department, week) constraint keeps
// the one-row-per-key invariant.
type SQLiteRequirementRepo struct {
	db db.DBTX
}

func NewSQLiteRequirementRepo(dbtx db.DBTX) *SQLiteRequirementRepo {
	return &SQLiteRequirementRepo{db: dbtx}
}

func (r *SQLiteRequirementRepo) Upsert(ctx context.Context, req *domain.LaborRequirement) (bool, error) {
	week := weekKey(req.WeekStart)

	res, err := r.db.ExecContext(ctx,
		`UPDATE labor_requirements SET required_hours = ?, updated_at = ?
		WHERE project_id = ? AND department_id = ? AND week_start = ?`,
		req.RequiredHours,
		req.UpdatedAt.Format(time.RFC3339),
		req.ProjectID,
		req.DepartmentID,
		week,
	)
	if err != nil {
		return false, fmt.Errorf("updating labor requirement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking upsert result: %w", err)
	}
	if n > 0 {
		existing, err := r.getByKey(ctx, req.ProjectID, req.DepartmentID, week)
		if err != nil {
			return false, err
		}
		req.ID = existing.ID
		req.CreatedAt = existing.CreatedAt
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO labor_requirements (id, project_id, department_id, week_start, required_hours,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		req.ID,
		req.ProjectID,
		req.DepartmentID,
		week,
		req.RequiredHours,
		req.CreatedAt.Format(time.RFC3339),
		req.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		// A concurrent writer may have inserted between the update and
		// the insert; fall back to updating in place.
		if isUniqueViolation(err) {
			return r.Upsert(ctx, req)
		}
		return false, fmt.Errorf("inserting labor requirement: %w", err)
	}
	return true, nil
}

func (r *SQLiteRequirementRepo) GetByID(ctx context.Context, id string) (*domain.LaborRequirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM labor_requirements WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanRequirementRow(row)
}

func (r *SQLiteRequirementRepo) getByKey(ctx context.Context, projectID, departmentID, week string) (*domain.LaborRequirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM labor_requirements
		WHERE project_id = ? AND department_id = ? AND week_start = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, departmentID, week)
	return scanRequirementRow(row)
}

func (r *SQLiteRequirementRepo) ListByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]*domain.LaborRequirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM labor_requirements WHERE project_id = ?`
	args := []any{projectID}
	if weekStart != nil {
		query += ` AND week_start = ?`
		args = append(args, weekKey(*weekStart))
	}
	query += ` ORDER BY week_start, department_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requirements by project: %w", err)
	}
	defer rows.Close()
	return scanRequirements(rows)
}

func (r *SQLiteRequirementRepo) ListFromWeek(ctx context.Context, weekStart time.Time) ([]*domain.LaborRequirement, error) {
	query := `SELECT ` + requirementColumns + ` FROM labor_requirements
		WHERE week_start >= ?
		ORDER BY week_start, project_id, department_id`
	rows, err := r.db.QueryContext(ctx, query, weekKey(weekStart))
	if err != nil {
		return nil, fmt.Errorf("listing requirements from week: %w", err)
	}
	defer rows.Close()
	return scanRequirements(rows)
}

func (r *SQLiteRequirementRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM labor_requirements WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting labor requirement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return n > 0, nil
}

func scanRequirementRow(row *sql.Row) (*domain.LaborRequirement, error) {
	var req domain.LaborRequirement
	var weekStr, createdAtStr, updatedAtStr string
	err := row.Scan(
		&req.ID, &req.ProjectID, &req.DepartmentID, &weekStr, &req.RequiredHours,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("labor requirement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning labor requirement: %w", err)
	}
	return populateRequirement(&req, weekStr, createdAtStr, updatedAtStr)
}

func scanRequirements(rows *sql.Rows) ([]*domain.LaborRequirement, error) {
	var reqs []*domain.LaborRequirement
	for rows.Next() {
		var req domain.LaborRequirement
		var weekStr, createdAtStr, updatedAtStr string
		err := rows.Scan(
			&req.ID, &req.ProjectID, &req.DepartmentID, &weekStr, &req.RequiredHours,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning labor requirement row: %w", err)
		}
		populated, err := populateRequirement(&req, weekStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating labor requirements: %w", err)
	}
	return reqs, nil
}

func populateRequirement(req *domain.LaborRequirement, weekStr, createdAtStr, updatedAtStr string) (*domain.LaborRequirement, error) {
	var err error
	if req.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
		return nil, fmt.Errorf("parsing week_start: %w", err)
	}
	if req.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if req.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return req, nil
}
