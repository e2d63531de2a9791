package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const assignmentColumns = `id, project_id, employee_id, week_start, assigned_hours, notes,
		created_at, updated_at`

// SQLiteAssignmentRepo implements AssignmentRepo on SQLite. The UNIQUE
// (project, employee, week) constraint in the schema backs the ledger
// invariant: a racing check-then-insert fails the second writer with
// ErrDuplicateAssignment instead of producing two rows.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(dbtx db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: dbtx}
}

func (r *SQLiteAssignmentRepo) Create(ctx context.Context, a *domain.Assignment) error {
	query := `INSERT INTO assignments (id, project_id, employee_id, week_start, assigned_hours, notes,
		created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.ProjectID,
		a.EmployeeID,
		weekKey(a.WeekStart),
		a.AssignedHours,
		a.Notes,
		a.CreatedAt.Format(time.RFC3339),
		a.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("creating assignment: %w", ErrDuplicateAssignment)
		}
		return fmt.Errorf("inserting assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanAssignmentRow(row)
}

func (r *SQLiteAssignmentRepo) GetByKey(ctx context.Context, projectID, employeeID string, weekStart time.Time) (*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE project_id = ? AND employee_id = ? AND week_start = ?`
	row := r.db.QueryRowContext(ctx, query, projectID, employeeID, weekKey(weekStart))
	return scanAssignmentRow(row)
}

func (r *SQLiteAssignmentRepo) ListByProject(ctx context.Context, projectID string, weekStart *time.Time) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE project_id = ?`
	args := []any{projectID}
	if weekStart != nil {
		query += ` AND week_start = ?`
		args = append(args, weekKey(*weekStart))
	}
	query += ` ORDER BY week_start, employee_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by project: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListByEmployee(ctx context.Context, employeeID string, weekStart *time.Time) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE employee_id = ?`
	args := []any{employeeID}
	if weekStart != nil {
		query += ` AND week_start = ?`
		args = append(args, weekKey(*weekStart))
	}
	query += ` ORDER BY week_start, project_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by employee: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListByWeekRange(ctx context.Context, from, to time.Time) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments
		WHERE week_start >= ? AND week_start <= ?
		ORDER BY week_start, employee_id`
	rows, err := r.db.QueryContext(ctx, query, weekKey(from), weekKey(to))
	if err != nil {
		return nil, fmt.Errorf("listing assignments by week range: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListAll(ctx context.Context) ([]*domain.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments ORDER BY week_start, employee_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) Update(ctx context.Context, a *domain.Assignment) error {
	query := `UPDATE assignments SET assigned_hours = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		a.AssignedHours,
		a.Notes,
		a.UpdatedAt.Format(time.RFC3339),
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("updating assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("assignment: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("deleting assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteAssignmentRepo) SumByEmployeeWeek(ctx context.Context) ([]EmployeeWeekHours, error) {
	query := `SELECT employee_id, week_start, COALESCE(SUM(assigned_hours), 0)
		FROM assignments
		GROUP BY employee_id, week_start
		ORDER BY week_start, employee_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summing hours by employee and week: %w", err)
	}
	defer rows.Close()

	var totals []EmployeeWeekHours
	for rows.Next() {
		var t EmployeeWeekHours
		var weekStr string
		if err := rows.Scan(&t.EmployeeID, &weekStr, &t.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning employee week total: %w", err)
		}
		if t.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
			return nil, fmt.Errorf("parsing week_start: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employee week totals: %w", err)
	}
	return totals, nil
}

func (r *SQLiteAssignmentRepo) SumByDepartmentWeek(ctx context.Context) ([]DepartmentWeekHours, error) {
	query := `SELECT a.project_id, e.department_id, a.week_start, COALESCE(SUM(a.assigned_hours), 0)
		FROM assignments a
		JOIN employees e ON a.employee_id = e.id
		GROUP BY a.project_id, e.department_id, a.week_start
		ORDER BY a.week_start, a.project_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("summing hours by department and week: %w", err)
	}
	defer rows.Close()

	var totals []DepartmentWeekHours
	for rows.Next() {
		var t DepartmentWeekHours
		var weekStr string
		if err := rows.Scan(&t.ProjectID, &t.DepartmentID, &weekStr, &t.TotalHours); err != nil {
			return nil, fmt.Errorf("scanning department week total: %w", err)
		}
		if t.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
			return nil, fmt.Errorf("parsing week_start: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating department week totals: %w", err)
	}
	return totals, nil
}

func scanAssignmentRow(row *sql.Row) (*domain.Assignment, error) {
	var a domain.Assignment
	var weekStr, createdAtStr, updatedAtStr string
	err := row.Scan(
		&a.ID, &a.ProjectID, &a.EmployeeID, &weekStr, &a.AssignedHours, &a.Notes,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning assignment: %w", err)
	}
	return populateAssignment(&a, weekStr, createdAtStr, updatedAtStr)
}

func scanAssignments(rows *sql.Rows) ([]*domain.Assignment, error) {
	var assignments []*domain.Assignment
	for rows.Next() {
		var a domain.Assignment
		var weekStr, createdAtStr, updatedAtStr string
		err := rows.Scan(
			&a.ID, &a.ProjectID, &a.EmployeeID, &weekStr, &a.AssignedHours, &a.Notes,
			&createdAtStr, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment row: %w", err)
		}
		populated, err := populateAssignment(&a, weekStr, createdAtStr, updatedAtStr)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, populated)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}
	return assignments, nil
}

func populateAssignment(a *domain.Assignment, weekStr, createdAtStr, updatedAtStr string) (*domain.Assignment, error) {
	var err error
	if a.WeekStart, err = time.Parse(dateLayout, weekStr); err != nil {
		return nil, fmt.Errorf("parsing week_start: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if a.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return a, nil
}
