package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const employeeColumns = `id, first_name, last_name, email, department_id, job_title,
		hours_per_week, active, hire_date, created_at, updated_at`

// SQLiteEmployeeRepo implements EmployeeRepo on SQLite. Skills live in the
// employee_skills child table, ordered by position, and are rewritten
// wholesale on update.
type SQLiteEmployeeRepo struct {
	db db.DBTX
}

func NewSQLiteEmployeeRepo(dbtx db.DBTX) *SQLiteEmployeeRepo {
	return &SQLiteEmployeeRepo{db: dbtx}
}

func (r *SQLiteEmployeeRepo) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (id, first_name, last_name, email, department_id, job_title,
		hours_per_week, active, hire_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.FirstName,
		e.LastName,
		e.Email,
		e.DepartmentID,
		e.JobTitle,
		e.HoursPerWeek,
		boolToInt(e.Active),
		nullableTimeToString(e.HireDate, dateLayout),
		e.CreatedAt.Format(time.RFC3339),
		e.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting employee: %w", err)
	}
	return r.writeSkills(ctx, e.ID, e.Skills)
}

func (r *SQLiteEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanEmployeeRow(row)
	if err != nil {
		return nil, err
	}
	if e.Skills, err = r.loadSkills(ctx, e.ID); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *SQLiteEmployeeRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY last_name, first_name`
	if !includeInactive {
		query = `SELECT ` + employeeColumns + ` FROM employees WHERE active = 1 ORDER BY last_name, first_name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()
	return r.collectEmployees(ctx, rows)
}

func (r *SQLiteEmployeeRepo) ListByDepartment(ctx context.Context, departmentID string) ([]*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees
		WHERE department_id = ? AND active = 1
		ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query, departmentID)
	if err != nil {
		return nil, fmt.Errorf("listing employees by department: %w", err)
	}
	defer rows.Close()
	return r.collectEmployees(ctx, rows)
}

func (r *SQLiteEmployeeRepo) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET first_name = ?, last_name = ?, email = ?, department_id = ?,
		job_title = ?, hours_per_week = ?, active = ?, hire_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		e.FirstName,
		e.LastName,
		e.Email,
		e.DepartmentID,
		e.JobTitle,
		e.HoursPerWeek,
		boolToInt(e.Active),
		nullableTimeToString(e.HireDate, dateLayout),
		e.UpdatedAt.Format(time.RFC3339),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee: %w", ErrNotFound)
	}
	return r.writeSkills(ctx, e.ID, e.Skills)
}

func (r *SQLiteEmployeeRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE employees SET active = 0, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("deactivating employee: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deactivate result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("employee: %w", ErrNotFound)
	}
	return nil
}

// writeSkills replaces the skill rows for an employee, preserving list order.
func (r *SQLiteEmployeeRepo) writeSkills(ctx context.Context, employeeID string, skills []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM employee_skills WHERE employee_id = ?`, employeeID); err != nil {
		return fmt.Errorf("clearing employee skills: %w", err)
	}
	for i, skill := range skills {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO employee_skills (employee_id, position, skill) VALUES (?, ?, ?)`,
			employeeID, i, skill,
		); err != nil {
			return fmt.Errorf("inserting employee skill %q: %w", skill, err)
		}
	}
	return nil
}

func (r *SQLiteEmployeeRepo) loadSkills(ctx context.Context, employeeID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT skill FROM employee_skills WHERE employee_id = ? ORDER BY position`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("loading employee skills: %w", err)
	}
	defer rows.Close()

	var skills []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning skill: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating skills: %w", err)
	}
	return skills, nil
}

func (r *SQLiteEmployeeRepo) collectEmployees(ctx context.Context, rows *sql.Rows) ([]*domain.Employee, error) {
	var employees []*domain.Employee
	for rows.Next() {
		e, err := scanEmployeeRows(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating employees: %w", err)
	}
	for _, e := range employees {
		skills, err := r.loadSkills(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		e.Skills = skills
	}
	return employees, nil
}

func scanEmployeeRow(row *sql.Row) (*domain.Employee, error) {
	var e domain.Employee
	var activeInt int
	var hireDateStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.DepartmentID, &e.JobTitle,
		&e.HoursPerWeek, &activeInt, &hireDateStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning employee: %w", err)
	}
	return populateEmployee(&e, activeInt, hireDateStr, createdAtStr, updatedAtStr)
}

func scanEmployeeRows(rows *sql.Rows) (*domain.Employee, error) {
	var e domain.Employee
	var activeInt int
	var hireDateStr sql.NullString
	var createdAtStr, updatedAtStr string
	err := rows.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.DepartmentID, &e.JobTitle,
		&e.HoursPerWeek, &activeInt, &hireDateStr, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning employee row: %w", err)
	}
	return populateEmployee(&e, activeInt, hireDateStr, createdAtStr, updatedAtStr)
}

func populateEmployee(e *domain.Employee, activeInt int, hireDateStr sql.NullString, createdAtStr, updatedAtStr string) (*domain.Employee, error) {
	e.Active = intToBool(activeInt)
	e.HireDate = parseNullableTime(hireDateStr, dateLayout)

	var err error
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return e, nil
}
