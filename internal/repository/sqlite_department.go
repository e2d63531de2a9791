package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const departmentColumns = `id, name, description, active, created_at`

// SQLiteDepartmentRepo implements DepartmentRepo on SQLite.
type SQLiteDepartmentRepo struct {
	db db.DBTX
}

func NewSQLiteDepartmentRepo(dbtx db.DBTX) *SQLiteDepartmentRepo {
	return &SQLiteDepartmentRepo{db: dbtx}
}

func (r *SQLiteDepartmentRepo) Create(ctx context.Context, d *domain.Department) error {
	query := `INSERT INTO departments (id, name, description, active, created_at)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.Name,
		d.Description,
		boolToInt(d.Active),
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting department: %w", err)
	}
	return nil
}

func (r *SQLiteDepartmentRepo) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanDepartment(row)
}

func (r *SQLiteDepartmentRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY name`
	if !includeInactive {
		query = `SELECT ` + departmentColumns + ` FROM departments WHERE active = 1 ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing departments: %w", err)
	}
	defer rows.Close()

	var depts []*domain.Department
	for rows.Next() {
		var d domain.Department
		var activeInt int
		var createdAtStr string
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &activeInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning department row: %w", err)
		}
		d.Active = intToBool(activeInt)
		if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		depts = append(depts, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating departments: %w", err)
	}
	return depts, nil
}

func (r *SQLiteDepartmentRepo) Update(ctx context.Context, d *domain.Department) error {
	query := `UPDATE departments SET name = ?, description = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, d.Name, d.Description, boolToInt(d.Active), d.ID)
	if err != nil {
		return fmt.Errorf("updating department: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("department: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteDepartmentRepo) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE departments SET active = 0 WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deactivating department: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deactivate result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("department: %w", ErrNotFound)
	}
	return nil
}

func scanDepartment(row *sql.Row) (*domain.Department, error) {
	var d domain.Department
	var activeInt int
	var createdAtStr string
	err := row.Scan(&d.ID, &d.Name, &d.Description, &activeInt, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("department: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning department: %w", err)
	}
	d.Active = intToBool(activeInt)
	if d.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &d, nil
}
