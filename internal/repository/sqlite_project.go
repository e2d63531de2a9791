package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const projectColumns = `id, name, description, priority, status, start_date, end_date,
		active, created_at, updated_at`

// SQLiteProjectRepo implements ProjectRepo on SQLite. Department links are
// rows in project_departments and travel with the project struct.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(dbtx db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: dbtx}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (id, name, description, priority, status, start_date, end_date,
		active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		string(p.Priority),
		string(p.Status),
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		boolToInt(p.Active),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return r.writeDepartments(ctx, p.ID, p.DepartmentIDs)
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	p, err := scanProjectRow(row)
	if err != nil {
		return nil, err
	}
	if p.DepartmentIDs, err = r.loadDepartments(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *SQLiteProjectRepo) List(ctx context.Context, includeInactive bool) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY name`
	if !includeInactive {
		query = `SELECT ` + projectColumns + ` FROM projects WHERE active = 1 ORDER BY name`
	}
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProjectRows(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	for _, p := range projects {
		if p.DepartmentIDs, err = r.loadDepartments(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

func (r *SQLiteProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	query := `UPDATE projects SET name = ?, description = ?, priority = ?, status = ?,
		start_date = ?, end_date = ?, active = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		p.Description,
		string(p.Priority),
		string(p.Status),
		p.StartDate.Format(dateLayout),
		p.EndDate.Format(dateLayout),
		boolToInt(p.Active),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project: %w", ErrNotFound)
	}
	return r.writeDepartments(ctx, p.ID, p.DepartmentIDs)
}

func (r *SQLiteProjectRepo) writeDepartments(ctx context.Context, projectID string, departmentIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM project_departments WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing project departments: %w", err)
	}
	for _, deptID := range departmentIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO project_departments (project_id, department_id) VALUES (?, ?)`,
			projectID, deptID,
		); err != nil {
			return fmt.Errorf("linking department %s: %w", deptID, err)
		}
	}
	return nil
}

func (r *SQLiteProjectRepo) loadDepartments(ctx context.Context, projectID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT department_id FROM project_departments WHERE project_id = ? ORDER BY department_id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading project departments: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning department link: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating department links: %w", err)
	}
	return ids, nil
}

func scanProjectRow(row *sql.Row) (*domain.Project, error) {
	var p domain.Project
	var priorityStr, statusStr string
	var startStr, endStr string
	var activeInt int
	var createdAtStr, updatedAtStr string
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &priorityStr, &statusStr,
		&startStr, &endStr, &activeInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return populateProject(&p, priorityStr, statusStr, startStr, endStr, activeInt, createdAtStr, updatedAtStr)
}

func scanProjectRows(rows *sql.Rows) (*domain.Project, error) {
	var p domain.Project
	var priorityStr, statusStr string
	var startStr, endStr string
	var activeInt int
	var createdAtStr, updatedAtStr string
	err := rows.Scan(
		&p.ID, &p.Name, &p.Description, &priorityStr, &statusStr,
		&startStr, &endStr, &activeInt, &createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning project row: %w", err)
	}
	return populateProject(&p, priorityStr, statusStr, startStr, endStr, activeInt, createdAtStr, updatedAtStr)
}

func populateProject(p *domain.Project, priorityStr, statusStr, startStr, endStr string, activeInt int, createdAtStr, updatedAtStr string) (*domain.Project, error) {
	p.Priority = domain.Priority(priorityStr)
	p.Status = domain.ProjectStatus(statusStr)
	p.Active = intToBool(activeInt)

	var err error
	if p.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_date: %w", err)
	}
	if p.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_date: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return p, nil
}
