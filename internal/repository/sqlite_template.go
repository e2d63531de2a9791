package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/domain"
)

const templateColumns = `id, name, description, priority, duration_weeks, active, created_at`

// SQLiteTemplateRepo implements TemplateRepo on SQLite. Department ids and
// the per-week hour table are child rows, not encoded blobs.
type SQLiteTemplateRepo struct {
	db db.DBTX
}

func NewSQLiteTemplateRepo(dbtx db.DBTX) *SQLiteTemplateRepo {
	return &SQLiteTemplateRepo{db: dbtx}
}

func (r *SQLiteTemplateRepo) Create(ctx context.Context, t *domain.ProjectTemplate) error {
	query := `INSERT INTO project_templates (id, name, description, priority, duration_weeks, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		string(t.Priority),
		t.DurationWeeks,
		boolToInt(t.Active),
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting project template: %w", err)
	}

	for _, deptID := range t.DepartmentIDs {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO template_departments (template_id, department_id) VALUES (?, ?)`,
			t.ID, deptID,
		); err != nil {
			return fmt.Errorf("linking template department %s: %w", deptID, err)
		}
	}
	for _, wh := range t.WeekHours {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO template_week_hours (template_id, department_id, week_offset, hours)
			VALUES (?, ?, ?, ?)`,
			t.ID, wh.DepartmentID, wh.WeekOffset, wh.Hours,
		); err != nil {
			return fmt.Errorf("inserting template week hours: %w", err)
		}
	}
	return nil
}

func (r *SQLiteTemplateRepo) GetByID(ctx context.Context, id string) (*domain.ProjectTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM project_templates WHERE id = ? AND active = 1`
	row := r.db.QueryRowContext(ctx, query, id)
	t, err := scanTemplateRow(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTemplateRepo) List(ctx context.Context) ([]*domain.ProjectTemplate, error) {
	query := `SELECT ` + templateColumns + ` FROM project_templates WHERE active = 1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing project templates: %w", err)
	}
	defer rows.Close()

	var templates []*domain.ProjectTemplate
	for rows.Next() {
		var t domain.ProjectTemplate
		var priorityStr, createdAtStr string
		var activeInt int
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &priorityStr, &t.DurationWeeks, &activeInt, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning template row: %w", err)
		}
		t.Priority = domain.Priority(priorityStr)
		t.Active = intToBool(activeInt)
		if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		templates = append(templates, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	for _, t := range templates {
		if err := r.loadChildren(ctx, t); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

func (r *SQLiteTemplateRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE project_templates SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deactivate result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("project template: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteTemplateRepo) loadChildren(ctx context.Context, t *domain.ProjectTemplate) error {
	deptRows, err := r.db.QueryContext(ctx,
		`SELECT department_id FROM template_departments WHERE template_id = ? ORDER BY department_id`, t.ID)
	if err != nil {
		return fmt.Errorf("loading template departments: %w", err)
	}
	defer deptRows.Close()
	for deptRows.Next() {
		var id string
		if err := deptRows.Scan(&id); err != nil {
			return fmt.Errorf("scanning template department: %w", err)
		}
		t.DepartmentIDs = append(t.DepartmentIDs, id)
	}
	if err := deptRows.Err(); err != nil {
		return fmt.Errorf("iterating template departments: %w", err)
	}

	hourRows, err := r.db.QueryContext(ctx,
		`SELECT department_id, week_offset, hours FROM template_week_hours
		WHERE template_id = ?
		ORDER BY week_offset, department_id`, t.ID)
	if err != nil {
		return fmt.Errorf("loading template week hours: %w", err)
	}
	defer hourRows.Close()
	for hourRows.Next() {
		var wh domain.TemplateHours
		if err := hourRows.Scan(&wh.DepartmentID, &wh.WeekOffset, &wh.Hours); err != nil {
			return fmt.Errorf("scanning template week hours: %w", err)
		}
		t.WeekHours = append(t.WeekHours, wh)
	}
	if err := hourRows.Err(); err != nil {
		return fmt.Errorf("iterating template week hours: %w", err)
	}
	return nil
}

func scanTemplateRow(row *sql.Row) (*domain.ProjectTemplate, error) {
	var t domain.ProjectTemplate
	var priorityStr, createdAtStr string
	var activeInt int
	err := row.Scan(&t.ID, &t.Name, &t.Description, &priorityStr, &t.DurationWeeks, &activeInt, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("project template: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning project template: %w", err)
	}
	t.Priority = domain.Priority(priorityStr)
	t.Active = intToBool(activeInt)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &t, nil
}
