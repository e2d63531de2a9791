package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE re-runs that hit an existing column are tolerated so the list can
// only ever grow.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS departments (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id             TEXT PRIMARY KEY,
		first_name     TEXT NOT NULL,
		last_name      TEXT NOT NULL,
		email          TEXT NOT NULL DEFAULT '',
		department_id  TEXT NOT NULL REFERENCES departments(id),
		job_title      TEXT NOT NULL DEFAULT '',
		hours_per_week REAL NOT NULL DEFAULT 40,
		active         INTEGER NOT NULL DEFAULT 1,
		hire_date      TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS employee_skills (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		position    INTEGER NOT NULL,
		skill       TEXT NOT NULL,
		PRIMARY KEY (employee_id, position)
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		priority    TEXT NOT NULL DEFAULT 'medium'
		            CHECK(priority IN ('low','medium','high','critical')),
		status      TEXT NOT NULL DEFAULT 'planning'
		            CHECK(status IN ('planning','active','on_hold','completed','cancelled')),
		start_date  TEXT NOT NULL,
		end_date    TEXT NOT NULL,
		active      INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS project_departments (
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department_id TEXT NOT NULL REFERENCES departments(id),
		PRIMARY KEY (project_id, department_id)
	)`,

	`CREATE TABLE IF NOT EXISTS labor_requirements (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		department_id  TEXT NOT NULL REFERENCES departments(id),
		week_start     TEXT NOT NULL,
		required_hours REAL NOT NULL DEFAULT 0,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE (project_id, department_id, week_start)
	)`,

	// The UNIQUE constraint is the ledger's one-assignment-per-key
	// invariant; a racing second insert fails here instead of creating
	// a duplicate row.
	`CREATE TABLE IF NOT EXISTS assignments (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		employee_id    TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		week_start     TEXT NOT NULL,
		assigned_hours REAL NOT NULL DEFAULT 0,
		notes          TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL,
		UNIQUE (project_id, employee_id, week_start)
	)`,

	`CREATE TABLE IF NOT EXISTS project_templates (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		description    TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL DEFAULT 'medium'
		               CHECK(priority IN ('low','medium','high','critical')),
		duration_weeks INTEGER NOT NULL DEFAULT 0,
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS template_departments (
		template_id   TEXT NOT NULL REFERENCES project_templates(id) ON DELETE CASCADE,
		department_id TEXT NOT NULL REFERENCES departments(id),
		PRIMARY KEY (template_id, department_id)
	)`,

	`CREATE TABLE IF NOT EXISTS template_week_hours (
		template_id   TEXT NOT NULL REFERENCES project_templates(id) ON DELETE CASCADE,
		department_id TEXT NOT NULL REFERENCES departments(id),
		week_offset   INTEGER NOT NULL,
		hours         REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (template_id, department_id, week_offset)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_employees_department ON employees(department_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_employee_week ON assignments(employee_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_project_week ON assignments(project_id, week_start)`,
	`CREATE INDEX IF NOT EXISTS idx_requirements_project ON labor_requirements(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_requirements_week ON labor_requirements(week_start)`,
}
