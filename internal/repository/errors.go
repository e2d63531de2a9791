package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup references a row that does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateAssignment is returned when a create targets an
	// already-occupied (project, employee, week) key. It is a designed
	// business outcome: callers should update the existing assignment
	// instead of creating a new one.
	ErrDuplicateAssignment = errors.New("assignment already exists for this employee, project, and week")
)
