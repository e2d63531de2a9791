package contract

import "github.com/alexanderramin/crewplan/internal/app"

type ConflictOptions = app.ConflictOptions

type Conflict = app.Conflict

type ConflictPolicy = app.ConflictPolicy

func DefaultConflictPolicy() ConflictPolicy {
	return app.DefaultConflictPolicy()
}

type QuickStats = app.QuickStats
