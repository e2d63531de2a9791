package app

import (
	"context"
	"time"
)

type ConflictUseCase interface {
	GetConflicts(ctx context.Context, opts ConflictOptions) ([]Conflict, error)
	GetQuickStats(ctx context.Context, now time.Time) (*QuickStats, error)
}

type SkillMatchUseCase interface {
	FindMatches(ctx context.Context, req SkillMatchRequest) ([]SkillMatch, error)
	GetAllSkills(ctx context.Context) ([]string, error)
	GetAvailableEmployees(ctx context.Context, departmentID string, weekStart time.Time, minAvailableHours float64) ([]AvailabilityView, error)
}

type TimelineUseCase interface {
	GetResourceTimeline(ctx context.Context, req TimelineRequest) ([]TimelineEntry, error)
}
