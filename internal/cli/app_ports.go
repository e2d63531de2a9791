package cli

import "github.com/alexanderramin/crewplan/internal/app"

// Narrow use-case views over the App's services, for consumers that only
// need the read side.

func (a *App) conflictUseCase() app.ConflictUseCase {
	return a.Conflicts
}

func (a *App) timelineUseCase() app.TimelineUseCase {
	return a.Timeline
}

func (a *App) skillMatchUseCase() app.SkillMatchUseCase {
	return a.Matches
}
