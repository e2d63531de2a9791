package contract

import "github.com/alexanderramin/crewplan/internal/app"

type SkillMatchRequest = app.SkillMatchRequest

type SkillMatch = app.SkillMatch

type AvailabilityView = app.AvailabilityView
