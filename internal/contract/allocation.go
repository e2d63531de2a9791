package contract

import "github.com/alexanderramin/crewplan/internal/app"

type LaborRequirementView = app.LaborRequirementView

type RequirementItem = app.RequirementItem

type AssignmentItem = app.AssignmentItem

type ItemError = app.ItemError

type BulkResult = app.BulkResult

type AssignmentView = app.AssignmentView

type CalendarEvent = app.CalendarEvent
