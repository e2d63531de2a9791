package contract

import "github.com/alexanderramin/crewplan/internal/app"

type TimelineRequest = app.TimelineRequest

type TimelineEntry = app.TimelineEntry

type EmployeeWorkload = app.EmployeeWorkload

type WorkloadWeek = app.WorkloadWeek

type ProjectHours = app.ProjectHours
