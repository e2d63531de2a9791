package cli

import (
	"github.com/alexanderramin/crewplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Departments service.DepartmentService
	Employees   service.EmployeeService
	Projects    service.ProjectService
	Allocations service.AllocationService
	Conflicts   service.ConflictService
	Matches     service.SkillMatchService
	Timeline    service.TimelineService
	Templates   service.TemplateService
	Export      service.ExportService

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands (board, the assign wizard) refuse to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "crewplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "crewplan",
		Short: "Weekly resource allocation and conflict detection",
	}

	root.AddCommand(
		newDepartmentCmd(app),
		newEmployeeCmd(app),
		newProjectCmd(app),
		newRequireCmd(app),
		newAssignCmd(app),
		newCalendarCmd(app),
		newConflictsCmd(app),
		newStatsCmd(app),
		newMatchCmd(app),
		newAvailableCmd(app),
		newSkillsCmd(app),
		newTimelineCmd(app),
		newTemplateCmd(app),
		newExportCmd(app),
		newBoardCmd(app),
	)

	return root
}
