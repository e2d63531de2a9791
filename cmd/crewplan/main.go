package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/crewplan/internal/cli"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/db"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.crewplan/crewplan.db
	dbPath := os.Getenv("CREWPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".crewplan", "crewplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	departmentRepo := repository.NewSQLiteDepartmentRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	requirementRepo := repository.NewSQLiteRequirementRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Optional use-case telemetry on stderr
	var observers []service.UseCaseObserver
	if os.Getenv("CREWPLAN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	allocationSvc := service.NewAllocationService(
		requirementRepo, assignmentRepo, employeeRepo, projectRepo, departmentRepo, observers...)
	conflictSvc := service.NewConflictService(
		employeeRepo, projectRepo, departmentRepo, requirementRepo, assignmentRepo,
		contract.DefaultConflictPolicy())
	timelineSvc := service.NewTimelineService(departmentRepo, employeeRepo, assignmentRepo)

	app := &cli.App{
		Departments: service.NewDepartmentService(departmentRepo),
		Employees:   service.NewEmployeeService(employeeRepo, projectRepo, assignmentRepo),
		Projects:    service.NewProjectService(projectRepo),
		Allocations: allocationSvc,
		Conflicts:   conflictSvc,
		Matches:     service.NewSkillMatchService(employeeRepo, projectRepo, departmentRepo, assignmentRepo),
		Timeline:    timelineSvc,
		Templates:   service.NewTemplateService(templateRepo, projectRepo, requirementRepo, uow, observers...),
		Export:      service.NewExportService(allocationSvc, conflictSvc, timelineSvc),
	}

	// Detect interactive terminal for the board and the assign wizard.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
