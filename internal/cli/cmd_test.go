package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/alexanderramin/crewplan/internal/repository"
	"github.com/alexanderramin/crewplan/internal/service"
	"github.com/alexanderramin/crewplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	departmentRepo := repository.NewSQLiteDepartmentRepo(database)
	employeeRepo := repository.NewSQLiteEmployeeRepo(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	requirementRepo := repository.NewSQLiteRequirementRepo(database)
	assignmentRepo := repository.NewSQLiteAssignmentRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	uow := testutil.NewTestUoW(database)

	allocationSvc := service.NewAllocationService(
		requirementRepo, assignmentRepo, employeeRepo, projectRepo, departmentRepo)
	conflictSvc := service.NewConflictService(
		employeeRepo, projectRepo, departmentRepo, requirementRepo, assignmentRepo,
		contract.DefaultConflictPolicy())
	timelineSvc := service.NewTimelineService(departmentRepo, employeeRepo, assignmentRepo)

	return &App{
		Departments: service.NewDepartmentService(departmentRepo),
		Employees:   service.NewEmployeeService(employeeRepo, projectRepo, assignmentRepo),
		Projects:    service.NewProjectService(projectRepo),
		Allocations: allocationSvc,
		Conflicts:   conflictSvc,
		Matches:     service.NewSkillMatchService(employeeRepo, projectRepo, departmentRepo, assignmentRepo),
		Timeline:    timelineSvc,
		Templates:   service.NewTemplateService(templateRepo, projectRepo, requirementRepo, uow),
		Export:      service.NewExportService(allocationSvc, conflictSvc, timelineSvc),

		IsInteractive: func() bool { return false },
	}
}

// seedWorld creates a department, two employees, and a project for CLI tests.
func seedWorld(t *testing.T, app *App) (dept *domain.Department, ada, grace *domain.Employee, proj *domain.Project) {
	t.Helper()
	ctx := context.Background()

	dept = testutil.NewTestDepartment("Engineering")
	require.NoError(t, app.Departments.Create(ctx, dept))

	ada = testutil.NewTestEmployee(dept.ID, "Ada", "Lovelace", testutil.WithSkills("Go", "SQL"))
	require.NoError(t, app.Employees.Create(ctx, ada))
	grace = testutil.NewTestEmployee(dept.ID, "Grace", "Hopper", testutil.WithSkills("COBOL"))
	require.NoError(t, app.Employees.Create(ctx, grace))

	proj = testutil.NewTestProject("Apollo", testutil.WithDepartments(dept.ID))
	require.NoError(t, app.Projects.Create(ctx, proj))
	return dept, ada, grace, proj
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

var mondayArg = testutil.Monday.Format(domain.DateLayout)

// --- department commands ---

func TestDepartmentAddAndList(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "department", "add", "--name", "Design")
	require.NoError(t, err)
	assert.Contains(t, out, "Created department Design")

	out, err = executeCmd(t, app, "department", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Design")
}

func TestDepartmentAdd_RequiresName(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "department", "add")
	assert.Error(t, err)
}

func TestDepartmentDeactivate_ByName(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "department", "deactivate", "Engineering")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "department", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No departments found")
}

// --- employee commands ---

func TestEmployeeAddAndList(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "employee", "add",
		"--first", "Alan", "--last", "Turing",
		"--department", "Engineering",
		"--skill", "Go", "--skill", "Cryptography")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Alan Turing")

	out, err = executeCmd(t, app, "employee", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Alan Turing")
	assert.Contains(t, out, "Cryptography")
}

func TestEmployeeAdd_UnknownDepartment(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "employee", "add",
		"--first", "No", "--last", "Dept", "--department", "Nowhere")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "department not found")
}

func TestEmployeeWorkload(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	_, err := app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 25, "")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "employee", "workload", ada.ID, "--from", mondayArg, "--to", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Apollo")
}

// --- project commands ---

func TestProjectAddAndInspect(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "project", "add",
		"--name", "Borealis",
		"--priority", "high",
		"--start", "2025-06-02", "--end", "2025-08-25",
		"--department", "Engineering")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Borealis")

	out, err = executeCmd(t, app, "project", "inspect", "Borealis")
	require.NoError(t, err)
	assert.Contains(t, out, "Borealis")
}

func TestProjectResolve_UnknownFails(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "project", "inspect", "nope")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "project not found")
}

// --- require commands ---

func TestRequireSetAndList(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	out, err := executeCmd(t, app, "require", "set",
		"--project", proj.ID, "--department", "Engineering",
		"--week", mondayArg, "--hours", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Set requirement")

	_, err = app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 30, "")
	require.NoError(t, err)

	out, err = executeCmd(t, app, "require", "list", "--project", "Apollo")
	require.NoError(t, err)
	assert.Contains(t, out, "80h")
	assert.Contains(t, out, "30h")
	assert.Contains(t, out, "Understaffed")
}

func TestRequireBulk(t *testing.T) {
	app := testApp(t)
	_, _, _, proj := seedWorld(t, app)

	out, err := executeCmd(t, app, "require", "bulk",
		"--project", proj.ID,
		"--item", "Engineering:"+mondayArg+":40",
		"--item", "Engineering:2025-06-09:60")
	require.NoError(t, err)
	assert.Contains(t, out, "2")
}

// --- assign commands ---

func TestAssignAddAndList(t *testing.T) {
	app := testApp(t)
	_, ada, _, _ := seedWorld(t, app)

	out, err := executeCmd(t, app, "assign", "add",
		"--project", "Apollo", "--employee", "Ada Lovelace",
		"--week", "2025-06-05", "--hours", "25", "--notes", "frontend")
	require.NoError(t, err)
	// Thursday input snaps to the Monday week key.
	assert.Contains(t, out, "week of "+mondayArg)

	out, err = executeCmd(t, app, "assign", "list", "--employee", ada.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Apollo")
	assert.Contains(t, out, "25h")
}

func TestAssignAdd_DuplicateFails(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "assign", "add",
		"--project", "Apollo", "--employee", "Ada Lovelace",
		"--week", mondayArg, "--hours", "20")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "assign", "add",
		"--project", "Apollo", "--employee", "Ada Lovelace",
		"--week", mondayArg, "--hours", "10")
	assert.ErrorIs(t, err, repository.ErrDuplicateAssignment)
}

func TestAssignList_RequiresExactlyOneScope(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "assign", "list")
	assert.Error(t, err)

	_, err = executeCmd(t, app, "assign", "list", "--project", "Apollo", "--employee", "Ada Lovelace")
	assert.Error(t, err)
}

func TestAssignBulk(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "assign", "bulk",
		"--project", "Apollo", "--week", mondayArg,
		"--item", "Ada Lovelace:20",
		"--item", "Grace Hopper:15:backend")
	require.NoError(t, err)
	assert.Contains(t, out, "2")
}

func TestAssignWizard_RequiresTTY(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "assign", "wizard")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- calendar ---

func TestCalendarCmd(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	_, err := app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 25, "")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "calendar", "--from", mondayArg, "--to", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Apollo")
}

// --- conflicts and stats ---

func TestConflictsCmd_ReportsOverallocation(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	_, err := app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 50, "")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "conflicts", "--as-of", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "OverallocatedEmployee")
}

func TestConflictsCmd_NoConflicts(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "conflicts")
	require.NoError(t, err)
	assert.Contains(t, out, "No conflicts detected")
}

func TestConflictsCmd_InvalidType(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "conflicts", "--type", "bogus")
	assert.Error(t, err)
}

func TestConflictsCmd_CSV(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	_, err := app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 50, "")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "conflicts", "--csv", "--as-of", mondayArg)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(records), 2)
	assert.Equal(t, "type", records[0][0])
}

func TestStatsCmd(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "stats", "--as-of", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "ACTIVE PROJECTS")
}

// --- match, available, skills ---

func TestMatchCmd(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "match",
		"--project", "Apollo", "--week", mondayArg, "--skill", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestAvailableCmd(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "available",
		"--department", "Engineering", "--week", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Grace Hopper")
}

func TestSkillsCmd(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "skills")
	require.NoError(t, err)
	assert.Contains(t, out, "COBOL")
	assert.Contains(t, out, "Go")
}

// --- timeline ---

func TestTimelineCmd(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "timeline", "--start", mondayArg, "--weeks", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "ENGINEERING")
}

func TestTimelineCmd_CSV(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "timeline", "--csv", "--start", mondayArg, "--weeks", "2")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one department x two weeks")
}

func TestTimelineCmd_WeekCountBounds(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	_, err := executeCmd(t, app, "timeline", "--weeks", "53")
	assert.Error(t, err)
}

// --- templates ---

func TestTemplateAddShowInit(t *testing.T) {
	app := testApp(t)
	seedWorld(t, app)

	out, err := executeCmd(t, app, "template", "add",
		"--name", "Two Week Build", "--weeks", "2",
		"--hours", "Engineering:0:80",
		"--hours", "Engineering:1:40")
	require.NoError(t, err)
	assert.Contains(t, out, "Created template Two Week Build")

	ctx := context.Background()
	templates, err := app.Templates.List(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)

	out, err = executeCmd(t, app, "template", "show", templates[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Engineering")
	assert.Contains(t, out, "80h")

	out, err = executeCmd(t, app, "template", "init",
		"--template", templates[0].ID, "--name", "Hermes", "--start", mondayArg)
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Hermes")

	views, err := app.Allocations.GetLaborRequirements(ctx, mustProjectID(t, app, "Hermes"), nil)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func mustProjectID(t *testing.T, app *App, name string) string {
	t.Helper()
	id, err := resolveProjectID(context.Background(), app, name)
	require.NoError(t, err)
	return id
}

// --- export ---

func TestExportAssignmentsToFile(t *testing.T) {
	app := testApp(t)
	_, ada, _, proj := seedWorld(t, app)
	ctx := context.Background()

	_, err := app.Allocations.CreateAssignment(ctx, proj.ID, ada.ID, testutil.Monday, 25, "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "assignments.csv")
	_, err = executeCmd(t, app, "export", "assignments", "--project", "Apollo", "--out", path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Ada Lovelace", records[1][1])
}

// --- board ---

func TestBoardCmd_RequiresTTY(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "board")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

// --- week parsing ---

func TestParseWeek_SnapsToMonday(t *testing.T) {
	wk, err := parseWeek("2025-06-08") // a Sunday
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), wk)

	_, err = parseWeek("not-a-date")
	assert.Error(t, err)
}
