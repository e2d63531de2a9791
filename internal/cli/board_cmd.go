package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/crewplan/internal/app"
	"github.com/alexanderramin/crewplan/internal/cli/formatter"
	"github.com/alexanderramin/crewplan/internal/contract"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// boardData holds one refresh of everything the board shows.
type boardData struct {
	stats     *contract.QuickStats
	conflicts []contract.Conflict
	timeline  []contract.TimelineEntry
}

type boardLoadedMsg struct {
	data boardData
	err  error
}

type boardKeyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

var boardKeys = boardKeyMap{
	Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

const (
	boardTabConflicts = iota
	boardTabTimeline
)

// boardModel is the interactive allocation dashboard: quick stats on top,
// a conflicts table and a timeline table below, tab to switch.
type boardModel struct {
	conflicts app.ConflictUseCase
	timeline  app.TimelineUseCase

	activeTab int
	loading   bool
	err       error
	data      *boardData

	conflictsTable table.Model
	timelineTable  table.Model
}

func newBoardModel(a *App) boardModel {
	tableStyles := table.DefaultStyles()
	tableStyles.Header = tableStyles.Header.
		Foreground(formatter.ColorHeader).
		Bold(true).
		BorderForeground(formatter.ColorDim)
	tableStyles.Selected = tableStyles.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#3c3836")).
		Bold(false)

	conflicts := table.New(
		table.WithColumns([]table.Column{
			{Title: "PRIORITY", Width: 8},
			{Title: "TYPE", Width: 22},
			{Title: "WEEK", Width: 10},
			{Title: "WHO/WHAT", Width: 26},
			{Title: "VARIANCE", Width: 10},
		}),
		table.WithHeight(10),
		table.WithFocused(true),
		table.WithStyles(tableStyles),
	)

	timeline := table.New(
		table.WithColumns([]table.Column{
			{Title: "DEPARTMENT", Width: 20},
			{Title: "WEEK", Width: 10},
			{Title: "ASSIGNED", Width: 9},
			{Title: "CAPACITY", Width: 9},
			{Title: "UTIL", Width: 7},
			{Title: "LOAD", Width: 6},
		}),
		table.WithHeight(10),
		table.WithStyles(tableStyles),
	)

	return boardModel{
		conflicts:      a.conflictUseCase(),
		timeline:       a.timelineUseCase(),
		loading:        true,
		conflictsTable: conflicts,
		timelineTable:  timeline,
	}
}

func (m boardModel) loadCmd() tea.Cmd {
	conflictsUC, timelineUC := m.conflicts, m.timeline
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		stats, err := conflictsUC.GetQuickStats(ctx, now)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		conflicts, err := conflictsUC.GetConflicts(ctx, contract.ConflictOptions{})
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		timeline, err := timelineUC.GetResourceTimeline(ctx, contract.TimelineRequest{})
		if err != nil {
			return boardLoadedMsg{err: err}
		}

		return boardLoadedMsg{data: boardData{stats: stats, conflicts: conflicts, timeline: timeline}}
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err == nil {
			data := msg.data
			m.data = &data
			m.conflictsTable.SetRows(conflictRows(data.conflicts))
			m.timelineTable.SetRows(timelineRows(data.timeline))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, boardKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, boardKeys.Refresh):
			m.loading = true
			return m, m.loadCmd()
		case key.Matches(msg, boardKeys.Tab):
			if m.activeTab == boardTabConflicts {
				m.activeTab = boardTabTimeline
				m.conflictsTable.Blur()
				m.timelineTable.Focus()
			} else {
				m.activeTab = boardTabConflicts
				m.timelineTable.Blur()
				m.conflictsTable.Focus()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.activeTab == boardTabConflicts {
		m.conflictsTable, cmd = m.conflictsTable.Update(msg)
	} else {
		m.timelineTable, cmd = m.timelineTable.Update(msg)
	}
	return m, cmd
}

func conflictRows(conflicts []contract.Conflict) []table.Row {
	rows := make([]table.Row, 0, len(conflicts))
	for _, c := range conflicts {
		subject := c.EmployeeName
		if subject == "" {
			subject = c.ProjectName + " / " + c.DepartmentName
		}
		rows = append(rows, table.Row{
			string(c.Priority),
			string(c.Type),
			formatter.Week(c.WeekStart),
			subject,
			formatHoursPlain(c.Variance) + "h",
		})
	}
	return rows
}

func timelineRows(entries []contract.TimelineEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.DepartmentName,
			formatter.Week(e.WeekStart),
			formatHoursPlain(e.AssignedHours),
			formatHoursPlain(e.CapacityHours),
			formatHoursPlain(e.UtilizationPct) + "%",
			string(e.LoadLevel),
		})
	}
	return rows
}

func (m boardModel) View() string {
	if m.loading {
		return formatter.Dim("Loading board...")
	}
	if m.err != nil {
		return formatter.StyleRed.Render("Error: " + m.err.Error())
	}

	s := m.data.stats
	header := fmt.Sprintf("%s  %s   %s %d   %s %d   %s %s   %s %d   %s %d",
		formatter.StyleHeader.Render("CREWPLAN"),
		formatter.Dim("week of "+formatter.Week(s.CurrentWeek)),
		formatter.Dim("projects"), s.ActiveProjects,
		formatter.Dim("employees"), s.ActiveEmployees,
		formatter.Dim("avg util"), formatter.Pct(s.AvgUtilizationPct),
		formatter.Dim("overalloc"), s.OverallocatedEmployees,
		formatter.Dim("understaffed"), s.UnderstaffedProjects,
	)

	conflictsTab := formatter.Dim("Conflicts")
	timelineTab := formatter.Dim("Timeline")
	var body string
	if m.activeTab == boardTabConflicts {
		conflictsTab = formatter.Bold("Conflicts")
		body = m.conflictsTable.View()
	} else {
		timelineTab = formatter.Bold("Timeline")
		body = m.timelineTable.View()
	}

	help := formatter.Dim("tab: switch  r: refresh  q: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		conflictsTab+"  "+timelineTab,
		body,
		"",
		help,
	)
}

func newBoardCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Interactive allocation dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.IsInteractive != nil && !a.IsInteractive() {
				return fmt.Errorf("board requires an interactive terminal")
			}
			_, err := tea.NewProgram(newBoardModel(a), tea.WithAltScreen()).Run()
			return err
		},
	}
}
