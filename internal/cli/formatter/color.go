package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ConflictColor returns the lipgloss style corresponding to a conflict
// priority.
func ConflictColor(p domain.ConflictPriority) lipgloss.Style {
	switch p {
	case domain.ConflictHigh:
		return StyleRed
	case domain.ConflictMedium:
		return StyleYellow
	case domain.ConflictLow:
		return StyleBlue
	default:
		return StyleDim
	}
}

// ConflictIndicator returns a colored priority indicator such as "● HIGH".
func ConflictIndicator(p domain.ConflictPriority) string {
	switch p {
	case domain.ConflictHigh:
		return StyleRed.Render("● HIGH")
	case domain.ConflictMedium:
		return StyleYellow.Render("● MEDIUM")
	case domain.ConflictLow:
		return StyleBlue.Render("● LOW")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// StaffingPill returns a colored staffing status indicator.
func StaffingPill(s domain.StaffingStatus) string {
	switch s {
	case domain.StaffingUnderstaffed:
		return StyleRed.Render("▼ Understaffed")
	case domain.StaffingOverstaffed:
		return StyleYellow.Render("▲ Overstaffed")
	case domain.StaffingAdequate:
		return StyleGreen.Render("● Adequate")
	default:
		return StyleDim.Render(string(s))
	}
}

// LoadPill returns a colored load level indicator for a week's utilization.
func LoadPill(l domain.LoadLevel) string {
	switch l {
	case domain.LoadLight:
		return StyleGreen.Render("Light")
	case domain.LoadMedium:
		return StyleYellow.Render("Medium")
	case domain.LoadHeavy:
		return StyleRed.Render("Heavy")
	default:
		return StyleDim.Render(string(l))
	}
}

// StatusPill returns a colored status indicator for project status.
func StatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectPlanning:
		return StyleBlue.Render("○ Planning")
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

// PriorityBadge returns a capitalized, colored project priority label.
func PriorityBadge(p domain.Priority) string {
	label := string(p)
	if label == "" {
		return StyleDim.Render("--")
	}
	label = strings.ToUpper(label[:1]) + label[1:]
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render(label)
	case domain.PriorityHigh:
		return StyleYellow.Render(label)
	case domain.PriorityLow:
		return StyleDim.Render(label)
	default:
		return StylePurple.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
