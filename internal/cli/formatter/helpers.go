package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/crewplan/internal/calc"
	"github.com/alexanderramin/crewplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// Week formats a Monday week key as "2006-01-02".
func Week(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// WeekRange formats a week as "Jun 2 – Jun 8".
func WeekRange(weekStart time.Time) string {
	end := domain.WeekEnd(weekStart)
	return fmt.Sprintf("%s – %s", weekStart.Format("Jan 2"), end.Format("Jan 2"))
}

// Hours formats an hour value with no trailing zeros, e.g. "37.5h".
func Hours(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "h"
}

// Pct formats a percentage with no trailing zeros, e.g. "87.5%".
func Pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// PctStyled colors a utilization percentage by its load level.
func PctStyled(v float64) string {
	return LoadColor(calc.LoadLevelFor(v)).Render(Pct(v))
}

// LoadColor returns the style used for a load level's numbers.
func LoadColor(l domain.LoadLevel) lipgloss.Style {
	switch l {
	case domain.LoadLight:
		return StyleGreen
	case domain.LoadMedium:
		return StyleYellow
	case domain.LoadHeavy:
		return StyleRed
	default:
		return StyleDim
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// HumanDate returns a human-friendly absolute date string.
func HumanDate(t time.Time) string {
	now := time.Now()
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()

	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	return t.Format("Jan 2, 2006")
}
