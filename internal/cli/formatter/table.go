package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Column widths are the maximum
// visible width found in each column across headers and rows, measured with
// lipgloss so ANSI escapes in styled cells do not skew the padding.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	pad := func(b *strings.Builder, cell string, col int) {
		b.WriteString(cell)
		if col < cols-1 {
			n := widths[col] - lipgloss.Width(cell)
			if n < 0 {
				n = 0
			}
			b.WriteString(strings.Repeat(" ", n+colGap))
		}
	}

	var b strings.Builder
	for i, h := range headers {
		styled := StyleHeader.Render(h)
		b.WriteString(styled)
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad(&b, cell, i)
		}
		b.WriteString("\n")
	}

	return b.String()
}
