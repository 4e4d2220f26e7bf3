package render

import (
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/timeline"
	"github.com/charmbracelet/lipgloss"
)

var (
	barCompleted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6AA84F"))
	barCurrent   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4285F4")).Bold(true)
	barFuture    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B4C7E7"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F7F7F"))
	todayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E06666")).Bold(true)
)

const (
	barGlyph   = "█"
	emptyGlyph = "·"
	todayGlyph = "│"
)

// Terminal draws one bar line per task over the planned grid. nameWidth
// bounds the task name column.
func Terminal(tasks []domain.Task, grid timeline.Grid, today time.Time, nameWidth int) string {
	if len(tasks) == 0 {
		return dimStyle.Render("No tasks to display") + "\n"
	}
	if nameWidth <= 0 {
		nameWidth = 24
	}
	todayKey := domain.ISODate(today)

	var b strings.Builder
	for _, t := range tasks {
		b.WriteString(padRight(truncate(t.Name, nameWidth), nameWidth))
		b.WriteString(" ")

		style := barStyle(t.StatusOn(today))
		for _, col := range grid.Columns {
			switch {
			case t.Covers(col.Date):
				b.WriteString(style.Render(barGlyph))
			case col.Key == todayKey:
				b.WriteString(todayStyle.Render(todayGlyph))
			default:
				b.WriteString(dimStyle.Render(emptyGlyph))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func barStyle(s domain.TaskStatus) lipgloss.Style {
	switch s {
	case domain.StatusCompleted:
		return barCompleted
	case domain.StatusCurrent:
		return barCurrent
	default:
		return barFuture
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func padRight(s string, n int) string {
	if w := lipgloss.Width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}
