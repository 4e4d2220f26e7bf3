// Package render turns a task list into chart descriptions for front ends
// that draw their own Gantt view.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

// Mermaid writes a mermaid gantt block. Status markers come from today:
// completed tasks are "done" and current tasks "active".
func Mermaid(tasks []domain.Task, title string, today time.Time) string {
	var b strings.Builder
	b.WriteString("gantt\n")
	if title != "" {
		fmt.Fprintf(&b, "    title %s\n", mermaidText(title))
	}
	b.WriteString("    dateFormat YYYY-MM-DD\n")
	b.WriteString("    axisFormat %b %d\n")
	b.WriteString("    section Tasks\n")

	for _, t := range tasks {
		tags := []string{}
		switch t.StatusOn(today) {
		case domain.StatusCompleted:
			tags = append(tags, "done")
		case domain.StatusCurrent:
			tags = append(tags, "active")
		}
		tags = append(tags, mermaidID(t.ID), domain.ISODate(t.Start), fmt.Sprintf("%dd", t.DurationDays()))
		fmt.Fprintf(&b, "    %s :%s\n", mermaidText(t.Name), strings.Join(tags, ", "))
	}
	return b.String()
}

// mermaidText strips characters that end a mermaid statement.
func mermaidText(s string) string {
	r := strings.NewReplacer("\r", " ", "\n", " ", ":", " -", "#", "", ";", ",")
	out := strings.TrimSpace(r.Replace(s))
	if out == "" {
		return "Untitled"
	}
	return out
}

// mermaidID keeps letters, digits and underscores, prefixed so ids never
// start with a digit.
func mermaidID(id string) string {
	var b strings.Builder
	b.WriteString("task_")
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
