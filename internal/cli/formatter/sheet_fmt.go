package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/service"
)

// FormatColumns lists the sheet's columns and marks the detected role of each.
func FormatColumns(columns []string, suggested domain.ColumnSelection, rowCount int) string {
	roles := map[string]string{}
	for role, col := range map[string]string{
		"description": suggested.Description,
		"start":       suggested.StartDate,
		"end":         suggested.EndDate,
	} {
		if col != "" {
			roles[col] = role
		}
	}

	rows := make([][]string, 0, len(columns))
	for i, col := range columns {
		role := Dim("-")
		if r, ok := roles[col]; ok {
			role = StyleGreen.Render(r)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), col, role})
	}

	var b strings.Builder
	b.WriteString(Header("Columns"))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"#", "COLUMN", "DETECTED"}, rows))
	b.WriteString(Dim(fmt.Sprintf("%d data rows", rowCount)))
	b.WriteString("\n")
	return b.String()
}

// FormatTasks renders the built task list with status badges.
func FormatTasks(tasks []domain.Task, today time.Time) string {
	if len(tasks) == 0 {
		return Dim(export.EmptyMessage) + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.ID,
			t.Name,
			domain.ISODate(t.Start),
			domain.ISODate(t.End),
			strconv.Itoa(t.DurationDays()),
			StatusBadge(t.StatusOn(today)),
		})
	}
	return RenderTable([]string{"ID", "TASK", "START", "END", "DAYS", "STATUS"}, rows)
}

// FormatAnomalies explains every substituted date. Empty input renders
// nothing.
func FormatAnomalies(anomalies []service.DateAnomaly, degraded bool) string {
	var b strings.Builder
	if degraded {
		b.WriteString(StyleYellow.Render("Remote date standardization failed; dates were parsed locally."))
		b.WriteString("\n")
	}
	if len(anomalies) == 0 {
		return b.String()
	}

	b.WriteString(StyleYellow.Render(fmt.Sprintf("%d date(s) needed a fallback:", len(anomalies))))
	b.WriteString("\n")
	for _, a := range anomalies {
		raw := a.Raw
		if raw == "" {
			raw = "(blank)"
		}
		fmt.Fprintf(&b, "  row %d %s %q -> %s %s\n",
			a.Row, a.Field, raw, domain.ISODate(a.Resolved), Dim(string(a.Kind)))
	}
	return b.String()
}

// FormatExport summarizes a written workbook and its layout warnings.
func FormatExport(res *service.ExportResult) string {
	var b strings.Builder
	target := res.Path
	if target == "" {
		target = res.FileName
	}
	b.WriteString(StyleGreen.Render("Workbook written: ") + Bold(target))
	b.WriteString("\n")
	for _, w := range res.Warnings {
		b.WriteString(StyleYellow.Render("  warning: ") + w.String() + "\n")
	}
	return b.String()
}
