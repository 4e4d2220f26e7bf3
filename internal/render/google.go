package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

// GoogleColumn is a DataTable column declaration.
type GoogleColumn struct {
	Type  string `json:"type"`
	Label string `json:"label"`
}

// GoogleCell is one DataTable value; V is nil for an empty cell.
type GoogleCell struct {
	V any `json:"v"`
}

type GoogleRow struct {
	C []GoogleCell `json:"c"`
}

// GoogleTable is the Google Charts DataTable literal for a Gantt chart.
type GoogleTable struct {
	Cols []GoogleColumn `json:"cols"`
	Rows []GoogleRow    `json:"rows"`
}

var googleColumns = []GoogleColumn{
	{Type: "string", Label: "Task ID"},
	{Type: "string", Label: "Task Name"},
	{Type: "date", Label: "Start Date"},
	{Type: "date", Label: "End Date"},
	{Type: "number", Label: "Duration"},
	{Type: "number", Label: "Percent Complete"},
	{Type: "string", Label: "Dependencies"},
}

// GoogleChart builds the DataTable. Duration is left empty so the chart
// derives it from the dates; completion is 100 for completed tasks and 0
// otherwise.
func GoogleChart(tasks []domain.Task, today time.Time) GoogleTable {
	table := GoogleTable{Cols: googleColumns, Rows: make([]GoogleRow, 0, len(tasks))}
	for _, t := range tasks {
		percent := 0
		if t.StatusOn(today) == domain.StatusCompleted {
			percent = 100
		}
		table.Rows = append(table.Rows, GoogleRow{C: []GoogleCell{
			{V: t.ID},
			{V: t.Name},
			{V: googleDate(t.Start)},
			// The chart treats the end as exclusive.
			{V: googleDate(domain.AddDays(t.End, 1))},
			{V: nil},
			{V: percent},
			{V: nil},
		}})
	}
	return table
}

// JSON encodes the table.
func (t GoogleTable) JSON() ([]byte, error) {
	return json.Marshal(t)
}

// googleDate renders the DataTable date literal; months are zero based.
func googleDate(d time.Time) string {
	return fmt.Sprintf("Date(%d, %d, %d)", d.Year(), int(d.Month())-1, d.Day())
}
