package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

var testTaskCounter atomic.Int64

// Day parses a YYYY-MM-DD literal and panics on malformed input.
func Day(s string) time.Time {
	t, err := time.Parse(domain.ISOLayout, s)
	if err != nil {
		panic(fmt.Sprintf("testutil.Day(%q): %v", s, err))
	}
	return t
}

// FixedClock returns a clock frozen at midday of the given day.
func FixedClock(day string) func() time.Time {
	t := Day(day).Add(12 * time.Hour)
	return func() time.Time { return t }
}

// Task options
type TaskOption func(*domain.Task)

func WithID(id string) TaskOption {
	return func(t *domain.Task) {
		t.ID = id
	}
}

func WithName(name string) TaskOption {
	return func(t *domain.Task) {
		t.Name = name
	}
}

// NewTestTask builds a task over [start, end] given as YYYY-MM-DD.
func NewTestTask(start, end string, opts ...TaskOption) domain.Task {
	n := testTaskCounter.Add(1)
	t := domain.Task{
		ID:    fmt.Sprintf("%d", n),
		Name:  fmt.Sprintf("Task %d", n),
		Start: Day(start),
		End:   Day(end),
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestTable builds a table from a header and rows of cells keyed by
// position. Blank cells are omitted from the row map like ingest does.
func NewTestTable(columns []string, rows ...[]domain.CellValue) *domain.Table {
	table := &domain.Table{Columns: columns}
	for _, cells := range rows {
		row := domain.RawRow{}
		for i, c := range cells {
			if i < len(columns) && !c.IsBlank() {
				row[columns[i]] = c
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// Text is shorthand for domain.TextCell in table literals.
func Text(s string) domain.CellValue {
	return domain.TextCell(s)
}
