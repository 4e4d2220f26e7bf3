// Package timeline plans the day-per-column axis of an exported Gantt chart.
package timeline

import (
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

const (
	MinBufferDays        = 3
	MaxBufferDays        = 5
	DefaultEmptySpanDays = 7
	// DefaultFirstIndex is the first timeline column, right after the
	// id, name, start, end and duration attribute columns.
	DefaultFirstIndex = 5
)

// Options tune the planner. Zero values take the defaults.
type Options struct {
	// BufferDays pads both ends of the task range; clamped to 3..5.
	BufferDays int
	// EmptyAnchor centres the window when there are no tasks. Zero means
	// the normalizer's today.
	EmptyAnchor time.Time
	// EmptySpanDays is the half-width of the empty-list window.
	EmptySpanDays int
	// FirstIndex is the absolute column index of the first day.
	FirstIndex int
}

func (o Options) withDefaults() Options {
	if o.BufferDays == 0 {
		o.BufferDays = MinBufferDays
	}
	o.BufferDays = domain.ClampInt(o.BufferDays, MinBufferDays, MaxBufferDays)
	if o.EmptySpanDays <= 0 {
		o.EmptySpanDays = DefaultEmptySpanDays
	}
	if o.FirstIndex <= 0 {
		o.FirstIndex = DefaultFirstIndex
	}
	if o.EmptyAnchor.IsZero() {
		o.EmptyAnchor = time.Now()
	}
	o.EmptyAnchor = domain.Day(o.EmptyAnchor)
	return o
}

// Column is one calendar day on the axis.
type Column struct {
	Key     string
	Date    time.Time
	Label   string
	Index   int
	Weekend bool
}

// Grid is the planned axis. DateMap maps an ISO day key to its absolute
// column index; indices are contiguous and ascending.
type Grid struct {
	MinDate time.Time
	MaxDate time.Time
	Columns []Column
	DateMap map[string]int
}

// Plan lays out one column per day from the earliest start minus the buffer
// to the latest end plus the buffer. An empty task list gets a window of
// EmptySpanDays on each side of EmptyAnchor.
func Plan(tasks []domain.Task, opts Options) Grid {
	opts = opts.withDefaults()

	var lo, hi time.Time
	if first, last, ok := domain.DateRange(tasks); ok {
		lo = domain.AddDays(first, -opts.BufferDays)
		hi = domain.AddDays(last, opts.BufferDays)
	} else {
		lo = domain.AddDays(opts.EmptyAnchor, -opts.EmptySpanDays)
		hi = domain.AddDays(opts.EmptyAnchor, opts.EmptySpanDays)
	}

	days := domain.DaysBetween(lo, hi) + 1
	g := Grid{
		MinDate: lo,
		MaxDate: hi,
		Columns: make([]Column, 0, days),
		DateMap: make(map[string]int, days),
	}
	for i := 0; i < days; i++ {
		d := domain.AddDays(lo, i)
		col := Column{
			Key:     domain.ISODate(d),
			Date:    d,
			Label:   Label(d),
			Index:   opts.FirstIndex + i,
			Weekend: domain.IsWeekend(d),
		}
		g.Columns = append(g.Columns, col)
		g.DateMap[col.Key] = col.Index
	}
	return g
}

// Label renders a header such as "Mon 02".
func Label(d time.Time) string {
	return d.Format("Mon 02")
}

// FirstIndex is the index of the earliest column, or -1 for an empty grid.
func (g Grid) FirstIndex() int {
	if len(g.Columns) == 0 {
		return -1
	}
	return g.Columns[0].Index
}

// LastIndex is the index of the latest column, or -1 for an empty grid.
func (g Grid) LastIndex() int {
	if len(g.Columns) == 0 {
		return -1
	}
	return g.Columns[len(g.Columns)-1].Index
}

// Locate returns the column index for d. Days outside the grid are clamped
// to the nearest bound and reported with clamped set.
func (g Grid) Locate(d time.Time) (index int, clamped bool) {
	if len(g.Columns) == 0 {
		return -1, true
	}
	if idx, ok := g.DateMap[domain.ISODate(d)]; ok {
		return idx, false
	}
	if domain.Day(d).Before(g.MinDate) {
		return g.FirstIndex(), true
	}
	return g.LastIndex(), true
}

// Contains reports whether d has a column.
func (g Grid) Contains(d time.Time) bool {
	_, ok := g.DateMap[domain.ISODate(d)]
	return ok
}
