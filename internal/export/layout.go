package export

import (
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/timeline"
)

// Fixed rows of the header band and the attribute columns.
const (
	TitleRow     = 0
	GeneratedRow = 1
	RunRow       = 2
	HeaderRow    = 4
	FirstTaskRow = 5

	ColID       = 0
	ColName     = 1
	ColStart    = 2
	ColEnd      = 3
	ColDuration = 4

	// AttributeColumns is the number of columns ahead of the timeline.
	AttributeColumns = 5

	// MaxColumns is the xlsx column limit, A through XFD.
	MaxColumns = 16384
)

// AttributeHeaders are the column header labels ahead of the timeline.
var AttributeHeaders = [AttributeColumns]string{"Task ID", "Task Name", "Start Date", "End Date", "Duration (Days)"}

// EmptyMessage fills the single body row of an export without tasks.
const EmptyMessage = "No tasks to display"

// Region is the band a cell belongs to.
type Region int

const (
	RegionNone Region = iota
	RegionTitle
	RegionMeta
	RegionHeader
	RegionTask
	RegionEmpty
	RegionLegend
	RegionFooter
)

type legendEntry struct {
	Label string
	Shade Shade
}

var legendEntries = []legendEntry{
	{"Completed", ShadeCompleted},
	{"Current", ShadeCurrent},
	{"Future", ShadeFuture},
	{"Weekend", ShadeWeekend},
}

// FooterLines is the number of rows in the footer band.
const FooterLines = 3

// Layout maps sheet positions to bands for one export.
type Layout struct {
	TaskCount int
	Grid      timeline.Grid
	Today     time.Time
}

// NewLayout describes a sheet for taskCount tasks over grid.
func NewLayout(taskCount int, grid timeline.Grid, today time.Time) Layout {
	return Layout{TaskCount: taskCount, Grid: grid, Today: domain.Day(today)}
}

// BodyRows is the number of task rows, or one for the empty message.
func (l Layout) BodyRows() int {
	return max(1, l.TaskCount)
}

func (l Layout) LastBodyRow() int {
	return FirstTaskRow + l.BodyRows() - 1
}

// LegendRow is the row of the legend title.
func (l Layout) LegendRow() int {
	return l.LastBodyRow() + 2
}

// FooterRow is the first footer row.
func (l Layout) FooterRow() int {
	return l.LegendRow() + len(legendEntries) + 2
}

func (l Layout) LastRow() int {
	return l.FooterRow() + FooterLines - 1
}

// LastColumn is the right-most column of the sheet.
func (l Layout) LastColumn() int {
	return max(l.Grid.LastIndex(), AttributeColumns-1)
}

// TaskRow returns the row holding the i-th task.
func (l Layout) TaskRow(i int) int {
	return FirstTaskRow + i
}

// TodayColumn is the timeline column of today, or -1 when outside the grid.
func (l Layout) TodayColumn() int {
	if idx, ok := l.Grid.DateMap[domain.ISODate(l.Today)]; ok {
		return idx
	}
	return -1
}

// Region classifies a row.
func (l Layout) Region(row int) Region {
	switch {
	case row == TitleRow:
		return RegionTitle
	case row == GeneratedRow || row == RunRow:
		return RegionMeta
	case row == HeaderRow:
		return RegionHeader
	case row >= FirstTaskRow && row <= l.LastBodyRow():
		if l.TaskCount == 0 {
			return RegionEmpty
		}
		return RegionTask
	case row >= l.LegendRow() && row < l.LegendRow()+1+len(legendEntries):
		return RegionLegend
	case row >= l.FooterRow() && row <= l.LastRow():
		return RegionFooter
	default:
		return RegionNone
	}
}

// column returns the grid column at a sheet index.
func (l Layout) column(col int) (timeline.Column, bool) {
	first := l.Grid.FirstIndex()
	if first < 0 || col < first || col > l.Grid.LastIndex() {
		return timeline.Column{}, false
	}
	return l.Grid.Columns[col-first], true
}

// StyleFor is the style of the cell at (row, col). task is the task on that
// row, or nil outside the task band. The result depends only on its inputs.
func (l Layout) StyleFor(theme Theme, row, col int, task *domain.Task) CellStyle {
	c := theme.Colors
	base := CellStyle{Grid: c.Grid}

	switch l.Region(row) {
	case RegionTitle:
		return CellStyle{Shade: ShadeTitle, FontColor: c.Title, Bold: true, FontSize: theme.Font.TitleSize}

	case RegionMeta:
		if col%2 == 0 {
			return CellStyle{Bold: true, FontColor: c.Muted}
		}
		return CellStyle{}

	case RegionHeader:
		base.Shade = ShadeHeader
		base.Fill = c.HeaderFill
		base.FontColor = c.HeaderText
		base.Bold = true
		base.Center = true
		if tc, ok := l.column(col); ok {
			if tc.Weekend {
				base.Shade, base.Fill, base.FontColor = ShadeWeekend, c.Weekend, c.HeaderFill
			}
			if tc.Index == l.TodayColumn() {
				base.Today = c.Today
				base.FontColor = c.Today
			}
		}
		return base

	case RegionEmpty:
		if col == ColID {
			return CellStyle{Italic: true, FontColor: c.Muted}
		}
		return CellStyle{}

	case RegionTask:
		alt := (row-FirstTaskRow)%2 == 1
		if col < AttributeColumns {
			if alt {
				base.Shade, base.Fill = ShadeAlt, c.AltRow
			}
			switch col {
			case ColStart, ColEnd:
				base.NumFmt = DateFormat
				base.Center = true
			case ColDuration, ColID:
				base.Center = true
			}
			return base
		}
		tc, ok := l.column(col)
		if !ok {
			return base
		}
		if tc.Index == l.TodayColumn() {
			base.Today = c.Today
		}
		switch {
		case task != nil && task.Covers(tc.Date):
			base.Shade, base.Fill = statusShade(task.StatusOn(l.Today), theme)
		case tc.Weekend:
			base.Shade, base.Fill = ShadeWeekend, c.Weekend
		case alt:
			base.Shade, base.Fill = ShadeAlt, c.AltRow
		}
		return base

	case RegionLegend:
		i := row - l.LegendRow() - 1
		if i < 0 {
			return CellStyle{Bold: true}
		}
		if col == ColID {
			shade := legendEntries[i].Shade
			return CellStyle{Shade: shade, Fill: shadeFill(shade, theme), Grid: c.Grid}
		}
		return CellStyle{}

	case RegionFooter:
		return CellStyle{Italic: true, FontColor: c.Muted}
	}
	return CellStyle{}
}

func statusShade(status domain.TaskStatus, theme Theme) (Shade, string) {
	switch status {
	case domain.StatusCompleted:
		return ShadeCompleted, theme.Colors.Completed
	case domain.StatusCurrent:
		return ShadeCurrent, theme.Colors.Current
	default:
		return ShadeFuture, theme.Colors.Future
	}
}

func shadeFill(s Shade, theme Theme) string {
	switch s {
	case ShadeCompleted:
		return theme.Colors.Completed
	case ShadeCurrent:
		return theme.Colors.Current
	case ShadeFuture:
		return theme.Colors.Future
	case ShadeWeekend:
		return theme.Colors.Weekend
	case ShadeAlt:
		return theme.Colors.AltRow
	case ShadeHeader:
		return theme.Colors.HeaderFill
	}
	return ""
}
