package export

import (
	"sort"
	"strconv"

	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// MIMEType is the content type of an exported workbook.
const MIMEType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DefaultFileName is used when the caller supplies none.
const DefaultFileName = "gantt_chart.xlsx"

// DateFormat is the number format applied to start and end date cells.
const DateFormat = "yyyy-mm-dd"

// Shade names the semantic role of a cell's background.
type Shade string

const (
	ShadeNone      Shade = ""
	ShadeTitle     Shade = "title"
	ShadeHeader    Shade = "header"
	ShadeCompleted Shade = "completed"
	ShadeCurrent   Shade = "current"
	ShadeFuture    Shade = "future"
	ShadeWeekend   Shade = "weekend"
	ShadeAlt       Shade = "alt"
)

// CellStyle is a comparable style description. Equal styles share one
// workbook style record.
type CellStyle struct {
	Shade     Shade
	Fill      string
	FontColor string
	Bold      bool
	Italic    bool
	FontSize  float64
	Center    bool
	NumFmt    string
	Grid      string
	// Today marks the current-day column with a heavier left and right border.
	Today string
}

// Pos is a zero-based row and column.
type Pos struct {
	Row int
	Col int
}

// Ref converts p to an A1 reference.
func (p Pos) Ref() string {
	return reference.IndexToColumn(uint32(p.Col)) + strconv.Itoa(p.Row+1)
}

// Range is an inclusive rectangle.
type Range struct {
	From Pos
	To   Pos
}

func (r Range) Ref() string {
	return r.From.Ref() + ":" + r.To.Ref()
}

// Cell holds a value (string, float64, int or time.Time) and its style.
type Cell struct {
	Value any
	Style CellStyle
}

// Freeze describes a frozen pane: Rows rows and Cols columns stay visible.
type Freeze struct {
	Rows int
	Cols int
}

// Sheet is the composed document before serialization.
type Sheet struct {
	Name       string
	Cells      map[Pos]Cell
	Merges     []Range
	Widths     map[int]float64
	RowHeights map[int]float64
	AutoFilter *Range
	Freeze     Freeze
	Warnings   []LayoutWarning
	RunID      string
	Theme      Theme
}

func newSheet(name string, theme Theme) *Sheet {
	return &Sheet{
		Name:       name,
		Cells:      make(map[Pos]Cell),
		Widths:     make(map[int]float64),
		RowHeights: make(map[int]float64),
		Theme:      theme,
	}
}

// Set stores a cell, replacing any previous value at the position.
func (s *Sheet) Set(row, col int, value any, style CellStyle) {
	s.Cells[Pos{Row: row, Col: col}] = Cell{Value: value, Style: style}
}

// At returns the cell at a position.
func (s *Sheet) At(row, col int) (Cell, bool) {
	c, ok := s.Cells[Pos{Row: row, Col: col}]
	return c, ok
}

// Bounds returns the largest row and column holding a cell.
func (s *Sheet) Bounds() (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for p := range s.Cells {
		maxRow = max(maxRow, p.Row)
		maxCol = max(maxCol, p.Col)
	}
	return maxRow, maxCol
}

// positions returns cell positions in row-major order so rows and cells are
// created in ascending order in the workbook.
func (s *Sheet) positions() []Pos {
	out := make([]Pos, 0, len(s.Cells))
	for p := range s.Cells {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
