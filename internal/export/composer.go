package export

import (
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/timeline"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSheetName names the worksheet when Meta leaves it blank.
const DefaultSheetName = "Gantt Chart"

const generatorLine = "Generated by ganttsheet"

// Meta is the descriptive content of the header and footer bands.
type Meta struct {
	Title       string    `json:"title"`
	Project     string    `json:"project"`
	Company     string    `json:"company"`
	SheetName   string    `json:"sheet_name"`
	GeneratedAt time.Time `json:"generated_at"`
	// Today drives status classification and the today marker.
	Today time.Time `json:"today"`
	RunID string    `json:"run_id"`
}

func (m Meta) withDefaults(now func() time.Time, newID func() string) Meta {
	if m.SheetName == "" {
		m.SheetName = DefaultSheetName
	}
	if m.Title == "" {
		m.Title = m.SheetName
	}
	if m.GeneratedAt.IsZero() {
		m.GeneratedAt = now()
	}
	if m.Today.IsZero() {
		m.Today = m.GeneratedAt
	}
	if m.RunID == "" {
		m.RunID = newID()
	}
	return m
}

// Composer builds styled sheets from tasks and a timeline grid.
type Composer struct {
	theme Theme
	log   zerolog.Logger
	now   func() time.Time
	newID func() string
}

// ComposerOption configures a Composer.
type ComposerOption func(*Composer)

// WithClock overrides the clock used for defaulted timestamps.
func WithClock(now func() time.Time) ComposerOption {
	return func(c *Composer) { c.now = now }
}

// WithIDGenerator overrides run ID generation.
func WithIDGenerator(fn func() string) ComposerOption {
	return func(c *Composer) { c.newID = fn }
}

func NewComposer(theme Theme, log zerolog.Logger, opts ...ComposerOption) *Composer {
	c := &Composer{
		theme: theme,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose lays out the header band, the column header row, one row per task,
// the legend and the footer. Positions that fall outside the sheet are
// clamped and reported as warnings.
func (c *Composer) Compose(tasks []domain.Task, grid timeline.Grid, meta Meta) (*Sheet, error) {
	if len(grid.Columns) == 0 {
		return nil, ErrEmptyGrid
	}
	meta = meta.withDefaults(c.now, c.newID)

	sheet := newSheet(meta.SheetName, c.theme)
	sheet.RunID = meta.RunID

	if first := grid.FirstIndex(); first < AttributeColumns {
		sheet.Warnings = append(sheet.Warnings, LayoutWarning{
			Row:       HeaderRow,
			Col:       first,
			ClampedTo: AttributeColumns,
			Reason:    "timeline overlaps attribute columns",
		})
		grid = shiftGrid(grid, AttributeColumns-first)
	}

	if last := grid.LastIndex(); last >= MaxColumns {
		grid = truncateGrid(grid, MaxColumns-1)
		sheet.Warnings = append(sheet.Warnings, LayoutWarning{
			Row:       HeaderRow,
			Col:       last,
			ClampedTo: MaxColumns - 1,
			Reason:    fmt.Sprintf("timeline truncated after %s at the %d column limit", domain.ISODate(grid.MaxDate), MaxColumns),
		})
	}

	layout := NewLayout(len(tasks), grid, meta.Today)

	c.composeHeader(sheet, layout, meta, len(tasks))
	c.composeColumnHeader(sheet, layout)
	if len(tasks) == 0 {
		row := FirstTaskRow
		sheet.Set(row, ColID, EmptyMessage, layout.StyleFor(c.theme, row, ColID, nil))
		sheet.Merges = append(sheet.Merges, Range{
			From: Pos{Row: row, Col: ColID},
			To:   Pos{Row: row, Col: layout.LastColumn()},
		})
	}
	for i := range tasks {
		c.composeTask(sheet, layout, i, &tasks[i])
	}
	c.composeLegend(sheet, layout)
	c.composeFooter(sheet, layout, meta)
	c.applyGeometry(sheet, layout)

	for _, w := range sheet.Warnings {
		c.log.Warn().
			Str("task_id", w.TaskID).
			Int("row", w.Row).
			Int("col", w.Col).
			Int("clamped_to", w.ClampedTo).
			Msg(w.Reason)
	}
	c.log.Debug().
		Str("run_id", meta.RunID).
		Int("tasks", len(tasks)).
		Int("days", len(grid.Columns)).
		Msg("sheet composed")

	return sheet, nil
}

func (c *Composer) composeHeader(s *Sheet, l Layout, meta Meta, taskCount int) {
	s.Set(TitleRow, 0, meta.Title, l.StyleFor(c.theme, TitleRow, 0, nil))
	s.Merges = append(s.Merges, Range{From: Pos{Row: TitleRow}, To: Pos{Row: TitleRow, Col: l.LastColumn()}})
	s.RowHeights[TitleRow] = 28

	s.Set(GeneratedRow, 0, "Generated", l.StyleFor(c.theme, GeneratedRow, 0, nil))
	s.Set(GeneratedRow, 1, meta.GeneratedAt.Format("2006-01-02 15:04 MST"), l.StyleFor(c.theme, GeneratedRow, 1, nil))
	s.Set(GeneratedRow, 2, "Tasks", l.StyleFor(c.theme, GeneratedRow, 2, nil))
	s.Set(GeneratedRow, 3, taskCount, l.StyleFor(c.theme, GeneratedRow, 3, nil))

	s.Set(RunRow, 0, "Run ID", l.StyleFor(c.theme, RunRow, 0, nil))
	s.Set(RunRow, 1, meta.RunID, l.StyleFor(c.theme, RunRow, 1, nil))
}

func (c *Composer) composeColumnHeader(s *Sheet, l Layout) {
	for col, label := range AttributeHeaders {
		s.Set(HeaderRow, col, label, l.StyleFor(c.theme, HeaderRow, col, nil))
	}
	for _, tc := range l.Grid.Columns {
		s.Set(HeaderRow, tc.Index, tc.Label, l.StyleFor(c.theme, HeaderRow, tc.Index, nil))
	}
	s.RowHeights[HeaderRow] = 30
}

func (c *Composer) composeTask(s *Sheet, l Layout, i int, task *domain.Task) {
	row := l.TaskRow(i)
	style := func(col int) CellStyle { return l.StyleFor(c.theme, row, col, task) }

	s.Set(row, ColID, task.ID, style(ColID))
	s.Set(row, ColName, task.Name, style(ColName))
	s.Set(row, ColStart, domain.Day(task.Start), style(ColStart))
	s.Set(row, ColEnd, domain.Day(task.End), style(ColEnd))
	s.Set(row, ColDuration, task.DurationDays(), style(ColDuration))

	for _, tc := range l.Grid.Columns {
		s.Set(row, tc.Index, "", style(tc.Index))
	}

	// Bars are painted by StyleFor; these checks only report bars the grid
	// cannot hold.
	startCol, startClamped := l.Grid.Locate(task.Start)
	endCol, endClamped := l.Grid.Locate(task.End)
	if startClamped {
		s.Warnings = append(s.Warnings, LayoutWarning{
			TaskID: task.ID, Row: row, Col: startCol, ClampedTo: startCol,
			Reason: fmt.Sprintf("start %s outside timeline", domain.ISODate(task.Start)),
		})
	}
	if endClamped {
		s.Warnings = append(s.Warnings, LayoutWarning{
			TaskID: task.ID, Row: row, Col: endCol, ClampedTo: endCol,
			Reason: fmt.Sprintf("end %s outside timeline", domain.ISODate(task.End)),
		})
	}
	if startClamped && endClamped && startCol == endCol {
		// Entirely outside: mark the nearest edge so the row is not blank.
		st := style(startCol)
		st.Shade, st.Fill = statusShade(task.StatusOn(l.Today), c.theme)
		s.Set(row, startCol, "", st)
	}
}

func (c *Composer) composeLegend(s *Sheet, l Layout) {
	row := l.LegendRow()
	s.Set(row, 0, "Legend", l.StyleFor(c.theme, row, 0, nil))
	for i, entry := range legendEntries {
		r := row + 1 + i
		s.Set(r, ColID, "", l.StyleFor(c.theme, r, ColID, nil))
		s.Set(r, ColName, entry.Label, l.StyleFor(c.theme, r, ColName, nil))
	}
}

func (c *Composer) composeFooter(s *Sheet, l Layout, meta Meta) {
	lines := [FooterLines]string{
		"Project: " + orDash(meta.Project),
		"Company: " + orDash(meta.Company),
		generatorLine,
	}
	for i, text := range lines {
		r := l.FooterRow() + i
		s.Set(r, 0, text, l.StyleFor(c.theme, r, 0, nil))
	}
}

func (c *Composer) applyGeometry(s *Sheet, l Layout) {
	w := c.theme.Widths
	s.Widths[ColID] = w.ID
	s.Widths[ColName] = w.Name
	s.Widths[ColStart] = w.Date
	s.Widths[ColEnd] = w.Date
	s.Widths[ColDuration] = w.Duration
	for _, tc := range l.Grid.Columns {
		s.Widths[tc.Index] = w.Day
	}

	s.AutoFilter = &Range{
		From: Pos{Row: HeaderRow, Col: 0},
		To:   Pos{Row: l.LastBodyRow(), Col: AttributeColumns - 1},
	}
	s.Freeze = Freeze{Rows: HeaderRow + 1, Cols: ColName + 1}
}

// shiftGrid moves every column right by n.
func shiftGrid(g timeline.Grid, n int) timeline.Grid {
	out := timeline.Grid{
		MinDate: g.MinDate,
		MaxDate: g.MaxDate,
		Columns: make([]timeline.Column, len(g.Columns)),
		DateMap: make(map[string]int, len(g.DateMap)),
	}
	for i, col := range g.Columns {
		col.Index += n
		out.Columns[i] = col
		out.DateMap[col.Key] = col.Index
	}
	return out
}

// truncateGrid drops every column past lastIndex.
func truncateGrid(g timeline.Grid, lastIndex int) timeline.Grid {
	keep := lastIndex - g.FirstIndex() + 1
	out := timeline.Grid{
		MinDate: g.MinDate,
		MaxDate: g.Columns[keep-1].Date,
		Columns: g.Columns[:keep:keep],
		DateMap: make(map[string]int, keep),
	}
	for _, col := range out.Columns {
		out.DateMap[col.Key] = col.Index
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// WithTheme returns a copy of c that styles with theme.
func (c *Composer) WithTheme(theme Theme) *Composer {
	cp := *c
	cp.theme = theme
	return &cp
}
