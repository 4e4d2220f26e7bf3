package export

import (
	"bytes"
	"io"
	"time"

	"github.com/unidoc/unioffice/color"
	"github.com/unidoc/unioffice/measurement"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
)

// Write serializes the sheet as an xlsx workbook.
func (s *Sheet) Write(w io.Writer) error {
	wb := spreadsheet.New()
	ws := wb.AddSheet()
	ws.SetName(s.Name)

	styles := newStyleCache(wb, s.Theme)
	for _, p := range s.positions() {
		cell := s.Cells[p]
		xc := ws.Cell(p.Ref())
		setValue(xc, cell.Value)
		if cell.Style != (CellStyle{}) {
			xc.SetStyle(styles.get(cell.Style))
		}
	}

	for _, m := range s.Merges {
		ws.AddMergedCells(m.From.Ref(), m.To.Ref())
	}
	for col, width := range s.Widths {
		ws.Column(uint32(col + 1)).SetWidth(measurement.Distance(width) * measurement.Character)
	}
	for row, height := range s.RowHeights {
		ws.Row(uint32(row + 1)).SetHeight(measurement.Distance(height) * measurement.Point)
	}
	if s.AutoFilter != nil {
		ws.SetAutoFilter(s.AutoFilter.Ref())
	}
	if s.Freeze.Rows > 0 || s.Freeze.Cols > 0 {
		ws.X().SheetViews = nil
		view := ws.AddView()
		view.SetState(sml.ST_PaneStateFrozen)
		if s.Freeze.Cols > 0 {
			view.SetXSplit(float64(s.Freeze.Cols))
		}
		if s.Freeze.Rows > 0 {
			view.SetYSplit(float64(s.Freeze.Rows))
		}
		view.SetTopLeft(Pos{Row: s.Freeze.Rows, Col: s.Freeze.Cols}.Ref())
	}

	if err := wb.Save(w); err != nil {
		return &IOError{Op: "serialize", Err: err}
	}
	return nil
}

// Bytes serializes the sheet into memory.
func (s *Sheet) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func setValue(c spreadsheet.Cell, v any) {
	switch val := v.(type) {
	case nil:
	case string:
		if val != "" {
			c.SetString(val)
		}
	case int:
		c.SetNumber(float64(val))
	case float64:
		c.SetNumber(val)
	case time.Time:
		c.SetDate(val)
	}
}

type styleCache struct {
	wb     *spreadsheet.Workbook
	theme  Theme
	styles map[CellStyle]spreadsheet.CellStyle
}

func newStyleCache(wb *spreadsheet.Workbook, theme Theme) *styleCache {
	return &styleCache{wb: wb, theme: theme, styles: make(map[CellStyle]spreadsheet.CellStyle)}
}

func (sc *styleCache) get(st CellStyle) spreadsheet.CellStyle {
	if cs, ok := sc.styles[st]; ok {
		return cs
	}

	ss := sc.wb.StyleSheet
	cs := ss.AddCellStyle()

	if st.Fill != "" {
		fill := ss.Fills().AddFill()
		pf := fill.SetPatternFill()
		pf.SetPattern(sml.ST_PatternTypeSolid)
		pf.SetFgColor(rgb(st.Fill))
		cs.SetFill(fill)
	}

	font := ss.AddFont()
	font.SetName(sc.theme.Font.Family)
	size := st.FontSize
	if size == 0 {
		size = sc.theme.Font.Size
	}
	font.SetSize(size)
	if st.Bold {
		font.SetBold(true)
	}
	if st.Italic {
		font.SetItalic(true)
	}
	if st.FontColor != "" {
		font.SetColor(rgb(st.FontColor))
	}
	cs.SetFont(font)

	if st.Grid != "" || st.Today != "" {
		border := ss.AddBorder()
		if st.Grid != "" {
			grid := rgb(st.Grid)
			border.SetTop(sml.ST_BorderStyleThin, grid)
			border.SetBottom(sml.ST_BorderStyleThin, grid)
			border.SetLeft(sml.ST_BorderStyleThin, grid)
			border.SetRight(sml.ST_BorderStyleThin, grid)
		}
		if st.Today != "" {
			today := rgb(st.Today)
			border.SetLeft(sml.ST_BorderStyleMedium, today)
			border.SetRight(sml.ST_BorderStyleMedium, today)
		}
		cs.SetBorder(border)
	}

	if st.Center {
		cs.SetHorizontalAlignment(sml.ST_HorizontalAlignmentCenter)
	}
	if st.NumFmt != "" {
		cs.SetNumberFormat(st.NumFmt)
	}

	sc.styles[st] = cs
	return cs
}

// rgb converts a validated hex color. Invalid input renders black.
func rgb(hex string) color.Color {
	c, _ := parseHex(hex)
	return color.RGB(c[0], c[1], c[2])
}
