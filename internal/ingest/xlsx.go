package ingest

import (
	"bytes"
	"strings"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/unidoc/unioffice/schema/soo/sml"
	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"
)

// readXLSX loads the first worksheet into a positional grid.
func readXLSX(data []byte) ([][]domain.CellValue, error) {
	wb, err := spreadsheet.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := sheets[0]

	date1904 := false
	if pr := wb.X().WorkbookPr; pr != nil && pr.Date1904Attr != nil {
		date1904 = *pr.Date1904Attr
	}
	formats := newNumFmtIndex(wb.StyleSheet)

	var grid [][]domain.CellValue
	for _, row := range sheet.Rows() {
		rowIdx := int(row.RowNumber()) - 1
		if rowIdx < 0 {
			continue
		}
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			colIdx := int(reference.ColumnToIndex(colName))
			grid = setCell(grid, rowIdx, colIdx, xlsxCellValue(cell, formats, date1904))
		}
	}
	return grid, nil
}

// xlsxCellValue types a cell. Numeric cells carrying a date number format
// surface as native dates.
func xlsxCellValue(cell spreadsheet.Cell, formats numFmtIndex, date1904 bool) domain.CellValue {
	x := cell.X()
	switch x.TAttr {
	case sml.ST_CellTypeS, sml.ST_CellTypeInlineStr, sml.ST_CellTypeStr,
		sml.ST_CellTypeB, sml.ST_CellTypeE:
		return domain.TextCell(cell.GetFormattedValue())
	}

	if x.V == nil || strings.TrimSpace(*x.V) == "" {
		return domain.CellValue{}
	}
	n, err := cell.GetValueAsNumber()
	if err != nil {
		// ISO cells (t="d") arrive untyped with the date text in <v>.
		raw := strings.TrimSpace(*x.V)
		if t, ok := dates.ParseText(raw); ok {
			return domain.DateCell(t)
		}
		return domain.TextCell(raw)
	}
	if formats.isDate(x.SAttr) {
		return domain.DateCell(dates.FromSerial(n, date1904))
	}
	return domain.NumberCell(n)
}

// numFmtIndex resolves a cell style index to whether it formats a date.
type numFmtIndex struct {
	xfs    []*sml.CT_Xf
	custom map[uint32]string
}

func newNumFmtIndex(ss spreadsheet.StyleSheet) numFmtIndex {
	idx := numFmtIndex{custom: map[uint32]string{}}
	x := ss.X()
	if x == nil {
		return idx
	}
	if x.CellXfs != nil {
		idx.xfs = x.CellXfs.Xf
	}
	if x.NumFmts != nil {
		for _, nf := range x.NumFmts.NumFmt {
			idx.custom[nf.NumFmtIdAttr] = nf.FormatCodeAttr
		}
	}
	return idx
}

func (i numFmtIndex) isDate(styleID *uint32) bool {
	if styleID == nil || int(*styleID) >= len(i.xfs) {
		return false
	}
	xf := i.xfs[*styleID]
	if xf == nil || xf.NumFmtIdAttr == nil {
		return false
	}
	id := *xf.NumFmtIdAttr
	if code, ok := i.custom[id]; ok {
		return isDateFormatCode(code)
	}
	return isBuiltinDateFormat(id)
}

// isBuiltinDateFormat covers the predefined ids that show a calendar date.
// Pure time formats (18-21, 45-47) are excluded.
func isBuiltinDateFormat(id uint32) bool {
	switch {
	case id >= 14 && id <= 17, id == 22:
		return true
	case id >= 27 && id <= 36, id >= 50 && id <= 58:
		return true
	default:
		return false
	}
}

// isDateFormatCode reports whether a custom format code renders a date.
// Quoted literals, bracketed sections and escaped characters are ignored.
func isDateFormatCode(code string) bool {
	lower := strings.ToLower(code)
	if lower == "general" || strings.Contains(lower, "[h") {
		return false
	}
	var b strings.Builder
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case inQuote:
			inQuote = r != '"'
		case r == '"':
			inQuote = true
		case inBracket:
			inBracket = r != ']'
		case r == '[':
			inBracket = true
		default:
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	if strings.ContainsAny(s, "yd") {
		return true
	}
	return strings.Contains(s, "m") && !strings.ContainsAny(s, "hs")
}
