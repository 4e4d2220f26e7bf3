package ingest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/extrame/xls"
)

// readXLS loads the first worksheet of a legacy binary workbook. The reader
// library panics on some malformed streams, so panics become errors here.
func readXLS(data []byte) (grid [][]domain.CellValue, err error) {
	defer func() {
		if p := recover(); p != nil {
			grid, err = nil, fmt.Errorf("corrupt xls stream: %v", p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, err
	}
	// A container without a Workbook stream yields no workbook and no error.
	if wb == nil || wb.NumSheets() == 0 {
		return nil, ErrNoWorksheet
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return nil, ErrNoWorksheet
	}

	// ReadAllCells tolerates missing rows, which sheet.Row does not. Capping
	// it at the first sheet's row count keeps later sheets out.
	for r, cells := range wb.ReadAllCells(int(sheet.MaxRow) + 1) {
		for c, raw := range cells {
			v := xlsCellValue(raw)
			if v.IsBlank() {
				continue
			}
			grid = setCell(grid, r, c, v)
		}
	}
	return grid, nil
}

// xlsDateLayouts are the renderings the reader uses for date-formatted cells.
var xlsDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	domain.ISOLayout,
}

var yearMonth = regexp.MustCompile(`^\d{4}\.(0[1-9]|1[0-2])$`)

// xlsCellValue types the text the reader produces for a cell.
func xlsCellValue(s string) domain.CellValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.CellValue{}
	}
	for _, layout := range xlsDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return domain.DateCell(t)
		}
	}
	// Built-in date formats come back as year.month with the day dropped.
	// Kept as text so they are not mistaken for a day serial.
	if yearMonth.MatchString(s) {
		return domain.TextCell(s)
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return domain.NumberCell(n)
	}
	return domain.TextCell(s)
}
