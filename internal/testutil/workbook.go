package testutil

import (
	"bytes"
	"testing"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
)

// NewXLSX builds an in-memory workbook with one sheet. Row values may be
// string, int, float64, time.Time or nil (left blank). Dates are written with
// the default date style so they read back as native dates.
func NewXLSX(t *testing.T, header []string, rows ...[]any) []byte {
	t.Helper()

	wb := spreadsheet.New()
	sheet := wb.AddSheet()

	hdr := sheet.AddRow()
	for _, h := range header {
		hdr.AddCell().SetString(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			cell := row.AddCell()
			switch val := v.(type) {
			case nil:
			case string:
				cell.SetString(val)
			case int:
				cell.SetNumber(float64(val))
			case float64:
				cell.SetNumber(val)
			case time.Time:
				cell.SetDateWithStyle(val)
			default:
				t.Fatalf("NewXLSX: unsupported cell type %T", v)
			}
		}
	}

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		t.Fatalf("saving test workbook: %v", err)
	}
	return buf.Bytes()
}
