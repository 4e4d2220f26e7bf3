package domain

import (
	"strconv"
	"strings"
	"time"
)

// CellValue is one untyped spreadsheet cell as surfaced by ingest.
type CellValue struct {
	Kind   CellKind
	Text   string
	Number float64
	Date   time.Time
}

func TextCell(s string) CellValue {
	if strings.TrimSpace(s) == "" {
		return CellValue{}
	}
	return CellValue{Kind: CellText, Text: s}
}

func NumberCell(n float64) CellValue {
	return CellValue{Kind: CellNumber, Number: n}
}

func DateCell(t time.Time) CellValue {
	return CellValue{Kind: CellDate, Date: Day(t)}
}

// IsBlank reports whether the cell carries no usable content.
func (v CellValue) IsBlank() bool {
	switch v.Kind {
	case CellEmpty:
		return true
	case CellText:
		return strings.TrimSpace(v.Text) == ""
	default:
		return false
	}
}

// String coerces the cell to plain text. Dates render as YYYY-MM-DD and
// numbers in their shortest exact form.
func (v CellValue) String() string {
	switch v.Kind {
	case CellText:
		return v.Text
	case CellNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case CellDate:
		return ISODate(v.Date)
	default:
		return ""
	}
}

// RawRow maps a column name to the cell found under it.
type RawRow map[string]CellValue

// Get returns the cell for column, or an empty cell when the column is unset
// or absent from the row.
func (r RawRow) Get(column string) CellValue {
	if column == "" {
		return CellValue{}
	}
	return r[column]
}

// Table is the result of ingesting the first worksheet of a spreadsheet.
type Table struct {
	Columns []string
	Rows    []RawRow
}

// Column extracts one column's cells in row order.
func (t *Table) Column(name string) []CellValue {
	out := make([]CellValue, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row.Get(name)
	}
	return out
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
