// Package ingest turns uploaded spreadsheet bytes into ordered row records.
//
// Both the zipped-XML (.xlsx) and the legacy binary (.xls) containers are
// accepted. Only the first worksheet is read and its first populated row is
// the header.
package ingest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

// Format identifies a spreadsheet container.
type Format string

const (
	FormatUnknown Format = ""
	FormatXLSX    Format = "xlsx"
	FormatXLS     Format = "xls"
)

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
)

// DetectFormat sniffs the container from its magic bytes.
func DetectFormat(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	default:
		return FormatUnknown
	}
}

// Parse reads the first worksheet of data. It fails with *ParseError when the
// bytes are not a recognizable spreadsheet or hold no data rows.
func Parse(data []byte) (*domain.Table, error) {
	format := DetectFormat(data)

	var (
		grid [][]domain.CellValue
		err  error
	)
	switch format {
	case FormatXLSX:
		grid, err = readXLSX(data)
	case FormatXLS:
		grid, err = readXLS(data)
	default:
		return nil, parseErr("", ErrUnrecognizedFormat)
	}
	if err != nil {
		return nil, parseErr(string(format), err)
	}

	table := buildTable(grid)
	if len(table.Rows) == 0 {
		return nil, parseErr(string(format), ErrEmptyDataset)
	}
	return table, nil
}

// ParseReader drains r and parses the result.
func ParseReader(r io.Reader) (*domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, parseErr("", fmt.Errorf("reading upload: %w", err))
	}
	return Parse(data)
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*domain.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, parseErr("", err)
	}
	return Parse(data)
}

// buildTable turns a positional grid into named rows. Leading blank rows are
// skipped, the next row names the columns, and fully blank data rows are
// dropped.
func buildTable(grid [][]domain.CellValue) *domain.Table {
	start := 0
	for start < len(grid) && rowBlank(grid[start]) {
		start++
	}
	if start == len(grid) {
		return &domain.Table{}
	}

	width := 0
	for _, row := range grid[start:] {
		if len(row) > width {
			width = len(row)
		}
	}

	columns := headerNames(grid[start], width)
	table := &domain.Table{Columns: columns}

	for _, cells := range grid[start+1:] {
		if rowBlank(cells) {
			continue
		}
		row := make(domain.RawRow, len(cells))
		for i, v := range cells {
			if v.IsBlank() {
				continue
			}
			row[columns[i]] = v
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// headerNames builds distinct column names. Blank headers become __EMPTY,
// __EMPTY_1, ... and repeated names get _1, _2 suffixes.
func headerNames(header []domain.CellValue, width int) []string {
	names := make([]string, width)
	used := make(map[string]bool, width)
	next := make(map[string]int, width)
	for i := 0; i < width; i++ {
		base := ""
		if i < len(header) {
			base = strings.TrimSpace(header[i].String())
		}
		if base == "" {
			base = "__EMPTY"
		}
		name := base
		for used[name] {
			next[base]++
			name = fmt.Sprintf("%s_%d", base, next[base])
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func rowBlank(cells []domain.CellValue) bool {
	for _, c := range cells {
		if !c.IsBlank() {
			return false
		}
	}
	return true
}

// setCell grows grid as needed and stores v at (r, c).
func setCell(grid [][]domain.CellValue, r, c int, v domain.CellValue) [][]domain.CellValue {
	for len(grid) <= r {
		grid = append(grid, nil)
	}
	row := grid[r]
	for len(row) <= c {
		row = append(row, domain.CellValue{})
	}
	row[c] = v
	grid[r] = row
	return grid
}
