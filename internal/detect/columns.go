// Package detect guesses which spreadsheet columns hold task fields.
//
// The result is a suggestion only; callers may accept, edit or discard it.
package detect

import (
	"strings"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

var (
	descriptionHints = []string{"desc", "task", "activity"}
	startHints       = []string{"start", "begin"}
	endHints         = []string{"end", "finish"}
)

// Columns suggests a ColumnSelection from column names. Each field takes the
// first column, in sheet order, whose lower-cased name contains any of
// the field's hints. Fields without a match are left empty.
func Columns(columns []string) domain.ColumnSelection {
	return domain.ColumnSelection{
		Description: firstMatch(columns, descriptionHints),
		StartDate:   firstMatch(columns, startHints),
		EndDate:     firstMatch(columns, endHints),
	}
}

func firstMatch(columns []string, hints []string) string {
	for _, col := range columns {
		lower := strings.ToLower(col)
		for _, h := range hints {
			if strings.Contains(lower, h) {
				return col
			}
		}
	}
	return ""
}

// Merge overlays user choices on a suggestion: non-empty override fields win.
func Merge(suggested, override domain.ColumnSelection) domain.ColumnSelection {
	return domain.ColumnSelection{
		Description: domain.CoalesceStr(override.Description, suggested.Description),
		StartDate:   domain.CoalesceStr(override.StartDate, suggested.StartDate),
		EndDate:     domain.CoalesceStr(override.EndDate, suggested.EndDate),
	}
}
