// Package standardize asks a language model to rewrite free-form date cells
// as YYYY-MM-DD. It never fails: any problem yields a degraded result whose
// values are the inputs coerced to text.
package standardize

import (
	"context"
	"strings"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

// Result holds one output per input value, in input order. A degraded result
// must not be trusted by callers.
type Result struct {
	Values   []string
	Degraded bool
}

// At returns the standardized value for position i, or "" when the result is
// degraded or has no entry for i.
func (r Result) At(i int) string {
	if r.Degraded || i < 0 || i >= len(r.Values) {
		return ""
	}
	return r.Values[i]
}

// Standardizer converts a batch of raw cell values.
type Standardizer interface {
	Standardize(ctx context.Context, values []domain.CellValue) Result
}

// Noop skips remote standardization. Its result carries no values.
type Noop struct{}

func (Noop) Standardize(context.Context, []domain.CellValue) Result {
	return Result{}
}

// Coerce renders every value as text the way it is sent to the model.
func Coerce(values []domain.CellValue) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.TrimSpace(v.String())
	}
	return out
}

func degraded(values []domain.CellValue) Result {
	return Result{Values: Coerce(values), Degraded: true}
}

// uniqueNonBlank returns the distinct non-blank strings of in, in first-seen
// order.
func uniqueNonBlank(in []string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
