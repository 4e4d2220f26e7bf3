package dates

import (
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
)

// Role says which side of a task a value resolves; it selects the fallback.
type Role int

const (
	RoleStart Role = iota
	RoleEnd
)

func (r Role) String() string {
	if r == RoleEnd {
		return "end"
	}
	return "start"
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Source records which step of the chain produced a date.
type Source string

const (
	SourceNative       Source = "native"
	SourceStandardized Source = "standardized"
	SourceParsed       Source = "parsed"
	SourceFallback     Source = "fallback"
)

// Resolution is a resolved calendar day plus how it was obtained.
type Resolution struct {
	Date   time.Time
	Source Source
}

// Anomaly reports whether every parsing step failed and a substitute was used.
func (r Resolution) Anomaly() bool {
	return r.Source == SourceFallback
}

// Normalizer resolves raw cells to calendar days. Now is injected so the
// fallback chain is deterministic under test.
type Normalizer struct {
	Now func() time.Time
}

// NewNormalizer returns a Normalizer; a nil clock means wall-clock time.
func NewNormalizer(now func() time.Time) Normalizer {
	if now == nil {
		now = time.Now
	}
	return Normalizer{Now: now}
}

// Today is the clock's current calendar day.
func (n Normalizer) Today() time.Time {
	if n.Now == nil {
		return domain.Day(time.Now())
	}
	return domain.Day(n.Now())
}

// Resolve runs the local chain: native date, general parsing, fallback.
func (n Normalizer) Resolve(raw domain.CellValue, role Role, anchor time.Time) Resolution {
	return n.ResolveWith(raw, "", role, anchor)
}

// ResolveWith runs the full chain with a standardized value consulted after
// native dates and before local parsing. An empty or "invalid" standardized
// value is skipped.
func (n Normalizer) ResolveWith(raw domain.CellValue, standardized string, role Role, anchor time.Time) Resolution {
	if raw.Kind == domain.CellDate {
		return Resolution{Date: domain.Day(raw.Date), Source: SourceNative}
	}
	if t, ok := ParseStandardized(standardized); ok {
		return Resolution{Date: t, Source: SourceStandardized}
	}
	if t, ok := Parse(raw); ok {
		return Resolution{Date: t, Source: SourceParsed}
	}
	return n.Fallback(role, anchor)
}

// Fallback substitutes today for a start and anchor + 1 day for an end.
func (n Normalizer) Fallback(role Role, anchor time.Time) Resolution {
	if role == RoleEnd {
		return Resolution{Date: domain.AddDays(anchor, 1), Source: SourceFallback}
	}
	return Resolution{Date: n.Today(), Source: SourceFallback}
}

// EnforceOrder returns end unchanged when it is on or after start, otherwise
// start + 1 day. corrected reports whether the correction applied.
func EnforceOrder(start, end time.Time) (fixed time.Time, corrected bool) {
	if domain.Day(end).Before(domain.Day(start)) {
		return domain.AddDays(start, 1), true
	}
	return domain.Day(end), false
}
