package dates

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/araddon/dateparse"
)

// Invalid is the sentinel a standardizer reports for an unrecognizable value.
const Invalid = "invalid"

const (
	// maxSerial is the serial number of 9999-12-31 in the 1900 date system.
	maxSerial = 2958465
	// lotusLeapSerial is the fictitious 1900-02-29 kept by the 1900 system.
	lotusLeapSerial = 60
)

var (
	epoch1900 = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
)

// FromSerial converts a spreadsheet serial day number to a calendar day.
// The fractional (time of day) part is dropped.
func FromSerial(serial float64, date1904 bool) time.Time {
	days := int(math.Floor(serial))
	if date1904 {
		return epoch1904.AddDate(0, 0, days)
	}
	if days < lotusLeapSerial {
		// Serials before the phantom leap day are one day off from the epoch.
		return epoch1900.AddDate(0, 0, days+1)
	}
	return epoch1900.AddDate(0, 0, days)
}

// Parse attempts general date parsing of a raw cell. Native dates are
// returned unchanged; numbers are read as spreadsheet serials when in range
// and as Unix milliseconds otherwise; text goes through dateparse.
func Parse(raw domain.CellValue) (time.Time, bool) {
	switch raw.Kind {
	case domain.CellDate:
		return domain.Day(raw.Date), true
	case domain.CellNumber:
		return fromNumber(raw.Number)
	case domain.CellText:
		return ParseText(raw.Text)
	default:
		return time.Time{}, false
	}
}

// ParseText parses free text. Purely numeric text is treated like a number.
func ParseText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Invalid) {
		return time.Time{}, false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil && !looksLikeCompactDate(s) {
		return fromNumber(n)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return validDay(t)
}

// ParseStandardized accepts only a strict YYYY-MM-DD value.
func ParseStandardized(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Invalid) {
		return time.Time{}, false
	}
	t, err := time.Parse(domain.ISOLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return validDay(t)
}

func fromNumber(n float64) (time.Time, bool) {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 1 {
		return time.Time{}, false
	}
	if n <= maxSerial {
		return FromSerial(n, false), true
	}
	return validDay(time.UnixMilli(int64(n)).UTC())
}

// looksLikeCompactDate matches 8-digit yyyymmdd text, which dateparse handles.
func looksLikeCompactDate(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func validDay(t time.Time) (time.Time, bool) {
	if t.IsZero() || t.Year() < 1 || t.Year() > 9999 {
		return time.Time{}, false
	}
	return domain.Day(t), true
}
