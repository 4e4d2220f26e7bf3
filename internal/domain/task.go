package domain

import "time"

// ColumnSelection maps source columns to task fields. Empty means unset.
type ColumnSelection struct {
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

// IsComplete reports whether every field has a column.
func (s ColumnSelection) IsComplete() bool {
	return s.Description != "" && s.StartDate != "" && s.EndDate != ""
}

// Task is one normalized work item. End is never before Start.
type Task struct {
	ID    string
	Name  string
	Start time.Time
	End   time.Time
}

// DurationDays is the inclusive day count between Start and End.
func (t Task) DurationDays() int {
	return DaysBetween(t.Start, t.End) + 1
}

// Covers reports whether day falls within [Start, End].
func (t Task) Covers(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(t.Start)) && !d.After(Day(t.End))
}

// StatusOn classifies the task relative to today. A task spanning today is
// current, including one that ends today.
func (t Task) StatusOn(today time.Time) TaskStatus {
	switch {
	case t.Covers(today):
		return StatusCurrent
	case Day(t.End).Before(Day(today)):
		return StatusCompleted
	default:
		return StatusFuture
	}
}

// DateRange returns the earliest start and latest end across tasks.
// ok is false for an empty list.
func DateRange(tasks []Task) (minDate, maxDate time.Time, ok bool) {
	if len(tasks) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = Day(tasks[0].Start), Day(tasks[0].End)
	for _, t := range tasks[1:] {
		if s := Day(t.Start); s.Before(minDate) {
			minDate = s
		}
		if e := Day(t.End); e.After(maxDate) {
			maxDate = e
		}
	}
	return minDate, maxDate, true
}
