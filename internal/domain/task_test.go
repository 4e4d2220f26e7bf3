package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(s string) time.Time {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTask_DurationDays_Inclusive(t *testing.T) {
	assert.Equal(t, 1, Task{Start: d("2024-01-01"), End: d("2024-01-01")}.DurationDays())
	assert.Equal(t, 9, Task{Start: d("2024-01-02"), End: d("2024-01-10")}.DurationDays())
}

func TestTask_DurationDays_IgnoresTimeOfDay(t *testing.T) {
	task := Task{
		Start: time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 2, 0, 1, 0, 0, time.UTC),
	}
	assert.Equal(t, 2, task.DurationDays())
}

func TestDaysBetween_BeyondDurationRange(t *testing.T) {
	assert.Equal(t, 118338, DaysBetween(d("1700-01-01"), d("2024-01-01")))
	assert.Equal(t, -118338, DaysBetween(d("2024-01-01"), d("1700-01-01")))
	assert.Equal(t, 118339, Task{Start: d("1700-01-01"), End: d("2024-01-01")}.DurationDays())
}

func TestTask_StatusOn(t *testing.T) {
	today := d("2024-05-10")

	tests := []struct {
		name  string
		task  Task
		wants TaskStatus
	}{
		{"ended yesterday", Task{Start: d("2024-05-01"), End: d("2024-05-09")}, StatusCompleted},
		{"ends today", Task{Start: d("2024-05-01"), End: d("2024-05-10")}, StatusCurrent},
		{"starts today", Task{Start: d("2024-05-10"), End: d("2024-05-20")}, StatusCurrent},
		{"spans today", Task{Start: d("2024-05-01"), End: d("2024-05-20")}, StatusCurrent},
		{"starts tomorrow", Task{Start: d("2024-05-11"), End: d("2024-05-12")}, StatusFuture},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wants, tt.task.StatusOn(today))
		})
	}
}

func TestDateRange(t *testing.T) {
	_, _, ok := DateRange(nil)
	assert.False(t, ok)

	minDate, maxDate, ok := DateRange([]Task{
		{Start: d("2024-02-05"), End: d("2024-02-07")},
		{Start: d("2024-01-30"), End: d("2024-02-01")},
		{Start: d("2024-02-02"), End: d("2024-03-01")},
	})
	assert.True(t, ok)
	assert.Equal(t, d("2024-01-30"), minDate)
	assert.Equal(t, d("2024-03-01"), maxDate)
}

func TestCellValue_String(t *testing.T) {
	assert.Equal(t, "", CellValue{}.String())
	assert.Equal(t, "Design", TextCell("Design").String())
	assert.Equal(t, "45292", NumberCell(45292).String())
	assert.Equal(t, "1.5", NumberCell(1.5).String())
	assert.Equal(t, "2024-01-01", DateCell(time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)).String())
}

func TestCellValue_IsBlank(t *testing.T) {
	assert.True(t, CellValue{}.IsBlank())
	assert.True(t, TextCell("   ").IsBlank())
	assert.True(t, CellValue{Kind: CellText, Text: "  "}.IsBlank())
	assert.False(t, NumberCell(0).IsBlank())
	assert.False(t, TextCell("x").IsBlank())
}

func TestRawRow_Get_UnsetColumn(t *testing.T) {
	row := RawRow{"": TextCell("should not be read"), "Task": TextCell("A")}
	assert.True(t, row.Get("").IsBlank())
	assert.Equal(t, "A", row.Get("Task").Text)
	assert.True(t, row.Get("Missing").IsBlank())
}
