package v1

import (
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/service"
)

type taskDTO struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Start        string `json:"start"`
	End          string `json:"end"`
	DurationDays int    `json:"duration_days,omitempty"`
	Status       string `json:"status,omitempty"`
}

func newTaskDTO(t domain.Task, today time.Time) taskDTO {
	return taskDTO{
		ID:           t.ID,
		Name:         t.Name,
		Start:        domain.ISODate(t.Start),
		End:          domain.ISODate(t.End),
		DurationDays: t.DurationDays(),
		Status:       string(t.StatusOn(today)),
	}
}

func newTaskDTOs(tasks []domain.Task, today time.Time) []taskDTO {
	out := make([]taskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, newTaskDTO(t, today))
	}
	return out
}

// toTasks validates posted tasks. Dates must be YYYY-MM-DD and the end may
// not precede the start.
func toTasks(in []taskDTO) ([]domain.Task, error) {
	out := make([]domain.Task, 0, len(in))
	for i, t := range in {
		start, ok := dates.ParseStandardized(t.Start)
		if !ok {
			return nil, fmt.Errorf("task %d: start %q is not YYYY-MM-DD", i, t.Start)
		}
		end, ok := dates.ParseStandardized(t.End)
		if !ok {
			return nil, fmt.Errorf("task %d: end %q is not YYYY-MM-DD", i, t.End)
		}
		if end.Before(start) {
			return nil, fmt.Errorf("task %d: end precedes start", i)
		}
		id := t.ID
		if id == "" {
			id = fmt.Sprintf("%d", i)
		}
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("Task %d", i+1)
		}
		out = append(out, domain.Task{ID: id, Name: name, Start: start, End: end})
	}
	return out, nil
}

type anomalyDTO struct {
	Row      int    `json:"row"`
	TaskID   string `json:"task_id"`
	Field    string `json:"field"`
	Raw      string `json:"raw"`
	Kind     string `json:"kind"`
	Resolved string `json:"resolved"`
}

func newAnomalyDTOs(in []service.DateAnomaly) []anomalyDTO {
	out := make([]anomalyDTO, 0, len(in))
	for _, a := range in {
		out = append(out, anomalyDTO{
			Row:      a.Row,
			TaskID:   a.TaskID,
			Field:    a.Field.String(),
			Raw:      a.Raw,
			Kind:     string(a.Kind),
			Resolved: domain.ISODate(a.Resolved),
		})
	}
	return out
}

type selectionDTO struct {
	Description string `json:"description"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}

func newSelectionDTO(s domain.ColumnSelection) selectionDTO {
	return selectionDTO{Description: s.Description, StartDate: s.StartDate, EndDate: s.EndDate}
}
