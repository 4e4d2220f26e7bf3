package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/standardize"
)

type taskService struct {
	standardizer standardize.Standardizer
	normalizer   dates.Normalizer
	observer     UseCaseObserver
}

// NewTaskService builds tasks with the given standardizer. A nil standardizer
// skips the remote step.
func NewTaskService(
	standardizer standardize.Standardizer,
	normalizer dates.Normalizer,
	observers ...UseCaseObserver,
) TaskService {
	if standardizer == nil {
		standardizer = standardize.Noop{}
	}
	return &taskService{
		standardizer: standardizer,
		normalizer:   normalizer,
		observer:     combineObservers(observers),
	}
}

func (s *taskService) Build(ctx context.Context, table *domain.Table, sel domain.ColumnSelection) (result *BuildResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"description_column": sel.Description,
		"start_column":       sel.StartDate,
		"end_column":         sel.EndDate,
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "build-tasks",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if table == nil {
		table = &domain.Table{}
	}

	startStd, endStd, err := s.standardizeColumns(ctx, table, sel)
	if err != nil {
		return nil, err
	}

	result = &BuildResult{
		Tasks:    make([]domain.Task, 0, len(table.Rows)),
		Degraded: startStd.Degraded || endStd.Degraded,
	}

	for i, row := range table.Rows {
		name := strings.TrimSpace(row.Get(sel.Description).String())
		if name == "" {
			name = fmt.Sprintf("Task %d", i+1)
		}
		id := fmt.Sprintf("%d", i)

		rawStart := row.Get(sel.StartDate)
		start := s.normalizer.ResolveWith(rawStart, startStd.At(i), dates.RoleStart, time.Time{})
		if start.Anomaly() {
			result.Anomalies = append(result.Anomalies, DateAnomaly{
				Row: i, TaskID: id, Field: dates.RoleStart, Raw: rawStart.String(),
				Kind: AnomalyFallback, Resolved: start.Date,
			})
		}

		rawEnd := row.Get(sel.EndDate)
		end := s.normalizer.ResolveWith(rawEnd, endStd.At(i), dates.RoleEnd, start.Date)
		if end.Anomaly() {
			result.Anomalies = append(result.Anomalies, DateAnomaly{
				Row: i, TaskID: id, Field: dates.RoleEnd, Raw: rawEnd.String(),
				Kind: AnomalyFallback, Resolved: end.Date,
			})
		}

		endDate, corrected := dates.EnforceOrder(start.Date, end.Date)
		if corrected {
			result.Anomalies = append(result.Anomalies, DateAnomaly{
				Row: i, TaskID: id, Field: dates.RoleEnd, Raw: rawEnd.String(),
				Kind: AnomalyOrderCorrected, Resolved: endDate,
			})
		}

		result.Tasks = append(result.Tasks, domain.Task{
			ID:    id,
			Name:  name,
			Start: start.Date,
			End:   endDate,
		})
	}

	fields["task_count"] = len(result.Tasks)
	fields["anomaly_count"] = len(result.Anomalies)
	fields["degraded"] = result.Degraded
	return result, nil
}

// standardizeColumns runs the start and end batches concurrently and waits
// for both. Unmapped columns are not sent.
func (s *taskService) standardizeColumns(ctx context.Context, table *domain.Table, sel domain.ColumnSelection) (start, end standardize.Result, err error) {
	var wg sync.WaitGroup
	run := func(column string, out *standardize.Result) {
		defer wg.Done()
		if column == "" || len(table.Rows) == 0 {
			return
		}
		*out = s.standardizer.Standardize(ctx, table.Column(column))
	}

	wg.Add(2)
	go run(sel.StartDate, &start)
	go run(sel.EndDate, &end)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return standardize.Result{}, standardize.Result{}, fmt.Errorf("standardizing dates: %w", err)
	}
	return start, end, nil
}
