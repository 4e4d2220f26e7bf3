package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/llm"
	"github.com/alexanderramin/ganttsheet/internal/repository"
	"github.com/alexanderramin/ganttsheet/internal/standardize"
	"github.com/alexanderramin/ganttsheet/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSelection = domain.ColumnSelection{Description: "Task", StartDate: "Start", EndDate: "End"}

type captureUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *captureUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func newTaskService(std standardize.Standardizer, today string, observers ...UseCaseObserver) TaskService {
	return NewTaskService(std, dates.NewNormalizer(testutil.FixedClock(today)), observers...)
}

func TestBuild_RoundTrip(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("Design"), domain.DateCell(testutil.Day("2024-03-01")), testutil.Text("2024-03-01")},
		[]domain.CellValue{testutil.Text("Build"), testutil.Text("2024-03-02"), testutil.Text("2024-03-10")},
	)

	result, err := newTaskService(nil, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	require.Len(t, result.Tasks, 2)
	assert.Equal(t, "0", result.Tasks[0].ID)
	assert.Equal(t, "Design", result.Tasks[0].Name)
	assert.Equal(t, 1, result.Tasks[0].DurationDays())
	assert.Equal(t, "1", result.Tasks[1].ID)
	assert.Equal(t, 9, result.Tasks[1].DurationDays())
	assert.Empty(t, result.Anomalies)
	assert.False(t, result.Degraded)
}

func TestBuild_UnreadableDatesFallBack(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("Mystery"), testutil.Text("soon"), testutil.Text("later")},
	)

	result, err := newTaskService(nil, "2024-05-10").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	task := result.Tasks[0]
	assert.Equal(t, testutil.Day("2024-05-10"), task.Start)
	assert.Equal(t, testutil.Day("2024-05-11"), task.End)

	require.Len(t, result.Anomalies, 2)
	assert.Equal(t, dates.RoleStart, result.Anomalies[0].Field)
	assert.Equal(t, AnomalyFallback, result.Anomalies[0].Kind)
	assert.Equal(t, "soon", result.Anomalies[0].Raw)
	assert.Equal(t, dates.RoleEnd, result.Anomalies[1].Field)
	assert.Equal(t, "0", result.Anomalies[1].TaskID)
}

func TestBuild_EndBeforeStartIsCorrected(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("Backwards"), testutil.Text("2024-03-10"), testutil.Text("2024-03-01")},
	)

	result, err := newTaskService(nil, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	assert.Equal(t, testutil.Day("2024-03-11"), result.Tasks[0].End)
	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, AnomalyOrderCorrected, result.Anomalies[0].Kind)
	assert.Equal(t, testutil.Day("2024-03-11"), result.Anomalies[0].Resolved)
}

func TestBuild_BlankNameGetsPlaceholder(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("First"), testutil.Text("2024-03-01"), testutil.Text("2024-03-02")},
		[]domain.CellValue{testutil.Text("   "), testutil.Text("2024-03-01"), testutil.Text("2024-03-02")},
	)

	result, err := newTaskService(nil, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)
	assert.Equal(t, "Task 2", result.Tasks[1].Name)
}

func TestBuild_UnmappedColumnsUseFallback(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task"},
		[]domain.CellValue{testutil.Text("Only a name")},
	)

	result, err := newTaskService(nil, "2024-05-10").Build(context.Background(), table, domain.ColumnSelection{Description: "Task"})
	require.NoError(t, err)

	assert.Equal(t, "Only a name", result.Tasks[0].Name)
	assert.Equal(t, testutil.Day("2024-05-10"), result.Tasks[0].Start)
	assert.Equal(t, testutil.Day("2024-05-11"), result.Tasks[0].End)
}

func TestBuild_EmptyTable(t *testing.T) {
	result, err := newTaskService(nil, "2024-05-10").Build(context.Background(), nil, defaultSelection)
	require.NoError(t, err)
	assert.Empty(t, result.Tasks)
	assert.Empty(t, result.Anomalies)
}

func TestBuild_UsesStandardizedValues(t *testing.T) {
	fake := &testutil.FakeLLM{Answer: func(v string) string {
		switch v {
		case "kickoff":
			return "2024-03-04"
		case "two weeks after kickoff":
			return "2024-03-18"
		}
		return "invalid"
	}}
	std := standardize.NewLLMStandardizer(fake, zerolog.Nop())
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("Plan"), testutil.Text("kickoff"), testutil.Text("two weeks after kickoff")},
	)

	result, err := newTaskService(std, "2024-01-01").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	assert.Equal(t, testutil.Day("2024-03-04"), result.Tasks[0].Start)
	assert.Equal(t, testutil.Day("2024-03-18"), result.Tasks[0].End)
	assert.Empty(t, result.Anomalies)
	assert.Equal(t, 2, fake.Calls(), "one batch per date column")
}

func TestBuild_RemoteFailureMatchesSkippedStandardization(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("A"), testutil.Text("2024-03-01"), testutil.Text("March 5, 2024")},
		[]domain.CellValue{testutil.Text("B"), testutil.Text("whenever"), domain.NumberCell(45357)},
		[]domain.CellValue{testutil.Text("C"), domain.DateCell(testutil.Day("2024-02-20")), testutil.Text("")},
	)

	down := standardize.NewLLMStandardizer(&testutil.FakeLLM{Err: llm.ErrOllamaUnavailable}, zerolog.Nop())

	skipped, err := newTaskService(nil, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)
	failed, err := newTaskService(down, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	assert.Equal(t, skipped.Tasks, failed.Tasks)
	assert.Equal(t, skipped.Anomalies, failed.Anomalies)
	assert.False(t, skipped.Degraded)
	assert.True(t, failed.Degraded)
}

func TestBuild_MissingCredentialWithWarmCacheMatchesSkipped(t *testing.T) {
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("A"), testutil.Text("03/04/2024"), testutil.Text("03/05/2024")},
	)

	client := llm.NewGeminiClient(llm.DefaultGeminiConfig(), nil)
	repo := repository.NewSQLiteDateCacheRepo(testutil.NewTestDB(t))
	require.NoError(t, repo.Store(context.Background(), client.Name(), map[string]string{
		"03/04/2024": "2024-04-03",
		"03/05/2024": "2024-05-03",
	}))
	cached := standardize.NewCached(standardize.NewLLMStandardizer(client, zerolog.Nop()), repo, zerolog.Nop())

	skipped, err := newTaskService(nil, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)
	keyless, err := newTaskService(cached, "2024-03-05").Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	assert.Equal(t, skipped.Tasks, keyless.Tasks)
	assert.Equal(t, skipped.Anomalies, keyless.Anomalies)
	assert.True(t, keyless.Degraded)
}

func TestBuild_EndNeverBeforeStartProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	pool := []func() domain.CellValue{
		func() domain.CellValue { return testutil.Text(fmt.Sprintf("2024-%02d-%02d", 1+rng.Intn(12), 1+rng.Intn(28))) },
		func() domain.CellValue { return domain.NumberCell(float64(44000 + rng.Intn(2000))) },
		func() domain.CellValue { return domain.DateCell(testutil.Day("2023-06-01").AddDate(0, 0, rng.Intn(700))) },
		func() domain.CellValue { return testutil.Text("not a date") },
		func() domain.CellValue { return domain.CellValue{} },
	}
	svc := newTaskService(nil, "2024-06-15")

	for iter := 0; iter < 40; iter++ {
		var rows [][]domain.CellValue
		for i := 0; i < 1+rng.Intn(20); i++ {
			rows = append(rows, []domain.CellValue{
				testutil.Text(fmt.Sprintf("t%d", i)),
				pool[rng.Intn(len(pool))](),
				pool[rng.Intn(len(pool))](),
			})
		}
		table := testutil.NewTestTable([]string{"Task", "Start", "End"}, rows...)

		result, err := svc.Build(context.Background(), table, defaultSelection)
		require.NoError(t, err)
		require.Len(t, result.Tasks, len(rows))
		for i, task := range result.Tasks {
			require.False(t, task.End.Before(task.Start), "iter %d row %d", iter, i)
			require.Equal(t, fmt.Sprintf("%d", i), task.ID)
		}
	}
}

func TestBuild_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("A"), testutil.Text("2024-03-01"), testutil.Text("2024-03-02")},
	)

	_, err := newTaskService(nil, "2024-03-05").Build(ctx, table, defaultSelection)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuild_ReportsUseCase(t *testing.T) {
	obs := &captureUseCaseObserver{}
	table := testutil.NewTestTable([]string{"Task", "Start", "End"},
		[]domain.CellValue{testutil.Text("A"), testutil.Text("soon"), testutil.Text("2024-03-02")},
	)

	_, err := newTaskService(nil, "2024-03-01", obs).Build(context.Background(), table, defaultSelection)
	require.NoError(t, err)

	require.Len(t, obs.events, 1)
	ev := obs.events[0]
	assert.Equal(t, "build-tasks", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, 1, ev.Fields["task_count"])
	assert.Equal(t, 1, ev.Fields["anomaly_count"])
}
