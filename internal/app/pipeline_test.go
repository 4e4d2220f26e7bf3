package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/alexanderramin/ganttsheet/internal/db"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/ingest"
	"github.com/alexanderramin/ganttsheet/internal/llm"
	"github.com/alexanderramin/ganttsheet/internal/standardize"
	"github.com/alexanderramin/ganttsheet/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:          config.EnvLocal,
		Timeline:     config.TimelineConfig{BufferDays: 3},
		Export:       config.ExportConfig{Title: "Default Title", Company: "Acme"},
		Standardizer: config.StandardizerConfig{Provider: config.ProviderNone},
		Gemini:       llm.DefaultGeminiConfig(),
		Ollama:       llm.DefaultConfig(),
		HTTP:         config.HTTPConfig{MaxUploadMB: 1},
	}
}

func wireTest(t *testing.T, cfg *config.Config, opts ...Option) *Pipeline {
	t.Helper()
	opts = append([]Option{WithClock(testutil.FixedClock("2024-03-11"))}, opts...)
	p, closeFn, err := Wire(cfg, zerolog.Nop(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return p
}

func planSheet(t *testing.T) []byte {
	return testutil.NewXLSX(t,
		[]string{"Activity", "Begin", "Finish", "Owner"},
		[]any{"Design", "2024-03-01", "2024-03-05", "ann"},
		[]any{"Build", "2024-03-06", "soon", "bo"},
	)
}

func TestInspect_SuggestsColumns(t *testing.T) {
	p := wireTest(t, testConfig())

	res, err := p.Inspect(context.Background(), planSheet(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"Activity", "Begin", "Finish", "Owner"}, res.Table.Columns)
	assert.Equal(t, domain.ColumnSelection{Description: "Activity", StartDate: "Begin", EndDate: "Finish"}, res.Suggested)
}

func TestInspect_BadBytes(t *testing.T) {
	p := wireTest(t, testConfig())

	_, err := p.Inspect(context.Background(), []byte("nope"))
	var perr *ingest.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestBuildTasks_UsesSuggestionAndOverrides(t *testing.T) {
	p := wireTest(t, testConfig())

	res, err := p.BuildTasks(context.Background(), BuildRequest{Data: planSheet(t)})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 2)
	assert.Equal(t, "Design", res.Tasks[0].Name)
	assert.Equal(t, testutil.Day("2024-03-07"), res.Tasks[1].End, "unreadable end falls back to start + 1")
	require.Len(t, res.Anomalies, 1)

	res, err = p.BuildTasks(context.Background(), BuildRequest{
		Data:      planSheet(t),
		Selection: domain.ColumnSelection{Description: "Owner"},
	})
	require.NoError(t, err)
	assert.Equal(t, "ann", res.Tasks[0].Name)
	assert.Equal(t, "Begin", res.Selection.StartDate)
}

func TestBuildTasks_UnknownColumn(t *testing.T) {
	p := wireTest(t, testConfig())

	_, err := p.BuildTasks(context.Background(), BuildRequest{
		Data:      planSheet(t),
		Selection: domain.ColumnSelection{StartDate: "Nope"},
	})
	assert.ErrorContains(t, err, `"Nope"`)
}

func TestBuildTasks_WithRemoteStandardizerAndCache(t *testing.T) {
	cfg := testConfig()
	cfg.Standardizer.Provider = config.ProviderOllama
	cfg.Standardizer.CachePath = filepath.Join(t.TempDir(), "cache.db")

	fake := &testutil.FakeLLM{Answer: func(v string) string {
		if v == "soon" {
			return "2024-03-20"
		}
		return v
	}}
	p := wireTest(t, cfg, WithLLMClient(fake))

	res, err := p.BuildTasks(context.Background(), BuildRequest{Data: planSheet(t)})
	require.NoError(t, err)
	assert.Equal(t, testutil.Day("2024-03-20"), res.Tasks[1].End)
	assert.Empty(t, res.Anomalies)
	calls := fake.Calls()

	_, err = p.BuildTasks(context.Background(), BuildRequest{Data: planSheet(t)})
	require.NoError(t, err)
	assert.Equal(t, calls, fake.Calls(), "second build is served from the cache")
}

func TestWire_NoneProviderIsNoop(t *testing.T) {
	std, closeFn, err := newStandardizer(testConfig(), zerolog.Nop(), nil, time.Now)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, standardize.Noop{}, std)
}

func TestWire_PrunesExpiredCacheEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	seed, err := db.OpenDB(path)
	require.NoError(t, err)
	_, err = seed.Exec(`INSERT INTO date_cache (model, raw, iso, created_at) VALUES
		('fake', 'old', '2020-01-01', '2020-01-01T00:00:00Z'),
		('fake', 'fresh', '2024-03-10', '2024-03-10T00:00:00Z')`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	cfg := testConfig()
	cfg.Standardizer.Provider = config.ProviderOllama
	cfg.Standardizer.CachePath = path
	cfg.Standardizer.CacheTTL = 30 * 24 * time.Hour

	_, closeFn, err := newStandardizer(cfg, zerolog.Nop(), &testutil.FakeLLM{}, testutil.FixedClock("2024-03-11"))
	require.NoError(t, err)
	require.NoError(t, closeFn())

	conn, err := db.OpenDB(path)
	require.NoError(t, err)
	defer conn.Close()
	var raws []string
	rows, err := conn.Query(`SELECT raw FROM date_cache`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var raw string
		require.NoError(t, rows.Scan(&raw))
		raws = append(raws, raw)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"fresh"}, raws)
}

func TestWire_WarnsAboutUnusableBackends(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		want     string
	}{
		{"gemini without key", config.ProviderGemini, "GEMINI_API_KEY"},
		{"ollama unreachable", config.ProviderOllama, "ollama is unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Standardizer.Provider = tt.provider
			cfg.Ollama.Endpoint = "http://127.0.0.1:1"

			var buf bytes.Buffer
			std, closeFn, err := newStandardizer(cfg, zerolog.New(&buf), nil, time.Now)
			require.NoError(t, err)
			defer closeFn()

			assert.IsType(t, &standardize.LLMStandardizer{}, std)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestWire_BadThemeFails(t *testing.T) {
	cfg := testConfig()
	cfg.Export.ThemePath = filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := Wire(cfg, zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestChart_Styles(t *testing.T) {
	p := wireTest(t, testConfig())
	tasks := []domain.Task{testutil.NewTestTask("2024-03-01", "2024-03-05", testutil.WithID("0"), testutil.WithName("Design"))}

	mermaid, err := p.Chart(context.Background(), ChartRequest{Tasks: tasks, Style: domain.ChartMermaid, Title: "Plan"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(mermaid.Body), "gantt\n"))
	assert.Contains(t, string(mermaid.Body), "Design :done, task_0, 2024-03-01, 5d")

	google, err := p.Chart(context.Background(), ChartRequest{Tasks: tasks, Style: domain.ChartGoogle})
	require.NoError(t, err)
	assert.Equal(t, "application/json", google.ContentType)
	assert.True(t, json.Valid(google.Body))

	term, err := p.Chart(context.Background(), ChartRequest{Tasks: tasks, Style: domain.ChartTerminal, Width: 10})
	require.NoError(t, err)
	assert.Contains(t, string(term.Body), "Design")

	_, err = p.Chart(context.Background(), ChartRequest{Tasks: tasks, Style: "pie"})
	assert.ErrorIs(t, err, ErrUnknownChartStyle)
}

func TestExport_AppliesConfiguredDefaults(t *testing.T) {
	p := wireTest(t, testConfig())
	tasks := []domain.Task{testutil.NewTestTask("2024-03-01", "2024-03-05")}

	res, err := p.Export(context.Background(), ExportRequest{Tasks: tasks, Project: "Apollo"})
	require.NoError(t, err)
	assert.Equal(t, export.MIMEType, res.MIMEType)
	assert.NotEmpty(t, res.Data)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	res, err = p.Export(context.Background(), ExportRequest{Tasks: tasks, Path: path})
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPipeline_Today(t *testing.T) {
	p := wireTest(t, testConfig())
	assert.Equal(t, testutil.Day("2024-03-11"), p.Today())
}
