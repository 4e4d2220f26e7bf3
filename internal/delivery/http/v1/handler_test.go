package v1

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/ingest"
	"github.com/alexanderramin/ganttsheet/internal/llm"
	"github.com/alexanderramin/ganttsheet/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, maxUpload int64) *gin.Engine {
	t.Helper()
	cfg := &config.Config{
		Env:          config.EnvLocal,
		Timeline:     config.TimelineConfig{BufferDays: 3},
		Export:       config.ExportConfig{Title: "Roadmap"},
		Standardizer: config.StandardizerConfig{Provider: config.ProviderNone},
		Gemini:       llm.DefaultGeminiConfig(),
		Ollama:       llm.DefaultConfig(),
	}
	p, closeFn, err := app.Wire(cfg, zerolog.Nop(), app.WithClock(testutil.FixedClock("2024-03-11")))
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })
	return NewRouter(zerolog.Nop(), New(zerolog.Nop(), p, maxUpload))
}

func multipartBody(t *testing.T, file []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "plan.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func planSheet(t *testing.T) []byte {
	return testutil.NewXLSX(t,
		[]string{"Activity", "Begin", "Finish", "Owner"},
		[]any{"Design", "2024-03-01", "2024-03-05", "ann"},
		[]any{"Build", "2024-03-08", "2024-03-12", "bo"},
		[]any{"Ship", "2024-03-15", "later", "cy"},
	)
}

func doRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postMultipart(t *testing.T, router *gin.Engine, path string, file []byte, fields map[string]string) *httptest.ResponseRecorder {
	body, contentType := multipartBody(t, file, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	return doRequest(router, req)
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return doRequest(router, req)
}

func sampleTasks() []taskDTO {
	return []taskDTO{
		{ID: "0", Name: "Design", Start: "2024-03-01", End: "2024-03-05"},
		{ID: "1", Name: "Build", Start: "2024-03-08", End: "2024-03-12"},
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestInspectSheet(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/sheets/inspect", planSheet(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp inspectSheetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Activity", "Begin", "Finish", "Owner"}, resp.Columns)
	assert.Equal(t, selectionDTO{Description: "Activity", StartDate: "Begin", EndDate: "Finish"}, resp.Suggested)
	assert.Equal(t, 3, resp.RowCount)
	require.Len(t, resp.Preview, 3)
	assert.Equal(t, "Design", resp.Preview[0]["Activity"])
}

func TestInspectSheet_MissingFile(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/sheets/inspect", nil, map[string]string{"x": "y"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "file")
}

func TestInspectSheet_NotASpreadsheet(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/sheets/inspect", []byte("a,b,c\n1,2,3\n"), nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), ingest.ErrUnrecognizedFormat.Error())
}

func TestBuildTasks(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/tasks", planSheet(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp buildTasksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 3)

	assert.Equal(t, taskDTO{ID: "0", Name: "Design", Start: "2024-03-01", End: "2024-03-05", DurationDays: 5, Status: "completed"}, resp.Tasks[0])
	assert.Equal(t, "current", resp.Tasks[1].Status)
	assert.Equal(t, "2024-03-16", resp.Tasks[2].End)

	require.Len(t, resp.Anomalies, 1)
	assert.Equal(t, "end", resp.Anomalies[0].Field)
	assert.Equal(t, "later", resp.Anomalies[0].Raw)
	assert.Equal(t, "fallback", resp.Anomalies[0].Kind)
	assert.False(t, resp.Degraded)
}

func TestBuildTasks_ColumnOverride(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/tasks", planSheet(t), map[string]string{"description": "Owner"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp buildTasksResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Owner", resp.Selection.Description)
	assert.Equal(t, "ann", resp.Tasks[0].Name)
}

func TestBuildTasks_UnknownColumn(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postMultipart(t, router, "/api/v1/tasks", planSheet(t), map[string]string{"start": "Nope"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nope")
}

func TestBuildTasks_UploadTooLarge(t *testing.T) {
	router := newTestRouter(t, 64)

	rec := postMultipart(t, router, "/api/v1/tasks", planSheet(t), nil)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestChart_Mermaid(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postJSON(t, router, "/api/v1/charts/mermaid", chartRequest{Title: "Plan", Tasks: sampleTasks()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "gantt"))
	assert.Contains(t, rec.Body.String(), "Design")
}

func TestChart_Google(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postJSON(t, router, "/api/v1/charts/google-charts", chartRequest{Tasks: sampleTasks()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var table map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Contains(t, table, "cols")
	assert.Contains(t, table, "rows")
}

func TestChart_UnknownStyle(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postJSON(t, router, "/api/v1/charts/pie", chartRequest{Tasks: sampleTasks()})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChart_InvalidTasks(t *testing.T) {
	router := newTestRouter(t, 0)

	tests := []struct {
		name  string
		tasks []taskDTO
		want  string
	}{
		{"bad start", []taskDTO{{Name: "x", Start: "March", End: "2024-03-01"}}, "start"},
		{"bad end", []taskDTO{{Name: "x", Start: "2024-03-01", End: ""}}, "end"},
		{"reversed", []taskDTO{{Name: "x", Start: "2024-03-05", End: "2024-03-01"}}, "precedes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, "/api/v1/charts/mermaid", chartRequest{Tasks: tt.tasks})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestChart_MalformedJSON(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/charts/mermaid", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := doRequest(router, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), errInvalidRequestBody.Error())
}

func TestExport(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postJSON(t, router, "/api/v1/export", exportRequest{Project: "Apollo", Tasks: sampleTasks()})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, export.MIMEType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="gantt_chart.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "0", rec.Header().Get("X-Layout-Warnings"))

	table, err := ingest.Parse(rec.Body.Bytes())
	require.NoError(t, err)
	assert.NotEmpty(t, table.Rows)
}

func TestExport_EmptyTaskList(t *testing.T) {
	router := newTestRouter(t, 0)

	rec := postJSON(t, router, "/api/v1/export", exportRequest{})

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestToTasks_Defaults(t *testing.T) {
	tasks, err := toTasks([]taskDTO{{Start: "2024-03-01", End: "2024-03-01"}})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "0", tasks[0].ID)
	assert.Equal(t, "Task 1", tasks[0].Name)
	assert.Equal(t, testutil.Day("2024-03-01"), tasks[0].Start)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, classify(&ingest.ParseError{Format: "xlsx", Err: ingest.ErrEmptyDataset}).Code)
	assert.Equal(t, http.StatusBadRequest, classify(app.ErrUnknownColumn).Code)
	assert.Equal(t, http.StatusNotFound, classify(app.ErrUnknownChartStyle).Code)

	ioErr := classify(&export.IOError{Op: "rename", Err: assert.AnError})
	assert.Equal(t, http.StatusInternalServerError, ioErr.Code)
	assert.Equal(t, "export failed", ioErr.Message)

	other := classify(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, other.Code)
	assert.NotContains(t, other.Message, assert.AnError.Error())
}
