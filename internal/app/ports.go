package app

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/service"
)

// InspectResult describes an uploaded sheet before any column is chosen.
type InspectResult struct {
	Table     *domain.Table
	Suggested domain.ColumnSelection
}

type InspectUseCase interface {
	Inspect(ctx context.Context, data []byte) (*InspectResult, error)
}

// BuildRequest carries the sheet bytes and the user's column choices. Empty
// fields in Selection take the detected suggestion.
type BuildRequest struct {
	Data      []byte
	Selection domain.ColumnSelection
}

type BuildResponse struct {
	service.BuildResult
	Columns   []string
	Selection domain.ColumnSelection
}

type BuildTasksUseCase interface {
	BuildTasks(ctx context.Context, req BuildRequest) (*BuildResponse, error)
}

// ChartRequest selects a rendering for an already built task list.
type ChartRequest struct {
	Tasks []domain.Task
	Style domain.ChartStyle
	Title string
	// Width bounds the name column of terminal charts.
	Width int
}

type ChartResult struct {
	ContentType string
	Body        []byte
}

type ChartUseCase interface {
	Chart(ctx context.Context, req ChartRequest) (*ChartResult, error)
}

// ExportRequest produces a workbook. Empty meta fields take configured
// defaults; an empty Path keeps the workbook in memory.
type ExportRequest struct {
	Tasks   []domain.Task
	Title   string
	Project string
	Company string
	Today   time.Time
	Path    string
}

type ExportUseCase interface {
	Export(ctx context.Context, req ExportRequest) (*service.ExportResult, error)
}
