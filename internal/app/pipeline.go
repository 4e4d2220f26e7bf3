package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/detect"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/ingest"
	"github.com/alexanderramin/ganttsheet/internal/render"
	"github.com/alexanderramin/ganttsheet/internal/service"
	"github.com/alexanderramin/ganttsheet/internal/timeline"
)

var (
	// ErrUnknownChartStyle is returned for a chart style no renderer handles.
	ErrUnknownChartStyle = errors.New("unknown chart style")
	// ErrUnknownColumn is returned when a selected column is not in the sheet.
	ErrUnknownColumn = errors.New("column not found in sheet")
)

// Pipeline runs the spreadsheet to Gantt steps over the wired services.
type Pipeline struct {
	tasks      service.TaskService
	exports    service.ExportService
	normalizer dates.Normalizer
	timeline   config.TimelineConfig
	defaults   config.ExportConfig
}

func NewPipeline(
	tasks service.TaskService,
	exports service.ExportService,
	normalizer dates.Normalizer,
	timelineCfg config.TimelineConfig,
	exportCfg config.ExportConfig,
) *Pipeline {
	return &Pipeline{
		tasks:      tasks,
		exports:    exports,
		normalizer: normalizer,
		timeline:   timelineCfg,
		defaults:   exportCfg,
	}
}

// Today is the pipeline's reference day for status and empty timelines.
func (p *Pipeline) Today() time.Time {
	return p.normalizer.Today()
}

func (p *Pipeline) Inspect(_ context.Context, data []byte) (*InspectResult, error) {
	table, err := ingest.Parse(data)
	if err != nil {
		return nil, err
	}
	return &InspectResult{Table: table, Suggested: detect.Columns(table.Columns)}, nil
}

func (p *Pipeline) BuildTasks(ctx context.Context, req BuildRequest) (*BuildResponse, error) {
	inspected, err := p.Inspect(ctx, req.Data)
	if err != nil {
		return nil, err
	}

	sel := detect.Merge(inspected.Suggested, req.Selection)
	for _, col := range []string{sel.Description, sel.StartDate, sel.EndDate} {
		if col != "" && !inspected.Table.HasColumn(col) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, col)
		}
	}

	built, err := p.tasks.Build(ctx, inspected.Table, sel)
	if err != nil {
		return nil, err
	}
	return &BuildResponse{
		BuildResult: *built,
		Columns:     inspected.Table.Columns,
		Selection:   sel,
	}, nil
}

func (p *Pipeline) Chart(_ context.Context, req ChartRequest) (*ChartResult, error) {
	today := p.normalizer.Today()
	switch req.Style {
	case domain.ChartMermaid:
		return &ChartResult{
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(render.Mermaid(req.Tasks, req.Title, today)),
		}, nil
	case domain.ChartGoogle:
		body, err := render.GoogleChart(req.Tasks, today).JSON()
		if err != nil {
			return nil, fmt.Errorf("encoding chart: %w", err)
		}
		return &ChartResult{ContentType: "application/json", Body: body}, nil
	case domain.ChartTerminal:
		grid := timeline.Plan(req.Tasks, timeline.Options{
			BufferDays:  p.timeline.BufferDays,
			EmptyAnchor: today,
		})
		return &ChartResult{
			ContentType: "text/plain; charset=utf-8",
			Body:        []byte(render.Terminal(req.Tasks, grid, today, req.Width)),
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownChartStyle, req.Style)
}

func (p *Pipeline) Export(ctx context.Context, req ExportRequest) (*service.ExportResult, error) {
	opts := service.ExportOptions{
		BufferDays: p.timeline.BufferDays,
		Meta: export.Meta{
			Title:   domain.CoalesceStr(req.Title, p.defaults.Title),
			Project: domain.CoalesceStr(req.Project, p.defaults.Project),
			Company: domain.CoalesceStr(req.Company, p.defaults.Company),
			Today:   req.Today,
		},
	}
	if opts.Meta.Today.IsZero() {
		opts.Meta.Today = p.normalizer.Today()
	}
	if req.Path == "" {
		return p.exports.Export(ctx, req.Tasks, opts)
	}
	return p.exports.ExportToFile(ctx, req.Tasks, req.Path, opts)
}
