package service

import (
	"context"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
)

// TaskService turns ingested rows into the canonical task list.
type TaskService interface {
	Build(ctx context.Context, table *domain.Table, sel domain.ColumnSelection) (*BuildResult, error)
}

// ExportService renders tasks into a styled Gantt workbook.
type ExportService interface {
	Export(ctx context.Context, tasks []domain.Task, opts ExportOptions) (*ExportResult, error)
	ExportToFile(ctx context.Context, tasks []domain.Task, path string, opts ExportOptions) (*ExportResult, error)
}

// AnomalyKind classifies a recorded date substitution.
type AnomalyKind string

const (
	// AnomalyFallback means no step could read the value.
	AnomalyFallback AnomalyKind = "fallback"
	// AnomalyOrderCorrected means the end preceded the start and was moved.
	AnomalyOrderCorrected AnomalyKind = "order_corrected"
)

// DateAnomaly records a row whose date needed a substitute.
type DateAnomaly struct {
	Row      int         `json:"row"`
	TaskID   string      `json:"task_id"`
	Field    dates.Role  `json:"field"`
	Raw      string      `json:"raw"`
	Kind     AnomalyKind `json:"kind"`
	Resolved time.Time   `json:"resolved"`
}

// BuildResult holds the tasks in row order plus the recorded anomalies.
type BuildResult struct {
	Tasks     []domain.Task
	Anomalies []DateAnomaly
	// Degraded is set when a remote standardization batch failed and
	// local parsing was used instead.
	Degraded bool
}

// ExportOptions tunes one export. Zero values take the composer defaults.
type ExportOptions struct {
	Meta       export.Meta
	BufferDays int
	Theme      *export.Theme
}

// ExportResult is one finished workbook.
type ExportResult struct {
	Data     []byte
	FileName string
	MIMEType string
	Path     string
	Warnings []export.LayoutWarning
}
