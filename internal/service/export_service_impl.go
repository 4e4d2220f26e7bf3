package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/timeline"
	"github.com/rs/zerolog"
)

type exportService struct {
	composer *export.Composer
	now      func() time.Time
	log      zerolog.Logger
	observer UseCaseObserver
}

// NewExportService renders through composer. now supplies the export day
// when the caller leaves Meta.Today unset.
func NewExportService(
	composer *export.Composer,
	now func() time.Time,
	log zerolog.Logger,
	observers ...UseCaseObserver,
) ExportService {
	if now == nil {
		now = time.Now
	}
	return &exportService{
		composer: composer,
		now:      now,
		log:      log,
		observer: combineObservers(observers),
	}
}

func (s *exportService) Export(ctx context.Context, tasks []domain.Task, opts ExportOptions) (result *ExportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"task_count": len(tasks)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export-workbook",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, err := s.compose(tasks, opts)
	if err != nil {
		return nil, err
	}
	data, err := sheet.Bytes()
	if err != nil {
		return nil, err
	}

	fields["run_id"] = sheet.RunID
	fields["warnings"] = len(sheet.Warnings)
	fields["bytes"] = len(data)
	return &ExportResult{
		Data:     data,
		FileName: export.DefaultFileName,
		MIMEType: export.MIMEType,
		Warnings: sheet.Warnings,
	}, nil
}

// ExportToFile writes the workbook next to path and renames it into place,
// so a failed export never leaves a partial file at path.
func (s *exportService) ExportToFile(ctx context.Context, tasks []domain.Task, path string, opts ExportOptions) (*ExportResult, error) {
	if path == "" {
		path = export.DefaultFileName
	}
	result, err := s.Export(ctx, tasks, opts)
	if err != nil {
		var ioErr *export.IOError
		if errors.As(err, &ioErr) {
			ioErr.Path = path
		}
		return nil, err
	}

	if err := writeAtomic(path, result.Data); err != nil {
		return nil, err
	}
	result.Path = path
	result.FileName = filepath.Base(path)
	s.log.Info().Str("path", path).Int("bytes", len(result.Data)).Msg("workbook saved")
	return result, nil
}

func (s *exportService) compose(tasks []domain.Task, opts ExportOptions) (*export.Sheet, error) {
	meta := opts.Meta
	if meta.Today.IsZero() {
		meta.Today = s.now()
	}
	grid := timeline.Plan(tasks, timeline.Options{
		BufferDays:  opts.BufferDays,
		EmptyAnchor: meta.Today,
		FirstIndex:  export.AttributeColumns,
	})

	composer := s.composer
	if opts.Theme != nil {
		composer = composer.WithTheme(*opts.Theme)
	}
	return composer.Compose(tasks, grid, meta)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &export.IOError{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".gantt-*.xlsx.tmp")
	if err != nil {
		return &export.IOError{Op: "create", Path: path, Err: err}
	}
	fail := func(op string, err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return &export.IOError{Op: op, Path: path, Err: err}
	}

	if _, err := tmp.Write(data); err != nil {
		return fail("write", err)
	}
	if err := tmp.Sync(); err != nil {
		return fail("sync", err)
	}
	if err := tmp.Close(); err != nil {
		return fail("close", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fail("chmod", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail("rename", err)
	}
	return nil
}
