package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DateCacheRepo memoizes remote date standardization per model. Keys are the
// raw cell text, values are canonical YYYY-MM-DD strings.
type DateCacheRepo interface {
	Get(ctx context.Context, model, raw string) (string, error)
	Lookup(ctx context.Context, model string, raws []string) (map[string]string, error)
	Store(ctx context.Context, model string, entries map[string]string) error
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}
