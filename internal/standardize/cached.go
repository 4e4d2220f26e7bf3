package standardize

import (
	"context"

	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/domain"
	"github.com/alexanderramin/ganttsheet/internal/repository"
	"github.com/rs/zerolog"
)

// Cached memoizes an LLMStandardizer in a DateCacheRepo keyed by backend
// name. Only misses reach the model, and only ISO answers are stored.
// Repository failures are logged and treated as misses.
type Cached struct {
	next *LLMStandardizer
	repo repository.DateCacheRepo
	log  zerolog.Logger
}

func NewCached(next *LLMStandardizer, repo repository.DateCacheRepo, log zerolog.Logger) *Cached {
	return &Cached{next: next, repo: repo, log: log}
}

func (c *Cached) Standardize(ctx context.Context, values []domain.CellValue) Result {
	raw := Coerce(values)
	distinct := uniqueNonBlank(raw)
	if len(distinct) == 0 {
		return Result{Values: raw}
	}
	model := c.next.Backend()

	// An unusable backend must give the same result as skipping the remote
	// step, even when the cache could answer.
	if !c.next.Available(ctx) {
		c.log.Warn().Str("backend", model).Msg("date standardization degraded: backend unavailable")
		return degraded(values)
	}

	hits, err := c.repo.Lookup(ctx, model, distinct)
	if err != nil {
		c.log.Warn().Err(err).Msg("date cache lookup failed")
		hits = map[string]string{}
	}

	var misses []string
	for _, v := range distinct {
		if _, ok := hits[v]; !ok {
			misses = append(misses, v)
		}
	}

	if len(misses) > 0 {
		fresh, err := c.next.resolve(ctx, misses)
		if err != nil {
			c.log.Warn().Err(err).
				Str("backend", model).
				Int("misses", len(misses)).
				Msg("date standardization degraded")
			return degraded(values)
		}

		store := make(map[string]string, len(fresh))
		for k, v := range fresh {
			hits[k] = v
			if _, ok := dates.ParseStandardized(v); ok {
				store[k] = v
			}
		}
		if len(store) > 0 {
			if err := c.repo.Store(ctx, model, store); err != nil {
				c.log.Warn().Err(err).Msg("date cache store failed")
			}
		}
	}

	c.log.Debug().
		Int("values", len(distinct)).
		Int("cached", len(distinct)-len(misses)).
		Msg("date standardization resolved")

	out := make([]string, len(raw))
	for i, r := range raw {
		if r != "" {
			out[i] = hits[r]
		}
	}
	return Result{Values: out}
}
