package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/alexanderramin/ganttsheet/internal/dates"
	"github.com/alexanderramin/ganttsheet/internal/db"
	"github.com/alexanderramin/ganttsheet/internal/export"
	"github.com/alexanderramin/ganttsheet/internal/llm"
	"github.com/alexanderramin/ganttsheet/internal/repository"
	"github.com/alexanderramin/ganttsheet/internal/service"
	"github.com/alexanderramin/ganttsheet/internal/standardize"
	"github.com/rs/zerolog"
)

type wireOptions struct {
	now    func() time.Time
	client llm.LLMClient
}

type Option func(*wireOptions)

// WithClock fixes the clock behind fallback dates, status and export stamps.
func WithClock(now func() time.Time) Option {
	return func(o *wireOptions) { o.now = now }
}

// WithLLMClient replaces the configured standardizer backend.
func WithLLMClient(client llm.LLMClient) Option {
	return func(o *wireOptions) { o.client = client }
}

// Wire builds the pipeline from configuration. The returned close function
// releases the standardizer cache when one is open.
func Wire(cfg *config.Config, log zerolog.Logger, opts ...Option) (*Pipeline, func() error, error) {
	o := wireOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	theme, err := export.LoadTheme(cfg.Export.ThemePath)
	if err != nil {
		return nil, nil, err
	}

	std, closeFn, err := newStandardizer(cfg, log, o.client, o.now)
	if err != nil {
		return nil, nil, err
	}

	observer := service.NewLogUseCaseObserver(log)
	normalizer := dates.NewNormalizer(o.now)
	composer := export.NewComposer(theme, log, export.WithClock(o.now))

	pipeline := NewPipeline(
		service.NewTaskService(std, normalizer, observer),
		service.NewExportService(composer, o.now, log, observer),
		normalizer,
		cfg.Timeline,
		cfg.Export,
	)
	return pipeline, closeFn, nil
}

func newStandardizer(cfg *config.Config, log zerolog.Logger, client llm.LLMClient, now func() time.Time) (standardize.Standardizer, func() error, error) {
	noClose := func() error { return nil }

	if client == nil {
		var observer llm.Observer = llm.NoopObserver{}
		if cfg.Standardizer.LogCalls {
			observer = llm.NewLogObserver(log)
		}
		switch cfg.Standardizer.Provider {
		case config.ProviderGemini:
			if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
				log.Warn().Msg("gemini standardizer selected without GEMINI_API_KEY; local parsing will be used")
			}
			client = llm.NewGeminiClient(cfg.Gemini, observer)
		case config.ProviderOllama:
			client = llm.NewOllamaClient(cfg.Ollama, observer)
			if !client.Available(context.Background()) {
				log.Warn().
					Str("endpoint", cfg.Ollama.Endpoint).
					Str("model", cfg.Ollama.Model).
					Msg("ollama is unreachable or the model is not pulled; builds may fall back to local parsing")
			}
		default:
			return standardize.Noop{}, noClose, nil
		}
	}

	remote := standardize.NewLLMStandardizer(client, log)
	if cfg.Standardizer.CachePath == "" {
		return remote, noClose, nil
	}

	conn, err := db.OpenDB(cfg.Standardizer.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening standardizer cache: %w", err)
	}
	repo := repository.NewSQLiteDateCacheRepo(conn).
		WithUnitOfWork(db.NewSQLiteUnitOfWork(conn)).
		WithClock(now)

	if ttl := cfg.Standardizer.CacheTTL; ttl > 0 {
		n, err := repo.Prune(context.Background(), now().Add(-ttl))
		if err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("pruning standardizer cache: %w", err)
		}
		log.Debug().Int64("pruned", n).Msg("standardizer cache opened")
	}
	return standardize.NewCached(remote, repo, log), conn.Close, nil
}
