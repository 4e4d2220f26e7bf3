package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexanderramin/ganttsheet/internal/app"
	"github.com/alexanderramin/ganttsheet/internal/cli"
	"github.com/alexanderramin/ganttsheet/internal/config"
	v1 "github.com/alexanderramin/ganttsheet/internal/delivery/http/v1"
	"github.com/alexanderramin/ganttsheet/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewReader(cli.ConfigPath(os.Args[1:])).Read()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	logger := logging.New(cfg, os.Stderr)

	pipeline, closePipeline, err := app.Wire(cfg, logger)
	if err != nil {
		return fmt.Errorf("wiring pipeline: %w", err)
	}
	defer func() {
		if err := closePipeline(); err != nil {
			logger.Error().Err(err).Msg("failed to close pipeline")
		}
	}()

	a := &cli.App{
		Inspect:       pipeline,
		Build:         pipeline,
		Charts:        pipeline,
		Exports:       pipeline,
		Today:         pipeline.Today,
		DefaultOutput: cfg.Export.Output,
	}

	// Prompts and the preview UI need a terminal on both ends.
	a.IsInteractive = func() bool {
		in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		return in && out
	}

	a.Serve = func(ctx context.Context) error {
		if cfg.Env != config.EnvLocal {
			gin.SetMode(gin.ReleaseMode)
		}
		handler := v1.New(logger, pipeline, cfg.HTTP.MaxUploadMB<<20)
		return cli.ListenAndServe(ctx, cfg.HTTP, logger, v1.NewRouter(logger, handler))
	}

	return cli.NewRootCmd(a).Execute()
}
