// Package logging builds the application zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/rs/zerolog"
)

// New returns a logger writing to w with a timestamp and the process id.
// The local env gets a console writer unless JSON output is forced. An
// unparsable level falls back to info.
func New(cfg *config.Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimestampFieldName = "timestamp"

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Env == config.EnvLocal && !cfg.Log.JSON {
		cw := zerolog.NewConsoleWriter()
		cw.TimeFormat = time.DateTime
		cw.Out = w
		out = cw
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Int("pid", os.Getpid()).
		Logger()
}

// Discard is a logger that writes nothing.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}
