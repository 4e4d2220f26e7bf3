package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/ganttsheet/internal/config"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.Serve == nil {
				return errors.New("http server is not configured")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Serve(ctx)
		},
	}
}

// ListenAndServe runs handler on cfg's address until ctx is done, then
// shuts down within cfg.ShutdownTimeout.
func ListenAndServe(ctx context.Context, cfg config.HTTPConfig, logger zerolog.Logger, handler http.Handler) error {
	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, cfg.Port))
	if err != nil {
		return err
	}
	return serveListener(ctx, lis, cfg, logger, handler)
}

func serveListener(ctx context.Context, lis net.Listener, cfg config.HTTPConfig, logger zerolog.Logger, handler http.Handler) error {
	server := &http.Server{Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", lis.Addr().String()).
			Msg("setting up http server")
		errCh <- server.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown http server")
		return err
	}
	logger.Info().Msg("shut down http server")
	return nil
}
