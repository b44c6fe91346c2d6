package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"fitcoach/internal/api"
	"fitcoach/internal/logging"
	"fitcoach/internal/playlist"
)

func newServeCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the playlist API daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("initialize logging: %w", err)
			}

			// One daemon per data directory. The lock file lives next to the
			// logs so stale locks are easy to find.
			lockPath := filepath.Join(cfg.Paths.LogDir, "fitcoach.lock")
			lock := flock.New(lockPath)
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire instance lock %s: %w", lockPath, err)
			}
			if !locked {
				return fmt.Errorf("another fitcoach daemon holds %s", lockPath)
			}
			defer func() { _ = lock.Unlock() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := cmdCtx.openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			registry := cmdCtx.openRegistry(ctx, cfg, logger)
			metrics := playlist.NewMetrics()
			builder := playlist.New(store, registry, playlist.OptionsFromConfig(cfg), metrics, logger)
			server := api.NewServer(builder, metrics, cfg.Paths.APIToken, logger)

			httpServer := &http.Server{
				Addr:              cfg.Paths.APIBind,
				Handler:           server.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("api listening",
					logging.String("bind", cfg.Paths.APIBind),
					logging.String("catalog", store.Path()))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("serve: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}
