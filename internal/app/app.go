package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/heartmarshall/prompt-vault/internal/config"
	"github.com/heartmarshall/prompt-vault/internal/metrics"
	"github.com/heartmarshall/prompt-vault/internal/service/backup"
	"github.com/heartmarshall/prompt-vault/internal/transport/middleware"
	"github.com/heartmarshall/prompt-vault/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, wires the vault,
// loads the catalog and serves HTTP until ctx is cancelled or a termination
// signal arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, logCloser := NewLogger(cfg.Log)
	defer logCloser.Close()

	logger.Info("starting prompt vault",
		slog.String("version", BuildVersion()),
		slog.String("store", cfg.Store.Driver),
		slog.String("log_level", cfg.Log.Level),
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	v, err := Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer v.Close()

	// A store outage at startup is not fatal: the bundled dataset is served.
	if st, err := v.Catalog.Refresh(ctx); err != nil {
		logger.Warn("initial catalog load failed, serving bundled dataset",
			slog.String("error", err.Error()))
	} else {
		logger.Info("catalog loaded",
			slog.String("categories", string(st.Categories)),
			slog.String("prompts", string(st.Prompts)),
		)
	}

	go v.Catalog.RunRefresher(ctx, cfg.Catalog.RefreshInterval)

	sink, err := v.Sink(ctx)
	if err != nil {
		logger.Warn("backup archiving disabled", slog.String("error", err.Error()))
	}

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           newHandler(cfg, v, sink, limiter, logger),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// newHandler builds the routed and middleware-wrapped HTTP handler.
func newHandler(cfg *config.Config, v *Vault, sink backup.Sink, limiter *middleware.RateLimiter, logger *slog.Logger) http.Handler {
	mux := rest.NewMux(rest.Handlers{
		Health:      rest.NewHealthHandler(v.Store, v.Catalog, BuildVersion()),
		Catalog:     rest.NewCatalogHandler(v.Catalog, logger),
		Suggestions: rest.NewSuggestionHandler(v.Catalog, logger),
		Session:     rest.NewSessionHandler(v.Auth, logger),
		Admin:       rest.NewAdminHandler(v.Catalog, v.Backup, sink, logger),
	}, rest.Limits{
		Submit: limiter.Limit("submit", cfg.Catalog.SubmitRatePerMinute),
		Login:  limiter.Limit("login", cfg.Catalog.SubmitRatePerMinute),
	})

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, metrics.Handler())
	}

	return middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Metrics,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(v.Auth),
	)(mux)
}
