package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/credit-disputer/internal/adapter/postgres"
	"github.com/heartmarshall/credit-disputer/internal/auth"
	"github.com/heartmarshall/credit-disputer/internal/config"
	"github.com/heartmarshall/credit-disputer/internal/service/reconcile"
	"github.com/heartmarshall/credit-disputer/internal/transport/middleware"
	"github.com/heartmarshall/credit-disputer/internal/transport/rest"
)

// Run is the HTTP server entry point. It loads configuration, connects to
// the database, wires services and serves until ctx is cancelled, then shuts
// down within cfg.Server.ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log, "server")
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("letter_provider", cfg.Letter.Provider),
		slog.Bool("notify_enabled", cfg.Notify.NotifyEnabled()),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := newServices(cfg, logger, newRepos(pool))

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	defer limiter.Stop()

	notifyBackend := "disabled"
	if cfg.Notify.NotifyEnabled() {
		notifyBackend = "webhook"
	}
	health := rest.NewHealthHandler(BuildVersion(), map[string]string{
		"letter": cfg.Letter.Provider,
		"mail":   "lob",
		"notify": notifyBackend,
	}, rest.PingProbe("database", pool))

	disputes := rest.NewDisputeHandler(svc.lifecycle, svc.reconcile, logger)
	admin := rest.NewAdminHandler(ctx, disputes, svc.reconcile, logger)
	router := rest.NewRouter(rest.RouterDeps{
		Health:      health,
		Disputes:    disputes,
		Accounts:    rest.NewAccountHandler(svc.accounts, logger),
		Documents:   rest.NewDocumentHandler(svc.documents, logger),
		Dashboard:   rest.NewDashboardHandler(svc.dashboard, logger),
		Admin:       admin,
		Auth:        middleware.Auth(auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, auth.WithLeeway(cfg.Auth.JWTLeeway))),
		RateLimiter: limiter,
		RateLimit:   cfg.RateLimit,
		CORS:        cfg.CORS,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	err = g.Wait()
	admin.Wait()
	if err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// Reconcile performs one reconciliation pass over the configured database.
// A cancelled ctx stops the run between disputes. The returned error covers
// setup only; per-dispute failures are in the report.
func Reconcile(ctx context.Context, steps []reconcile.Step) (reconcile.Report, error) {
	cfg, err := config.Load()
	if err != nil {
		return reconcile.Report{}, err
	}

	logger := NewLogger(cfg.Log, "reconcile")

	if cfg.Database.ApplicationName != "" {
		cfg.Database.ApplicationName += "-reconcile"
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return reconcile.Report{}, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := newServices(cfg, logger, newRepos(pool))
	return svc.reconcile.Run(ctx, reconcile.RunOptions{Steps: steps}), nil
}
