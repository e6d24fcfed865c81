// Package server assembles the HTTP stack: repositories, services, handlers
// and the middleware chain on one echo instance.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/database"
	"portfolio-tracker/internal/handlers"
	"portfolio-tracker/internal/middleware"
	"portfolio-tracker/internal/report"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	limiterCleanupInterval = time.Minute
	shutdownTimeout        = 10 * time.Second
)

type Server struct {
	cfg     *config.Config
	echo    *echo.Echo
	limiter *middleware.IPRateLimiter
}

// New wires every layer on top of db. Service metrics are registered on reg.
func New(cfg *config.Config, db *database.DB, reg prometheus.Registerer) (*Server, error) {
	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard templates: %w", err)
	}

	metrics := services.NewPrometheusMetrics(reg)

	userRepo := repositories.NewUserRepository(db.DB)
	accountRepo := repositories.NewAccountRepository(db.DB)
	assetRepo := repositories.NewAssetRepository(db.DB)
	transactionRepo := repositories.NewTransactionRepository(db.DB)
	marketDataRepo := repositories.NewMarketDataRepository(db.DB)
	reportingRepo := repositories.NewReportingRepository(db.DB)

	h := handlers.Handlers{
		Health:  handlers.NewHealthCheckHandler(db),
		User:    handlers.NewUserHandler(services.NewUserService(userRepo, metrics)),
		Account: handlers.NewAccountHandler(services.NewAccountService(accountRepo, metrics)),
		Asset:   handlers.NewAssetHandler(services.NewAssetService(assetRepo, metrics)),
		Ledger: handlers.NewLedgerHandler(
			services.NewLedgerService(assetRepo, transactionRepo, marketDataRepo, metrics),
		),
		Insights: handlers.NewInsightsHandler(
			services.NewInsightsService(reportingRepo, metrics, cfg.Report.Currency),
			renderer,
		),
	}

	limiter := middleware.NewIPRateLimiter(cfg.Security)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler
	e.IPExtractor = middleware.ClientIPExtractor()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, middleware.TraceIDHeader},
	}))
	e.Use(limiter.Middleware())

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	handlers.RegisterRoutes(e, h)

	return &Server{cfg: cfg, echo: e, limiter: limiter}, nil
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled and then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go s.limiter.RunCleanup(ctx, limiterCleanupInterval)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "address", s.cfg.Address(), "environment", s.cfg.Server.Environment)
		if err := s.echo.Start(s.cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server stopped: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}
