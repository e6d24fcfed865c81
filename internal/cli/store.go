package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/database"
	"portfolio-tracker/internal/report"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services"

	_ "github.com/lib/pq"
)

// NewEnv returns an Env backed by the PostgreSQL database described by cfg.
func NewEnv(cfg *config.Config, out, errOut io.Writer) (*Env, error) {
	renderer, err := report.NewRenderer()
	if err != nil {
		return nil, err
	}

	return &Env{
		Out:      out,
		Err:      errOut,
		Renderer: renderer,
		Open: func(ctx context.Context) (*Backend, func() error, error) {
			db, err := database.New(&cfg.Database)
			if err != nil {
				return nil, nil, err
			}
			return NewBackend(db, cfg.Report.Currency), db.Close, nil
		},
		Migrate: func(ctx context.Context, seed bool) error {
			sqlDB, err := sql.Open("postgres", cfg.Database.URL())
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer sqlDB.Close()

			return database.NewMigrator(sqlDB, cfg.Database.MigrationsPath, cfg.Database.SeedsPath).Run(ctx, seed)
		},
	}, nil
}

// NewBackend builds the services on top of db. Commands are one-shot so
// no metrics are collected.
func NewBackend(db *database.DB, currency string) *Backend {
	metrics := services.NoopMetrics{}
	assetRepo := repositories.NewAssetRepository(db.DB)

	return &Backend{
		Users:    services.NewUserService(repositories.NewUserRepository(db.DB), metrics),
		Accounts: services.NewAccountService(repositories.NewAccountRepository(db.DB), metrics),
		Assets:   services.NewAssetService(assetRepo, metrics),
		Ledger: services.NewLedgerService(
			assetRepo,
			repositories.NewTransactionRepository(db.DB),
			repositories.NewMarketDataRepository(db.DB),
			metrics,
		),
		Insights: services.NewInsightsService(repositories.NewReportingRepository(db.DB), metrics, currency),
	}
}
