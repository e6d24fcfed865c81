package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"portfolio-tracker/internal/config"
	"portfolio-tracker/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the pooled gorm handle. Every repository call borrows a connection
// from this pool for one statement or one transaction and returns it afterwards.
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// reportingIndexes back the per-user joins and the latest-price lookups.
var reportingIndexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_accounts_user_id ON accounts(user_id)",
	"CREATE INDEX IF NOT EXISTS idx_assets_account_id ON assets(account_id)",
	"CREATE INDEX IF NOT EXISTS idx_assets_asset_class ON assets(asset_class)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_asset_id ON transactions(asset_id)",
	"CREATE INDEX IF NOT EXISTS idx_transactions_transaction_date ON transactions(transaction_date)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_market_data_asset_date ON market_data(asset_id, price_date)",
}

// New opens the pool and checks that the store answers.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	db := &DB{DB: gdb, config: cfg}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("pool handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}
	return db, nil
}

// AutoMigrate creates the portfolio tables from the models.
func (db *DB) AutoMigrate() error {
	return db.DB.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Asset{},
		&models.Transaction{},
		&models.MarketData{},
	)
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// CreateIndexes creates the reporting indexes. Failures are logged only.
func (db *DB) CreateIndexes(ctx context.Context) {
	for _, stmt := range reportingIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			slog.Warn("index not created", "statement", stmt, "error", err)
		}
	}
}

// Initialize opens the pool, applies the SQL migrations (gorm AutoMigrate
// when they fail) and creates the reporting indexes.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := New(&cfg.Database)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("pool handle: %w", err)
	}

	if err := MigrateIfEnabled(ctx, sqlDB, &cfg.Database); err != nil {
		slog.Warn("SQL migrations failed, falling back to AutoMigrate", "error", err)
		if err := db.AutoMigrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("auto-migrate: %w", err)
		}
	}

	db.CreateIndexes(ctx)
	slog.Info("store ready", "database", cfg.Database.Name)
	return db, nil
}
