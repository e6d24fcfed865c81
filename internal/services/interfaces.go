package services

import (
	"context"
	"time"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// UserServiceInterface defines user-related operations
type UserServiceInterface interface {
	CreateUser(ctx context.Context, firstName, lastName, email string) (*models.User, error)
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateUserEmail(ctx context.Context, userID int64, newEmail string) error
}

// AccountServiceInterface defines account-related operations
type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, userID int64, accountName, accountType string) (*models.Account, error)
	GetAccount(ctx context.Context, accountID int64) (*models.Account, error)
	GetAccountsForUser(ctx context.Context, userID int64) ([]models.Account, error)
}

// AssetServiceInterface defines asset-related operations
type AssetServiceInterface interface {
	CreateAsset(ctx context.Context, accountID int64, tickerSymbol, assetName, assetClass string) (*models.Asset, error)
	GetAsset(ctx context.Context, assetID int64) (*models.Asset, error)
	GetAllAssetsForUser(ctx context.Context, userID int64) ([]models.AssetListing, error)
	DeleteAsset(ctx context.Context, assetID int64) error
}

// LedgerServiceInterface records trades and closing prices against assets
type LedgerServiceInterface interface {
	RecordTransaction(ctx context.Context, transaction *models.Transaction) error
	GetTransactionsForAsset(ctx context.Context, assetID int64) ([]models.Transaction, error)
	RecordClosingPrice(ctx context.Context, marketData *models.MarketData) error
	GetLatestPrice(ctx context.Context, assetID int64) (*models.MarketData, error)
}

// InsightsServiceInterface exposes the portfolio reports
type InsightsServiceInterface interface {
	GetTotalPortfolioValue(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetAssetAllocation(ctx context.Context, userID int64) ([]models.AllocationSlice, error)
	GetPerformanceInsights(ctx context.Context, userID int64) (*models.PerformanceInsights, error)
	GetDashboard(ctx context.Context, userID int64) (*models.Dashboard, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
