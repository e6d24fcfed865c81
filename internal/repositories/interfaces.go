package repositories

import (
	"context"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	UpdateEmail(ctx context.Context, id int64, newEmail string) error
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Account, error)
}

// AssetRepositoryInterface defines the contract for asset repository operations
type AssetRepositoryInterface interface {
	Create(ctx context.Context, asset *models.Asset) error
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	GetListingsByUserID(ctx context.Context, userID int64) ([]models.AssetListing, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(ctx context.Context, transaction *models.Transaction) error
	GetByAssetID(ctx context.Context, assetID int64) ([]models.Transaction, error)
}

// MarketDataRepositoryInterface defines the contract for closing price operations
type MarketDataRepositoryInterface interface {
	Upsert(ctx context.Context, marketData *models.MarketData) error
	GetLatest(ctx context.Context, assetID int64) (*models.MarketData, error)
}

// ReportingRepositoryInterface defines the read-only aggregate queries behind
// the insights dashboard.
type ReportingRepositoryInterface interface {
	GetTotalPortfolioValue(ctx context.Context, userID int64) (decimal.Decimal, error)
	GetAssetAllocation(ctx context.Context, userID int64) ([]models.AllocationSlice, error)
	GetPerformanceInsights(ctx context.Context, userID int64) (*models.PerformanceInsights, error)
}
