package repositories

import (
	"context"
	"fmt"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Positions are marked to the most recent closing price of each asset. Sell
// transactions count as negative shares; the ledger service refuses a sell
// larger than the position, so every position and Total Shares stay >= 0.
const (
	signedShares = "CASE WHEN t.transaction_type = 'sell' THEN -t.shares_quantity ELSE t.shares_quantity END"

	userPositionsJoin = `FROM transactions t
		JOIN assets a ON a.asset_id = t.asset_id
		JOIN accounts ac ON ac.account_id = a.account_id
		JOIN market_data md ON md.asset_id = a.asset_id
		WHERE ac.user_id = ?
		  AND md.price_date = (SELECT MAX(m2.price_date) FROM market_data m2 WHERE m2.asset_id = a.asset_id)`

	totalValueQuery = `SELECT COALESCE(SUM(` + signedShares + ` * md.closing_price), 0) AS total
		` + userPositionsJoin

	allocationQuery = `SELECT a.asset_class AS asset_class,
		COALESCE(SUM(` + signedShares + ` * md.closing_price), 0) AS total_value
		` + userPositionsJoin + `
		GROUP BY a.asset_class
		ORDER BY total_value DESC, a.asset_class ASC`

	transactionStatsQuery = `SELECT
		COALESCE(SUM(` + signedShares + `), 0) AS total_shares,
		COALESCE(AVG(t.price), 0) AS avg_price,
		COALESCE(MIN(t.cost_basis), 0) AS min_cost_basis,
		COALESCE(MAX(t.cost_basis), 0) AS max_cost_basis
		FROM transactions t
		JOIN assets a ON a.asset_id = t.asset_id
		JOIN accounts ac ON ac.account_id = a.account_id
		WHERE ac.user_id = ?`

	assetCountQuery = `SELECT COUNT(a.asset_id) AS asset_count
		FROM assets a
		JOIN accounts ac ON ac.account_id = a.account_id
		WHERE ac.user_id = ?`
)

type reportingRepository struct {
	db *gorm.DB
}

// NewReportingRepository creates a repository for the portfolio reports
func NewReportingRepository(db *gorm.DB) ReportingRepositoryInterface {
	return &reportingRepository{db: db}
}

// GetTotalPortfolioValue sums shares times latest closing price over every
// transaction of the user's assets. No rows yields zero.
func (r *reportingRepository) GetTotalPortfolioValue(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.WithContext(ctx).Raw(totalValueQuery, userID).Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to calculate portfolio value: %w", err)
	}

	return result.Total, nil
}

// GetAssetAllocation groups the marked-to-market value by asset class, largest first.
func (r *reportingRepository) GetAssetAllocation(ctx context.Context, userID int64) ([]models.AllocationSlice, error) {
	allocation := []models.AllocationSlice{}
	if err := r.db.WithContext(ctx).Raw(allocationQuery, userID).Scan(&allocation).Error; err != nil {
		return nil, fmt.Errorf("failed to calculate asset allocation: %w", err)
	}
	return allocation, nil
}

// GetPerformanceInsights aggregates the user's transactions. The numeric
// fields are zero when the user has no transactions; the asset count is taken
// from the asset rows themselves.
func (r *reportingRepository) GetPerformanceInsights(ctx context.Context, userID int64) (*models.PerformanceInsights, error) {
	var stats struct {
		TotalShares  decimal.Decimal
		AvgPrice     decimal.Decimal
		MinCostBasis decimal.Decimal
		MaxCostBasis decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Raw(transactionStatsQuery, userID).Scan(&stats).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	var count struct {
		AssetCount int64
	}
	if err := r.db.WithContext(ctx).Raw(assetCountQuery, userID).Scan(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}

	return &models.PerformanceInsights{
		AssetCount:   count.AssetCount,
		TotalShares:  stats.TotalShares,
		AvgPrice:     stats.AvgPrice,
		MinCostBasis: stats.MinCostBasis,
		MaxCostBasis: stats.MaxCostBasis,
	}, nil
}
