package repositories

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type marketDataRepository struct {
	db *gorm.DB
}

// NewMarketDataRepository creates a new market data repository
func NewMarketDataRepository(db *gorm.DB) MarketDataRepositoryInterface {
	return &marketDataRepository{db: db}
}

// Upsert records the closing price of an asset for a day, replacing any price
// already stored for the same (asset, day).
func (r *marketDataRepository) Upsert(ctx context.Context, marketData *models.MarketData) error {
	if marketData == nil {
		return errors.New("market data cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "asset_id"}, {Name: "price_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"closing_price"}),
		}).Create(marketData).Error
	})
	if err != nil {
		return mutationError("record closing price", err, ErrAssetNotFound)
	}
	return nil
}

// GetLatest returns the most recent closing price of an asset.
func (r *marketDataRepository) GetLatest(ctx context.Context, assetID int64) (*models.MarketData, error) {
	var marketData models.MarketData
	err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("price_date DESC").
		First(&marketData).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriceNotFound
		}
		return nil, fmt.Errorf("failed to get latest closing price: %w", err)
	}
	return &marketData, nil
}
