package repositories

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/models"

	"gorm.io/gorm"
)

type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepositoryInterface {
	return &assetRepository{db: db}
}

func (r *assetRepository) Create(ctx context.Context, asset *models.Asset) error {
	if asset == nil {
		return errors.New("asset cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(asset).Error
	})
	if err != nil {
		return mutationError("create asset", err, ErrAccountNotFound)
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.WithContext(ctx).Where("asset_id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssetNotFound
		}
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return &asset, nil
}

// GetListingsByUserID returns every asset held in any of the user's accounts,
// joined with the holding account's name. An unknown user yields an empty slice.
func (r *assetRepository) GetListingsByUserID(ctx context.Context, userID int64) ([]models.AssetListing, error) {
	listings := []models.AssetListing{}
	err := r.db.WithContext(ctx).
		Table("assets a").
		Select("a.asset_id, a.ticker_symbol, a.asset_name, a.asset_class, ac.account_name").
		Joins("JOIN accounts ac ON ac.account_id = a.account_id").
		Where("ac.user_id = ?", userID).
		Order("a.asset_id ASC").
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get assets for user: %w", err)
	}
	return listings, nil
}

// Delete removes the asset together with its transactions and market data in
// one transaction. Dependents are removed explicitly so the cascade holds even
// where the schema does not declare ON DELETE CASCADE.
func (r *assetRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("asset_id = ?", id).Delete(&models.Transaction{}).Error; err != nil {
			return fmt.Errorf("failed to delete asset transactions: %w", err)
		}
		if err := tx.Where("asset_id = ?", id).Delete(&models.MarketData{}).Error; err != nil {
			return fmt.Errorf("failed to delete asset market data: %w", err)
		}

		result := tx.Where("asset_id = ?", id).Delete(&models.Asset{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete asset: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAssetNotFound
		}
		return nil
	})
	return err
}
