package repositories

import (
	"context"
	"errors"
	"fmt"

	"portfolio-tracker/internal/models"

	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, transaction *models.Transaction) error {
	if transaction == nil {
		return errors.New("transaction cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(transaction).Error
	})
	if err != nil {
		return mutationError("create transaction", err, ErrAssetNotFound)
	}
	return nil
}

// GetByAssetID lists an asset's transactions oldest first.
func (r *transactionRepository) GetByAssetID(ctx context.Context, assetID int64) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("transaction_date ASC, transaction_id ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions for asset: %w", err)
	}
	return transactions, nil
}
