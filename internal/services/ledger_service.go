package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"

	"github.com/shopspring/decimal"
)

type ledgerService struct {
	assetRepo       repositories.AssetRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	marketDataRepo  repositories.MarketDataRepositoryInterface
	metrics         MetricsRecorderInterface
}

func NewLedgerService(
	assetRepo repositories.AssetRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	marketDataRepo repositories.MarketDataRepositoryInterface,
	metrics MetricsRecorderInterface,
) LedgerServiceInterface {
	return &ledgerService{
		assetRepo:       assetRepo,
		transactionRepo: transactionRepo,
		marketDataRepo:  marketDataRepo,
		metrics:         metrics,
	}
}

// RecordTransaction stores a buy or sell. A sell may not exceed the shares
// the asset currently holds.
func (s *ledgerService) RecordTransaction(ctx context.Context, transaction *models.Transaction) error {
	if transaction.IsSell() {
		if err := s.ensureHolding(ctx, transaction); err != nil {
			recordFailure(s.metrics, "transaction", "create", err)
			slog.Warn("sell rejected",
				"asset_id", transaction.AssetID,
				"shares", transaction.SharesQuantity.String(),
				"error", err)
			return err
		}
	}

	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		recordFailure(s.metrics, "transaction", "create", err)
		slog.Error("failed to record transaction",
			"asset_id", transaction.AssetID,
			"outcome", repositories.Classify(err).String(),
			"error", err)
		return err
	}

	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "transaction"})
	slog.Info("transaction recorded",
		"transaction_id", transaction.ID,
		"asset_id", transaction.AssetID,
		"type", transaction.TransactionType,
		"shares", transaction.SharesQuantity.String())

	return nil
}

func (s *ledgerService) ensureHolding(ctx context.Context, sell *models.Transaction) error {
	transactions, err := s.GetTransactionsForAsset(ctx, sell.AssetID)
	if err != nil {
		return err
	}

	held := decimal.Zero
	for i := range transactions {
		held = held.Add(transactions[i].ShareDelta())
	}
	if sell.SharesQuantity.GreaterThan(held) {
		return fmt.Errorf("failed to record sell of %s shares with %s held: %w",
			sell.SharesQuantity, held, repositories.ErrInsufficientShares)
	}
	return nil
}

// GetTransactionsForAsset returns ErrAssetNotFound for an unknown asset rather
// than an empty list.
func (s *ledgerService) GetTransactionsForAsset(ctx context.Context, assetID int64) ([]models.Transaction, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, repositories.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify asset: %w", err)
	}

	transactions, err := s.transactionRepo.GetByAssetID(ctx, assetID)
	if err != nil {
		slog.Error("failed to list transactions", "asset_id", assetID, "error", err)
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (s *ledgerService) RecordClosingPrice(ctx context.Context, marketData *models.MarketData) error {
	if err := s.marketDataRepo.Upsert(ctx, marketData); err != nil {
		recordFailure(s.metrics, "market_data", "upsert", err)
		slog.Error("failed to record closing price",
			"asset_id", marketData.AssetID,
			"outcome", repositories.Classify(err).String(),
			"error", err)
		return err
	}

	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "market_data"})
	slog.Info("closing price recorded",
		"asset_id", marketData.AssetID,
		"price_date", marketData.PriceDate.Format("2006-01-02"),
		"closing_price", marketData.ClosingPrice.String())

	return nil
}

// GetLatestPrice returns the closing price the reports value the asset at.
func (s *ledgerService) GetLatestPrice(ctx context.Context, assetID int64) (*models.MarketData, error) {
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		if errors.Is(err, repositories.ErrAssetNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to verify asset: %w", err)
	}
	return s.marketDataRepo.GetLatest(ctx, assetID)
}
