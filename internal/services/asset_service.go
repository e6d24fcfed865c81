package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

type assetService struct {
	assetRepo repositories.AssetRepositoryInterface
	metrics   MetricsRecorderInterface
}

func NewAssetService(assetRepo repositories.AssetRepositoryInterface, metrics MetricsRecorderInterface) AssetServiceInterface {
	return &assetService{
		assetRepo: assetRepo,
		metrics:   metrics,
	}
}

func (s *assetService) CreateAsset(ctx context.Context, accountID int64, tickerSymbol, assetName, assetClass string) (*models.Asset, error) {
	asset := &models.Asset{
		AccountID:    accountID,
		TickerSymbol: tickerSymbol,
		AssetName:    assetName,
		AssetClass:   assetClass,
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		recordFailure(s.metrics, "asset", "create", err)
		slog.Error("failed to create asset",
			"account_id", accountID,
			"ticker", tickerSymbol,
			"outcome", repositories.Classify(err).String(),
			"error", err)
		return nil, err
	}

	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "asset"})
	slog.Info("asset created",
		"asset_id", asset.ID,
		"account_id", accountID,
		"ticker", asset.TickerSymbol)

	return asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, assetID int64) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repositories.ErrAssetNotFound) {
			return nil, err
		}
		slog.Error("failed to get asset", "asset_id", assetID, "error", err)
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// GetAllAssetsForUser lists the user's holdings; an unknown user has none.
func (s *assetService) GetAllAssetsForUser(ctx context.Context, userID int64) ([]models.AssetListing, error) {
	listings, err := s.assetRepo.GetListingsByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to list assets", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	return listings, nil
}

// DeleteAsset removes the asset and, with it, its transactions and prices.
func (s *assetService) DeleteAsset(ctx context.Context, assetID int64) error {
	if err := s.assetRepo.Delete(ctx, assetID); err != nil {
		recordFailure(s.metrics, "asset", "delete", err)
		if errors.Is(err, repositories.ErrAssetNotFound) {
			slog.Warn("delete of unknown asset", "asset_id", assetID)
			return err
		}
		slog.Error("failed to delete asset", "asset_id", assetID, "error", err)
		return err
	}

	s.metrics.IncrementCounter(MetricAssetDeleted, nil)
	slog.Info("asset deleted", "asset_id", assetID)

	return nil
}
