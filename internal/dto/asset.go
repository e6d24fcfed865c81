package dto

import "portfolio-tracker/internal/models"

// CreateAssetRequest represents the request payload for adding an asset to an account
type CreateAssetRequest struct {
	AccountID    int64  `json:"account_id" validate:"required,gt=0"`
	TickerSymbol string `json:"ticker_symbol" validate:"required,ticker"`
	AssetName    string `json:"asset_name" validate:"required,max=255"`
	AssetClass   string `json:"asset_class" validate:"required,max=50"`
}

// AssetListResponse lists a user's assets with the name of the holding account
type AssetListResponse struct {
	Assets []models.AssetListing `json:"assets"`
	Total  int                   `json:"total"`
}
