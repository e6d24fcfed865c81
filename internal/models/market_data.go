package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMarketDataAssetRequired = errors.New("asset ID is required")
	ErrInvalidClosingPrice     = errors.New("closing price cannot be negative")
)

// MarketData holds a closing price for an asset on a given day. The most
// recent row per asset marks its positions to market.
type MarketData struct {
	ID           int64           `gorm:"column:market_data_id;primaryKey;autoIncrement" json:"market_data_id"`
	AssetID      int64           `gorm:"column:asset_id;not null;uniqueIndex:idx_market_data_asset_date" json:"asset_id"`
	PriceDate    time.Time       `gorm:"column:price_date;type:date;not null;uniqueIndex:idx_market_data_asset_date" json:"price_date"`
	ClosingPrice decimal.Decimal `gorm:"column:closing_price;type:decimal(18,4);not null" json:"closing_price"`
}

func (m *MarketData) BeforeCreate(tx *gorm.DB) error {
	if m.PriceDate.IsZero() {
		m.PriceDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	return m.Validate()
}

func (m *MarketData) Validate() error {
	if m.AssetID <= 0 {
		return ErrMarketDataAssetRequired
	}
	if m.ClosingPrice.IsNegative() {
		return ErrInvalidClosingPrice
	}
	return nil
}

func (m *MarketData) TableName() string {
	return "market_data"
}
