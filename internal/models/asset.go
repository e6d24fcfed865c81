package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	AssetClassEquity = "equity"
	AssetClassBond   = "bond"
	AssetClassCash   = "cash"
	AssetClassFund   = "fund"
	AssetClassCrypto = "crypto"
)

var (
	ErrAssetAccountRequired = errors.New("account ID is required")
	ErrTickerRequired       = errors.New("ticker symbol is required")
	ErrAssetNameRequired    = errors.New("asset name is required")
	ErrAssetClassRequired   = errors.New("asset class is required")
)

// Asset is a holding inside an account. Deleting it removes its transactions
// and market data.
type Asset struct {
	ID           int64  `gorm:"column:asset_id;primaryKey;autoIncrement" json:"asset_id"`
	AccountID    int64  `gorm:"column:account_id;not null;index" json:"account_id"`
	TickerSymbol string `gorm:"column:ticker_symbol;type:varchar(20);not null" json:"ticker_symbol"`
	AssetName    string `gorm:"column:asset_name;type:varchar(255);not null" json:"asset_name"`
	AssetClass   string `gorm:"column:asset_class;type:varchar(50);not null" json:"asset_class"`

	Transactions []Transaction `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	MarketData   []MarketData  `gorm:"foreignKey:AssetID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	a.TickerSymbol = strings.ToUpper(strings.TrimSpace(a.TickerSymbol))
	a.AssetName = strings.TrimSpace(a.AssetName)
	a.AssetClass = strings.ToLower(strings.TrimSpace(a.AssetClass))
	return a.Validate()
}

func (a *Asset) Validate() error {
	if a.AccountID <= 0 {
		return ErrAssetAccountRequired
	}
	if a.TickerSymbol == "" {
		return ErrTickerRequired
	}
	if a.AssetName == "" {
		return ErrAssetNameRequired
	}
	if a.AssetClass == "" {
		return ErrAssetClassRequired
	}
	return nil
}

func (a *Asset) TableName() string {
	return "assets"
}

// AssetListing is one row of the per-user asset view: the asset joined with
// the name of the account holding it.
type AssetListing struct {
	AssetID      int64  `gorm:"column:asset_id" json:"asset_id"`
	TickerSymbol string `gorm:"column:ticker_symbol" json:"ticker_symbol"`
	AssetName    string `gorm:"column:asset_name" json:"asset_name"`
	AssetClass   string `gorm:"column:asset_class" json:"asset_class"`
	AccountName  string `gorm:"column:account_name" json:"account_name"`
}
