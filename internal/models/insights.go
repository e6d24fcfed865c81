package models

import (
	"github.com/shopspring/decimal"
)

// AllocationSlice is the marked-to-market value held in one asset class.
// Percentage is filled by the insights service relative to the portfolio total.
type AllocationSlice struct {
	AssetClass string          `gorm:"column:asset_class" json:"asset_class"`
	TotalValue decimal.Decimal `gorm:"column:total_value" json:"total_value"`
	Percentage decimal.Decimal `gorm:"-" json:"percentage"`
}

// PerformanceInsights aggregates a user's transactions. Every numeric field is
// zero when the user has no transactions; AssetCount still counts asset rows.
type PerformanceInsights struct {
	AssetCount   int64           `json:"asset_count"`
	TotalShares  decimal.Decimal `json:"total_shares"`
	AvgPrice     decimal.Decimal `json:"avg_price"`
	MinCostBasis decimal.Decimal `json:"min_cost_basis"`
	MaxCostBasis decimal.Decimal `json:"max_cost_basis"`
}

// Dashboard bundles the three reports shown on the insights page.
type Dashboard struct {
	UserID      int64               `json:"user_id"`
	Currency    string              `json:"currency"`
	TotalValue  decimal.Decimal     `json:"total_value"`
	Allocation  []AllocationSlice   `json:"allocation"`
	Performance PerformanceInsights `json:"performance"`
	GeneratedAt string              `json:"generated_at"`
}
