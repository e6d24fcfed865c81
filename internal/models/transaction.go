package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
)

var (
	ErrTransactionAssetRequired = errors.New("asset ID is required")
	ErrInvalidTransactionType   = errors.New("transaction type must be buy or sell")
	ErrInvalidShares            = errors.New("shares quantity must be greater than zero")
	ErrInvalidPrice             = errors.New("price cannot be negative")
	ErrInvalidCostBasis         = errors.New("cost basis cannot be negative")
)

// Transaction records a trade of an asset. Reports read shares_quantity,
// price and cost_basis directly.
type Transaction struct {
	ID              int64           `gorm:"column:transaction_id;primaryKey;autoIncrement" json:"transaction_id"`
	AssetID         int64           `gorm:"column:asset_id;not null;index" json:"asset_id"`
	TransactionType string          `gorm:"column:transaction_type;type:varchar(10);not null;default:'buy'" json:"transaction_type"`
	SharesQuantity  decimal.Decimal `gorm:"column:shares_quantity;type:decimal(18,6);not null" json:"shares_quantity"`
	Price           decimal.Decimal `gorm:"column:price;type:decimal(18,4);not null" json:"price"`
	CostBasis       decimal.Decimal `gorm:"column:cost_basis;type:decimal(18,4);not null" json:"cost_basis"`
	TransactionDate time.Time       `gorm:"column:transaction_date;type:date;not null" json:"transaction_date"`

	costBasisSet bool
}

// SetCostBasis records an explicit cost basis, zero included, so BeforeCreate
// keeps it instead of deriving one from shares and price.
func (t *Transaction) SetCostBasis(basis decimal.Decimal) {
	t.CostBasis = basis
	t.costBasisSet = true
}

// BeforeCreate fills defaults: buy when no type is given, today when no date
// is given, and shares times price when the cost basis is zero and was not
// set explicitly.
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	t.TransactionType = strings.ToLower(strings.TrimSpace(t.TransactionType))
	if t.TransactionType == "" {
		t.TransactionType = TransactionTypeBuy
	}
	if t.TransactionDate.IsZero() {
		t.TransactionDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	if !t.costBasisSet && t.CostBasis.IsZero() {
		t.CostBasis = t.SharesQuantity.Mul(t.Price)
	}
	return t.Validate()
}

// ShareDelta is the change the transaction makes to the position: negative
// for a sell.
func (t *Transaction) ShareDelta() decimal.Decimal {
	if t.IsSell() {
		return t.SharesQuantity.Neg()
	}
	return t.SharesQuantity
}

// IsSell reports whether the transaction reduces the position.
func (t *Transaction) IsSell() bool {
	return strings.EqualFold(strings.TrimSpace(t.TransactionType), TransactionTypeSell)
}

func (t *Transaction) Validate() error {
	if t.AssetID <= 0 {
		return ErrTransactionAssetRequired
	}
	if t.TransactionType != TransactionTypeBuy && t.TransactionType != TransactionTypeSell {
		return ErrInvalidTransactionType
	}
	if !t.SharesQuantity.IsPositive() {
		return ErrInvalidShares
	}
	if t.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if t.CostBasis.IsNegative() {
		return ErrInvalidCostBasis
	}
	return nil
}

func (t *Transaction) TableName() string {
	return "transactions"
}
