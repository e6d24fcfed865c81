package dto

import (
	"fmt"
	"strings"
	"time"

	"portfolio-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of transaction and price dates
const DateLayout = "2006-01-02"

// RecordTransactionRequest represents a buy or sell of an asset. Amounts are
// decimal strings. An empty cost basis defaults to shares times price, while
// an explicit "0" is kept; an empty date defaults to today.
type RecordTransactionRequest struct {
	TransactionType string `json:"transaction_type" validate:"omitempty,oneof=buy sell BUY SELL"`
	SharesQuantity  string `json:"shares_quantity" validate:"required,decimal_positive"`
	Price           string `json:"price" validate:"required,decimal_nonnegative"`
	CostBasis       string `json:"cost_basis" validate:"decimal_nonnegative"`
	TransactionDate string `json:"transaction_date" validate:"omitempty,datetime=2006-01-02"`
}

// ToModel converts the validated request into a transaction on assetID
func (r RecordTransactionRequest) ToModel(assetID int64) (*models.Transaction, error) {
	shares, err := decimal.NewFromString(strings.TrimSpace(r.SharesQuantity))
	if err != nil {
		return nil, fmt.Errorf("invalid shares_quantity: %w", err)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return nil, fmt.Errorf("invalid price: %w", err)
	}

	date, err := parseDate(r.TransactionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction_date: %w", err)
	}

	transaction := &models.Transaction{
		AssetID:         assetID,
		TransactionType: strings.ToLower(r.TransactionType),
		SharesQuantity:  shares,
		Price:           price,
		TransactionDate: date,
	}
	if basis := strings.TrimSpace(r.CostBasis); basis != "" {
		costBasis, err := decimal.NewFromString(basis)
		if err != nil {
			return nil, fmt.Errorf("invalid cost_basis: %w", err)
		}
		transaction.SetCostBasis(costBasis)
	}
	return transaction, nil
}

// RecordPriceRequest records an asset's closing price for one day
type RecordPriceRequest struct {
	PriceDate    string `json:"price_date" validate:"omitempty,datetime=2006-01-02"`
	ClosingPrice string `json:"closing_price" validate:"required,decimal_nonnegative"`
}

// ToModel converts the validated request into a market data row for assetID
func (r RecordPriceRequest) ToModel(assetID int64) (*models.MarketData, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.ClosingPrice))
	if err != nil {
		return nil, fmt.Errorf("invalid closing_price: %w", err)
	}
	date, err := parseDate(r.PriceDate)
	if err != nil {
		return nil, fmt.Errorf("invalid price_date: %w", err)
	}
	return &models.MarketData{
		AssetID:      assetID,
		PriceDate:    date,
		ClosingPrice: price,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, strings.TrimSpace(value))
}

// TransactionWithPosition is a transaction with the asset's share position
// after it was applied
type TransactionWithPosition struct {
	ID              int64  `json:"transaction_id"`
	AssetID         int64  `json:"asset_id"`
	TransactionType string `json:"transaction_type"`
	SharesQuantity  string `json:"shares_quantity"`
	Price           string `json:"price"`
	CostBasis       string `json:"cost_basis"`
	TransactionDate string `json:"transaction_date"`
	RunningShares   string `json:"running_shares"`
}

// ListTransactionsResponse represents the response for listing an asset's transactions
type ListTransactionsResponse struct {
	Transactions []TransactionWithPosition `json:"transactions"`
	Total        int                       `json:"total"`
}

// NewListTransactionsResponse builds the listing from transactions in date
// order, accumulating shares with sells counted negative.
func NewListTransactionsResponse(transactions []models.Transaction) ListTransactionsResponse {
	views := make([]TransactionWithPosition, 0, len(transactions))
	position := decimal.Zero
	for _, t := range transactions {
		position = position.Add(t.ShareDelta())
		views = append(views, TransactionWithPosition{
			ID:              t.ID,
			AssetID:         t.AssetID,
			TransactionType: t.TransactionType,
			SharesQuantity:  t.SharesQuantity.String(),
			Price:           t.Price.StringFixed(2),
			CostBasis:       t.CostBasis.StringFixed(2),
			TransactionDate: t.TransactionDate.Format(DateLayout),
			RunningShares:   position.String(),
		})
	}
	return ListTransactionsResponse{Transactions: views, Total: len(views)}
}
