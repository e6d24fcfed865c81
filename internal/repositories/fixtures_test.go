package repositories

import (
	"testing"
	"time"

	"portfolio-tracker/internal/database"
	"portfolio-tracker/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// fixtures inserts rows straight through gorm so repository tests only
// exercise the repository under test.
type fixtures struct {
	t  *testing.T
	db *database.DB
}

func newFixtures(t *testing.T, db *database.DB) *fixtures {
	return &fixtures{t: t, db: db}
}

func (f *fixtures) user() *models.User {
	user := &models.User{
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
		Email:     gofakeit.Email(),
	}
	require.NoError(f.t, f.db.Create(user).Error)
	return user
}

func (f *fixtures) account(userID int64, name string) *models.Account {
	account := &models.Account{UserID: userID, AccountName: name, AccountType: models.AccountTypeTaxable}
	require.NoError(f.t, f.db.Create(account).Error)
	return account
}

func (f *fixtures) asset(accountID int64, ticker, class string) *models.Asset {
	asset := &models.Asset{AccountID: accountID, TickerSymbol: ticker, AssetName: ticker + " holding", AssetClass: class}
	require.NoError(f.t, f.db.Create(asset).Error)
	return asset
}

func (f *fixtures) buy(assetID int64, shares, price string) *models.Transaction {
	txn := &models.Transaction{
		AssetID:        assetID,
		SharesQuantity: decimal.RequireFromString(shares),
		Price:          decimal.RequireFromString(price),
	}
	require.NoError(f.t, f.db.Create(txn).Error)
	return txn
}

func (f *fixtures) sell(assetID int64, shares, price string) *models.Transaction {
	txn := &models.Transaction{
		AssetID:         assetID,
		TransactionType: models.TransactionTypeSell,
		SharesQuantity:  decimal.RequireFromString(shares),
		Price:           decimal.RequireFromString(price),
	}
	require.NoError(f.t, f.db.Create(txn).Error)
	return txn
}

func (f *fixtures) price(assetID int64, day time.Time, closing string) *models.MarketData {
	md := &models.MarketData{AssetID: assetID, PriceDate: day, ClosingPrice: decimal.RequireFromString(closing)}
	require.NoError(f.t, f.db.Create(md).Error)
	return md
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
