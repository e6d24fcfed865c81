package models

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{
			name: "valid user",
			user: User{FirstName: "Alice", LastName: "Doe", Email: "alice@x.com"},
		},
		{
			name: "malformed email is accepted",
			user: User{FirstName: "Alice", LastName: "Doe", Email: "not-an-email"},
		},
		{
			name: "empty email is accepted",
			user: User{FirstName: "Alice", LastName: "Doe"},
		},
		{
			name:    "empty first name",
			user:    User{LastName: "Doe", Email: "alice@x.com"},
			wantErr: ErrFirstNameRequired,
		},
		{
			name:    "empty last name",
			user:    User{FirstName: "Alice", Email: "alice@x.com"},
			wantErr: ErrLastNameRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.user.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUser_BeforeCreateTrimsNames(t *testing.T) {
	user := &User{FirstName: "  Alice ", LastName: " Doe", Email: "alice@x.com"}

	require.NoError(t, user.BeforeCreate(nil))
	assert.Equal(t, "Alice", user.FirstName)
	assert.Equal(t, "Doe", user.LastName)
	assert.Equal(t, "Alice Doe", user.FullName())
}

func TestUser_BeforeCreateRejectsBlankNames(t *testing.T) {
	user := &User{FirstName: "   ", LastName: "Doe"}

	assert.ErrorIs(t, user.BeforeCreate(nil), ErrFirstNameRequired)
}

func TestAccount_Validate(t *testing.T) {
	tests := []struct {
		name    string
		account Account
		wantErr error
	}{
		{"valid", Account{UserID: 1, AccountName: "Brokerage", AccountType: AccountTypeTaxable}, nil},
		{"missing user", Account{AccountName: "Brokerage", AccountType: AccountTypeTaxable}, ErrAccountOwnerRequired},
		{"missing name", Account{UserID: 1, AccountType: AccountTypeTaxable}, ErrAccountNameRequired},
		{"missing type", Account{UserID: 1, AccountName: "Brokerage"}, ErrAccountTypeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantErr, tt.account.Validate())
		})
	}
}

func TestAsset_BeforeCreateNormalizes(t *testing.T) {
	asset := &Asset{AccountID: 10, TickerSymbol: " aapl ", AssetName: "Apple Inc", AssetClass: "Equity"}

	require.NoError(t, asset.BeforeCreate(nil))
	assert.Equal(t, "AAPL", asset.TickerSymbol)
	assert.Equal(t, AssetClassEquity, asset.AssetClass)
}

func TestAsset_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Asset{TickerSymbol: "AAPL", AssetName: "Apple", AssetClass: "equity"}).Validate(), ErrAssetAccountRequired)
	assert.ErrorIs(t, (&Asset{AccountID: 1, AssetName: "Apple", AssetClass: "equity"}).Validate(), ErrTickerRequired)
	assert.ErrorIs(t, (&Asset{AccountID: 1, TickerSymbol: "AAPL", AssetClass: "equity"}).Validate(), ErrAssetNameRequired)
	assert.ErrorIs(t, (&Asset{AccountID: 1, TickerSymbol: "AAPL", AssetName: "Apple"}).Validate(), ErrAssetClassRequired)
}

func TestTransaction_BeforeCreateDefaults(t *testing.T) {
	txn := &Transaction{
		AssetID:        100,
		SharesQuantity: decimal.NewFromInt(10),
		Price:          decimal.NewFromFloat(145.5),
	}

	require.NoError(t, txn.BeforeCreate(nil))
	assert.Equal(t, TransactionTypeBuy, txn.TransactionType)
	assert.False(t, txn.TransactionDate.IsZero())
	assert.True(t, txn.CostBasis.Equal(decimal.NewFromInt(1455)))
}

func TestTransaction_BeforeCreateKeepsExplicitCostBasis(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	txn := &Transaction{
		AssetID:         100,
		TransactionType: "SELL",
		SharesQuantity:  decimal.NewFromInt(2),
		Price:           decimal.NewFromInt(10),
		CostBasis:       decimal.NewFromInt(25),
		TransactionDate: date,
	}

	require.NoError(t, txn.BeforeCreate(nil))
	assert.Equal(t, TransactionTypeSell, txn.TransactionType)
	assert.Equal(t, date, txn.TransactionDate)
	assert.True(t, txn.CostBasis.Equal(decimal.NewFromInt(25)))
}

func TestTransaction_BeforeCreateKeepsZeroCostBasisWhenSet(t *testing.T) {
	txn := &Transaction{AssetID: 100, SharesQuantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(40)}
	txn.SetCostBasis(decimal.Zero)

	require.NoError(t, txn.BeforeCreate(nil))
	assert.True(t, txn.CostBasis.IsZero())
}

func TestTransaction_ShareDelta(t *testing.T) {
	five := decimal.NewFromInt(5)

	assert.True(t, (&Transaction{TransactionType: "buy", SharesQuantity: five}).ShareDelta().Equal(five))
	assert.True(t, (&Transaction{SharesQuantity: five}).ShareDelta().Equal(five))
	assert.True(t, (&Transaction{TransactionType: " Sell ", SharesQuantity: five}).ShareDelta().Equal(five.Neg()))
}

func TestTransaction_Validate(t *testing.T) {
	valid := Transaction{AssetID: 1, TransactionType: TransactionTypeBuy, SharesQuantity: decimal.NewFromInt(1)}
	assert.NoError(t, valid.Validate())

	noShares := valid
	noShares.SharesQuantity = decimal.Zero
	assert.ErrorIs(t, noShares.Validate(), ErrInvalidShares)

	badType := valid
	badType.TransactionType = "gift"
	assert.ErrorIs(t, badType.Validate(), ErrInvalidTransactionType)

	negativePrice := valid
	negativePrice.Price = decimal.NewFromInt(-1)
	assert.ErrorIs(t, negativePrice.Validate(), ErrInvalidPrice)
}

func TestMarketData_BeforeCreate(t *testing.T) {
	md := &MarketData{AssetID: 1, ClosingPrice: decimal.NewFromInt(150)}
	require.NoError(t, md.BeforeCreate(nil))
	assert.False(t, md.PriceDate.IsZero())

	negative := &MarketData{AssetID: 1, ClosingPrice: decimal.NewFromInt(-5)}
	assert.ErrorIs(t, negative.BeforeCreate(nil), ErrInvalidClosingPrice)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ErrTickerRequired))
	assert.True(t, IsValidationError(fmt.Errorf("failed to create asset: %w", ErrInvalidShares)))
	assert.False(t, IsValidationError(errors.New("connection refused")))
	assert.False(t, IsValidationError(nil))
}

func TestValidationCause(t *testing.T) {
	err := fmt.Errorf("failed to create transaction: %w", ErrInvalidTransactionType)
	assert.Equal(t, ErrInvalidTransactionType, ValidationCause(err))
	assert.Nil(t, ValidationCause(errors.New("timeout")))
}
