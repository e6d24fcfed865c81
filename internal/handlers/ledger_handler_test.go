package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockLedgerServiceInterface
	handler     *LedgerHandler
	echo        *echo.Echo
}

func (s *LedgerHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockLedgerServiceInterface(s.ctrl)
	s.handler = NewLedgerHandler(s.mockService)
	s.echo = newTestEcho()
}

func (s *LedgerHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLedgerHandlerSuite(t *testing.T) {
	suite.Run(t, new(LedgerHandlerSuite))
}

func (s *LedgerHandlerSuite) TestRecordTransaction_Success() {
	reqBody := dto.RecordTransactionRequest{
		TransactionType: "sell",
		SharesQuantity:  "4",
		Price:           "120.50",
		TransactionDate: "2024-02-15",
	}

	s.mockService.EXPECT().
		RecordTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *models.Transaction) error {
			s.Equal(int64(100), tx.AssetID)
			s.Equal(models.TransactionTypeSell, tx.TransactionType)
			s.True(tx.SharesQuantity.Equal(decimal.NewFromInt(4)))
			s.True(tx.Price.Equal(decimal.RequireFromString("120.50")))
			s.Equal(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), tx.TransactionDate)
			tx.ID = 1
			return nil
		})

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/100/transactions", reqBody)
	withParam(c, "assetId", "100")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusCreated, rec.Code)

	var tx models.Transaction
	decodeSuccess(s.T(), rec, &tx)
	s.Equal(int64(1), tx.ID)
}

func (s *LedgerHandlerSuite) TestRecordTransaction_RejectsNonPositiveShares() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/100/transactions",
		dto.RecordTransactionRequest{SharesQuantity: "0", Price: "10"})
	withParam(c, "assetId", "100")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(decodeError(s.T(), rec).Error.Details, "shares_quantity: must be a number greater than zero")
}

func (s *LedgerHandlerSuite) TestRecordTransaction_RejectsUnknownType() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/100/transactions",
		dto.RecordTransactionRequest{TransactionType: "gift", SharesQuantity: "1", Price: "10"})
	withParam(c, "assetId", "100")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LedgerHandlerSuite) TestRecordTransaction_UnknownAsset() {
	s.mockService.EXPECT().
		RecordTransaction(gomock.Any(), gomock.Any()).
		Return(constraintErr("create transaction", repositories.ErrAssetNotFound))

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/999/transactions",
		dto.RecordTransactionRequest{SharesQuantity: "1", Price: "10"})
	withParam(c, "assetId", "999")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ASSET_001", decodeError(s.T(), rec).Error.Code)
}

func (s *LedgerHandlerSuite) TestRecordTransaction_ModelRuleViolation() {
	s.mockService.EXPECT().
		RecordTransaction(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("failed to create transaction: %w: %w", repositories.ErrConstraintViolation, models.ErrInvalidCostBasis))

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/100/transactions",
		dto.RecordTransactionRequest{SharesQuantity: "1", Price: "10"})
	withParam(c, "assetId", "100")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	resp := decodeError(s.T(), rec)
	s.Equal("VALIDATION_006", resp.Error.Code)
	s.Equal([]string{models.ErrInvalidCostBasis.Error()}, resp.Error.Details)
}

func (s *LedgerHandlerSuite) TestRecordTransaction_SellBeyondHolding() {
	s.mockService.EXPECT().
		RecordTransaction(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("failed to record sell of 10 shares with 1 held: %w", repositories.ErrInsufficientShares))

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/100/transactions",
		dto.RecordTransactionRequest{TransactionType: "sell", SharesQuantity: "10", Price: "150"})
	withParam(c, "assetId", "100")

	s.NoError(s.handler.RecordTransaction(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	resp := decodeError(s.T(), rec)
	s.Equal("VALIDATION_006", resp.Error.Code)
	s.Equal([]string{repositories.ErrInsufficientShares.Error()}, resp.Error.Details)
}

func (s *LedgerHandlerSuite) TestListTransactions() {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s.mockService.EXPECT().
		GetTransactionsForAsset(gomock.Any(), int64(100)).
		Return([]models.Transaction{
			{ID: 1, AssetID: 100, TransactionType: "buy", SharesQuantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(100), CostBasis: decimal.NewFromInt(1000), TransactionDate: day},
			{ID: 2, AssetID: 100, TransactionType: "sell", SharesQuantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(110), CostBasis: decimal.NewFromInt(330), TransactionDate: day.AddDate(0, 1, 0)},
		}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/100/transactions", nil)
	withParam(c, "assetId", "100")

	s.NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusOK, rec.Code)

	var list dto.ListTransactionsResponse
	decodeSuccess(s.T(), rec, &list)
	s.Equal(2, list.Total)
	s.Equal("7", list.Transactions[1].RunningShares)
}

func (s *LedgerHandlerSuite) TestListTransactions_UnknownAsset() {
	s.mockService.EXPECT().
		GetTransactionsForAsset(gomock.Any(), int64(3)).
		Return(nil, repositories.ErrAssetNotFound)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/3/transactions", nil)
	withParam(c, "assetId", "3")

	s.NoError(s.handler.ListTransactions(c))
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *LedgerHandlerSuite) TestRecordClosingPrice_Success() {
	s.mockService.EXPECT().
		RecordClosingPrice(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, md *models.MarketData) error {
			s.Equal(int64(101), md.AssetID)
			s.True(md.ClosingPrice.Equal(decimal.RequireFromString("71.25")))
			s.Equal("2024-06-28", md.PriceDate.Format(dto.DateLayout))
			return nil
		})

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/101/prices",
		dto.RecordPriceRequest{PriceDate: "2024-06-28", ClosingPrice: "71.25"})
	withParam(c, "assetId", "101")

	s.NoError(s.handler.RecordClosingPrice(c))
	s.Equal(http.StatusCreated, rec.Code)
}

func (s *LedgerHandlerSuite) TestRecordClosingPrice_BadDate() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets/101/prices",
		dto.RecordPriceRequest{PriceDate: "28/06/2024", ClosingPrice: "71.25"})
	withParam(c, "assetId", "101")

	s.NoError(s.handler.RecordClosingPrice(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(decodeError(s.T(), rec).Error.Details, "price_date: must be a date in the format 2006-01-02")
}

func (s *LedgerHandlerSuite) TestGetLatestPrice() {
	s.mockService.EXPECT().
		GetLatestPrice(gomock.Any(), int64(3)).
		Return(&models.MarketData{AssetID: 3, ClosingPrice: decimal.RequireFromString("101.25")}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/3/prices/latest", nil)
	withParam(c, "assetId", "3")

	s.NoError(s.handler.GetLatestPrice(c))
	s.Equal(http.StatusOK, rec.Code)

	var md models.MarketData
	decodeSuccess(s.T(), rec, &md)
	s.True(md.ClosingPrice.Equal(decimal.RequireFromString("101.25")))
}

func (s *LedgerHandlerSuite) TestGetLatestPrice_NoPrice() {
	s.mockService.EXPECT().
		GetLatestPrice(gomock.Any(), int64(3)).
		Return(nil, repositories.ErrPriceNotFound)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/3/prices/latest", nil)
	withParam(c, "assetId", "3")

	s.NoError(s.handler.GetLatestPrice(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ASSET_004", decodeError(s.T(), rec).Error.Code)
}
