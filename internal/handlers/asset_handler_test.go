package handlers

import (
	"errors"
	"net/http"
	"testing"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
	"portfolio-tracker/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type AssetHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockAssetServiceInterface
	handler     *AssetHandler
	echo        *echo.Echo
}

func (s *AssetHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockAssetServiceInterface(s.ctrl)
	s.handler = NewAssetHandler(s.mockService)
	s.echo = newTestEcho()
}

func (s *AssetHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAssetHandlerSuite(t *testing.T) {
	suite.Run(t, new(AssetHandlerSuite))
}

func (s *AssetHandlerSuite) TestCreateAsset_Success() {
	reqBody := dto.CreateAssetRequest{AccountID: 10, TickerSymbol: "aapl", AssetName: "Apple Inc.", AssetClass: "equity"}

	s.mockService.EXPECT().
		CreateAsset(gomock.Any(), int64(10), "aapl", "Apple Inc.", "equity").
		Return(&models.Asset{ID: 100, AccountID: 10, TickerSymbol: "AAPL", AssetName: "Apple Inc.", AssetClass: "equity"}, nil)

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets", reqBody)

	s.NoError(s.handler.CreateAsset(c))
	s.Equal(http.StatusCreated, rec.Code)

	var asset models.Asset
	decodeSuccess(s.T(), rec, &asset)
	s.Equal("AAPL", asset.TickerSymbol)
}

func (s *AssetHandlerSuite) TestCreateAsset_InvalidTicker() {
	reqBody := dto.CreateAssetRequest{AccountID: 10, TickerSymbol: "AA PL", AssetName: "Apple Inc.", AssetClass: "equity"}

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets", reqBody)

	s.NoError(s.handler.CreateAsset(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(decodeError(s.T(), rec).Error.Details[0], "ticker_symbol")
}

func (s *AssetHandlerSuite) TestCreateAsset_AccountMissing() {
	s.mockService.EXPECT().
		CreateAsset(gomock.Any(), int64(77), "BND", "Total Bond", "bond").
		Return(nil, constraintErr("create asset", repositories.ErrAccountNotFound))

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/assets",
		dto.CreateAssetRequest{AccountID: 77, TickerSymbol: "BND", AssetName: "Total Bond", AssetClass: "bond"})

	s.NoError(s.handler.CreateAsset(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("ASSET_003", decodeError(s.T(), rec).Error.Code)
}

func (s *AssetHandlerSuite) TestListUserAssets() {
	s.mockService.EXPECT().
		GetAllAssetsForUser(gomock.Any(), int64(1)).
		Return([]models.AssetListing{
			{AssetID: 100, TickerSymbol: "AAPL", AssetName: "Apple Inc.", AssetClass: "equity", AccountName: "Brokerage"},
		}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/users/1/assets", nil)
	withParam(c, "userId", "1")

	s.NoError(s.handler.ListUserAssets(c))
	s.Equal(http.StatusOK, rec.Code)

	var list dto.AssetListResponse
	decodeSuccess(s.T(), rec, &list)
	s.Equal(1, list.Total)
	s.Equal("Brokerage", list.Assets[0].AccountName)
}

func (s *AssetHandlerSuite) TestDeleteAsset_Success() {
	s.mockService.EXPECT().DeleteAsset(gomock.Any(), int64(100)).Return(nil)

	c, rec := newContext(s.echo, http.MethodDelete, "/api/v1/assets/100", nil)
	withParam(c, "assetId", "100")

	s.NoError(s.handler.DeleteAsset(c))
	s.Equal(http.StatusNoContent, rec.Code)
	s.Empty(rec.Body.String())
}

func (s *AssetHandlerSuite) TestDeleteAsset_NotFound() {
	s.mockService.EXPECT().DeleteAsset(gomock.Any(), int64(5)).Return(repositories.ErrAssetNotFound)

	c, rec := newContext(s.echo, http.MethodDelete, "/api/v1/assets/5", nil)
	withParam(c, "assetId", "5")

	s.NoError(s.handler.DeleteAsset(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ASSET_001", decodeError(s.T(), rec).Error.Code)
}

func (s *AssetHandlerSuite) TestDeleteAsset_InvalidID() {
	c, rec := newContext(s.echo, http.MethodDelete, "/api/v1/assets/x", nil)
	withParam(c, "assetId", "x")

	s.NoError(s.handler.DeleteAsset(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("ASSET_002", decodeError(s.T(), rec).Error.Code)
}

func (s *AssetHandlerSuite) TestDeleteAsset_StoreError() {
	s.mockService.EXPECT().DeleteAsset(gomock.Any(), int64(100)).Return(errors.New("failed to delete asset: connection reset"))

	c, rec := newContext(s.echo, http.MethodDelete, "/api/v1/assets/100", nil)
	withParam(c, "assetId", "100")

	s.NoError(s.handler.DeleteAsset(c))
	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("SYSTEM_002", decodeError(s.T(), rec).Error.Code)
}

func (s *AssetHandlerSuite) TestGetAsset() {
	s.mockService.EXPECT().GetAsset(gomock.Any(), int64(100)).
		Return(&models.Asset{ID: 100, AccountID: 1, TickerSymbol: "VTI", AssetClass: "equity"}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/100", nil)
	withParam(c, "assetId", "100")

	s.NoError(s.handler.GetAsset(c))
	s.Equal(http.StatusOK, rec.Code)

	var asset models.Asset
	decodeSuccess(s.T(), rec, &asset)
	s.Equal("VTI", asset.TickerSymbol)
}

func (s *AssetHandlerSuite) TestGetAsset_NotFound() {
	s.mockService.EXPECT().GetAsset(gomock.Any(), int64(7)).Return(nil, repositories.ErrAssetNotFound)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/assets/7", nil)
	withParam(c, "assetId", "7")

	s.NoError(s.handler.GetAsset(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ASSET_001", decodeError(s.T(), rec).Error.Code)
}
