package handlers

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// LedgerHandler handles trades and closing prices of an asset
type LedgerHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService services.LedgerServiceInterface) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// RecordTransaction records a buy or sell
// @Summary Record transaction
// @Tags Ledger
// @Accept json
// @Produce json
// @Param assetId path int true "Asset ID"
// @Param request body dto.RecordTransactionRequest true "Trade details"
// @Success 201 {object} SuccessResponse "Transaction recorded"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found"
// @Router /assets/{assetId}/transactions [post]
func (h *LedgerHandler) RecordTransaction(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	var req dto.RecordTransactionRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	transaction, err := req.ToModel(assetID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.ledgerService.RecordTransaction(c.Request().Context(), transaction); err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    transaction,
		Message: "Transaction recorded successfully",
	})
}

// ListTransactions lists an asset's transactions in date order with the
// running share position
// @Summary List transactions
// @Tags Ledger
// @Produce json
// @Param assetId path int true "Asset ID"
// @Success 200 {object} dto.ListTransactionsResponse "Transaction history"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found"
// @Router /assets/{assetId}/transactions [get]
func (h *LedgerHandler) ListTransactions(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	transactions, err := h.ledgerService.GetTransactionsForAsset(c.Request().Context(), assetID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dto.NewListTransactionsResponse(transactions)})
}

// RecordClosingPrice stores the closing price of an asset for a day,
// replacing any price already recorded for that day
// @Summary Record closing price
// @Tags Ledger
// @Accept json
// @Produce json
// @Param assetId path int true "Asset ID"
// @Param request body dto.RecordPriceRequest true "Price details"
// @Success 201 {object} SuccessResponse "Price recorded"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found"
// @Router /assets/{assetId}/prices [post]
func (h *LedgerHandler) RecordClosingPrice(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	var req dto.RecordPriceRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	marketData, err := req.ToModel(assetID)
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails(err.Error()))
	}

	if err := h.ledgerService.RecordClosingPrice(c.Request().Context(), marketData); err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    marketData,
		Message: "Closing price recorded successfully",
	})
}

// GetLatestPrice returns the most recent closing price of an asset
// @Summary Latest closing price
// @Tags Ledger
// @Produce json
// @Param assetId path int true "Asset ID"
// @Success 200 {object} SuccessResponse "models.MarketData"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found, ASSET_004 - No price recorded"
// @Router /assets/{assetId}/prices/latest [get]
func (h *LedgerHandler) GetLatestPrice(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	marketData, err := h.ledgerService.GetLatestPrice(c.Request().Context(), assetID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: marketData})
}
