package handlers

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService services.AssetServiceInterface
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService services.AssetServiceInterface) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// CreateAsset adds a holding to an account
// @Summary Create asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param request body dto.CreateAssetRequest true "Asset details"
// @Success 201 {object} SuccessResponse "Asset created"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 422 {object} errors.ErrorResponse "ASSET_003 - Holding account does not exist"
// @Router /assets [post]
func (h *AssetHandler) CreateAsset(c echo.Context) error {
	var req dto.CreateAssetRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	asset, err := h.assetService.CreateAsset(c.Request().Context(), req.AccountID, req.TickerSymbol, req.AssetName, req.AssetClass)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    asset,
		Message: "Asset created successfully",
	})
}

// ListUserAssets lists every asset across a user's accounts
// @Summary List a user's assets
// @Tags Assets
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.AssetListResponse "Assets with account names"
// @Router /users/{userId}/assets [get]
func (h *AssetHandler) ListUserAssets(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	assets, err := h.assetService.GetAllAssetsForUser(c.Request().Context(), userID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.AssetListResponse{Assets: assets, Total: len(assets)},
	})
}

// DeleteAsset removes an asset with its transactions and prices
// @Summary Delete asset
// @Tags Assets
// @Param assetId path int true "Asset ID"
// @Success 204 "Asset deleted"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found"
// @Router /assets/{assetId} [delete]
func (h *AssetHandler) DeleteAsset(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	if err := h.assetService.DeleteAsset(c.Request().Context(), assetID); err != nil {
		return SendStoreError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetAsset returns one asset
// @Summary Get asset
// @Tags Assets
// @Produce json
// @Param assetId path int true "Asset ID"
// @Success 200 {object} SuccessResponse "models.Asset"
// @Failure 404 {object} errors.ErrorResponse "ASSET_001 - Asset not found"
// @Router /assets/{assetId} [get]
func (h *AssetHandler) GetAsset(c echo.Context) error {
	assetID, ok, err := parseIDParam(c, "assetId", errors.AssetInvalidID)
	if !ok {
		return err
	}

	asset, err := h.assetService.GetAsset(c.Request().Context(), assetID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: asset})
}
