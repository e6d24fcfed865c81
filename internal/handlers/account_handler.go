package handlers

import (
	"net/http"

	"portfolio-tracker/internal/dto"
	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount opens an account for an existing user
// @Summary Create a new account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.CreateAccountRequest true "Account creation details"
// @Success 201 {object} SuccessResponse "Account created successfully"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_001 - Invalid request body or validation error"
// @Failure 422 {object} errors.ErrorResponse "ACCOUNT_003 - Owning user does not exist"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Database error"
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), req.UserID, req.AccountName, req.AccountType)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusCreated, SuccessResponse{
		Data:    account,
		Message: "Account created successfully",
	})
}

// ListUserAccounts lists the accounts a user owns
// @Summary List a user's accounts
// @Tags Accounts
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} dto.AccountListResponse "Accounts"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Router /users/{userId}/accounts [get]
func (h *AccountHandler) ListUserAccounts(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	accounts, err := h.accountService.GetAccountsForUser(c.Request().Context(), userID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.AccountListResponse{Accounts: accounts, Total: len(accounts)},
	})
}

// GetAccount returns one account
// @Summary Get account
// @Tags Accounts
// @Produce json
// @Param accountId path int true "Account ID"
// @Success 200 {object} SuccessResponse "models.Account"
// @Failure 404 {object} errors.ErrorResponse "ACCOUNT_001 - Account not found"
// @Router /accounts/{accountId} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	accountID, ok, err := parseIDParam(c, "accountId", errors.AccountInvalidID)
	if !ok {
		return err
	}

	account, err := h.accountService.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: account})
}
