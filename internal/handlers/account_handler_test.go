package handlers

import (
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

// AccountHandlerSuite defines the test suite for AccountHandler
type AccountHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockAccountServiceInterface
	handler     *AccountHandler
	echo        *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *AccountHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockAccountServiceInterface(s.ctrl)
	s.handler = NewAccountHandler(s.mockService)
	s.echo = newTestEcho()
}

// TearDownTest runs after each test in the suite
func (s *AccountHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestAccountHandlerSuite runs the test suite
func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

func (s *AccountHandlerSuite) TestCreateAccount_Success() {
	reqBody := dto.CreateAccountRequest{UserID: 1, AccountName: "Brokerage", AccountType: "taxable"}

	s.mockService.EXPECT().
		CreateAccount(gomock.Any(), int64(1), "Brokerage", "taxable").
		Return(&models.Account{ID: 10, UserID: 1, AccountName: "Brokerage", AccountType: "taxable"}, nil)

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/accounts", reqBody)

	s.NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusCreated, rec.Code)

	var account models.Account
	decodeSuccess(s.T(), rec, &account)
	s.Equal(int64(10), account.ID)
	s.Equal("Brokerage", account.AccountName)
}

func (s *AccountHandlerSuite) TestCreateAccount_MissingFields() {
	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/accounts", map[string]interface{}{"account_name": "Brokerage"})

	s.NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	resp := decodeError(s.T(), rec)
	s.Contains(resp.Error.Details, "user_id: is required")
	s.Contains(resp.Error.Details, "account_type: is required")
}

func (s *AccountHandlerSuite) TestCreateAccount_OwnerMissing() {
	s.mockService.EXPECT().
		CreateAccount(gomock.Any(), int64(404), "Brokerage", "taxable").
		Return(nil, constraintErr("create account", repositories.ErrUserNotFound))

	c, rec := newContext(s.echo, http.MethodPost, "/api/v1/accounts",
		dto.CreateAccountRequest{UserID: 404, AccountName: "Brokerage", AccountType: "taxable"})

	s.NoError(s.handler.CreateAccount(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("ACCOUNT_003", decodeError(s.T(), rec).Error.Code)
}

func (s *AccountHandlerSuite) TestListUserAccounts() {
	s.mockService.EXPECT().
		GetAccountsForUser(gomock.Any(), int64(1)).
		Return([]models.Account{
			{ID: 10, UserID: 1, AccountName: "Brokerage", AccountType: "taxable"},
			{ID: 11, UserID: 1, AccountName: "IRA", AccountType: "retirement"},
		}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/users/1/accounts", nil)
	withParam(c, "userId", "1")

	s.NoError(s.handler.ListUserAccounts(c))
	s.Equal(http.StatusOK, rec.Code)

	var list dto.AccountListResponse
	decodeSuccess(s.T(), rec, &list)
	s.Equal(2, list.Total)
	s.Equal("IRA", list.Accounts[1].AccountName)
}

func (s *AccountHandlerSuite) TestListUserAccounts_Empty() {
	s.mockService.EXPECT().
		GetAccountsForUser(gomock.Any(), int64(5)).
		Return([]models.Account{}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/users/5/accounts", nil)
	withParam(c, "userId", "5")

	s.NoError(s.handler.ListUserAccounts(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"accounts":[]`)
}

func (s *AccountHandlerSuite) TestGetAccount() {
	s.mockService.EXPECT().GetAccount(gomock.Any(), int64(4)).
		Return(&models.Account{ID: 4, UserID: 1, AccountName: "IRA", AccountType: "retirement"}, nil)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/accounts/4", nil)
	withParam(c, "accountId", "4")

	s.NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusOK, rec.Code)

	var account models.Account
	decodeSuccess(s.T(), rec, &account)
	s.Equal("IRA", account.AccountName)
}

func (s *AccountHandlerSuite) TestGetAccount_NotFound() {
	s.mockService.EXPECT().GetAccount(gomock.Any(), int64(4)).Return(nil, repositories.ErrAccountNotFound)

	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/accounts/4", nil)
	withParam(c, "accountId", "4")

	s.NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal("ACCOUNT_001", decodeError(s.T(), rec).Error.Code)
}

func (s *AccountHandlerSuite) TestGetAccount_InvalidID() {
	c, rec := newContext(s.echo, http.MethodGet, "/api/v1/accounts/0", nil)
	withParam(c, "accountId", "0")

	s.NoError(s.handler.GetAccount(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("ACCOUNT_002", decodeError(s.T(), rec).Error.Code)
}
