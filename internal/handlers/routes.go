package handlers

import "github.com/labstack/echo/v4"

// Handlers groups every HTTP handler the server exposes
type Handlers struct {
	Health   *HealthCheckHandler
	User     *UserHandler
	Account  *AccountHandler
	Asset    *AssetHandler
	Ledger   *LedgerHandler
	Insights *InsightsHandler
}

// RegisterRoutes mounts the JSON API under /api/v1 and the dashboard page
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", h.Health.HealthCheck)

	api := e.Group("/api/v1")

	api.POST("/users", h.User.CreateUser)
	api.GET("/users/:userId", h.User.GetUser)
	api.PATCH("/users/:userId/email", h.User.UpdateUserEmail)
	api.GET("/users/:userId/accounts", h.Account.ListUserAccounts)
	api.GET("/users/:userId/assets", h.Asset.ListUserAssets)
	api.GET("/users/:userId/insights", h.Insights.GetInsights)

	api.POST("/accounts", h.Account.CreateAccount)
	api.GET("/accounts/:accountId", h.Account.GetAccount)

	api.POST("/assets", h.Asset.CreateAsset)
	api.GET("/assets/:assetId", h.Asset.GetAsset)
	api.DELETE("/assets/:assetId", h.Asset.DeleteAsset)
	api.GET("/assets/:assetId/transactions", h.Ledger.ListTransactions)
	api.POST("/assets/:assetId/transactions", h.Ledger.RecordTransaction)
	api.POST("/assets/:assetId/prices", h.Ledger.RecordClosingPrice)
	api.GET("/assets/:assetId/prices/latest", h.Ledger.GetLatestPrice)

	e.GET("/dashboard/:userId", h.Insights.Dashboard)
}
