package handlers

import (
	"net/http"

	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardRenderer renders a dashboard for the browser
type DashboardRenderer interface {
	Markdown(d *models.Dashboard) (string, error)
	HTML(d *models.Dashboard) (string, error)
}

// InsightsHandler serves the portfolio reports
type InsightsHandler struct {
	insightsService services.InsightsServiceInterface
	renderer        DashboardRenderer
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService services.InsightsServiceInterface, renderer DashboardRenderer) *InsightsHandler {
	return &InsightsHandler{
		insightsService: insightsService,
		renderer:        renderer,
	}
}

// GetInsights returns total value, allocation and performance for a user
// @Summary Portfolio insights
// @Tags Insights
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} SuccessResponse "models.Dashboard"
// @Failure 400 {object} errors.ErrorResponse "USER_002 - Invalid user ID"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_002 - Database error"
// @Router /users/{userId}/insights [get]
func (h *InsightsHandler) GetInsights(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	dashboard, err := h.insightsService.GetDashboard(c.Request().Context(), userID)
	if err != nil {
		return SendStoreError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: dashboard})
}

// Dashboard renders the insights page as HTML, or as markdown with ?format=md
// @Summary Portfolio dashboard
// @Tags Insights
// @Produce html
// @Param userId path int true "User ID"
// @Param format query string false "html (default) or md"
// @Router /dashboard/{userId} [get]
func (h *InsightsHandler) Dashboard(c echo.Context) error {
	userID, ok, err := parseIDParam(c, "userId", errors.UserInvalidID)
	if !ok {
		return err
	}

	dashboard, err := h.insightsService.GetDashboard(c.Request().Context(), userID)
	if err != nil {
		return SendStoreError(c, err)
	}

	if c.QueryParam("format") == "md" {
		md, err := h.renderer.Markdown(dashboard)
		if err != nil {
			return SendSystemError(c, err)
		}
		return c.Blob(http.StatusOK, "text/markdown; charset=UTF-8", []byte(md))
	}

	page, err := h.renderer.HTML(dashboard)
	if err != nil {
		return SendSystemError(c, err)
	}
	return c.HTML(http.StatusOK, page)
}
