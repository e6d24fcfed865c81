package handlers

import (
	"context"
	"net/http"
	"time"

	"portfolio-tracker/internal/errors"

	"github.com/labstack/echo/v4"
)

const healthProbeTimeout = 2 * time.Second

// Pinger reports whether the store is reachable
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type HealthCheckHandler struct {
	db Pinger
}

func NewHealthCheckHandler(db Pinger) *HealthCheckHandler {
	return &HealthCheckHandler{db: db}
}

// HealthCheck pings the store within a short deadline.
// @Router /health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthProbeTimeout)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("store unreachable"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"store":  "up",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
