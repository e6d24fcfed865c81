package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/handlers"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var panicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
	Name: "portfolio_panics_recovered_total",
	Help: "Total number of handler panics turned into SYSTEM_001 responses",
})

// PanicRecovery is a middleware that recovers from panics and returns a standardized error response
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				if GetTraceID(c) == "" {
					c.Set(TraceIDContextKey, "unknown")
				}
				panicsRecovered.Inc()

				slog.Error("Panic recovered",
					"trace_id", GetTraceID(c),
					"panic", fmt.Sprintf("%v", r),
					"stack_trace", string(debug.Stack()),
					"path", c.Request().URL.Path,
					"method", c.Request().Method,
				)

				if c.Response().Committed {
					return
				}
				err = handlers.SendError(c, errors.SystemInternalError)
			}()

			return next(c)
		}
	}
}
