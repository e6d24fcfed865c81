package middleware

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portfolio_api_errors_total",
		Help: "API errors answered by the echo error handler, by code, route and status",
	},
	[]string{"code", "route", "status"},
)

// codeByHTTPStatus names the framework's own errors (unknown route, bad
// method, oversized body...) with an API error code.
var codeByHTTPStatus = map[int]errors.ErrorCode{
	http.StatusBadRequest:           errors.ValidationGeneral,
	http.StatusMethodNotAllowed:     errors.ValidationGeneral,
	http.StatusUnsupportedMediaType: errors.ValidationGeneral,
	http.StatusNotFound:             errors.SystemRouteNotFound,
	http.StatusUnprocessableEntity:  errors.ValidationConstraint,
	http.StatusTooManyRequests:      errors.SystemRateLimitExceeded,
	http.StatusInternalServerError:  errors.SystemInternalError,
	http.StatusServiceUnavailable:   errors.SystemServiceUnavailable,
}

// CustomHTTPErrorHandler renders any error that reaches echo in the standard
// error envelope. Handlers normally answer errors themselves; this covers the
// router, binders and anything returned unhandled.
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	response, status := toErrorResponse(err, traceID)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(c.Request().Context(), level, "request failed",
		"trace_id", traceID,
		"code", response.Error.Code,
		"status", status,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"error", err.Error(),
	)
	apiErrorsTotal.WithLabelValues(response.Error.Code, c.Path(), strconv.Itoa(status)).Inc()

	if sendErr := c.JSON(status, response); sendErr != nil {
		slog.Error("failed to send error response", "trace_id", traceID, "error", sendErr)
	}
}

func toErrorResponse(err error, traceID string) (*errors.ErrorResponse, int) {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		code, ok := codeByHTTPStatus[httpErr.Code]
		if !ok {
			code = errors.SystemUnexpectedError
		}
		return errors.NewErrorResponse(code, traceID, errors.WithMessage(fmt.Sprint(httpErr.Message))), httpErr.Code
	}

	var validationErrs validator.ValidationErrors
	if stderrors.As(err, &validationErrs) {
		return errors.NewValidationErrorFromList(validation.FormatErrors(validationErrs), traceID), http.StatusBadRequest
	}

	response, _ := errors.WrapSystemError(err, traceID)
	return response, response.GetHTTPStatus()
}
