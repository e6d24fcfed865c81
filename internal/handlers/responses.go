package handlers

import (
	stderrors "errors"
	"log/slog"

	"portfolio-tracker/internal/errors"
	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"

	"github.com/labstack/echo/v4"
)

// Handlers never build error bodies themselves. Client mistakes go through
// SendError, anything a service returns through SendStoreError, and failures
// outside the store (rendering, encoding) through SendSystemError.

// TraceIDContextKey matches the key the request-id middleware stores under.
const TraceIDContextKey = "trace_id"

// SuccessResponse is the envelope of every 2xx JSON body.
type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

type ErrorResponse = errors.ErrorResponse

func traceIDOf(c echo.Context) string {
	id, _ := c.Get(TraceIDContextKey).(string)
	return id
}

func respond(c echo.Context, body *errors.ErrorResponse) error {
	return c.JSON(body.GetHTTPStatus(), body)
}

// SendError writes the response registered for code.
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	return respond(c, errors.NewErrorResponse(code, traceIDOf(c), opts...))
}

// SendSystemError logs err and answers with SYSTEM_001, hiding the cause.
func SendSystemError(c echo.Context, err error) error {
	traceID := traceIDOf(c)
	slog.Error("internal error", "trace_id", traceID, "path", c.Path(), "error", err)
	body, _ := errors.WrapSystemError(err, traceID)
	return respond(c, body)
}

// SendStoreError maps a service error to its response by outcome: constraint
// violations become 422 (or 404 when the missing parent is the resource in the
// path), missing rows 404 and everything else a 500 database error.
func SendStoreError(c echo.Context, err error) error {
	switch repositories.Classify(err) {
	case repositories.OutcomeConstraint:
		switch {
		case stderrors.Is(err, repositories.ErrInsufficientShares):
			return SendError(c, errors.ValidationConstraint, errors.WithDetails(repositories.ErrInsufficientShares.Error()))
		case stderrors.Is(err, repositories.ErrUserNotFound):
			return SendError(c, errors.AccountOwnerNotFound)
		case stderrors.Is(err, repositories.ErrAccountNotFound):
			return SendError(c, errors.AssetAccountNotFound)
		case stderrors.Is(err, repositories.ErrAssetNotFound):
			return SendError(c, errors.AssetNotFound)
		case models.IsValidationError(err):
			return SendError(c, errors.ValidationConstraint, errors.WithDetails(models.ValidationCause(err).Error()))
		default:
			return SendError(c, errors.ValidationConstraint)
		}
	case repositories.OutcomeNotFound:
		switch {
		case stderrors.Is(err, repositories.ErrUserNotFound):
			return SendError(c, errors.UserNotFound)
		case stderrors.Is(err, repositories.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, repositories.ErrPriceNotFound):
			return SendError(c, errors.AssetPriceNotFound)
		default:
			return SendError(c, errors.AssetNotFound)
		}
	default:
		traceID := traceIDOf(c)
		slog.Error("store error", "trace_id", traceID, "path", c.Path(), "error", err)
		body, _ := errors.WrapDatabaseError(err, traceID)
		return respond(c, body)
	}
}
