package handlers

import (
	"strconv"

	"portfolio-tracker/internal/errors"

	"github.com/labstack/echo/v4"
)

// parseIDParam reads a positive integer path parameter. On failure it writes
// the invalidCode response and returns ok=false; the caller returns the
// write error.
func parseIDParam(c echo.Context, name string, invalidCode errors.ErrorCode) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false, SendError(c, invalidCode, errors.WithDetails(name+" must be a positive integer"))
	}
	return id, true, nil
}

// bindAndValidate binds the request body into req and validates it, writing
// the 400 response itself when either step fails.
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return false, SendError(c, errors.ValidationGeneral, errors.WithDetails(validationDetails(err)...))
	}
	return true, nil
}
