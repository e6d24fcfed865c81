package handlers

import (
	"portfolio-tracker/internal/validation"

	"github.com/labstack/echo/v4"
)

// requestValidator adapts validation.Validator to echo.Validator.
type requestValidator struct {
	*validation.Validator
}

func (v requestValidator) Validate(i any) error {
	return v.Struct(i)
}

func NewValidator() echo.Validator {
	return requestValidator{validation.GetValidator()}
}

func validationDetails(err error) []string {
	return validation.FormatErrors(err)
}
