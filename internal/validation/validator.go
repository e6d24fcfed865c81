package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator is a go-playground validator carrying the portfolio rules
// (ticker, decimal_positive, decimal_nonnegative) and json field names.
type Validator struct {
	validate *validator.Validate
}

var shared = sync.OnceValue(NewValidator)

// GetValidator returns the process-wide Validator.
func GetValidator() *Validator {
	return shared()
}

// tickerPattern accepts exchange symbols such as AAPL, BRK.B or BTC-USD.
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9.\-]{0,19}$`)

var customRules = map[string]validator.Func{
	"ticker":              validateTicker,
	"decimal_positive":    validateDecimalPositive,
	"decimal_nonnegative": validateDecimalNonNegative,
}

func NewValidator() *Validator {
	v := validator.New()
	for tag, fn := range customRules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %s: %v", tag, err))
		}
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Struct(i any) error {
	return v.validate.Struct(i)
}

// FormatErrors turns validator errors into "field: message" lines suitable for
// an error response's details.
func FormatErrors(err error) []string {
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return []string{err.Error()}
	}

	details := make([]string, len(fields))
	for i, fe := range fields {
		details[i] = fe.Field() + ": " + ruleMessage(fe)
	}
	return details
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "ticker":
		return "must be a ticker symbol of letters, digits, '.' or '-'"
	case "decimal_positive":
		return "must be a number greater than zero"
	case "decimal_nonnegative":
		return "must be a number that is zero or greater"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in the format %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %s rule", fe.Tag())
	}
}

func validateTicker(fl validator.FieldLevel) bool {
	return tickerPattern.MatchString(strings.TrimSpace(fl.Field().String()))
}

// validateDecimalPositive validates that a string holds a decimal greater than 0
func validateDecimalPositive(fl validator.FieldLevel) bool {
	d, ok := parseDecimal(fl)
	return ok && d.IsPositive()
}

// validateDecimalNonNegative validates that a string holds a decimal of 0 or more.
// An empty string is accepted so the rule can guard optional fields.
func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	if strings.TrimSpace(fl.Field().String()) == "" {
		return true
	}
	d, ok := parseDecimal(fl)
	return ok && !d.IsNegative()
}

func parseDecimal(fl validator.FieldLevel) (decimal.Decimal, bool) {
	if fl.Field().Kind() != reflect.String {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(fl.Field().String()))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
