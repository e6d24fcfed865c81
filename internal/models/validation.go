package models

import "errors"

var validationErrors = []error{
	ErrFirstNameRequired,
	ErrLastNameRequired,
	ErrAccountOwnerRequired,
	ErrAccountNameRequired,
	ErrAccountTypeRequired,
	ErrAssetAccountRequired,
	ErrTickerRequired,
	ErrAssetNameRequired,
	ErrAssetClassRequired,
	ErrTransactionAssetRequired,
	ErrInvalidTransactionType,
	ErrInvalidShares,
	ErrInvalidPrice,
	ErrInvalidCostBasis,
	ErrMarketDataAssetRequired,
	ErrInvalidClosingPrice,
}

// IsValidationError reports whether err was raised by a model's Validate method.
func IsValidationError(err error) bool {
	return ValidationCause(err) != nil
}

// ValidationCause returns the model rule err wraps, or nil.
func ValidationCause(err error) error {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}
