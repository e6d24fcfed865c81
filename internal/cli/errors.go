package cli

import (
	"errors"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

// describe turns a service error into the line shown to the operator
func describe(err error) string {
	switch repositories.Classify(err) {
	case repositories.OutcomeNotFound:
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return "user not found"
		case errors.Is(err, repositories.ErrAccountNotFound):
			return "account not found"
		case errors.Is(err, repositories.ErrPriceNotFound):
			return "no closing price recorded"
		default:
			return "asset not found, it may not exist"
		}
	case repositories.OutcomeConstraint:
		switch {
		case errors.Is(err, repositories.ErrInsufficientShares):
			return "cannot sell more shares than are held"
		case errors.Is(err, repositories.ErrUserNotFound):
			return "the owning user does not exist"
		case errors.Is(err, repositories.ErrAccountNotFound):
			return "the owning account does not exist"
		case errors.Is(err, repositories.ErrAssetNotFound):
			return "asset not found, it may not exist"
		}
		if cause := models.ValidationCause(err); cause != nil {
			return cause.Error()
		}
		return "the data violates a store constraint"
	default:
		return err.Error()
	}
}
