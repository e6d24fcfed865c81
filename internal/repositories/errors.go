package repositories

import (
	"errors"
	"fmt"
	"strings"

	"portfolio-tracker/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAssetNotFound       = errors.New("asset not found")
	ErrPriceNotFound       = errors.New("closing price not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrInsufficientShares  = errors.New("sell exceeds the shares held")
)

const (
	pgClassIntegrityConstraint = "23"
	pgForeignKeyViolation      = "23503"
)

// Outcome is the result class of a store operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConstraint
	OutcomeStoreError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConstraint:
		return "constraint"
	default:
		return "store_error"
	}
}

// Classify maps an error returned by a repository to its Outcome. Constraint
// violations take precedence: a missing parent row on insert wraps both
// ErrConstraintViolation and the parent's not-found sentinel.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrInsufficientShares):
		return OutcomeConstraint
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrAssetNotFound),
		errors.Is(err, ErrPriceNotFound):
		return OutcomeNotFound
	default:
		return OutcomeStoreError
	}
}

// mutationError wraps a failed insert or update. When the store rejected a
// foreign key, parent names the sentinel of the missing referenced row.
func mutationError(op string, err error, parent error) error {
	if models.IsValidationError(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrConstraintViolation, err)
	}
	if !isConstraintError(err) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if parent != nil && isForeignKeyError(err) {
		return fmt.Errorf("failed to %s: %w: %w", op, ErrConstraintViolation, parent)
	}
	return fmt.Errorf("failed to %s: %w: %v", op, ErrConstraintViolation, err)
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, pgClassIntegrityConstraint)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code.Class()) == pgClassIntegrityConstraint
	}

	return isDuplicateKeyError(err) || isForeignKeyError(err) ||
		strings.Contains(err.Error(), "CHECK constraint failed") ||
		strings.Contains(err.Error(), "NOT NULL constraint failed")
}

func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgForeignKeyViolation
	}

	errStr := err.Error()
	return strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "violates foreign key constraint")
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	errStr := err.Error()
	return strings.Contains(errStr, "duplicate key") ||
		strings.Contains(errStr, "UNIQUE constraint") ||
		strings.Contains(errStr, "23505")
}
