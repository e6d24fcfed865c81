package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

type accountService struct {
	accountRepo repositories.AccountRepositoryInterface
	metrics     MetricsRecorderInterface
}

func NewAccountService(accountRepo repositories.AccountRepositoryInterface, metrics MetricsRecorderInterface) AccountServiceInterface {
	return &accountService{
		accountRepo: accountRepo,
		metrics:     metrics,
	}
}

// CreateAccount opens an account for an existing user. An unknown user is
// rejected by the store's foreign key.
func (s *accountService) CreateAccount(ctx context.Context, userID int64, accountName, accountType string) (*models.Account, error) {
	account := &models.Account{
		UserID:      userID,
		AccountName: accountName,
		AccountType: accountType,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		recordFailure(s.metrics, "account", "create", err)
		slog.Error("failed to create account",
			"user_id", userID,
			"outcome", repositories.Classify(err).String(),
			"error", err)
		return nil, err
	}

	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "account"})
	slog.Info("account created",
		"account_id", account.ID,
		"user_id", userID,
		"account_type", account.AccountType)

	return account, nil
}

func (s *accountService) GetAccount(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, err
		}
		slog.Error("failed to get account", "account_id", accountID, "error", err)
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *accountService) GetAccountsForUser(ctx context.Context, userID int64) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		slog.Error("failed to list accounts", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
