package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"portfolio-tracker/internal/models"
	"portfolio-tracker/internal/repositories"
)

type userService struct {
	userRepo repositories.UserRepositoryInterface
	metrics  MetricsRecorderInterface
}

func NewUserService(userRepo repositories.UserRepositoryInterface, metrics MetricsRecorderInterface) UserServiceInterface {
	return &userService{
		userRepo: userRepo,
		metrics:  metrics,
	}
}

func (s *userService) CreateUser(ctx context.Context, firstName, lastName, email string) (*models.User, error) {
	user := &models.User{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Email:     strings.TrimSpace(email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		recordFailure(s.metrics, "user", "create", err)
		slog.Error("failed to create user",
			"outcome", repositories.Classify(err).String(),
			"error", err)
		return nil, err
	}

	s.metrics.IncrementCounter(MetricRecordCreated, map[string]string{"entity": "user"})
	slog.Info("user created", "user_id", user.ID)

	return user, nil
}

func (s *userService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			slog.Warn("user not found", "user_id", userID)
			return nil, err
		}
		slog.Error("failed to get user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUserEmail stores newEmail as given; there is no format check.
func (s *userService) UpdateUserEmail(ctx context.Context, userID int64, newEmail string) error {
	if err := s.userRepo.UpdateEmail(ctx, userID, newEmail); err != nil {
		recordFailure(s.metrics, "user", "update_email", err)
		if errors.Is(err, repositories.ErrUserNotFound) {
			slog.Warn("email update for unknown user", "user_id", userID)
			return err
		}
		slog.Error("failed to update email", "user_id", userID, "error", err)
		return err
	}

	s.metrics.IncrementCounter(MetricEmailUpdated, nil)
	slog.Info("user email updated", "user_id", userID)

	return nil
}

func recordFailure(metrics MetricsRecorderInterface, entity, operation string, err error) {
	metrics.IncrementCounter(MetricMutationFailed, map[string]string{
		"entity":    entity,
		"operation": operation,
		"outcome":   repositories.Classify(err).String(),
	})
}
