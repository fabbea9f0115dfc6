package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

const leaderboardSize = 10

// UserService handles user queries
type UserService struct {
	userRepo ports.UserRepository
	logger   *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository, logger *logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// ListUsers retrieves users with filtering and a total count
func (s *UserService) ListUsers(ctx context.Context, filter ports.UserFilter) ([]*entities.User, int64, error) {
	users, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.userRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	for _, u := range users {
		u.PasswordHash = ""
	}

	return users, total, nil
}

// GetLeaderboard returns the top users ordered by the requested column.
// Unknown columns fall back to reward points rather than erroring, so the
// ordering can never be attacker-controlled SQL.
func (s *UserService) GetLeaderboard(ctx context.Context, orderBy string) ([]*entities.User, error) {
	order := ports.LeaderboardOrder(orderBy)
	if !order.IsValid() {
		order = ports.LeaderboardByPoints
	}

	users, err := s.userRepo.Leaderboard(ctx, order, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	for _, u := range users {
		u.PasswordHash = ""
	}

	return users, nil
}
