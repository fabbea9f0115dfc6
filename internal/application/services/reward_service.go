package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/infrastructure/metrics"
	"github.com/tasksphere/core/internal/ports"
)

// RewardService manages the reward ledger: point deduction and claim
// recording
type RewardService struct {
	rewardRepo ports.RewardRepository
	logger     *logger.Logger
}

// NewRewardService creates a new reward service
func NewRewardService(rewardRepo ports.RewardRepository, logger *logger.Logger) *RewardService {
	return &RewardService{
		rewardRepo: rewardRepo,
		logger:     logger,
	}
}

// ClaimReward deducts the cost from the user's balance and records the
// claim. Both writes happen in one transaction; a balance below the cost
// (or a missing user) yields ErrInsufficientPoints and leaves the balance
// untouched.
func (s *RewardService) ClaimReward(ctx context.Context, userID uuid.UUID, req ports.ClaimRewardRequest) (*entities.ClaimedReward, error) {
	// The HTTP layer validates the request, but a zero or negative cost
	// must never reach the ledger.
	if req.Cost <= 0 {
		return nil, entities.ErrInvalidCost
	}

	claim := &entities.ClaimedReward{
		UserID:     userID,
		RewardID:   req.RewardID,
		RewardName: req.RewardName,
		Cost:       req.Cost,
		Status:     entities.ClaimStatusPending,
	}

	if err := s.rewardRepo.Claim(ctx, claim); err != nil {
		return nil, err
	}

	metrics.RewardsClaimed.Inc()
	metrics.PointsSpent.Add(float64(claim.Cost))

	s.logger.Infow("Reward claimed",
		"user_id", userID, "reward_id", claim.RewardID, "cost", claim.Cost)

	return claim, nil
}

// GetClaimedRewards lists the user's claims, newest first
func (s *RewardService) GetClaimedRewards(ctx context.Context, userID uuid.UUID) ([]*entities.ClaimedReward, error) {
	claims, err := s.rewardRepo.GetUserClaims(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claimed rewards: %w", err)
	}

	return claims, nil
}
