package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/database"
	"github.com/tasksphere/core/internal/ports"
)

// RewardRepositoryImpl implements the RewardRepository interface
type RewardRepositoryImpl struct {
	db *database.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *database.DB) ports.RewardRepository {
	return &RewardRepositoryImpl{db: db}
}

func (r *RewardRepositoryImpl) Claim(ctx context.Context, claim *entities.ClaimedReward) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		// The deduction is conditional on the balance covering the cost,
		// which also serializes concurrent claims on the same user row: the
		// second claim sees the reduced balance or blocks on the row lock.
		result, err := tx.ExecContext(ctx, `
			UPDATE users
			SET reward_points = reward_points - $1, updated_at = CURRENT_TIMESTAMP
			WHERE id = $2 AND reward_points >= $1`,
			claim.Cost, claim.UserID,
		)
		if err != nil {
			return fmt.Errorf("deduct points: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			// Covers both a short balance and a missing user.
			return entities.ErrInsufficientPoints
		}

		err = tx.QueryRowContext(ctx, `
			INSERT INTO claimed_rewards (user_id, reward_id, reward_name, cost, status)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, claimed_at`,
			claim.UserID, claim.RewardID, claim.RewardName, claim.Cost, claim.Status,
		).Scan(&claim.ID, &claim.ClaimedAt)
		if err != nil {
			return fmt.Errorf("record claim: %w", err)
		}

		return nil
	})
}

func (r *RewardRepositoryImpl) GetUserClaims(ctx context.Context, userID uuid.UUID) ([]*entities.ClaimedReward, error) {
	query := `
		SELECT id, user_id, reward_id, reward_name, cost, status, claimed_at
		FROM claimed_rewards
		WHERE user_id = $1
		ORDER BY claimed_at DESC`

	var claims []*entities.ClaimedReward
	err := r.db.SelectContext(ctx, &claims, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get user claims: %w", err)
	}

	return claims, nil
}
