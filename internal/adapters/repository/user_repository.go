package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/database"
	"github.com/tasksphere/core/internal/ports"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, reward_points, rating, tasks_completed, projects_completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entities.UserRoleUser
	}

	err := r.db.QueryRowContext(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, user.Role,
		user.RewardPoints, user.Rating, user.TasksCompleted, user.ProjectsCompleted,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, reward_points, rating,
			tasks_completed, projects_completed, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, reward_points, rating,
			tasks_completed, projects_completed, created_at, updated_at
		FROM users
		WHERE email = $1`

	var user entities.User
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *UserRepositoryImpl) List(ctx context.Context, filter ports.UserFilter) ([]*entities.User, error) {
	query := `
		SELECT id, name, email, role, reward_points, rating,
			tasks_completed, projects_completed, created_at, updated_at
		FROM users`
	args := []interface{}{}

	if filter.Role != nil {
		query += ` WHERE role = $1`
		args = append(args, *filter.Role)
	}

	query += ` ORDER BY name`

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	query += fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, filter.Offset)

	var users []*entities.User
	err := r.db.SelectContext(ctx, &users, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *UserRepositoryImpl) Count(ctx context.Context, filter ports.UserFilter) (int64, error) {
	query := `SELECT COUNT(*) FROM users`
	args := []interface{}{}

	if filter.Role != nil {
		query += ` WHERE role = $1`
		args = append(args, *filter.Role)
	}

	var count int64
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return count, nil
}

func (r *UserRepositoryImpl) Leaderboard(ctx context.Context, orderBy ports.LeaderboardOrder, limit int) ([]*entities.User, error) {
	// orderBy is an enumerated column name validated by the caller; never
	// interpolate anything else here.
	if !orderBy.IsValid() {
		orderBy = ports.LeaderboardByPoints
	}

	query := fmt.Sprintf(`
		SELECT id, name, email, role, reward_points, rating,
			tasks_completed, projects_completed, created_at, updated_at
		FROM users
		ORDER BY %s DESC
		LIMIT $1`, orderBy)

	var users []*entities.User
	err := r.db.SelectContext(ctx, &users, query, limit)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}

	return users, nil
}
