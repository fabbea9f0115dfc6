package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tasksphere/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	List(ctx context.Context, filter UserFilter) ([]*entities.User, error)
	Count(ctx context.Context, filter UserFilter) (int64, error)
	Leaderboard(ctx context.Context, orderBy LeaderboardOrder, limit int) ([]*entities.User, error)
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id int) (*entities.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	GetOverdue(ctx context.Context, assigneeID uuid.UUID, now time.Time) ([]*entities.Task, error)

	// UpdateStatus applies a plain status change. completed_at is preserved
	// on done -> done and cleared whenever the task leaves done.
	UpdateStatus(ctx context.Context, id int, status entities.TaskStatus) error

	// Complete flips a task to done and, when award is non-nil, credits the
	// assignee in the same transaction. The task update is guarded by
	// status <> 'done' and the user update by the award's expected
	// tasks_completed value; a stale expectation yields
	// entities.ErrConcurrentUpdate and nothing is written. Returns false
	// when the task was already done.
	Complete(ctx context.Context, id int, completedAt time.Time, award *CompletionAward) (bool, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id int) (*entities.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*entities.Project, error)
	IncrementTotalTasks(ctx context.Context, id int) error
	IncrementCompletedTasks(ctx context.Context, id int) error
}

// RewardRepository defines the interface for reward ledger operations
type RewardRepository interface {
	// Claim deducts the claim's cost from the user's balance and records
	// the claim as one transaction. The deduction is conditional on the
	// balance covering the cost; otherwise entities.ErrInsufficientPoints
	// is returned and no row is written.
	Claim(ctx context.Context, claim *entities.ClaimedReward) error
	GetUserClaims(ctx context.Context, userID uuid.UUID) ([]*entities.ClaimedReward, error)
}

// CompletionAward describes the aggregate updates applied to a task's
// assignee when the task is completed. TasksCompleted and Rating carry the
// post-completion values; ExpectedTasksCompleted is the optimistic
// concurrency guard read before the update.
type CompletionAward struct {
	UserID                 uuid.UUID
	Points                 int
	TasksCompleted         int
	Rating                 float64
	ExpectedTasksCompleted int
}

// LeaderboardOrder enumerates the columns the leaderboard may sort by.
type LeaderboardOrder string

const (
	LeaderboardByPoints    LeaderboardOrder = "reward_points"
	LeaderboardByRating    LeaderboardOrder = "rating"
	LeaderboardByCompleted LeaderboardOrder = "tasks_completed"
)

func (o LeaderboardOrder) IsValid() bool {
	switch o {
	case LeaderboardByPoints, LeaderboardByRating, LeaderboardByCompleted:
		return true
	default:
		return false
	}
}

// Filter types for repository queries
type UserFilter struct {
	Role   *entities.UserRole
	Limit  int
	Offset int
}

type TaskFilter struct {
	ProjectID  *int
	AssigneeID *uuid.UUID
	Status     *entities.TaskStatus
	Priority   *entities.Priority
	Limit      int
	Offset     int
}

type ProjectFilter struct {
	Status *entities.ProjectStatus
	Limit  int
	Offset int
}
