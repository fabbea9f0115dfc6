package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tasksphere/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for user queries
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]*entities.User, int64, error)
	GetLeaderboard(ctx context.Context, orderBy string) ([]*entities.User, error)
}

// ProjectService interface for project operations
type ProjectService interface {
	CreateProject(ctx context.Context, req CreateProjectRequest, createdBy uuid.UUID) (*entities.Project, error)
	GetProject(ctx context.Context, id int) (*entities.Project, error)
	ListProjects(ctx context.Context, filter ProjectFilter) ([]*entities.Project, error)
}

// TaskService interface for the task lifecycle
type TaskService interface {
	CreateTask(ctx context.Context, req CreateTaskRequest, createdBy uuid.UUID) (*entities.Task, error)
	GetTask(ctx context.Context, id int) (*entities.Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*entities.Task, error)
	GetOverdueTasks(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int, status entities.TaskStatus) (*StatusUpdateResult, error)
}

// RewardService interface for the reward ledger
type RewardService interface {
	ClaimReward(ctx context.Context, userID uuid.UUID, req ClaimRewardRequest) (*entities.ClaimedReward, error)
	GetClaimedRewards(ctx context.Context, userID uuid.UUID) ([]*entities.ClaimedReward, error)
}

// Auth related types
type SignupRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token     string         `json:"token"`
	TokenType string         `json:"token_type"`
	ExpiresIn int64          `json:"expires_in"`
	User      *entities.User `json:"user"`
}

type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}

// Project related types
type CreateProjectRequest struct {
	Name           string            `json:"name" validate:"required,max=200"`
	Description    *string           `json:"description" validate:"omitempty,max=1000"`
	Priority       entities.Priority `json:"priority" validate:"required"`
	DueDate        *time.Time        `json:"due_date"`
	EstimatedHours *float64          `json:"estimated_hours" validate:"omitempty,min=0"`
}

// Task related types
type CreateTaskRequest struct {
	Title          string            `json:"title" validate:"required,max=200"`
	Description    *string           `json:"description" validate:"omitempty,max=2000"`
	Priority       entities.Priority `json:"priority" validate:"required"`
	EstimatedHours *float64          `json:"estimated_hours" validate:"omitempty,min=0"`
	DueDate        *time.Time        `json:"due_date"`
	AssigneeID     *uuid.UUID        `json:"assigned_to"`
	ProjectID      *int              `json:"project_id"`
}

type UpdateTaskStatusRequest struct {
	Status entities.TaskStatus `json:"status" validate:"required"`
}

// StatusUpdateResult reports the outcome of a status transition. Points are
// awarded only on the first transition into done.
type StatusUpdateResult struct {
	PointsAwarded int `json:"points_awarded"`
}

// Reward related types
type ClaimRewardRequest struct {
	RewardID   string `json:"reward_id" validate:"required,max=100"`
	RewardName string `json:"reward_name" validate:"required,max=200"`
	Cost       int    `json:"cost" validate:"required"`
}

// Response types for pagination and common structures
type PaginatedResponse[T any] struct {
	Data   []T   `json:"data"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
