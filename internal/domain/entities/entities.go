package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrRewardNotFound     = errors.New("claimed reward not found")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidCost        = errors.New("reward cost must be a positive integer")
	ErrNegativeHours      = errors.New("estimated hours cannot be negative")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrConcurrentUpdate   = errors.New("concurrent update detected")
)

// Enums and types
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type ProjectStatus string

const (
	ProjectStatusPlanning  ProjectStatus = "planning"
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCompleted ProjectStatus = "completed"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusReview     TaskStatus = "review"
	TaskStatusDone       TaskStatus = "done"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type ClaimStatus string

const (
	ClaimStatusPending ClaimStatus = "pending"
)

// User represents a registered user with reward aggregates
type User struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Email             string    `json:"email" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	Role              UserRole  `json:"role" db:"role"`
	RewardPoints      int       `json:"reward_points" db:"reward_points"`
	Rating            float64   `json:"rating" db:"rating"`
	TasksCompleted    int       `json:"tasks_completed" db:"tasks_completed"`
	ProjectsCompleted int       `json:"projects_completed" db:"projects_completed"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Project groups tasks and tracks completion counters
type Project struct {
	ID             int           `json:"id" db:"id"`
	Name           string        `json:"name" db:"name"`
	Description    *string       `json:"description" db:"description"`
	Status         ProjectStatus `json:"status" db:"status"`
	Priority       Priority      `json:"priority" db:"priority"`
	DueDate        *time.Time    `json:"due_date" db:"due_date"`
	EstimatedHours *float64      `json:"estimated_hours" db:"estimated_hours"`
	TotalTasks     int           `json:"total_tasks" db:"total_tasks"`
	CompletedTasks int           `json:"completed_tasks" db:"completed_tasks"`
	CreatedBy      uuid.UUID     `json:"created_by" db:"created_by"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// Task represents a unit of work; completing it awards points to the assignee
type Task struct {
	ID             int        `json:"id" db:"id"`
	Title          string     `json:"title" db:"title"`
	Description    *string    `json:"description" db:"description"`
	Priority       Priority   `json:"priority" db:"priority"`
	Status         TaskStatus `json:"status" db:"status"`
	EstimatedHours *float64   `json:"estimated_hours" db:"estimated_hours"`
	DueDate        *time.Time `json:"due_date" db:"due_date"`
	AssigneeID     *uuid.UUID `json:"assigned_to" db:"assigned_to"`
	CreatedBy      uuid.UUID  `json:"created_by" db:"created_by"`
	ProjectID      *int       `json:"project_id" db:"project_id"`
	CompletedAt    *time.Time `json:"completed_at" db:"completed_at"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// ClaimedReward records a redemption from the rewards store. Immutable once
// written.
type ClaimedReward struct {
	ID         int         `json:"id" db:"id"`
	UserID     uuid.UUID   `json:"user_id" db:"user_id"`
	RewardID   string      `json:"reward_id" db:"reward_id"`
	RewardName string      `json:"reward_name" db:"reward_name"`
	Cost       int         `json:"cost" db:"cost"`
	Status     ClaimStatus `json:"status" db:"status"`
	ClaimedAt  time.Time   `json:"claimed_at" db:"claimed_at"`
}

// Business logic methods for User
func (u *User) CanAfford(cost int) bool {
	return u.RewardPoints >= cost
}

func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// Business logic methods for Project
func (p *Project) Progress() float64 {
	if p.TotalTasks == 0 {
		return 0
	}
	return float64(p.CompletedTasks) / float64(p.TotalTasks) * 100
}

// Business logic methods for Task
func (t *Task) IsDone() bool {
	return t.Status == TaskStatusDone
}

func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsDone() {
		return false
	}
	return now.After(*t.DueDate)
}

// Utility methods
func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleUser, UserRoleAdmin:
		return true
	default:
		return false
	}
}

func (ps ProjectStatus) IsValid() bool {
	switch ps {
	case ProjectStatusPlanning, ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	default:
		return false
	}
}

func (ts TaskStatus) IsValid() bool {
	switch ts {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	default:
		return false
	}
}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
