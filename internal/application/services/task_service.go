package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/infrastructure/metrics"
	"github.com/tasksphere/core/internal/ports"
)

// completeRetries bounds the optimistic retry loop for the assignee's
// aggregate update when concurrent completions race on the same user row.
const completeRetries = 3

// TaskService manages the task lifecycle, including the points award on
// completion
type TaskService struct {
	taskRepo    ports.TaskRepository
	projectRepo ports.ProjectRepository
	userRepo    ports.UserRepository
	logger      *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, projectRepo ports.ProjectRepository, userRepo ports.UserRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// CreateTask creates a new task in todo state
func (s *TaskService) CreateTask(ctx context.Context, req ports.CreateTaskRequest, createdBy uuid.UUID) (*entities.Task, error) {
	if !req.Priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}
	if req.EstimatedHours != nil && *req.EstimatedHours < 0 {
		return nil, entities.ErrNegativeHours
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *req.ProjectID); err != nil {
			return nil, fmt.Errorf("project not found: %w", err)
		}
	}

	if req.AssigneeID != nil {
		if _, err := s.userRepo.GetByID(ctx, *req.AssigneeID); err != nil {
			return nil, fmt.Errorf("assignee not found: %w", err)
		}
	}

	task := &entities.Task{
		Title:          req.Title,
		Description:    req.Description,
		Priority:       req.Priority,
		Status:         entities.TaskStatusTodo,
		EstimatedHours: req.EstimatedHours,
		DueDate:        req.DueDate,
		AssigneeID:     req.AssigneeID,
		ProjectID:      req.ProjectID,
		CreatedBy:      createdBy,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	// The project counter is a derived statistic; its failure must not fail
	// task creation.
	if task.ProjectID != nil {
		if err := s.projectRepo.IncrementTotalTasks(ctx, *task.ProjectID); err != nil {
			s.logger.Warnw("Failed to increment project total_tasks",
				"project_id", *task.ProjectID, "task_id", task.ID, "error", err)
		}
	}

	s.logger.Infow("Task created", "task_id", task.ID, "title", task.Title)

	return task, nil
}

// GetTask retrieves a task by ID
func (s *TaskService) GetTask(ctx context.Context, id int) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// ListTasks retrieves tasks with filtering
func (s *TaskService) ListTasks(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// GetOverdueTasks returns the user's unfinished tasks whose due date has
// passed
func (s *TaskService) GetOverdueTasks(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	tasks, err := s.taskRepo.GetOverdue(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue tasks: %w", err)
	}

	return tasks, nil
}

// UpdateTaskStatus transitions a task between statuses. The first transition
// into done computes and awards points; every other transition is a plain
// field update and awards nothing.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, taskID int, status entities.TaskStatus) (*ports.StatusUpdateResult, error) {
	if !status.IsValid() {
		return nil, entities.ErrInvalidStatus
	}

	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if status != entities.TaskStatusDone || task.IsDone() {
		// Covers done -> done re-marking: no second award, no aggregate
		// writes.
		if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
			return nil, fmt.Errorf("failed to update task status: %w", err)
		}
		return &ports.StatusUpdateResult{}, nil
	}

	// Pin the completion instant once: the time bonus and completed_at must
	// agree even if the transaction below retries.
	now := time.Now().UTC()

	points, err := entities.ComputePoints(task, now)
	if err != nil {
		return nil, err
	}

	completed, err := s.complete(ctx, task, now, points)
	if err != nil {
		return nil, err
	}

	if !completed {
		// A concurrent request finished the task first; it got the award.
		s.logger.Infow("Task already completed by concurrent request", "task_id", taskID)
		return &ports.StatusUpdateResult{}, nil
	}

	metrics.TasksCompleted.Inc()
	metrics.PointsAwarded.Add(float64(points))

	if task.ProjectID != nil {
		if err := s.projectRepo.IncrementCompletedTasks(ctx, *task.ProjectID); err != nil {
			s.logger.Warnw("Failed to increment project completed_tasks",
				"project_id", *task.ProjectID, "task_id", taskID, "error", err)
		}
	}

	s.logger.Infow("Task completed", "task_id", taskID, "points", points)

	return &ports.StatusUpdateResult{PointsAwarded: points}, nil
}

// complete flips the task to done together with the assignee's aggregate
// update. The user row is guarded by an optimistic check on tasks_completed;
// a conflict means another completion landed between our read and write, so
// re-read and retry.
func (s *TaskService) complete(ctx context.Context, task *entities.Task, completedAt time.Time, points int) (bool, error) {
	if task.AssigneeID == nil {
		return s.taskRepo.Complete(ctx, task.ID, completedAt, nil)
	}

	for attempt := 0; attempt < completeRetries; attempt++ {
		user, err := s.userRepo.GetByID(ctx, *task.AssigneeID)
		if err != nil {
			return false, fmt.Errorf("assignee lookup failed: %w", err)
		}

		award := &ports.CompletionAward{
			UserID:                 user.ID,
			Points:                 points,
			TasksCompleted:         user.TasksCompleted + 1,
			Rating:                 entities.ComputeRating(user.TasksCompleted + 1),
			ExpectedTasksCompleted: user.TasksCompleted,
		}

		completed, err := s.taskRepo.Complete(ctx, task.ID, completedAt, award)
		if errors.Is(err, entities.ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return false, fmt.Errorf("failed to complete task: %w", err)
		}

		return completed, nil
	}

	return false, fmt.Errorf("completing task %d: %w", task.ID, entities.ErrConcurrentUpdate)
}
