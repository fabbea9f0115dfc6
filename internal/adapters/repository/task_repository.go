package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/database"
	"github.com/tasksphere/core/internal/ports"
)

// errAlreadyDone aborts the completion transaction so a lost race rolls back
// the assignee's credit as well.
var errAlreadyDone = errors.New("task already done")

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *database.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *database.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (title, description, priority, status, estimated_hours, due_date, assigned_to, project_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Status,
		task.EstimatedHours, task.DueDate, task.AssigneeID, task.ProjectID, task.CreatedBy,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, status, estimated_hours, due_date,
			assigned_to, project_id, created_by, completed_at, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

func (r *TaskRepositoryImpl) List(ctx context.Context, filter ports.TaskFilter) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, status, estimated_hours, due_date,
			assigned_to, project_id, created_by, completed_at, created_at, updated_at
		FROM tasks
		WHERE 1=1`
	args := []interface{}{}
	arg := 0

	next := func() string {
		arg++
		return fmt.Sprintf("$%d", arg)
	}

	if filter.ProjectID != nil {
		query += ` AND project_id = ` + next()
		args = append(args, *filter.ProjectID)
	}
	if filter.AssigneeID != nil {
		query += ` AND assigned_to = ` + next()
		args = append(args, *filter.AssigneeID)
	}
	if filter.Status != nil {
		query += ` AND status = ` + next()
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		query += ` AND priority = ` + next()
		args = append(args, *filter.Priority)
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, filter.Offset)

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) GetOverdue(ctx context.Context, assigneeID uuid.UUID, now time.Time) ([]*entities.Task, error) {
	query := `
		SELECT id, title, description, priority, status, estimated_hours, due_date,
			assigned_to, project_id, created_by, completed_at, created_at, updated_at
		FROM tasks
		WHERE assigned_to = $1 AND status <> $2 AND due_date IS NOT NULL AND due_date < $3
		ORDER BY due_date ASC`

	var tasks []*entities.Task
	err := r.db.SelectContext(ctx, &tasks, query, assigneeID, entities.TaskStatusDone, now)
	if err != nil {
		return nil, fmt.Errorf("get overdue tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) UpdateStatus(ctx context.Context, id int, status entities.TaskStatus) error {
	// completed_at is non-null iff the task is done: preserved on
	// done -> done, cleared whenever the task leaves done.
	query := `
		UPDATE tasks
		SET status = $2,
			completed_at = CASE WHEN $2 = 'done' THEN completed_at ELSE NULL END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update task status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepositoryImpl) Complete(ctx context.Context, id int, completedAt time.Time, award *ports.CompletionAward) (bool, error) {
	err := r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if award != nil {
			result, err := tx.ExecContext(ctx, `
				UPDATE users
				SET reward_points = reward_points + $1,
					tasks_completed = $2,
					rating = $3,
					updated_at = CURRENT_TIMESTAMP
				WHERE id = $4 AND tasks_completed = $5`,
				award.Points, award.TasksCompleted, award.Rating,
				award.UserID, award.ExpectedTasksCompleted,
			)
			if err != nil {
				return fmt.Errorf("award completion: %w", err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("get rows affected: %w", err)
			}
			if rows == 0 {
				// The guard value went stale between the caller's read
				// and this write.
				return entities.ErrConcurrentUpdate
			}
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET status = $1, completed_at = $2, updated_at = CURRENT_TIMESTAMP
			WHERE id = $3 AND status <> $1`,
			entities.TaskStatusDone, completedAt, id,
		)
		if err != nil {
			return fmt.Errorf("complete task: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get rows affected: %w", err)
		}
		if rows == 0 {
			return errAlreadyDone
		}

		return nil
	})

	if errors.Is(err, errAlreadyDone) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}
