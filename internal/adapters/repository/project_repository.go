package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/database"
	"github.com/tasksphere/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	db *database.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *database.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	query := `
		INSERT INTO projects (name, description, status, priority, due_date, estimated_hours, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, total_tasks, completed_tasks, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		project.Name, project.Description, project.Status, project.Priority,
		project.DueDate, project.EstimatedHours, project.CreatedBy,
	).Scan(&project.ID, &project.TotalTasks, &project.CompletedTasks, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id int) (*entities.Project, error) {
	query := `
		SELECT id, name, description, status, priority, due_date, estimated_hours,
			total_tasks, completed_tasks, created_by, created_at, updated_at
		FROM projects
		WHERE id = $1`

	var project entities.Project
	err := r.db.GetContext(ctx, &project, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrProjectNotFound
		}
		return nil, fmt.Errorf("get project by id: %w", err)
	}

	return &project, nil
}

func (r *ProjectRepositoryImpl) List(ctx context.Context, filter ports.ProjectFilter) ([]*entities.Project, error) {
	query := `
		SELECT id, name, description, status, priority, due_date, estimated_hours,
			total_tasks, completed_tasks, created_by, created_at, updated_at
		FROM projects`
	args := []interface{}{}

	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query += fmt.Sprintf(` LIMIT %d OFFSET %d`, limit, filter.Offset)

	var projects []*entities.Project
	err := r.db.SelectContext(ctx, &projects, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	return projects, nil
}

func (r *ProjectRepositoryImpl) IncrementTotalTasks(ctx context.Context, id int) error {
	query := `
		UPDATE projects
		SET total_tasks = total_tasks + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment total tasks: %w", err)
	}

	return checkProjectUpdated(result)
}

func (r *ProjectRepositoryImpl) IncrementCompletedTasks(ctx context.Context, id int) error {
	query := `
		UPDATE projects
		SET completed_tasks = completed_tasks + 1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment completed tasks: %w", err)
	}

	return checkProjectUpdated(result)
}

func checkProjectUpdated(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return entities.ErrProjectNotFound
	}
	return nil
}
