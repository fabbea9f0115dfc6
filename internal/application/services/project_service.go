package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

// ProjectService handles project operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// CreateProject creates a new project in planning state
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest, createdBy uuid.UUID) (*entities.Project, error) {
	if !req.Priority.IsValid() {
		return nil, entities.ErrInvalidPriority
	}

	project := &entities.Project{
		Name:           req.Name,
		Description:    req.Description,
		Status:         entities.ProjectStatusPlanning,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		EstimatedHours: req.EstimatedHours,
		CreatedBy:      createdBy,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Infow("Project created", "project_id", project.ID, "name", project.Name)

	return project, nil
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id int) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves projects with filtering
func (s *ProjectService) ListProjects(ctx context.Context, filter ports.ProjectFilter) ([]*entities.Project, error) {
	projects, err := s.projectRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, nil
}
