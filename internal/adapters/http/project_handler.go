package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tasksphere/core/internal/application/services"
	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService *services.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary Create a new project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project data"
// @Success 201 {object} entities.Project
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req, GetUserID(c))
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, project)
}

// GetProject godoc
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} entities.Project
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	projectID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid project ID")
	}

	project, err := h.projectService.GetProject(c.Request().Context(), projectID)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, project)
}

// ListProjects handles listing projects
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	filter := ports.ProjectFilter{}

	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entities.ProjectStatus(statusStr)
		if !status.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status parameter")
		}
		filter.Status = &status
	}

	projects, err := h.projectService.ListProjects(c.Request().Context(), filter)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, projects)
}
