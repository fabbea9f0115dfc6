package http

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tasksphere/core/internal/application/services"
	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

// TaskHandler handles task-related requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), req, GetUserID(c))
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path int true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), taskID)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTaskStatus godoc
// @Summary Update a task's status
// @Description Transitions the task; the first transition into done awards points
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path int true "Task ID"
// @Param request body ports.UpdateTaskStatusRequest true "New status"
// @Success 200 {object} ports.StatusUpdateResult
// @Security BearerAuth
// @Router /tasks/{id} [patch]
func (h *TaskHandler) UpdateTaskStatus(c echo.Context) error {
	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.UpdateTaskStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.taskService.UpdateTaskStatus(c.Request().Context(), taskID, req.Status)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, result)
}

// parseTaskFilter builds a task filter from the request's query parameters.
func parseTaskFilter(c echo.Context) (ports.TaskFilter, error) {
	filter := ports.TaskFilter{}

	if projectIDStr := c.QueryParam("project_id"); projectIDStr != "" {
		projectID, err := strconv.Atoi(projectIDStr)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid project_id parameter")
		}
		filter.ProjectID = &projectID
	}

	if assigneeStr := c.QueryParam("assigned_to"); assigneeStr != "" {
		assigneeID, err := uuid.Parse(assigneeStr)
		if err != nil {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid assigned_to parameter")
		}
		filter.AssigneeID = &assigneeID
	}

	if statusStr := c.QueryParam("status"); statusStr != "" {
		status := entities.TaskStatus(statusStr)
		if !status.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid status parameter")
		}
		filter.Status = &status
	}

	if priorityStr := c.QueryParam("priority"); priorityStr != "" {
		priority := entities.Priority(priorityStr)
		if !priority.IsValid() {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid priority parameter")
		}
		filter.Priority = &priority
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return filter, echo.NewHTTPError(http.StatusBadRequest, "Invalid offset parameter")
		}
		filter.Offset = offset
	}

	return filter, nil
}

// ListTasks handles listing tasks with filters
func (h *TaskHandler) ListTasks(c echo.Context) error {
	filter, err := parseTaskFilter(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), filter)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tasks)
}

// GetOverdueTasks returns the caller's overdue tasks
func (h *TaskHandler) GetOverdueTasks(c echo.Context) error {
	tasks, err := h.taskService.GetOverdueTasks(c.Request().Context(), GetUserID(c))
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, tasks)
}
