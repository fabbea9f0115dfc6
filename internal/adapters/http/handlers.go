package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tasksphere/core/internal/application/services"
	"github.com/tasksphere/core/internal/domain/entities"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	authService *services.AuthService
	userService *services.UserService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, userService *services.UserService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
		logger:      logger,
	}
}

// Signup handles new user registration
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Signup failed", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, response)
}

// Login handles user login
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	response, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		h.logger.Warnw("Login failed", "email", req.Email)
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	return c.JSON(http.StatusOK, response)
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c echo.Context) error {
	userID := GetUserID(c)

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, user)
}

// UserHandler handles user-related requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers handles listing users (admin only, enforced by middleware)
func (h *UserHandler) ListUsers(c echo.Context) error {
	filter := ports.UserFilter{Limit: 20}

	if role := c.QueryParam("role"); role != "" {
		userRole := entities.UserRole(role)
		if !userRole.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid role parameter")
		}
		filter.Role = &userRole
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit parameter")
		}
		filter.Limit = limit
	}

	users, total, err := h.userService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, ports.PaginatedResponse[*entities.User]{
		Data:   users,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// GetLeaderboard returns the top users by the requested metric
func (h *UserHandler) GetLeaderboard(c echo.Context) error {
	users, err := h.userService.GetLeaderboard(c.Request().Context(), c.QueryParam("order_by"))
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, users)
}

// GetUserID extracts the authenticated user's ID from the echo context
func GetUserID(c echo.Context) uuid.UUID {
	user := c.Get("user")
	if user == nil {
		return uuid.Nil
	}

	if userStr, ok := user.(string); ok {
		userID, _ := uuid.Parse(userStr)
		return userID
	}

	return uuid.Nil
}

// translateError maps domain errors to HTTP responses. Storage failures stay
// opaque 500s; expected outcomes surface with their own message.
func translateError(c echo.Context, log *logger.Logger, err error) error {
	switch {
	case errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrProjectNotFound),
		errors.Is(err, entities.ErrRewardNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidPriority),
		errors.Is(err, entities.ErrInvalidCost),
		errors.Is(err, entities.ErrNegativeHours),
		errors.Is(err, entities.ErrInsufficientPoints):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Errorw("Request failed", "error", err, "path", c.Request().URL.Path)
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
