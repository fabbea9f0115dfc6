package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasksphere/core/internal/application/services"
	"github.com/tasksphere/core/internal/infrastructure/logger"
	"github.com/tasksphere/core/internal/ports"
)

// RewardHandler handles reward store requests
type RewardHandler struct {
	rewardService *services.RewardService
	logger        *logger.Logger
}

// NewRewardHandler creates a new reward handler
func NewRewardHandler(rewardService *services.RewardService, logger *logger.Logger) *RewardHandler {
	return &RewardHandler{
		rewardService: rewardService,
		logger:        logger,
	}
}

// ClaimReward godoc
// @Summary Claim a reward
// @Description Deducts the cost from the caller's balance and records the claim
// @Tags rewards
// @Accept json
// @Produce json
// @Param request body ports.ClaimRewardRequest true "Reward to claim"
// @Success 201 {object} entities.ClaimedReward
// @Security BearerAuth
// @Router /rewards/claim [post]
func (h *RewardHandler) ClaimReward(c echo.Context) error {
	var req ports.ClaimRewardRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claim, err := h.rewardService.ClaimReward(c.Request().Context(), GetUserID(c), req)
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusCreated, claim)
}

// GetClaimedRewards lists the caller's claims
func (h *RewardHandler) GetClaimedRewards(c echo.Context) error {
	claims, err := h.rewardService.GetClaimedRewards(c.Request().Context(), GetUserID(c))
	if err != nil {
		return translateError(c, h.logger, err)
	}

	return c.JSON(http.StatusOK, claims)
}
