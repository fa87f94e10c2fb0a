package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/core/ports"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler handles GET /health. The endpoint never fails: a store that
// does not answer the ping is reported as disconnected, not raised as an error.
type HealthHandler struct {
	repo ports.UserRepository
}

func NewHealthHandler(repo ports.UserRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

// Check reports process liveness and the store's connectivity state.
//
// @Summary      Health check
// @Tags         ops
// @Produce      json
// @Success      200  {object}  healthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthPingTimeout)
	defer cancel()

	database := "disconnected"
	if h.repo.Connected(ctx) {
		database = "connected"
	}

	return c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  database,
	})
}
