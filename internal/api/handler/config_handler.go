package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usermgmt/user-service/internal/infrastructure/config"
)

// ConfigHandler handles GET /api/config, echoing the values loaded at start.
// The response is assembled once at construction; the endpoint cannot fail.
type ConfigHandler struct {
	resp configResponse
}

type configResponse struct {
	AppName     string `json:"appName"`
	MaxUsers    int    `json:"maxUsers"`
	DefaultRole string `json:"defaultRole"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{resp: configResponse{
		AppName:     cfg.AppName,
		MaxUsers:    cfg.MaxUsers,
		DefaultRole: cfg.DefaultRole,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	}}
}

// Get returns the configuration echo.
//
// @Summary      Echo process-start configuration
// @Tags         ops
// @Produce      json
// @Success      200  {object}  configResponse
// @Router       /api/config [get]
func (h *ConfigHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.resp)
}
