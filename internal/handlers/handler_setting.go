package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// settingHandler handles plan parameter reads and updates.
type settingHandler struct {
	settingService portssvc.SettingSvcFacade
}

func newSettingHandler(ss portssvc.SettingSvcFacade) *settingHandler {
	return &settingHandler{settingService: ss}
}

// registerSettingRoutes registers routes related to plan settings.
func registerSettingRoutes(rg *gin.RouterGroup, settingService portssvc.SettingSvcFacade) {
	h := newSettingHandler(settingService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.listSettings)
		settings.GET("/:name", h.getSetting)
		settings.PUT("/:name", h.updateSetting)
	}
}

// listSettings godoc
// @Summary List plan parameters
// @Tags settings
// @Produce json
// @Success 200 {array} dto.SettingResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingHandler) listSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingService.ListSettings(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list settings", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list settings"})
		return
	}

	out := make([]dto.SettingResponse, 0, len(settings))
	for _, s := range settings {
		out = append(out, dto.SettingResponse{Name: string(s.Name), Value: s.Value.String()})
	}
	c.JSON(http.StatusOK, out)
}

// getSetting godoc
// @Summary Get one plan parameter
// @Tags settings
// @Produce json
// @Param name path string true "Setting name"
// @Success 200 {object} dto.SettingResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/{name} [get]
func (h *settingHandler) getSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	value, err := h.settingService.GetSetting(c.Request.Context(), domain.SettingName(name))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Setting not found", slog.String("setting", name))
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		} else {
			logger.Error("Failed to get setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get setting"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SettingResponse{Name: name, Value: value.String()})
}

// updateSetting godoc
// @Summary Update one plan parameter
// @Description Changes apply to subsequent compensation runs only.
// @Tags settings
// @Accept json
// @Produce json
// @Param name path string true "Setting name"
// @Param setting body dto.UpdateSettingRequest true "New value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /settings/{name} [put]
func (h *settingHandler) updateSetting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateSetting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	value, err := decimal.NewFromString(req.Value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Value must be a decimal number"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_user_id", actorID), slog.String("setting", name))
	logger.Info("Received request to update setting", slog.String("value", value.String()))

	if err := h.settingService.UpdateSetting(c.Request.Context(), domain.SettingName(name), value, actorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Setting not found")
			c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		} else {
			logger.Error("Failed to update setting", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting"})
		}
		return
	}

	logger.Info("Setting updated")
	c.JSON(http.StatusOK, dto.SettingResponse{Name: name, Value: value.String()})
}
