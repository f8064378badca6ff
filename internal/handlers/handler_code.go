package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/core/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// codeHandler handles HTTP requests related to activation codes.
type codeHandler struct {
	codeService portssvc.CodeSvcFacade
}

func newCodeHandler(cs portssvc.CodeSvcFacade) *codeHandler {
	return &codeHandler{codeService: cs}
}

// registerCodeRoutes registers routes related to activation codes.
func registerCodeRoutes(rg *gin.RouterGroup, codeService portssvc.CodeSvcFacade) {
	h := newCodeHandler(codeService)

	codes := rg.Group("/codes")
	{
		codes.POST("/generate", h.generateCodes)
		codes.POST("/verify", h.verifyCode)
		codes.GET("/:id", h.getCode)
		codes.GET("", h.listCodesByOwner)
		codes.POST("/:id/toggle", h.toggleCodeStatus)
	}
}

// generateCodes godoc
// @Summary Generate activation codes
// @Description Mints a batch of unique codes for a package.
// @Tags codes
// @Accept json
// @Produce json
// @Param request body dto.GenerateCodesRequest true "Generation parameters"
// @Success 201 {array} dto.CodeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /codes/generate [post]
func (h *codeHandler) generateCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.GenerateCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for GenerateCodes", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_user_id", actorID))
	logger.Info("Received request to generate codes", slog.String("package_id", req.PackageID), slog.Int("quantity", req.Quantity))

	codes, err := h.codeService.GenerateCodes(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Package not found for code generation")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Package not found"})
		} else {
			logger.Error("Failed to generate codes", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate codes"})
		}
		return
	}

	logger.Info("Codes generated", slog.Int("count", len(codes)))
	c.JSON(http.StatusCreated, dto.ToCodeResponses(codes))
}

// verifyCode godoc
// @Summary Verify an activation code
// @Description Checks whether a code value is redeemable without consuming it.
// @Tags codes
// @Accept json
// @Produce json
// @Param request body dto.VerifyCodeRequest true "Code value"
// @Success 200 {object} dto.VerifyCodeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /codes/verify [post]
func (h *codeHandler) verifyCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VerifyCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	resp, err := h.codeService.VerifyCode(c.Request.Context(), req.Code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Code not found for verification")
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		} else {
			logger.Error("Failed to verify code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify code"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getCode godoc
// @Summary Get a code by ID
// @Tags codes
// @Produce json
// @Param id path string true "Code ID"
// @Success 200 {object} dto.CodeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /codes/{id} [get]
func (h *codeHandler) getCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	codeID := c.Param("id")

	code, err := h.codeService.GetCodeByID(c.Request.Context(), codeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Code not found", slog.String("code_id", codeID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		} else {
			logger.Error("Failed to get code", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCodeResponse(code, nil))
}

// listCodesByOwner godoc
// @Summary List codes held by an account
// @Tags codes
// @Produce json
// @Param ownerID query string true "Owner account ID"
// @Success 200 {array} dto.CodeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /codes [get]
func (h *codeHandler) listCodesByOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	ownerID := c.Query("ownerID")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerID query parameter is required"})
		return
	}

	codes, err := h.codeService.ListCodesByOwner(c.Request.Context(), ownerID)
	if err != nil {
		logger.Error("Failed to list codes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list codes"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCodeResponses(codes))
}

// toggleCodeStatus godoc
// @Summary Toggle a code between ACTIVE and DEACTIVATED
// @Description USED and EXPIRED codes cannot be toggled.
// @Tags codes
// @Produce json
// @Param id path string true "Code ID"
// @Success 200 {object} dto.CodeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /codes/{id}/toggle [post]
func (h *codeHandler) toggleCodeStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	codeID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_user_id", actorID), slog.String("code_id", codeID))
	logger.Info("Received request to toggle code status")

	code, err := h.codeService.ToggleCodeStatus(c.Request.Context(), codeID, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Code not found for toggle")
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		case errors.Is(err, services.ErrCodeNotToggleable):
			logger.Warn("Code not toggleable", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Code status moved concurrently")
			c.JSON(http.StatusConflict, gin.H{"error": "Code status changed concurrently, retry"})
		default:
			logger.Error("Failed to toggle code status", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to toggle code status"})
		}
		return
	}

	logger.Info("Code status toggled", slog.String("status", string(code.Status)))
	c.JSON(http.StatusOK, dto.ToCodeResponse(code, nil))
}
