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

// franchiseeHandler handles HTTP requests related to franchise holders.
type franchiseeHandler struct {
	franchiseeService portssvc.FranchiseeSvcFacade
}

func newFranchiseeHandler(fs portssvc.FranchiseeSvcFacade) *franchiseeHandler {
	return &franchiseeHandler{franchiseeService: fs}
}

// registerFranchiseeRoutes registers routes related to franchisees.
func registerFranchiseeRoutes(rg *gin.RouterGroup, franchiseeService portssvc.FranchiseeSvcFacade) {
	h := newFranchiseeHandler(franchiseeService)

	franchisees := rg.Group("/franchisees")
	{
		franchisees.POST("", h.createFranchisee)
		franchisees.GET("/:id", h.getFranchisee)
	}
}

// createFranchisee godoc
// @Summary Register a franchise holder
// @Description Consumes a franchise-package code and runs the franchise compensation path.
// @Tags franchisees
// @Accept json
// @Produce json
// @Param franchisee body dto.CreateFranchiseeRequest true "Franchisee details"
// @Success 201 {object} dto.FranchiseeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /franchisees [post]
func (h *franchiseeHandler) createFranchisee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFranchiseeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFranchisee", slog.String("error", err.Error()))
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
	logger.Info("Received request to create franchisee", slog.String("referrer_id", req.ReferrerID))

	franchisee, err := h.franchiseeService.CreateFranchisee(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found creating franchisee", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCodeNotRedeemable), errors.Is(err, services.ErrWrongCodeType):
			logger.Warn("Validation error creating franchisee", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrPlanAlreadyRan), errors.Is(err, apperrors.ErrConflict):
			logger.Warn("Code already consumed", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create franchisee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create franchisee"})
		}
		return
	}

	logger.Info("Franchisee created", slog.String("franchisee_id", franchisee.FranchiseeID))
	c.JSON(http.StatusCreated, dto.ToFranchiseeResponse(franchisee))
}

// getFranchisee godoc
// @Summary Get a franchisee by ID
// @Tags franchisees
// @Produce json
// @Param id path string true "Franchisee ID"
// @Success 200 {object} dto.FranchiseeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /franchisees/{id} [get]
func (h *franchiseeHandler) getFranchisee(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	franchiseeID := c.Param("id")

	franchisee, err := h.franchiseeService.GetFranchiseeByID(c.Request.Context(), franchiseeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Franchisee not found", slog.String("franchisee_id", franchiseeID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Franchisee not found"})
		} else {
			logger.Error("Failed to get franchisee", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve franchisee"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFranchiseeResponse(franchisee))
}
