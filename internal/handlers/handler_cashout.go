package handlers

import (
	"context"
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

// cashoutHandler handles HTTP requests for the cashout lifecycle.
type cashoutHandler struct {
	cashoutService portssvc.CashoutSvcFacade
}

func newCashoutHandler(cs portssvc.CashoutSvcFacade) *cashoutHandler {
	return &cashoutHandler{cashoutService: cs}
}

// registerCashoutRoutes registers routes related to cashouts.
func registerCashoutRoutes(rg *gin.RouterGroup, cashoutService portssvc.CashoutSvcFacade) {
	h := newCashoutHandler(cashoutService)

	cashouts := rg.Group("/cashouts")
	{
		cashouts.POST("", h.requestCashout)
		cashouts.POST("/:id/approve", h.approveCashout)
		cashouts.POST("/:id/release", h.releaseCashout)
		cashouts.POST("/:id/deny", h.denyCashout)
	}
}

// requestCashout godoc
// @Summary Request a cashout
// @Description Opens a cashout against a wallet after schedule, minimum and balance checks.
// @Tags cashouts
// @Accept json
// @Produce json
// @Param cashout body dto.CreateCashoutRequest true "Cashout details"
// @Success 201 {object} dto.CashoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cashouts [post]
func (h *cashoutHandler) requestCashout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCashoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RequestCashout", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_user_id", actorID), slog.String("account_id", req.AccountID), slog.String("wallet", req.Wallet))
	logger.Info("Received cashout request", slog.String("amount", req.Amount.String()))

	resp, err := h.cashoutService.RequestCashout(c.Request.Context(), req, actorID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Dependency not found for cashout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCashoutBelowMinimum),
			errors.Is(err, services.ErrInsufficientBalance),
			errors.Is(err, services.ErrMethodAccountMismatch):
			logger.Warn("Validation error requesting cashout", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrCashoutClosed),
			errors.Is(err, services.ErrCashoutAlreadyToday),
			errors.Is(err, services.ErrCashoutPending):
			logger.Warn("Cashout refused", slog.String("error", err.Error()))
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to request cashout", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to request cashout"})
		}
		return
	}

	logger.Info("Cashout requested", slog.String("activity_id", resp.ActivityID))
	c.JSON(http.StatusCreated, resp)
}

// approveCashout godoc
// @Summary Approve a cashout
// @Description Moves a REQUESTED cashout to APPROVED.
// @Tags cashouts
// @Produce json
// @Param id path string true "Cashout activity ID"
// @Success 200 {object} dto.CashoutResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cashouts/{id}/approve [post]
func (h *cashoutHandler) approveCashout(c *gin.Context) {
	h.updateStatus(c, "approve", h.cashoutService.ApproveCashout)
}

// releaseCashout godoc
// @Summary Release a cashout
// @Description Moves an APPROVED cashout to RELEASED and posts the payout and company tax.
// @Tags cashouts
// @Produce json
// @Param id path string true "Cashout activity ID"
// @Success 200 {object} dto.CashoutResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cashouts/{id}/release [post]
func (h *cashoutHandler) releaseCashout(c *gin.Context) {
	h.updateStatus(c, "release", h.cashoutService.ReleaseCashout)
}

// denyCashout godoc
// @Summary Deny a cashout
// @Description Moves a REQUESTED or APPROVED cashout to DENIED, restoring the wallet balance.
// @Tags cashouts
// @Produce json
// @Param id path string true "Cashout activity ID"
// @Success 200 {object} dto.CashoutResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /cashouts/{id}/deny [post]
func (h *cashoutHandler) denyCashout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activityID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	// Body is optional for denials.
	_ = c.ShouldBindJSON(&body)

	logger = logger.With(slog.String("actor_user_id", actorID), slog.String("activity_id", activityID))
	logger.Info("Received request to deny cashout")

	resp, err := h.cashoutService.DenyCashout(c.Request.Context(), activityID, body.Note, actorID)
	if err != nil {
		h.writeStatusError(c, logger, err, "deny")
		return
	}

	logger.Info("Cashout denied")
	c.JSON(http.StatusOK, resp)
}

type cashoutTransition func(ctx context.Context, activityID string, actorID string) (*dto.CashoutResponse, error)

func (h *cashoutHandler) updateStatus(c *gin.Context, action string, transition cashoutTransition) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activityID := c.Param("id")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("actor_user_id", actorID), slog.String("activity_id", activityID))
	logger.Info("Received request to " + action + " cashout")

	resp, err := transition(c.Request.Context(), activityID, actorID)
	if err != nil {
		h.writeStatusError(c, logger, err, action)
		return
	}

	logger.Info("Cashout " + action + " applied", slog.String("status", resp.Status))
	c.JSON(http.StatusOK, resp)
}

func (h *cashoutHandler) writeStatusError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Cashout not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Cashout not found"})
	case errors.Is(err, services.ErrNotACashout), errors.Is(err, services.ErrInvalidStatusChange):
		logger.Warn("Invalid cashout transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" cashout", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " cashout"})
	}
}
