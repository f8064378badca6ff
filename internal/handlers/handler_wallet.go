package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	"github.com/odysseyhq/odyssey-backend/internal/core/domain"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// walletHandler handles derived-balance and ledger reads.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers wallet routes under the account resource.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallets := rg.Group("/accounts/:id/wallets")
	{
		wallets.GET("", h.getWalletSummary)
		wallets.GET("/:wallet", h.getBalance)
		wallets.GET("/:wallet/activities", h.listActivities)
	}
}

func parseWallet(value string) (domain.WalletType, bool) {
	switch wallet := domain.WalletType(value); wallet {
	case domain.WalletC, domain.WalletB, domain.WalletF, domain.WalletGC,
		domain.WalletPVLeft, domain.WalletPVRight, domain.WalletPVTotal:
		return wallet, true
	default:
		return "", false
	}
}

// getWalletSummary godoc
// @Summary Get every wallet balance for an account
// @Tags wallets
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.WalletSummaryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/wallets [get]
func (h *walletHandler) getWalletSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	summary, err := h.walletService.GetWalletSummary(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for wallet summary", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get wallet summary", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wallet summary"})
		}
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getBalance godoc
// @Summary Get one wallet balance
// @Tags wallets
// @Produce json
// @Param id path string true "Account ID"
// @Param wallet path string true "Wallet type"
// @Success 200 {object} dto.WalletBalanceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/wallets/{wallet} [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	wallet, ok := parseWallet(c.Param("wallet"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown wallet type: " + c.Param("wallet")})
		return
	}

	balance, err := h.walletService.GetBalance(c.Request.Context(), accountID, wallet)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Account not found for balance", slog.String("account_id", accountID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		} else {
			logger.Error("Failed to get balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve balance"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.WalletBalanceResponse{
		AccountID: accountID,
		Wallet:    string(wallet),
		Balance:   balance,
	})
}

// listActivities godoc
// @Summary Page through a wallet ledger
// @Description Lists ledger entries for one wallet, newest first, with token pagination.
// @Tags wallets
// @Produce json
// @Param id path string true "Account ID"
// @Param wallet path string true "Wallet type"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListActivitiesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /accounts/{id}/wallets/{wallet}/activities [get]
func (h *walletHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	wallet, ok := parseWallet(c.Param("wallet"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown wallet type: " + c.Param("wallet")})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = parsed
	}
	var nextToken *string
	if raw := c.Query("nextToken"); raw != "" {
		nextToken = &raw
	}

	page, err := h.walletService.ListActivities(c.Request.Context(), accountID, wallet, limit, nextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Invalid pagination token", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination token"})
			return
		}
		logger.Error("Failed to list activities", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
		return
	}

	c.JSON(http.StatusOK, page)
}
