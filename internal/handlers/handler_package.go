package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/odysseyhq/odyssey-backend/internal/apperrors"
	portssvc "github.com/odysseyhq/odyssey-backend/internal/core/ports/services"
	"github.com/odysseyhq/odyssey-backend/internal/dto"
	"github.com/odysseyhq/odyssey-backend/internal/middleware"
)

// packageHandler handles HTTP requests related to membership packages.
type packageHandler struct {
	packageService portssvc.PackageSvcFacade
}

func newPackageHandler(ps portssvc.PackageSvcFacade) *packageHandler {
	return &packageHandler{packageService: ps}
}

// registerPackageRoutes registers routes related to packages.
func registerPackageRoutes(rg *gin.RouterGroup, packageService portssvc.PackageSvcFacade) {
	h := newPackageHandler(packageService)

	packages := rg.Group("/packages")
	{
		packages.POST("", h.createPackage)
		packages.GET("", h.listPackages)
		packages.GET("/:id", h.getPackage)
	}
}

// createPackage godoc
// @Summary Create a membership package
// @Description Defines an enrollment tier. Packages referenced by activities are immutable.
// @Tags packages
// @Accept json
// @Produce json
// @Param package body dto.CreatePackageRequest true "Package details"
// @Success 201 {object} dto.PackageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /packages [post]
func (h *packageHandler) createPackage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePackage", slog.String("error", err.Error()))
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
	logger.Info("Received request to create package", slog.String("name", req.Name))

	pkg, err := h.packageService.CreatePackage(c.Request.Context(), req, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating package", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create package", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create package"})
		}
		return
	}

	logger.Info("Package created", slog.String("package_id", pkg.PackageID))
	c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg))
}

// listPackages godoc
// @Summary List membership packages
// @Tags packages
// @Produce json
// @Success 200 {array} dto.PackageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /packages [get]
func (h *packageHandler) listPackages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	packages, err := h.packageService.ListPackages(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list packages", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list packages"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPackageResponses(packages))
}

// getPackage godoc
// @Summary Get a package by ID
// @Tags packages
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} dto.PackageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /packages/{id} [get]
func (h *packageHandler) getPackage(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	packageID := c.Param("id")

	pkg, err := h.packageService.GetPackageByID(c.Request.Context(), packageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Package not found", slog.String("package_id", packageID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Package not found"})
		} else {
			logger.Error("Failed to get package", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve package"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}
