package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// settingsHandler serves the organization settlement configuration.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

func newSettingsHandler(ss portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: ss}
}

func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getSettings)
		settings.PUT("", h.updateSettings)
	}
}

// getSettings godoc
// @Summary Get organization settlement settings
// @Description Returns the organization's commission rates and auto payout configuration, falling back to defaults when none are stored.
// @Tags settings
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} dto.SettingsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve settings")
		return
	}

	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update organization settlement settings
// @Description Partially updates commission rates, management fee and auto payout configuration. Admin only.
// @Tags settings
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param settings body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	updaterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), c.Param("orgID"), req, updaterID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update settings")
		return
	}

	logger.Info("Settings updated", slog.String("organization_id", settings.OrganizationID))
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
