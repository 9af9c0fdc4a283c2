package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// notificationHandler serves stored payout notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(ns portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: ns}
}

func registerNotificationRoutes(rg *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)
	rg.GET("/notifications", h.listNotifications)
}

// listNotifications godoc
// @Summary List recent notifications
// @Tags notifications
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {array} domain.Notification
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListCommissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	notifications, err := h.notificationService.ListNotifications(c.Request.Context(), c.Param("orgID"), userID, params.Limit, params.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list notifications")
		return
	}

	c.JSON(http.StatusOK, notifications)
}
