package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// webhookHandler handles inbound booking events and settlement triggers.
type webhookHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func newWebhookHandler(cs portssvc.CommissionSvcFacade) *webhookHandler {
	return &webhookHandler{commissionService: cs}
}

// registerWebhookRoutes registers the booking webhook and the manual sweep.
func registerWebhookRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newWebhookHandler(commissionService)

	// Booking systems can retry aggressively; cap deliveries per IP.
	rate, _ := limiter.NewRateFromFormatted("60-M")
	webhookLimiter := limiter.New(memory.NewStore(), rate)

	webhooks := rg.Group("/webhooks")
	{
		webhooks.POST("/booking-confirmed", middleware.RateLimit(webhookLimiter), h.bookingConfirmed)
	}

	rg.POST("/payouts/sweep", h.runAutoPayoutSweep)
}

// bookingConfirmed godoc
// @Summary Settle a confirmed booking
// @Description Applies commission entries for the booking's agents and raises auto payouts where thresholds are met. Safe to redeliver: already-settled legs are returned unchanged.
// @Tags webhooks
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param event body dto.BookingConfirmedRequest true "Booking confirmed event"
// @Success 200 {object} dto.SettlementResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/webhooks/booking-confirmed [post]
func (h *webhookHandler) bookingConfirmed(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BookingConfirmedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind booking confirmed payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received booking confirmed event",
		slog.Int64("booking_id", req.BookingID), slog.Int64("property_id", req.PropertyID))

	result, err := h.commissionService.ProcessBookingConfirmed(c.Request.Context(), c.Param("orgID"), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to settle booking")
		return
	}

	logger.Info("Booking settled",
		slog.Int64("booking_id", req.BookingID),
		slog.Int("entries", len(result.Entries)),
		slog.Int("failures", len(result.Failures)))
	c.JSON(http.StatusOK, result)
}

// runAutoPayoutSweep godoc
// @Summary Run the auto payout sweep
// @Description Raises auto payout requests for every agent at or above the organization threshold.
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} map[string]int
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/sweep [post]
func (h *webhookHandler) runAutoPayoutSweep(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	created, err := h.commissionService.RunAutoPayoutSweep(c.Request.Context(), c.Param("orgID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to run auto payout sweep")
		return
	}

	logger.Info("Auto payout sweep finished", slog.Int("created", created))
	c.JSON(http.StatusOK, gin.H{"created": created})
}
