package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// payoutHandler handles HTTP requests for the payout lifecycle.
type payoutHandler struct {
	payoutService portssvc.PayoutSvcFacade
}

func newPayoutHandler(ps portssvc.PayoutSvcFacade) *payoutHandler {
	return &payoutHandler{payoutService: ps}
}

func registerPayoutRoutes(rg *gin.RouterGroup, payoutService portssvc.PayoutSvcFacade) {
	h := newPayoutHandler(payoutService)

	payouts := rg.Group("/payouts")
	{
		payouts.POST("", h.createPayout)
		payouts.GET("", h.listPayouts)
		payouts.GET("/:payoutID", h.getPayout)
		payouts.POST("/:payoutID/approve", h.approvePayout)
		payouts.POST("/:payoutID/reject", h.rejectPayout)
		payouts.POST("/:payoutID/mark-paid", h.markPayoutPaid)
		payouts.POST("/:payoutID/receipt", h.uploadReceipt)
		payouts.POST("/:payoutID/confirm-received", h.confirmReceived)
		payouts.POST("/:payoutID/cancel", h.cancelPayout)
	}
}

// createPayout godoc
// @Summary Create a payout request
// @Description Creates a payout request against the beneficiary's available balance. Admins may request on behalf of another user.
// @Tags payouts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payout body dto.CreatePayoutRequest true "Payout details"
// @Success 201 {object} dto.PayoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse "Amount exceeds available balance"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts [post]
func (h *payoutHandler) createPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreatePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind create payout payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payout, err := h.payoutService.CreatePayout(c.Request.Context(), c.Param("orgID"), req, requesterID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create payout request")
		return
	}

	logger.Info("Payout request created", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusCreated, dto.ToPayoutResponse(payout))
}

// listPayouts godoc
// @Summary List payout requests
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param beneficiaryID query string false "Filter by beneficiary"
// @Param status query string false "Filter by status"
// @Param payoutType query string false "Filter by payout type"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListPayoutsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts [get]
func (h *payoutHandler) listPayouts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListPayoutsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.payoutService.ListPayouts(c.Request.Context(), c.Param("orgID"), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list payouts")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getPayout godoc
// @Summary Get a payout request by ID
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID} [get]
func (h *payoutHandler) getPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payout, err := h.payoutService.GetPayoutByID(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve payout")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// approvePayout godoc
// @Summary Approve a pending payout
// @Description Re-checks the beneficiary's balance and moves the request to approved. Admin only.
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not pending"
// @Failure 422 {object} ErrorResponse "Balance no longer covers the request"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/approve [post]
func (h *payoutHandler) approvePayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payout, err := h.payoutService.ApprovePayout(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), approverID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to approve payout")
		return
	}

	logger.Info("Payout approved", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// rejectPayout godoc
// @Summary Reject a pending payout
// @Description Moves the request to rejected with a reason. Admin only.
// @Tags payouts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Param rejection body dto.RejectPayoutRequest true "Rejection reason"
// @Success 200 {object} dto.PayoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not pending"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/reject [post]
func (h *payoutHandler) rejectPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	approverID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.RejectPayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payout, err := h.payoutService.RejectPayout(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), req, approverID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reject payout")
		return
	}

	logger.Info("Payout rejected", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// markPayoutPaid godoc
// @Summary Record a payout transfer
// @Description Records the bank transfer and, for agent payouts, debits the balance. Admin only.
// @Tags payouts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Param payment body dto.MarkPaidRequest true "Payment details"
// @Success 200 {object} dto.PayoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not approved"
// @Failure 422 {object} ErrorResponse "Balance no longer covers the request"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/mark-paid [post]
func (h *payoutHandler) markPayoutPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payout, err := h.payoutService.MarkPayoutPaid(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to mark payout paid")
		return
	}

	logger.Info("Payout marked paid", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// uploadReceipt godoc
// @Summary Attach a transfer receipt
// @Description Stores the receipt URL on a paid payout. Admin only.
// @Tags payouts
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Param receipt body dto.UploadReceiptRequest true "Receipt URL"
// @Success 200 {object} dto.PayoutResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not paid"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/receipt [post]
func (h *payoutHandler) uploadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UploadReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	payout, err := h.payoutService.UploadReceipt(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), req, actorID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to upload receipt")
		return
	}

	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// confirmReceived godoc
// @Summary Confirm a payout was received
// @Description The beneficiary confirms the money arrived; the request completes and its funding commission entries settle.
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 403 {object} ErrorResponse "Caller is not the beneficiary"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request is not paid"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/confirm-received [post]
func (h *payoutHandler) confirmReceived(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payout, err := h.payoutService.ConfirmReceived(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to confirm payout")
		return
	}

	logger.Info("Payout completed", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}

// cancelPayout godoc
// @Summary Cancel a payout request
// @Description Cancels a pending or approved request. Only the original requester or an admin may cancel.
// @Tags payouts
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param payoutID path string true "Payout ID"
// @Success 200 {object} dto.PayoutResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Request already finalized"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/payouts/{payoutID}/cancel [post]
func (h *payoutHandler) cancelPayout(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	payout, err := h.payoutService.CancelPayout(c.Request.Context(), c.Param("orgID"), c.Param("payoutID"), userID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to cancel payout")
		return
	}

	logger.Info("Payout cancelled", slog.String("payout_id", payout.PayoutID))
	c.JSON(http.StatusOK, dto.ToPayoutResponse(payout))
}
