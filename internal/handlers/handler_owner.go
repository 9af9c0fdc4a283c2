package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// ownerHandler serves owner balance snapshots and the underlying ledger.
type ownerHandler struct {
	ownerBalanceService portssvc.OwnerBalanceSvcFacade
}

func newOwnerHandler(os portssvc.OwnerBalanceSvcFacade) *ownerHandler {
	return &ownerHandler{ownerBalanceService: os}
}

func registerOwnerRoutes(rg *gin.RouterGroup, ownerBalanceService portssvc.OwnerBalanceSvcFacade) {
	h := newOwnerHandler(ownerBalanceService)

	owners := rg.Group("/owners/:ownerID")
	{
		owners.GET("/balance", h.getOwnerBalance)
		owners.GET("/ledger", h.listOwnerLedger)
	}
}

// getOwnerBalance godoc
// @Summary Get an owner's balance snapshot
// @Description Aggregates the owner's income, expenses, commission deductions and in-flight payouts for the requested period.
// @Tags owners
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param ownerID path string true "Owner user ID"
// @Param propertyID query int false "Restrict to one property"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.OwnerBalanceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/owners/{ownerID}/balance [get]
func (h *ownerHandler) getOwnerBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.OwnerBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ownerBalanceService.CalculateOwnerBalance(c.Request.Context(), c.Param("orgID"), c.Param("ownerID"), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to calculate owner balance")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listOwnerLedger godoc
// @Summary List an owner's ledger entries
// @Tags owners
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param ownerID path string true "Owner user ID"
// @Param propertyID query int false "Restrict to one property"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.OwnerLedgerResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/owners/{ownerID}/ledger [get]
func (h *ownerHandler) listOwnerLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.OwnerLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.ownerBalanceService.ListOwnerLedger(c.Request.Context(), c.Param("orgID"), c.Param("ownerID"), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list owner ledger")
		return
	}

	c.JSON(http.StatusOK, resp)
}
