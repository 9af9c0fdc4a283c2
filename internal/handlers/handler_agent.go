package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/middleware"
)

// agentHandler serves agent-facing commission and balance reads.
type agentHandler struct {
	commissionService portssvc.CommissionSvcFacade
}

func newAgentHandler(cs portssvc.CommissionSvcFacade) *agentHandler {
	return &agentHandler{commissionService: cs}
}

func registerAgentRoutes(rg *gin.RouterGroup, commissionService portssvc.CommissionSvcFacade) {
	h := newAgentHandler(commissionService)

	agents := rg.Group("/agents/:agentID")
	{
		agents.GET("/balance", h.getAgentBalance)
		agents.GET("/commissions", h.listAgentCommissions)
	}
}

// getAgentBalance godoc
// @Summary Get an agent's running balance
// @Tags agents
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param agentID path string true "Agent user ID"
// @Success 200 {object} dto.AgentBalanceResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/agents/{agentID}/balance [get]
func (h *agentHandler) getAgentBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	balance, err := h.commissionService.GetAgentBalance(c.Request.Context(), c.Param("orgID"), c.Param("agentID"))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve agent balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToAgentBalanceResponse(balance))
}

// listAgentCommissions godoc
// @Summary List an agent's commission entries
// @Tags agents
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param agentID path string true "Agent user ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} dto.ListCommissionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{orgID}/agents/{agentID}/commissions [get]
func (h *agentHandler) listAgentCommissions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCommissionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.commissionService.ListAgentCommissions(c.Request.Context(), c.Param("orgID"), c.Param("agentID"), params)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list commissions")
		return
	}

	c.JSON(http.StatusOK, resp)
}
