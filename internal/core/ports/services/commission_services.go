package services

import (
	"context"

	"github.com/propstay/settlement_backend/internal/core/domain"
	"github.com/propstay/settlement_backend/internal/dto"
)

// CommissionReaderSvc defines read operations for commission data
type CommissionReaderSvc interface {
	// ListAgentCommissions retrieves a paginated list of commission entries for an agent.
	ListAgentCommissions(ctx context.Context, organizationID string, agentID string, params dto.ListCommissionsParams) (*dto.ListCommissionsResponse, error)

	// GetAgentBalance retrieves the running balance for an agent.
	GetAgentBalance(ctx context.Context, organizationID string, agentID string) (*domain.AgentBalance, error)
}

// CommissionProcessorSvc defines the booking settlement operations
type CommissionProcessorSvc interface {
	// ProcessBookingConfirmed settles commissions for a confirmed booking.
	// Each agent leg is applied independently; a failure on one leg is
	// reported in the result and does not roll back the others.
	ProcessBookingConfirmed(ctx context.Context, organizationID string, req dto.BookingConfirmedRequest) (*dto.SettlementResult, error)

	// RunAutoPayoutSweep raises auto payout requests for every agent whose
	// balance is at or above the organization threshold. Returns the number
	// of requests created.
	RunAutoPayoutSweep(ctx context.Context, organizationID string) (int, error)

	// RunAutoPayoutSweepAll runs the sweep across every organization that
	// holds agent balances. Returns the total number of requests created.
	RunAutoPayoutSweepAll(ctx context.Context) (int, error)
}

// CommissionSvcFacade combines all commission-related service interfaces
type CommissionSvcFacade interface {
	CommissionReaderSvc
	CommissionProcessorSvc
}
