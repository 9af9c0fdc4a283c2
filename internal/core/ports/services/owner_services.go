package services

import (
	"context"

	"github.com/propstay/settlement_backend/internal/dto"
)

// OwnerBalanceSvcFacade defines owner balance reporting operations
type OwnerBalanceSvcFacade interface {
	// CalculateOwnerBalance aggregates the owner's ledger into a balance
	// snapshot for the requested period.
	CalculateOwnerBalance(ctx context.Context, organizationID string, ownerID string, params dto.OwnerBalanceParams) (*dto.OwnerBalanceResponse, error)

	// ListOwnerLedger retrieves the raw ledger entries behind a snapshot.
	ListOwnerLedger(ctx context.Context, organizationID string, ownerID string, params dto.OwnerLedgerParams) (*dto.OwnerLedgerResponse, error)
}
