package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
)

var ErrNotAnOwner = errors.New("user is not a property owner")

// ownerBalanceService derives owner balance snapshots from the finance ledger
// and the payout pipeline. It writes nothing: every number is recomputed from
// the underlying rows on each call.
type ownerBalanceService struct {
	BaseService
	ledgerRepo  portsrepo.OwnerLedgerRepositoryFacade
	payoutRepo  portsrepo.PayoutReader
	userRepo    portsrepo.UserReader
	settingsSvc portssvc.SettingsReaderSvc
}

// NewOwnerBalanceService creates a new owner balance service.
func NewOwnerBalanceService(
	ledgerRepo portsrepo.OwnerLedgerRepositoryFacade,
	payoutRepo portsrepo.PayoutReader,
	userRepo portsrepo.UserReader,
	settingsSvc portssvc.SettingsReaderSvc,
) portssvc.OwnerBalanceSvcFacade {
	return &ownerBalanceService{
		ledgerRepo:  ledgerRepo,
		payoutRepo:  payoutRepo,
		userRepo:    userRepo,
		settingsSvc: settingsSvc,
	}
}

var _ portssvc.OwnerBalanceSvcFacade = (*ownerBalanceService)(nil)

// inFlightStatuses are the payout statuses that reserve owner funds before the
// withdrawal is reconciled into the ledger.
var inFlightStatuses = []domain.PayoutStatus{domain.PayoutPending, domain.PayoutApproved, domain.PayoutPaid}

// CalculateOwnerBalance aggregates the owner's ledger into a balance snapshot.
// NetBalance is income minus expenses, commission deductions and reconciled
// payouts; AvailableBalance further subtracts in-flight payout requests.
func (s *ownerBalanceService) CalculateOwnerBalance(ctx context.Context, organizationID string, ownerID string, params dto.OwnerBalanceParams) (*dto.OwnerBalanceResponse, error) {
	owner, err := s.userRepo.FindUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if owner.OrganizationID != organizationID || owner.Role != domain.RoleOwner {
		return nil, apperrors.NewAppError(400, "user is not a property owner", ErrNotAnOwner)
	}

	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	filter := portsrepo.OwnerLedgerFilter{
		PropertyID: params.PropertyID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
	}
	totals, err := s.ledgerRepo.GetOwnerLedgerTotals(ctx, organizationID, ownerID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate owner ledger", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to aggregate owner ledger: %w", err)
	}

	inFlight, err := s.payoutRepo.SumPayoutsByStatus(ctx, organizationID, ownerID, inFlightStatuses)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum in-flight payouts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to sum in-flight payouts: %w", err)
	}

	net := totals.Income.Sub(totals.Expenses).Sub(totals.Commission).Sub(totals.Payouts)
	snapshot := domain.OwnerBalanceSnapshot{
		OwnerID:              ownerID,
		PropertyID:           params.PropertyID,
		StartDate:            params.StartDate,
		EndDate:              params.EndDate,
		TotalIncome:          totals.Income,
		TotalExpenses:        totals.Expenses,
		CommissionDeductions: totals.Commission,
		NetBalance:           net,
		PendingPayouts:       inFlight,
		AvailableBalance:     net.Sub(inFlight),
		Currency:             settings.Currency,
	}

	s.LogDebug(ctx, "Owner balance calculated",
		slog.String("owner_id", ownerID),
		slog.String("net", snapshot.NetBalance.String()),
		slog.String("available", snapshot.AvailableBalance.String()))

	resp := dto.ToOwnerBalanceResponse(&snapshot)
	return &resp, nil
}

// ListOwnerLedger retrieves a page of the raw ledger entries behind a snapshot.
func (s *ownerBalanceService) ListOwnerLedger(ctx context.Context, organizationID string, ownerID string, params dto.OwnerLedgerParams) (*dto.OwnerLedgerResponse, error) {
	filter := portsrepo.OwnerLedgerFilter{
		PropertyID: params.PropertyID,
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
	}
	entries, err := s.ledgerRepo.ListEntries(ctx, organizationID, ownerID, filter, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list owner ledger entries", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list owner ledger: %w", err)
	}

	responses := make([]dto.OwnerLedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToOwnerLedgerEntryResponse(&entries[i])
	}
	return &dto.OwnerLedgerResponse{
		Entries: responses,
		Limit:   params.Limit,
		Offset:  params.Offset,
	}, nil
}
