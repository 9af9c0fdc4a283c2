package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
)

var (
	ErrUnknownAgent      = errors.New("agent not found in organization")
	ErrInactiveAgent     = errors.New("agent is not active")
	ErrNotAnAgent        = errors.New("user does not have an agent role")
	ErrNonPositiveBase   = errors.New("commission base amount must be positive")
	ErrNoAgentsOnBooking = errors.New("booking has no agent legs to settle")
)

// commissionService settles booking commissions and maintains agent balances.
type commissionService struct {
	BaseService
	commissionRepo portsrepo.CommissionRepositoryFacade
	balanceRepo    portsrepo.BalanceRepositoryFacade
	payoutRepo     portsrepo.PayoutRepositoryFacade
	userRepo       portsrepo.UserReader
	settingsSvc    portssvc.SettingsReaderSvc
	notifier       portssvc.NotificationSvcFacade
}

// NewCommissionService creates a new commission service.
func NewCommissionService(
	commissionRepo portsrepo.CommissionRepositoryFacade,
	balanceRepo portsrepo.BalanceRepositoryFacade,
	payoutRepo portsrepo.PayoutRepositoryFacade,
	userRepo portsrepo.UserReader,
	settingsSvc portssvc.SettingsReaderSvc,
	notifier portssvc.NotificationSvcFacade,
) portssvc.CommissionSvcFacade {
	return &commissionService{
		commissionRepo: commissionRepo,
		balanceRepo:    balanceRepo,
		payoutRepo:     payoutRepo,
		userRepo:       userRepo,
		settingsSvc:    settingsSvc,
		notifier:       notifier,
	}
}

var _ portssvc.CommissionSvcFacade = (*commissionService)(nil)

// ProcessBookingConfirmed settles the commissions owed on a confirmed booking.
// Retail legs are computed on the booking's net revenue, referral legs on the
// management fee. Each agent leg is processed independently: a failure on one
// leg is collected into the result and never rolls back the other legs.
// Redelivered events are absorbed by the storage layer's uniqueness on
// (booking, agent, type), so calling this twice with the same payload leaves
// every balance unchanged.
func (s *commissionService) ProcessBookingConfirmed(ctx context.Context, organizationID string, req dto.BookingConfirmedRequest) (*dto.SettlementResult, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load org settings for settlement", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	retailBase := req.NetRevenue
	referralBase := req.ResolvedManagementFee(settings.ManagementFeePercent)

	legs := bookingLegs(req)
	if len(legs) == 0 {
		return nil, apperrors.NewAppError(400, "booking has no agent legs", ErrNoAgentsOnBooking)
	}

	agents, err := s.lookupAgents(ctx, legs)
	if err != nil {
		return nil, err
	}

	result := &dto.SettlementResult{BookingID: req.BookingID}
	now := time.Now()

	for _, leg := range legs {
		agent, err := s.validateAgent(agents, leg)
		if err != nil {
			s.LogWarn(ctx, "Skipping agent leg",
				slog.String("agent_id", leg.AgentID),
				slog.String("agent_type", string(leg.AgentType)),
				slog.String("reason", err.Error()))
			result.Failures = append(result.Failures, dto.ToAgentSettlementFailure(leg.AgentID, leg.AgentType, err))
			continue
		}

		base := retailBase
		if leg.AgentType == domain.ReferralAgent {
			base = referralBase
		}
		if !base.IsPositive() {
			s.LogWarn(ctx, "Skipping agent leg",
				slog.String("agent_id", leg.AgentID),
				slog.String("agent_type", string(leg.AgentType)),
				slog.String("reason", ErrNonPositiveBase.Error()))
			result.Failures = append(result.Failures, dto.ToAgentSettlementFailure(leg.AgentID, leg.AgentType, ErrNonPositiveBase))
			continue
		}

		rate := ResolveCommissionRate(agent, leg.AgentType, settings)
		entry := domain.CommissionEntry{
			EntryID:          uuid.NewString(),
			OrganizationID:   organizationID,
			AgentID:          leg.AgentID,
			AgentType:        leg.AgentType,
			PropertyID:       req.PropertyID,
			BookingID:        req.BookingID,
			BaseAmount:       base,
			CommissionRate:   rate,
			CommissionAmount: CalculateCommission(base, rate),
			Currency:         req.Currency,
			Status:           domain.CommissionPending,
			ReferenceNumber:  domain.CommissionReference(leg.AgentType, req.BookingID),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     domain.SystemRequester,
				LastUpdatedAt: now,
				LastUpdatedBy: domain.SystemRequester,
			},
		}

		balance, applied, err := s.commissionRepo.ApplyCommission(ctx, entry)
		if err != nil {
			s.LogError(ctx, err, "Failed to apply commission entry",
				slog.String("agent_id", leg.AgentID),
				slog.Int64("booking_id", req.BookingID))
			result.Failures = append(result.Failures, dto.ToAgentSettlementFailure(leg.AgentID, leg.AgentType, err))
			continue
		}

		if !applied {
			s.LogInfo(ctx, "Commission entry already settled, skipping redelivery",
				slog.String("agent_id", leg.AgentID),
				slog.Int64("booking_id", req.BookingID))
			existing, err := s.commissionRepo.FindEntry(ctx, req.BookingID, leg.AgentID, leg.AgentType)
			if err == nil {
				result.Entries = append(result.Entries, dto.ToCommissionEntryResponse(existing))
			}
			continue
		}

		result.Entries = append(result.Entries, dto.ToCommissionEntryResponse(&entry))
		s.LogInfo(ctx, "Commission applied",
			slog.String("entry_id", entry.EntryID),
			slog.String("agent_id", leg.AgentID),
			slog.String("amount", entry.CommissionAmount.String()),
			slog.String("balance", balance.CurrentBalance.String()))

		if settings.AutoPayoutEnabled {
			if payout := s.maybeTriggerAutoPayout(ctx, organizationID, balance, agent, settings); payout != nil {
				result.TriggeredPayouts = append(result.TriggeredPayouts, dto.ToPayoutResponse(payout))
			}
		}
	}

	return result, nil
}

// bookingLegs expands the optional agent IDs of a booking into legs.
func bookingLegs(req dto.BookingConfirmedRequest) []CommissionLeg {
	var legs []CommissionLeg
	if req.RetailAgentID != nil && *req.RetailAgentID != "" {
		legs = append(legs, CommissionLeg{AgentID: *req.RetailAgentID, AgentType: domain.RetailAgent})
	}
	if req.ReferralAgentID != nil && *req.ReferralAgentID != "" {
		legs = append(legs, CommissionLeg{AgentID: *req.ReferralAgentID, AgentType: domain.ReferralAgent})
	}
	return legs
}

func (s *commissionService) lookupAgents(ctx context.Context, legs []CommissionLeg) (map[string]domain.User, error) {
	ids := make([]string, len(legs))
	for i, leg := range legs {
		ids[i] = leg.AgentID
	}
	agents, err := s.userRepo.FindUsersByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up booking agents")
		return nil, fmt.Errorf("failed to look up agents: %w", err)
	}
	return agents, nil
}

func (s *commissionService) validateAgent(agents map[string]domain.User, leg CommissionLeg) (*domain.User, error) {
	agent, ok := agents[leg.AgentID]
	if !ok {
		return nil, ErrUnknownAgent
	}
	if !agent.IsActive || agent.DeletedAt != nil {
		return nil, ErrInactiveAgent
	}
	if !agent.Role.AgentRole() {
		return nil, ErrNotAnAgent
	}
	return &agent, nil
}

// maybeTriggerAutoPayout raises an auto payout request when the agent's
// balance, net of already open requests, has reached the organization
// threshold. A nil return means no payout was created. Failures here are
// logged and swallowed; the commission that triggered the check is already
// committed and must not be affected.
func (s *commissionService) maybeTriggerAutoPayout(ctx context.Context, organizationID string, balance *domain.AgentBalance, agent *domain.User, settings *domain.OrgSettings) *domain.PayoutRequest {
	if balance.CurrentBalance.LessThan(settings.AutoPayoutThreshold) {
		return nil
	}

	open, err := s.payoutRepo.SumOpenPayouts(ctx, organizationID, balance.AgentID, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to sum open payouts for auto payout check", slog.String("agent_id", balance.AgentID))
		return nil
	}

	available := balance.CurrentBalance.Sub(open)
	if available.LessThan(settings.AutoPayoutThreshold) {
		return nil
	}

	now := time.Now()
	payout := domain.PayoutRequest{
		PayoutID:           uuid.NewString(),
		OrganizationID:     organizationID,
		BeneficiaryID:      balance.AgentID,
		BeneficiaryKind:    domain.BeneficiaryAgent,
		RequestedAmount:    available,
		AvailableAtRequest: available,
		PayoutType:         domain.PayoutAuto,
		Status:             domain.PayoutPending,
		Currency:           settings.Currency,
		RequestedBy:        domain.SystemRequester,
		RequestedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemRequester,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemRequester,
		},
	}
	if agent != nil && agent.BankDetails != nil {
		payout.BankDetails = *agent.BankDetails
	}

	if err := s.payoutRepo.CreatePayout(ctx, payout); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Open auto payout already exists, skipping trigger", slog.String("agent_id", balance.AgentID))
		} else {
			s.LogError(ctx, err, "Failed to create auto payout request", slog.String("agent_id", balance.AgentID))
		}
		return nil
	}

	s.LogInfo(ctx, "Auto payout triggered",
		slog.String("payout_id", payout.PayoutID),
		slog.String("agent_id", balance.AgentID),
		slog.String("amount", payout.RequestedAmount.String()))
	s.notifier.NotifyPayoutRequested(ctx, &payout)
	return &payout
}

// RunAutoPayoutSweep scans the organization's balances and raises auto payout
// requests for every agent at or above the threshold. Intended for periodic
// runs and after a threshold is lowered; individual failures are logged and
// the sweep continues.
func (s *commissionService) RunAutoPayoutSweep(ctx context.Context, organizationID string) (int, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}
	if !settings.AutoPayoutEnabled {
		return 0, nil
	}

	balances, err := s.balanceRepo.ListBalancesAtOrAbove(ctx, organizationID, settings.AutoPayoutThreshold)
	if err != nil {
		s.LogError(ctx, err, "Failed to list balances for auto payout sweep", slog.String("organization_id", organizationID))
		return 0, fmt.Errorf("failed to list balances: %w", err)
	}

	triggered := 0
	for i := range balances {
		balance := &balances[i]
		var agent *domain.User
		if u, err := s.userRepo.FindUserByID(ctx, balance.AgentID); err == nil {
			agent = u
		}
		if payout := s.maybeTriggerAutoPayout(ctx, organizationID, balance, agent, settings); payout != nil {
			triggered++
		}
	}
	return triggered, nil
}

// RunAutoPayoutSweepAll runs the sweep over every organization holding agent
// balances. An organization that fails is logged and skipped.
func (s *commissionService) RunAutoPayoutSweepAll(ctx context.Context) (int, error) {
	orgIDs, err := s.balanceRepo.ListOrganizationIDs(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for auto payout sweep")
		return 0, fmt.Errorf("failed to list organizations: %w", err)
	}

	total := 0
	for _, orgID := range orgIDs {
		triggered, err := s.RunAutoPayoutSweep(ctx, orgID)
		if err != nil {
			s.LogError(ctx, err, "Auto payout sweep failed for organization", slog.String("organization_id", orgID))
			continue
		}
		total += triggered
	}
	return total, nil
}

// ListAgentCommissions retrieves a page of the agent's commission entries.
func (s *commissionService) ListAgentCommissions(ctx context.Context, organizationID string, agentID string, params dto.ListCommissionsParams) (*dto.ListCommissionsResponse, error) {
	entries, err := s.commissionRepo.ListEntriesByAgent(ctx, organizationID, agentID, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list commission entries", slog.String("agent_id", agentID))
		return nil, fmt.Errorf("failed to list commissions: %w", err)
	}
	return &dto.ListCommissionsResponse{
		Entries: dto.ToCommissionEntryResponses(entries),
		Limit:   params.Limit,
		Offset:  params.Offset,
	}, nil
}

// GetAgentBalance retrieves the agent's running balance. Agents that never
// earned a commission get a zero-valued balance rather than a not-found error.
func (s *commissionService) GetAgentBalance(ctx context.Context, organizationID string, agentID string) (*domain.AgentBalance, error) {
	balance, err := s.balanceRepo.FindBalance(ctx, organizationID, agentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.AgentBalance{
				AgentID:            agentID,
				OrganizationID:     organizationID,
				TotalEarned:        decimal.Zero,
				TotalPaid:          decimal.Zero,
				CurrentBalance:     decimal.Zero,
				PendingCommissions: decimal.Zero,
			}, nil
		}
		s.LogError(ctx, err, "Failed to find agent balance", slog.String("agent_id", agentID))
		return nil, err
	}
	return balance, nil
}
