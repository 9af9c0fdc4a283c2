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
	ErrNonPositiveAmount    = errors.New("payout amount must be positive")
	ErrNothingToWithdraw    = errors.New("no available balance to withdraw")
	ErrBeneficiaryMissing   = errors.New("beneficiary not found in organization")
	ErrNotBeneficiary       = errors.New("only the beneficiary may confirm receipt")
	ErrNotRequesterNorAdmin = errors.New("only the requester or an admin may cancel")
)

// payoutService orchestrates the payout request lifecycle.
type payoutService struct {
	BaseService
	payoutRepo      portsrepo.PayoutRepositoryFacade
	balanceRepo     portsrepo.BalanceReader
	userRepo        portsrepo.UserReader
	ownerBalanceSvc portssvc.OwnerBalanceSvcFacade
	settingsSvc     portssvc.SettingsReaderSvc
	notifier        portssvc.NotificationSvcFacade
}

// NewPayoutService creates a new payout service.
func NewPayoutService(
	payoutRepo portsrepo.PayoutRepositoryFacade,
	balanceRepo portsrepo.BalanceReader,
	userRepo portsrepo.UserReader,
	ownerBalanceSvc portssvc.OwnerBalanceSvcFacade,
	settingsSvc portssvc.SettingsReaderSvc,
	notifier portssvc.NotificationSvcFacade,
) portssvc.PayoutSvcFacade {
	return &payoutService{
		payoutRepo:      payoutRepo,
		balanceRepo:     balanceRepo,
		userRepo:        userRepo,
		ownerBalanceSvc: ownerBalanceSvc,
		settingsSvc:     settingsSvc,
		notifier:        notifier,
	}
}

var _ portssvc.PayoutSvcFacade = (*payoutService)(nil)

// CreatePayout validates the requested amount against the beneficiary's
// available balance and persists a new pending request. The available balance
// is a snapshot: the authoritative re-check happens under a row lock at
// approval time.
func (s *payoutService) CreatePayout(ctx context.Context, organizationID string, req dto.CreatePayoutRequest, requesterUserID string) (*domain.PayoutRequest, error) {
	beneficiaryID := requesterUserID
	if req.BeneficiaryID != nil && *req.BeneficiaryID != "" {
		beneficiaryID = *req.BeneficiaryID
	}

	beneficiary, err := s.userRepo.FindUserByID(ctx, beneficiaryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "beneficiary not found", ErrBeneficiaryMissing)
		}
		return nil, err
	}
	if beneficiary.OrganizationID != organizationID || !beneficiary.IsActive {
		return nil, apperrors.NewAppError(404, "beneficiary not found", ErrBeneficiaryMissing)
	}

	if beneficiaryID != requesterUserID {
		if err := s.requireAdmin(ctx, requesterUserID); err != nil {
			return nil, err
		}
	}

	kind := domain.BeneficiaryAgent
	if beneficiary.Role == domain.RoleOwner {
		kind = domain.BeneficiaryOwner
	} else if !beneficiary.Role.AgentRole() {
		return nil, apperrors.NewAppError(400, "beneficiary must be an agent or an owner", apperrors.ErrValidation)
	}

	available, currency, err := s.availableBalance(ctx, organizationID, beneficiary, kind)
	if err != nil {
		return nil, err
	}

	amount := req.Amount
	if req.PayoutType == domain.PayoutFull {
		amount = available
	}
	if !amount.IsPositive() {
		if req.PayoutType == domain.PayoutFull {
			return nil, apperrors.NewAppError(422, "no available balance to withdraw", ErrNothingToWithdraw)
		}
		return nil, apperrors.NewAppError(400, "payout amount must be positive", ErrNonPositiveAmount)
	}
	if amount.GreaterThan(available) {
		return nil, apperrors.NewAppError(422,
			fmt.Sprintf("requested %s exceeds available balance %s", amount.String(), available.String()),
			apperrors.ErrInsufficientBalance)
	}

	now := time.Now()
	payout := domain.PayoutRequest{
		PayoutID:           uuid.NewString(),
		OrganizationID:     organizationID,
		BeneficiaryID:      beneficiaryID,
		BeneficiaryKind:    kind,
		RequestedAmount:    amount,
		AvailableAtRequest: available,
		PayoutType:         req.PayoutType,
		Status:             domain.PayoutPending,
		Currency:           currency,
		RequestedBy:        requesterUserID,
		Notes:              req.Notes,
		RequestedAt:        now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requesterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requesterUserID,
		},
	}
	switch {
	case req.BankDetails != nil:
		payout.BankDetails = *req.BankDetails
	case beneficiary.BankDetails != nil:
		payout.BankDetails = *beneficiary.BankDetails
	}

	if err := s.payoutRepo.CreatePayout(ctx, payout); err != nil {
		s.LogError(ctx, err, "Failed to create payout request", slog.String("beneficiary_id", beneficiaryID))
		return nil, err
	}

	s.LogInfo(ctx, "Payout request created",
		slog.String("payout_id", payout.PayoutID),
		slog.String("beneficiary_id", beneficiaryID),
		slog.String("amount", amount.String()))
	s.notifier.NotifyPayoutRequested(ctx, &payout)
	return &payout, nil
}

// availableBalance computes how much the beneficiary could withdraw right now.
func (s *payoutService) availableBalance(ctx context.Context, organizationID string, beneficiary *domain.User, kind domain.BeneficiaryKind) (decimal.Decimal, string, error) {
	settings, err := s.settingsSvc.GetSettings(ctx, organizationID)
	if err != nil {
		return decimal.Zero, "", fmt.Errorf("failed to load settings: %w", err)
	}

	if kind == domain.BeneficiaryOwner {
		snapshot, err := s.ownerBalanceSvc.CalculateOwnerBalance(ctx, organizationID, beneficiary.UserID, dto.OwnerBalanceParams{})
		if err != nil {
			return decimal.Zero, "", err
		}
		return snapshot.AvailableBalance, snapshot.Currency, nil
	}

	balance, err := s.balanceRepo.FindBalance(ctx, organizationID, beneficiary.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, settings.Currency, nil
		}
		return decimal.Zero, "", err
	}
	open, err := s.payoutRepo.SumOpenPayouts(ctx, organizationID, beneficiary.UserID, "")
	if err != nil {
		return decimal.Zero, "", err
	}
	return balance.CurrentBalance.Sub(open), settings.Currency, nil
}

func (s *payoutService) requireAdmin(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != domain.RoleAdmin {
		return apperrors.NewAppError(403, "admin role required", apperrors.ErrForbidden)
	}
	return nil
}

// ApprovePayout moves a pending request to approved. For agent payouts the
// storage layer locks the balance row and re-validates the amount; for owner
// payouts the ledger balance is recomputed here first. Either shortfall leaves
// the request pending and surfaces apperrors.ErrInsufficientBalance.
func (s *payoutService) ApprovePayout(ctx context.Context, organizationID string, payoutID string, approverUserID string) (*domain.PayoutRequest, error) {
	if err := s.requireAdmin(ctx, approverUserID); err != nil {
		return nil, err
	}
	existing, err := s.getOrgPayout(ctx, organizationID, payoutID)
	if err != nil {
		return nil, err
	}

	if existing.BeneficiaryKind == domain.BeneficiaryOwner {
		snapshot, err := s.ownerBalanceSvc.CalculateOwnerBalance(ctx, organizationID, existing.BeneficiaryID, dto.OwnerBalanceParams{})
		if err != nil {
			return nil, err
		}
		// PendingPayouts already counts this request, so hold out only the
		// other in-flight ones when re-checking the headroom.
		otherInFlight := snapshot.PendingPayouts.Sub(existing.RequestedAmount)
		if existing.RequestedAmount.GreaterThan(snapshot.NetBalance.Sub(otherInFlight)) {
			return nil, apperrors.NewAppError(422,
				fmt.Sprintf("requested %s exceeds owner balance %s",
					existing.RequestedAmount.String(), snapshot.NetBalance.Sub(otherInFlight).String()),
				apperrors.ErrInsufficientBalance)
		}
	}

	payout, err := s.payoutRepo.Approve(ctx, payoutID, approverUserID, "", time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogError(ctx, err, "Failed to approve payout", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payout approved", slog.String("payout_id", payoutID), slog.String("approved_by", approverUserID))
	s.notifier.NotifyPayoutStatusChanged(ctx, payout)
	return payout, nil
}

// RejectPayout moves a pending request to rejected with a reason. No balance effect.
func (s *payoutService) RejectPayout(ctx context.Context, organizationID string, payoutID string, req dto.RejectPayoutRequest, approverUserID string) (*domain.PayoutRequest, error) {
	if err := s.requireAdmin(ctx, approverUserID); err != nil {
		return nil, err
	}
	if _, err := s.getOrgPayout(ctx, organizationID, payoutID); err != nil {
		return nil, err
	}

	payout, err := s.payoutRepo.Reject(ctx, payoutID, approverUserID, req.Reason, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to reject payout", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payout rejected", slog.String("payout_id", payoutID), slog.String("rejected_by", approverUserID))
	s.notifier.NotifyPayoutStatusChanged(ctx, payout)
	return payout, nil
}

// MarkPayoutPaid records the money movement on an approved request. For agent
// payouts the balance debit happens in the same database transaction as the
// status flip, so a crash can never leave the money moved but the balance intact.
func (s *payoutService) MarkPayoutPaid(ctx context.Context, organizationID string, payoutID string, req dto.MarkPaidRequest, actorUserID string) (*domain.PayoutRequest, error) {
	if err := s.requireAdmin(ctx, actorUserID); err != nil {
		return nil, err
	}
	if _, err := s.getOrgPayout(ctx, organizationID, payoutID); err != nil {
		return nil, err
	}

	payout, balance, err := s.payoutRepo.MarkPaid(ctx, payoutID, req.PaymentMethod, req.PaymentReference, actorUserID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrInsufficientBalance) {
			s.LogError(ctx, err, "Failed to mark payout paid", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	fields := []any{slog.String("payout_id", payoutID), slog.String("amount", payout.RequestedAmount.String())}
	if balance != nil {
		fields = append(fields, slog.String("balance_after", balance.CurrentBalance.String()))
	}
	s.LogInfo(ctx, "Payout marked paid", fields...)
	s.notifier.NotifyPayoutStatusChanged(ctx, payout)
	return payout, nil
}

// UploadReceipt attaches a transfer receipt to a paid request.
func (s *payoutService) UploadReceipt(ctx context.Context, organizationID string, payoutID string, req dto.UploadReceiptRequest, actorUserID string) (*domain.PayoutRequest, error) {
	if err := s.requireAdmin(ctx, actorUserID); err != nil {
		return nil, err
	}
	if _, err := s.getOrgPayout(ctx, organizationID, payoutID); err != nil {
		return nil, err
	}

	payout, err := s.payoutRepo.AttachReceipt(ctx, payoutID, req.ReceiptURL, actorUserID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to attach receipt", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Receipt attached to payout", slog.String("payout_id", payoutID))
	return payout, nil
}

// ConfirmReceived completes a paid request on the beneficiary's confirmation.
// For agent payouts the funding commission entries flip to settled in the same
// database transaction.
func (s *payoutService) ConfirmReceived(ctx context.Context, organizationID string, payoutID string, beneficiaryUserID string) (*domain.PayoutRequest, error) {
	existing, err := s.getOrgPayout(ctx, organizationID, payoutID)
	if err != nil {
		return nil, err
	}
	if existing.BeneficiaryID != beneficiaryUserID {
		return nil, apperrors.NewAppError(403, "only the beneficiary may confirm receipt", ErrNotBeneficiary)
	}

	payout, err := s.payoutRepo.Complete(ctx, payoutID, beneficiaryUserID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to complete payout", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payout completed", slog.String("payout_id", payoutID))
	s.notifier.NotifyPayoutStatusChanged(ctx, payout)
	return payout, nil
}

// CancelPayout cancels a pending or approved request. Only the original
// requester or an admin may cancel.
func (s *payoutService) CancelPayout(ctx context.Context, organizationID string, payoutID string, requestingUserID string) (*domain.PayoutRequest, error) {
	existing, err := s.getOrgPayout(ctx, organizationID, payoutID)
	if err != nil {
		return nil, err
	}
	if existing.RequestedBy != requestingUserID {
		if err := s.requireAdmin(ctx, requestingUserID); err != nil {
			return nil, apperrors.NewAppError(403, "only the requester or an admin may cancel", ErrNotRequesterNorAdmin)
		}
	}

	payout, err := s.payoutRepo.Cancel(ctx, payoutID, requestingUserID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to cancel payout", slog.String("payout_id", payoutID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Payout cancelled", slog.String("payout_id", payoutID), slog.String("cancelled_by", requestingUserID))
	s.notifier.NotifyPayoutStatusChanged(ctx, payout)
	return payout, nil
}

// GetPayoutByID retrieves a payout request scoped to the organization.
func (s *payoutService) GetPayoutByID(ctx context.Context, organizationID string, payoutID string) (*domain.PayoutRequest, error) {
	return s.getOrgPayout(ctx, organizationID, payoutID)
}

// ListPayouts retrieves a filtered page of the organization's payout requests.
func (s *payoutService) ListPayouts(ctx context.Context, organizationID string, params dto.ListPayoutsParams) (*dto.ListPayoutsResponse, error) {
	filter := portsrepo.ListPayoutsFilter{BeneficiaryID: params.BeneficiaryID}
	if params.Status != nil {
		st := domain.PayoutStatus(*params.Status)
		filter.Status = &st
	}
	if params.PayoutType != nil {
		pt := domain.PayoutType(*params.PayoutType)
		filter.PayoutType = &pt
	}

	payouts, err := s.payoutRepo.ListPayouts(ctx, organizationID, filter, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list payouts", slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list payouts: %w", err)
	}
	return &dto.ListPayoutsResponse{
		Payouts: dto.ToPayoutResponses(payouts),
		Limit:   params.Limit,
		Offset:  params.Offset,
	}, nil
}

func (s *payoutService) getOrgPayout(ctx context.Context, organizationID, payoutID string) (*domain.PayoutRequest, error) {
	payout, err := s.payoutRepo.FindPayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.OrganizationID != organizationID {
		return nil, apperrors.NewNotFoundError("payout not found")
	}
	return payout, nil
}
