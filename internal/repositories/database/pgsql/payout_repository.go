package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	"github.com/propstay/settlement_backend/internal/models"
	"github.com/propstay/settlement_backend/internal/utils/mapping"
)

// PgxPayoutRepository implements the payout ports against PostgreSQL. The
// lifecycle transitions that also touch agent balances or commission entries
// (Approve, MarkPaid, Complete) own their transaction and delegate the ledger
// work to the collaborating repositories.
type PgxPayoutRepository struct {
	BaseRepository
	balanceRepo    portsrepo.BalanceTransactionSupport
	commissionRepo portsrepo.CommissionTransactionSupport
}

// newPgxPayoutRepository creates a new payout repository.
func newPgxPayoutRepository(pool *pgxpool.Pool, balanceRepo portsrepo.BalanceTransactionSupport, commissionRepo portsrepo.CommissionTransactionSupport) *PgxPayoutRepository {
	return &PgxPayoutRepository{
		BaseRepository: BaseRepository{Pool: pool},
		balanceRepo:    balanceRepo,
		commissionRepo: commissionRepo,
	}
}

var _ portsrepo.PayoutRepositoryFacade = (*PgxPayoutRepository)(nil)

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

const payoutColumns = `payout_id, organization_id, beneficiary_id, beneficiary_kind, requested_amount, available_at_request, payout_type, status, currency, bank_name, account_number, account_holder, requested_by, notes, approved_by, approval_notes, payment_method, payment_reference, receipt_url, confirmed_by, requested_at, approved_at, paid_at, completed_at, rejected_at, cancelled_at, created_at, created_by, last_updated_at, last_updated_by`

func scanPayout(row pgx.Row) (*models.PayoutRequest, error) {
	var m models.PayoutRequest
	err := row.Scan(
		&m.PayoutID,
		&m.OrganizationID,
		&m.BeneficiaryID,
		&m.BeneficiaryKind,
		&m.RequestedAmount,
		&m.AvailableAtRequest,
		&m.PayoutType,
		&m.Status,
		&m.Currency,
		&m.BankName,
		&m.AccountNumber,
		&m.AccountHolder,
		&m.RequestedBy,
		&m.Notes,
		&m.ApprovedBy,
		&m.ApprovalNotes,
		&m.PaymentMethod,
		&m.PaymentReference,
		&m.ReceiptURL,
		&m.ConfirmedBy,
		&m.RequestedAt,
		&m.ApprovedAt,
		&m.PaidAt,
		&m.CompletedAt,
		&m.RejectedAt,
		&m.CancelledAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreatePayout persists a new pending payout request. The partial unique
// index uq_payout_auto_open rejects a second open auto payout for the same
// beneficiary; that violation surfaces as apperrors.ErrDuplicate.
func (r *PgxPayoutRepository) CreatePayout(ctx context.Context, payout domain.PayoutRequest) error {
	m := mapping.ToModelPayoutRequest(payout)

	query := `
		INSERT INTO payout_requests (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PayoutID, m.OrganizationID, m.BeneficiaryID, m.BeneficiaryKind,
		m.RequestedAmount, m.AvailableAtRequest, m.PayoutType, m.Status, m.Currency,
		m.BankName, m.AccountNumber, m.AccountHolder,
		m.RequestedBy, m.Notes, m.ApprovedBy, m.ApprovalNotes,
		m.PaymentMethod, m.PaymentReference, m.ReceiptURL, m.ConfirmedBy,
		m.RequestedAt, m.ApprovedAt, m.PaidAt, m.CompletedAt, m.RejectedAt, m.CancelledAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: an open auto payout already exists for beneficiary %s", apperrors.ErrDuplicate, payout.BeneficiaryID)
		}
		return fmt.Errorf("failed to create payout request: %w", err)
	}
	return nil
}

// FindPayoutByID retrieves a payout request by its ID.
func (r *PgxPayoutRepository) FindPayoutByID(ctx context.Context, payoutID string) (*domain.PayoutRequest, error) {
	return r.findPayout(ctx, r.Pool, payoutID, false)
}

func (r *PgxPayoutRepository) findPayout(ctx context.Context, q queryRower, payoutID string, forUpdate bool) (*domain.PayoutRequest, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payout_requests
		WHERE payout_id = $1`
	if forUpdate {
		query += `
		FOR UPDATE`
	}
	query += `;`

	m, err := scanPayout(q.QueryRow(ctx, query, payoutID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payout %s: %w", payoutID, err)
	}
	payout := mapping.ToDomainPayoutRequest(*m)
	return &payout, nil
}

// ListPayouts retrieves a paginated, filtered list of an organization's payouts.
func (r *PgxPayoutRepository) ListPayouts(ctx context.Context, organizationID string, filter portsrepo.ListPayoutsFilter, limit, offset int) ([]domain.PayoutRequest, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + payoutColumns + `
		FROM payout_requests
		WHERE organization_id = $1`
	args := []any{organizationID}

	if filter.BeneficiaryID != nil {
		args = append(args, *filter.BeneficiaryID)
		query += fmt.Sprintf(" AND beneficiary_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.PayoutType != nil {
		args = append(args, string(*filter.PayoutType))
		query += fmt.Sprintf(" AND payout_type = $%d", len(args))
	}

	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY requested_at DESC, payout_id LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payout requests: %w", err)
	}
	defer rows.Close()

	payouts := []models.PayoutRequest{}
	for rows.Next() {
		m, err := scanPayout(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payout row: %w", err)
		}
		payouts = append(payouts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payout rows: %w", err)
	}

	return mapping.ToDomainPayoutRequestSlice(payouts), nil
}

// SumOpenPayouts returns the total requested amount of the beneficiary's
// pending and approved requests, excluding excludePayoutID when non-empty.
func (r *PgxPayoutRepository) SumOpenPayouts(ctx context.Context, organizationID, beneficiaryID string, excludePayoutID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(requested_amount), 0)
		FROM payout_requests
		WHERE organization_id = $1 AND beneficiary_id = $2
		  AND status IN ('pending', 'approved')
		  AND ($3 = '' OR payout_id <> $3);
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, organizationID, beneficiaryID, excludePayoutID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum open payouts for beneficiary %s: %w", beneficiaryID, err)
	}
	return total, nil
}

// SumPayoutsByStatus returns the total requested amount of the beneficiary's
// requests in any of the given statuses.
func (r *PgxPayoutRepository) SumPayoutsByStatus(ctx context.Context, organizationID, beneficiaryID string, statuses []domain.PayoutStatus) (decimal.Decimal, error) {
	if len(statuses) == 0 {
		return decimal.Zero, nil
	}
	statusValues := make([]string, len(statuses))
	for i, s := range statuses {
		statusValues[i] = string(s)
	}

	query := `
		SELECT COALESCE(SUM(requested_amount), 0)
		FROM payout_requests
		WHERE organization_id = $1 AND beneficiary_id = $2 AND status = ANY($3);
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, organizationID, beneficiaryID, statusValues).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payouts by status for beneficiary %s: %w", beneficiaryID, err)
	}
	return total, nil
}

// Approve re-validates the requested amount against the live agent balance
// under a row lock, then moves pending -> approved. Owner payouts carry no
// balance row; the service recomputes their ledger balance before calling
// Approve.
func (r *PgxPayoutRepository) Approve(ctx context.Context, payoutID, approvedBy, notes string, now time.Time) (*domain.PayoutRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	payout, err := r.findPayout(ctx, tx, payoutID, true)
	if err != nil {
		return nil, err
	}
	if payout.Status != domain.PayoutPending {
		return nil, fmt.Errorf("%w: payout %s is %s, only pending requests can be approved", apperrors.ErrConflict, payoutID, payout.Status)
	}

	if payout.BeneficiaryKind == domain.BeneficiaryAgent {
		balance, err := r.balanceRepo.FindBalanceForUpdate(ctx, tx, payout.OrganizationID, payout.BeneficiaryID)
		if err != nil {
			return nil, err
		}
		if balance.CurrentBalance.LessThan(payout.RequestedAmount) {
			return nil, fmt.Errorf("%w: balance %s is below requested amount %s", apperrors.ErrInsufficientBalance, balance.CurrentBalance.String(), payout.RequestedAmount.String())
		}
	}

	query := `
		UPDATE payout_requests
		SET status = $1, approved_by = $2, approval_notes = $3, approved_at = $4,
		    last_updated_at = $4, last_updated_by = $2
		WHERE payout_id = $5
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(tx.QueryRow(ctx, query, string(domain.PayoutApproved), approvedBy, nullIfEmpty(notes), now, payoutID))
	if err != nil {
		return nil, fmt.Errorf("failed to approve payout %s: %w", payoutID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	approved := mapping.ToDomainPayoutRequest(*m)
	return &approved, nil
}

// Reject moves pending -> rejected. The status guard is in the WHERE clause;
// zero rows with an existing request means a state conflict.
func (r *PgxPayoutRepository) Reject(ctx context.Context, payoutID, rejectedBy, notes string, now time.Time) (*domain.PayoutRequest, error) {
	query := `
		UPDATE payout_requests
		SET status = $1, approved_by = $2, approval_notes = $3, rejected_at = $4,
		    last_updated_at = $4, last_updated_by = $2
		WHERE payout_id = $5 AND status = $6
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(r.Pool.QueryRow(ctx, query, string(domain.PayoutRejected), rejectedBy, nullIfEmpty(notes), now, payoutID, string(domain.PayoutPending)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, payoutID, "only pending requests can be rejected")
		}
		return nil, fmt.Errorf("failed to reject payout %s: %w", payoutID, err)
	}
	rejected := mapping.ToDomainPayoutRequest(*m)
	return &rejected, nil
}

// Cancel moves pending|approved -> cancelled.
func (r *PgxPayoutRepository) Cancel(ctx context.Context, payoutID, cancelledBy string, now time.Time) (*domain.PayoutRequest, error) {
	query := `
		UPDATE payout_requests
		SET status = $1, cancelled_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE payout_id = $4 AND status IN ($5, $6)
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(r.Pool.QueryRow(ctx, query, string(domain.PayoutCancelled), now, cancelledBy, payoutID, string(domain.PayoutPending), string(domain.PayoutApproved)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, payoutID, "only pending or approved requests can be cancelled")
		}
		return nil, fmt.Errorf("failed to cancel payout %s: %w", payoutID, err)
	}
	cancelled := mapping.ToDomainPayoutRequest(*m)
	return &cancelled, nil
}

// MarkPaid moves approved -> paid. For agent payouts the balance debit runs
// in the same transaction so the money leaves the balance exactly once and
// only together with the status flip.
func (r *PgxPayoutRepository) MarkPaid(ctx context.Context, payoutID, paymentMethod, paymentReference, actorID string, now time.Time) (*domain.PayoutRequest, *domain.AgentBalance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	payout, err := r.findPayout(ctx, tx, payoutID, true)
	if err != nil {
		return nil, nil, err
	}
	if payout.Status != domain.PayoutApproved {
		return nil, nil, fmt.Errorf("%w: payout %s is %s, only approved requests can be marked paid", apperrors.ErrConflict, payoutID, payout.Status)
	}

	var balance *domain.AgentBalance
	if payout.BeneficiaryKind == domain.BeneficiaryAgent {
		balance, err = r.balanceRepo.ApplyPayoutDebitInTx(ctx, tx, payout.OrganizationID, payout.BeneficiaryID, payout.RequestedAmount, actorID, now)
		if err != nil {
			return nil, nil, err
		}
	}

	query := `
		UPDATE payout_requests
		SET status = $1, payment_method = $2, payment_reference = $3, paid_at = $4,
		    last_updated_at = $4, last_updated_by = $5
		WHERE payout_id = $6
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(tx.QueryRow(ctx, query, string(domain.PayoutPaid), nullIfEmpty(paymentMethod), nullIfEmpty(paymentReference), now, actorID, payoutID))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to mark payout %s paid: %w", payoutID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	paid := mapping.ToDomainPayoutRequest(*m)
	return &paid, balance, nil
}

// AttachReceipt stores the receipt URL on a paid request.
func (r *PgxPayoutRepository) AttachReceipt(ctx context.Context, payoutID, receiptURL, actorID string, now time.Time) (*domain.PayoutRequest, error) {
	query := `
		UPDATE payout_requests
		SET receipt_url = $1, last_updated_at = $2, last_updated_by = $3
		WHERE payout_id = $4 AND status = $5
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(r.Pool.QueryRow(ctx, query, receiptURL, now, actorID, payoutID, string(domain.PayoutPaid)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.conflictOrMissing(ctx, payoutID, "receipts can only be attached to paid requests")
		}
		return nil, fmt.Errorf("failed to attach receipt to payout %s: %w", payoutID, err)
	}
	payout := mapping.ToDomainPayoutRequest(*m)
	return &payout, nil
}

// Complete moves paid -> completed. For agent payouts the pending commission
// entries that funded the payout are settled in the same transaction and the
// balance's pending figure is reduced by the settled total.
func (r *PgxPayoutRepository) Complete(ctx context.Context, payoutID, confirmedBy string, now time.Time) (*domain.PayoutRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	payout, err := r.findPayout(ctx, tx, payoutID, true)
	if err != nil {
		return nil, err
	}
	if payout.Status != domain.PayoutPaid {
		return nil, fmt.Errorf("%w: payout %s is %s, only paid requests can be completed", apperrors.ErrConflict, payoutID, payout.Status)
	}

	if payout.BeneficiaryKind == domain.BeneficiaryAgent {
		settled, err := r.commissionRepo.SettleEntriesForAgentInTx(ctx, tx, payout.OrganizationID, payout.BeneficiaryID, confirmedBy, now)
		if err != nil {
			return nil, err
		}
		if settled.IsPositive() {
			if err := r.balanceRepo.ReducePendingInTx(ctx, tx, payout.OrganizationID, payout.BeneficiaryID, settled, confirmedBy, now); err != nil {
				return nil, err
			}
		}
	}

	query := `
		UPDATE payout_requests
		SET status = $1, confirmed_by = $2, completed_at = $3,
		    last_updated_at = $3, last_updated_by = $2
		WHERE payout_id = $4
		RETURNING ` + payoutColumns + `;
	`
	m, err := scanPayout(tx.QueryRow(ctx, query, string(domain.PayoutCompleted), confirmedBy, now, payoutID))
	if err != nil {
		return nil, fmt.Errorf("failed to complete payout %s: %w", payoutID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	completed := mapping.ToDomainPayoutRequest(*m)
	return &completed, nil
}

// conflictOrMissing distinguishes a state conflict from a missing row after a
// guarded update affected nothing.
func (r *PgxPayoutRepository) conflictOrMissing(ctx context.Context, payoutID, reason string) error {
	payout, err := r.FindPayoutByID(ctx, payoutID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: payout %s is %s, %s", apperrors.ErrConflict, payoutID, payout.Status, reason)
}
