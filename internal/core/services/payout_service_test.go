package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/core/services"
	"github.com/propstay/settlement_backend/internal/dto"
)

// MockOwnerBalanceService is a mock type for the OwnerBalanceSvcFacade interface
type MockOwnerBalanceService struct {
	mock.Mock
}

func (m *MockOwnerBalanceService) CalculateOwnerBalance(ctx context.Context, organizationID string, ownerID string, params dto.OwnerBalanceParams) (*dto.OwnerBalanceResponse, error) {
	args := m.Called(ctx, organizationID, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OwnerBalanceResponse), args.Error(1)
}

func (m *MockOwnerBalanceService) ListOwnerLedger(ctx context.Context, organizationID string, ownerID string, params dto.OwnerLedgerParams) (*dto.OwnerLedgerResponse, error) {
	args := m.Called(ctx, organizationID, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.OwnerLedgerResponse), args.Error(1)
}

// --- Test Suite Setup ---

type PayoutServiceTestSuite struct {
	suite.Suite
	mockPayoutRepo  *MockPayoutRepository
	mockBalanceRepo *MockBalanceRepository
	mockUserRepo    *MockUserRepository
	mockOwnerSvc    *MockOwnerBalanceService
	mockSettingsSvc *MockSettingsService
	mockNotifier    *MockNotificationService
	service         portssvc.PayoutSvcFacade

	orgID string
}

func (suite *PayoutServiceTestSuite) SetupTest() {
	suite.mockPayoutRepo = new(MockPayoutRepository)
	suite.mockBalanceRepo = new(MockBalanceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockOwnerSvc = new(MockOwnerBalanceService)
	suite.mockSettingsSvc = new(MockSettingsService)
	suite.mockNotifier = new(MockNotificationService)
	suite.service = services.NewPayoutService(
		suite.mockPayoutRepo,
		suite.mockBalanceRepo,
		suite.mockUserRepo,
		suite.mockOwnerSvc,
		suite.mockSettingsSvc,
		suite.mockNotifier,
	)
	suite.orgID = uuid.NewString()
}

func (suite *PayoutServiceTestSuite) agent(id string) *domain.User {
	return &domain.User{
		UserID:         id,
		OrganizationID: suite.orgID,
		Name:           "Agent",
		Role:           domain.RoleRetailAgent,
		IsActive:       true,
		BankDetails:    &domain.BankDetails{BankName: "First Bank", AccountNumber: "12345", AccountHolder: "Agent"},
	}
}

func (suite *PayoutServiceTestSuite) admin(id string) *domain.User {
	return &domain.User{
		UserID:         id,
		OrganizationID: suite.orgID,
		Name:           "Admin",
		Role:           domain.RoleAdmin,
		IsActive:       true,
	}
}

func (suite *PayoutServiceTestSuite) expectSettings(ctx context.Context) {
	settings := domain.DefaultOrgSettings(suite.orgID)
	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(&settings, nil).Once()
}

// expectAgentAvailable wires the repos so the agent's available balance
// resolves to current minus open.
func (suite *PayoutServiceTestSuite) expectAgentAvailable(ctx context.Context, agentID string, current, open decimal.Decimal) {
	suite.expectSettings(ctx)
	suite.mockBalanceRepo.On("FindBalance", ctx, suite.orgID, agentID).
		Return(&domain.AgentBalance{AgentID: agentID, OrganizationID: suite.orgID, CurrentBalance: current}, nil).Once()
	suite.mockPayoutRepo.On("SumOpenPayouts", ctx, suite.orgID, agentID, "").Return(open, nil).Once()
}

// --- Test Cases ---

func (suite *PayoutServiceTestSuite) TestCreatePayout_Partial() {
	ctx := context.Background()
	agentID := uuid.NewString()
	agent := suite.agent(agentID)

	suite.mockUserRepo.On("FindUserByID", ctx, agentID).Return(agent, nil).Once()
	suite.expectAgentAvailable(ctx, agentID, decimal.NewFromInt(500), decimal.NewFromInt(100))

	suite.mockPayoutRepo.On("CreatePayout", ctx, mock.MatchedBy(func(p domain.PayoutRequest) bool {
		return p.BeneficiaryID == agentID &&
			p.Status == domain.PayoutPending &&
			p.BeneficiaryKind == domain.BeneficiaryAgent &&
			p.RequestedAmount.Equal(decimal.NewFromInt(250)) &&
			p.AvailableAtRequest.Equal(decimal.NewFromInt(400)) &&
			p.BankDetails == *agent.BankDetails
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyPayoutRequested", ctx, mock.AnythingOfType("*domain.PayoutRequest")).Once()

	req := dto.CreatePayoutRequest{Amount: decimal.NewFromInt(250), PayoutType: domain.PayoutPartial}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, agentID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payout)
	suite.NotEmpty(payout.PayoutID)
	suite.Equal(domain.PayoutPending, payout.Status)
	suite.Equal(agentID, payout.RequestedBy)

	suite.mockPayoutRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestCreatePayout_FullTakesAvailable() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, agentID).Return(suite.agent(agentID), nil).Once()
	suite.expectAgentAvailable(ctx, agentID, decimal.NewFromInt(500), decimal.NewFromInt(100))

	suite.mockPayoutRepo.On("CreatePayout", ctx, mock.MatchedBy(func(p domain.PayoutRequest) bool {
		return p.RequestedAmount.Equal(decimal.NewFromInt(400))
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyPayoutRequested", ctx, mock.AnythingOfType("*domain.PayoutRequest")).Once()

	req := dto.CreatePayoutRequest{Amount: decimal.Zero, PayoutType: domain.PayoutFull}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, agentID)

	suite.Require().NoError(err)
	suite.True(payout.RequestedAmount.Equal(decimal.NewFromInt(400)))
}

func (suite *PayoutServiceTestSuite) TestCreatePayout_ExceedsAvailable() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, agentID).Return(suite.agent(agentID), nil).Once()
	suite.expectAgentAvailable(ctx, agentID, decimal.NewFromInt(500), decimal.NewFromInt(100))

	req := dto.CreatePayoutRequest{Amount: decimal.NewFromInt(450), PayoutType: domain.PayoutPartial}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, agentID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "CreatePayout", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestCreatePayout_FullWithNothingAvailable() {
	ctx := context.Background()
	agentID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, agentID).Return(suite.agent(agentID), nil).Once()
	suite.expectAgentAvailable(ctx, agentID, decimal.NewFromInt(100), decimal.NewFromInt(100))

	req := dto.CreatePayoutRequest{Amount: decimal.Zero, PayoutType: domain.PayoutFull}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, agentID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, services.ErrNothingToWithdraw)
}

func (suite *PayoutServiceTestSuite) TestCreatePayout_ForOtherRequiresAdmin() {
	ctx := context.Background()
	agentID := uuid.NewString()
	requesterID := uuid.NewString()

	requester := suite.agent(requesterID)
	suite.mockUserRepo.On("FindUserByID", ctx, agentID).Return(suite.agent(agentID), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, requesterID).Return(requester, nil).Once()

	req := dto.CreatePayoutRequest{
		BeneficiaryID: &agentID,
		Amount:        decimal.NewFromInt(100),
		PayoutType:    domain.PayoutPartial,
	}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, requesterID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PayoutServiceTestSuite) TestCreatePayout_OwnerUsesLedgerBalance() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	owner := &domain.User{
		UserID:         ownerID,
		OrganizationID: suite.orgID,
		Role:           domain.RoleOwner,
		IsActive:       true,
	}

	suite.mockUserRepo.On("FindUserByID", ctx, ownerID).Return(owner, nil).Once()
	suite.expectSettings(ctx)
	suite.mockOwnerSvc.On("CalculateOwnerBalance", ctx, suite.orgID, ownerID, dto.OwnerBalanceParams{}).
		Return(&dto.OwnerBalanceResponse{
			OwnerID:          ownerID,
			AvailableBalance: decimal.NewFromInt(900),
			Currency:         "USD",
		}, nil).Once()

	suite.mockPayoutRepo.On("CreatePayout", ctx, mock.MatchedBy(func(p domain.PayoutRequest) bool {
		return p.BeneficiaryKind == domain.BeneficiaryOwner &&
			p.RequestedAmount.Equal(decimal.NewFromInt(600))
	})).Return(nil).Once()
	suite.mockNotifier.On("NotifyPayoutRequested", ctx, mock.AnythingOfType("*domain.PayoutRequest")).Once()

	req := dto.CreatePayoutRequest{Amount: decimal.NewFromInt(600), PayoutType: domain.PayoutPartial}
	payout, err := suite.service.CreatePayout(ctx, suite.orgID, req, ownerID)

	suite.Require().NoError(err)
	suite.Equal(domain.BeneficiaryOwner, payout.BeneficiaryKind)
}

func (suite *PayoutServiceTestSuite) TestApprovePayout() {
	ctx := context.Background()
	adminID := uuid.NewString()
	payoutID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(suite.admin(adminID), nil).Once()
	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutPending}, nil).Once()

	approved := &domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutApproved}
	suite.mockPayoutRepo.On("Approve", ctx, payoutID, adminID, "", mock.AnythingOfType("time.Time")).
		Return(approved, nil).Once()
	suite.mockNotifier.On("NotifyPayoutStatusChanged", ctx, approved).Once()

	payout, err := suite.service.ApprovePayout(ctx, suite.orgID, payoutID, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayoutApproved, payout.Status)
	suite.mockPayoutRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestApprovePayout_NotAdmin() {
	ctx := context.Background()
	callerID := uuid.NewString()
	payoutID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, callerID).Return(suite.agent(callerID), nil).Once()

	payout, err := suite.service.ApprovePayout(ctx, suite.orgID, payoutID, callerID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestApprovePayout_InsufficientBalance() {
	ctx := context.Background()
	adminID := uuid.NewString()
	payoutID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(suite.admin(adminID), nil).Once()
	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutPending}, nil).Once()
	suite.mockPayoutRepo.On("Approve", ctx, payoutID, adminID, "", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	payout, err := suite.service.ApprovePayout(ctx, suite.orgID, payoutID, adminID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPayoutStatusChanged", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestApprovePayout_OwnerRecheckedAgainstLedger() {
	ctx := context.Background()
	adminID := uuid.NewString()
	ownerID := uuid.NewString()
	payoutID := uuid.NewString()

	pending := &domain.PayoutRequest{
		PayoutID:        payoutID,
		OrganizationID:  suite.orgID,
		BeneficiaryID:   ownerID,
		BeneficiaryKind: domain.BeneficiaryOwner,
		RequestedAmount: decimal.NewFromInt(600),
		Status:          domain.PayoutPending,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(suite.admin(adminID), nil).Once()
	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).Return(pending, nil).Once()

	// Pending payouts include this 600 request plus another 200 one; the net
	// balance of 900 still covers both.
	suite.mockOwnerSvc.On("CalculateOwnerBalance", ctx, suite.orgID, ownerID, dto.OwnerBalanceParams{}).
		Return(&dto.OwnerBalanceResponse{
			OwnerID:        ownerID,
			NetBalance:     decimal.NewFromInt(900),
			PendingPayouts: decimal.NewFromInt(800),
			Currency:       "USD",
		}, nil).Once()

	approved := &domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutApproved}
	suite.mockPayoutRepo.On("Approve", ctx, payoutID, adminID, "", mock.AnythingOfType("time.Time")).
		Return(approved, nil).Once()
	suite.mockNotifier.On("NotifyPayoutStatusChanged", ctx, approved).Once()

	payout, err := suite.service.ApprovePayout(ctx, suite.orgID, payoutID, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayoutApproved, payout.Status)
	suite.mockOwnerSvc.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestApprovePayout_OwnerInsufficientBalance() {
	ctx := context.Background()
	adminID := uuid.NewString()
	ownerID := uuid.NewString()
	payoutID := uuid.NewString()

	pending := &domain.PayoutRequest{
		PayoutID:        payoutID,
		OrganizationID:  suite.orgID,
		BeneficiaryID:   ownerID,
		BeneficiaryKind: domain.BeneficiaryOwner,
		RequestedAmount: decimal.NewFromInt(600),
		Status:          domain.PayoutPending,
	}
	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(suite.admin(adminID), nil).Once()
	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).Return(pending, nil).Once()

	// An expense landed after the request was made, the ledger no longer
	// covers the 600.
	suite.mockOwnerSvc.On("CalculateOwnerBalance", ctx, suite.orgID, ownerID, dto.OwnerBalanceParams{}).
		Return(&dto.OwnerBalanceResponse{
			OwnerID:        ownerID,
			NetBalance:     decimal.NewFromInt(500),
			PendingPayouts: decimal.NewFromInt(600),
			Currency:       "USD",
		}, nil).Once()

	payout, err := suite.service.ApprovePayout(ctx, suite.orgID, payoutID, adminID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrInsufficientBalance)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "Approve", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "NotifyPayoutStatusChanged", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestMarkPayoutPaid() {
	ctx := context.Background()
	adminID := uuid.NewString()
	payoutID := uuid.NewString()
	agentID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, adminID).Return(suite.admin(adminID), nil).Once()
	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutApproved}, nil).Once()

	paid := &domain.PayoutRequest{
		PayoutID:        payoutID,
		OrganizationID:  suite.orgID,
		BeneficiaryID:   agentID,
		Status:          domain.PayoutPaid,
		RequestedAmount: decimal.NewFromInt(300),
	}
	balance := &domain.AgentBalance{AgentID: agentID, CurrentBalance: decimal.NewFromInt(200)}
	suite.mockPayoutRepo.On("MarkPaid", ctx, payoutID, "bank-transfer", "TXN-1", adminID, mock.AnythingOfType("time.Time")).
		Return(paid, balance, nil).Once()
	suite.mockNotifier.On("NotifyPayoutStatusChanged", ctx, paid).Once()

	req := dto.MarkPaidRequest{PaymentMethod: "bank-transfer", PaymentReference: "TXN-1"}
	payout, err := suite.service.MarkPayoutPaid(ctx, suite.orgID, payoutID, req, adminID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayoutPaid, payout.Status)
	suite.mockPayoutRepo.AssertExpectations(suite.T())
}

func (suite *PayoutServiceTestSuite) TestConfirmReceived_OnlyBeneficiary() {
	ctx := context.Background()
	payoutID := uuid.NewString()
	beneficiaryID := uuid.NewString()
	strangerID := uuid.NewString()

	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{
			PayoutID:       payoutID,
			OrganizationID: suite.orgID,
			BeneficiaryID:  beneficiaryID,
			Status:         domain.PayoutPaid,
		}, nil).Once()

	payout, err := suite.service.ConfirmReceived(ctx, suite.orgID, payoutID, strangerID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, services.ErrNotBeneficiary)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "Complete", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestConfirmReceived() {
	ctx := context.Background()
	payoutID := uuid.NewString()
	beneficiaryID := uuid.NewString()

	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{
			PayoutID:       payoutID,
			OrganizationID: suite.orgID,
			BeneficiaryID:  beneficiaryID,
			Status:         domain.PayoutPaid,
		}, nil).Once()

	completed := &domain.PayoutRequest{
		PayoutID:       payoutID,
		OrganizationID: suite.orgID,
		BeneficiaryID:  beneficiaryID,
		Status:         domain.PayoutCompleted,
	}
	suite.mockPayoutRepo.On("Complete", ctx, payoutID, beneficiaryID, mock.AnythingOfType("time.Time")).
		Return(completed, nil).Once()
	suite.mockNotifier.On("NotifyPayoutStatusChanged", ctx, completed).Once()

	payout, err := suite.service.ConfirmReceived(ctx, suite.orgID, payoutID, beneficiaryID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayoutCompleted, payout.Status)
}

func (suite *PayoutServiceTestSuite) TestCancelPayout_RequesterAllowed() {
	ctx := context.Background()
	payoutID := uuid.NewString()
	requesterID := uuid.NewString()

	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{
			PayoutID:       payoutID,
			OrganizationID: suite.orgID,
			RequestedBy:    requesterID,
			Status:         domain.PayoutPending,
		}, nil).Once()

	cancelled := &domain.PayoutRequest{PayoutID: payoutID, OrganizationID: suite.orgID, Status: domain.PayoutCancelled}
	suite.mockPayoutRepo.On("Cancel", ctx, payoutID, requesterID, mock.AnythingOfType("time.Time")).
		Return(cancelled, nil).Once()
	suite.mockNotifier.On("NotifyPayoutStatusChanged", ctx, cancelled).Once()

	payout, err := suite.service.CancelPayout(ctx, suite.orgID, payoutID, requesterID)

	suite.Require().NoError(err)
	suite.Equal(domain.PayoutCancelled, payout.Status)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestCancelPayout_StrangerForbidden() {
	ctx := context.Background()
	payoutID := uuid.NewString()
	strangerID := uuid.NewString()

	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{
			PayoutID:       payoutID,
			OrganizationID: suite.orgID,
			RequestedBy:    uuid.NewString(),
			Status:         domain.PayoutPending,
		}, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, strangerID).Return(suite.agent(strangerID), nil).Once()

	payout, err := suite.service.CancelPayout(ctx, suite.orgID, payoutID, strangerID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, services.ErrNotRequesterNorAdmin)
	suite.mockPayoutRepo.AssertNotCalled(suite.T(), "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutServiceTestSuite) TestGetPayoutByID_WrongOrganization() {
	ctx := context.Background()
	payoutID := uuid.NewString()

	suite.mockPayoutRepo.On("FindPayoutByID", ctx, payoutID).
		Return(&domain.PayoutRequest{PayoutID: payoutID, OrganizationID: uuid.NewString()}, nil).Once()

	payout, err := suite.service.GetPayoutByID(ctx, suite.orgID, payoutID)

	suite.Require().Error(err)
	suite.Nil(payout)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---

func TestPayoutService(t *testing.T) {
	suite.Run(t, new(PayoutServiceTestSuite))
}
