package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propstay/settlement_backend/internal/core/domain"
	portsrepo "github.com/propstay/settlement_backend/internal/core/ports/repositories"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/core/services"
	"github.com/propstay/settlement_backend/internal/dto"
)

// MockOwnerLedgerRepository is a mock type for the OwnerLedgerRepositoryFacade interface
type MockOwnerLedgerRepository struct {
	mock.Mock
}

func (m *MockOwnerLedgerRepository) GetOwnerLedgerTotals(ctx context.Context, organizationID, ownerID string, filter portsrepo.OwnerLedgerFilter) (*portsrepo.OwnerLedgerTotals, error) {
	args := m.Called(ctx, organizationID, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portsrepo.OwnerLedgerTotals), args.Error(1)
}

func (m *MockOwnerLedgerRepository) ListEntries(ctx context.Context, organizationID, ownerID string, filter portsrepo.OwnerLedgerFilter, limit, offset int) ([]domain.OwnerLedgerEntry, error) {
	args := m.Called(ctx, organizationID, ownerID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnerLedgerEntry), args.Error(1)
}

// --- Test Suite Setup ---

type OwnerBalanceServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo  *MockOwnerLedgerRepository
	mockPayoutRepo  *MockPayoutRepository
	mockUserRepo    *MockUserRepository
	mockSettingsSvc *MockSettingsService
	service         portssvc.OwnerBalanceSvcFacade

	orgID   string
	ownerID string
}

func (suite *OwnerBalanceServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockOwnerLedgerRepository)
	suite.mockPayoutRepo = new(MockPayoutRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSettingsSvc = new(MockSettingsService)
	suite.service = services.NewOwnerBalanceService(
		suite.mockLedgerRepo,
		suite.mockPayoutRepo,
		suite.mockUserRepo,
		suite.mockSettingsSvc,
	)
	suite.orgID = uuid.NewString()
	suite.ownerID = uuid.NewString()
}

func (suite *OwnerBalanceServiceTestSuite) owner() *domain.User {
	return &domain.User{
		UserID:         suite.ownerID,
		OrganizationID: suite.orgID,
		Name:           "Owner",
		Role:           domain.RoleOwner,
		IsActive:       true,
	}
}

// --- Test Cases ---

func (suite *OwnerBalanceServiceTestSuite) TestCalculateOwnerBalance() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.ownerID).Return(suite.owner(), nil).Once()
	settings := domain.DefaultOrgSettings(suite.orgID)
	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(&settings, nil).Once()

	suite.mockLedgerRepo.On("GetOwnerLedgerTotals", ctx, suite.orgID, suite.ownerID, portsrepo.OwnerLedgerFilter{}).
		Return(&portsrepo.OwnerLedgerTotals{
			Income:     decimal.NewFromInt(5000),
			Expenses:   decimal.NewFromInt(1200),
			Commission: decimal.NewFromInt(750),
			Payouts:    decimal.NewFromInt(500),
		}, nil).Once()

	suite.mockPayoutRepo.On("SumPayoutsByStatus", ctx, suite.orgID, suite.ownerID,
		[]domain.PayoutStatus{domain.PayoutPending, domain.PayoutApproved, domain.PayoutPaid}).
		Return(decimal.NewFromInt(300), nil).Once()

	resp, err := suite.service.CalculateOwnerBalance(ctx, suite.orgID, suite.ownerID, dto.OwnerBalanceParams{})

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.True(resp.TotalIncome.Equal(decimal.NewFromInt(5000)))
	suite.True(resp.NetBalance.Equal(decimal.NewFromInt(2550)))
	suite.True(resp.PendingPayouts.Equal(decimal.NewFromInt(300)))
	suite.True(resp.AvailableBalance.Equal(decimal.NewFromInt(2250)))
	suite.Equal("USD", resp.Currency)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPayoutRepo.AssertExpectations(suite.T())
}

func (suite *OwnerBalanceServiceTestSuite) TestCalculateOwnerBalance_FilterPassedThrough() {
	ctx := context.Background()
	propertyID := int64(42)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	suite.mockUserRepo.On("FindUserByID", ctx, suite.ownerID).Return(suite.owner(), nil).Once()
	settings := domain.DefaultOrgSettings(suite.orgID)
	suite.mockSettingsSvc.On("GetSettings", ctx, suite.orgID).Return(&settings, nil).Once()

	expectedFilter := portsrepo.OwnerLedgerFilter{PropertyID: &propertyID, StartDate: &start, EndDate: &end}
	suite.mockLedgerRepo.On("GetOwnerLedgerTotals", ctx, suite.orgID, suite.ownerID, expectedFilter).
		Return(&portsrepo.OwnerLedgerTotals{
			Income:     decimal.NewFromInt(100),
			Expenses:   decimal.Zero,
			Commission: decimal.Zero,
			Payouts:    decimal.Zero,
		}, nil).Once()
	suite.mockPayoutRepo.On("SumPayoutsByStatus", ctx, suite.orgID, suite.ownerID, mock.Anything).
		Return(decimal.Zero, nil).Once()

	params := dto.OwnerBalanceParams{PropertyID: &propertyID, StartDate: &start, EndDate: &end}
	resp, err := suite.service.CalculateOwnerBalance(ctx, suite.orgID, suite.ownerID, params)

	suite.Require().NoError(err)
	suite.True(resp.NetBalance.Equal(decimal.NewFromInt(100)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *OwnerBalanceServiceTestSuite) TestCalculateOwnerBalance_NotAnOwner() {
	ctx := context.Background()
	agent := suite.owner()
	agent.Role = domain.RoleRetailAgent

	suite.mockUserRepo.On("FindUserByID", ctx, suite.ownerID).Return(agent, nil).Once()

	resp, err := suite.service.CalculateOwnerBalance(ctx, suite.orgID, suite.ownerID, dto.OwnerBalanceParams{})

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, services.ErrNotAnOwner)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "GetOwnerLedgerTotals", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OwnerBalanceServiceTestSuite) TestListOwnerLedger() {
	ctx := context.Background()
	entries := []domain.OwnerLedgerEntry{
		{EntryID: uuid.NewString(), EntryType: domain.OwnerEntryIncome, Amount: decimal.NewFromInt(800)},
		{EntryID: uuid.NewString(), EntryType: domain.OwnerEntryExpense, Amount: decimal.NewFromInt(150)},
	}

	suite.mockLedgerRepo.On("ListEntries", ctx, suite.orgID, suite.ownerID, portsrepo.OwnerLedgerFilter{}, 50, 0).
		Return(entries, nil).Once()

	resp, err := suite.service.ListOwnerLedger(ctx, suite.orgID, suite.ownerID, dto.OwnerLedgerParams{Limit: 50, Offset: 0})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 2)
	suite.Equal(50, resp.Limit)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestOwnerBalanceService(t *testing.T) {
	suite.Run(t, new(OwnerBalanceServiceTestSuite))
}
