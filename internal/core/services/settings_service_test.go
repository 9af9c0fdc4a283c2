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

// MockSettingsRepository is a mock type for the SettingsRepositoryFacade interface
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) FindSettings(ctx context.Context, organizationID string) (*domain.OrgSettings, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrgSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSettings(ctx context.Context, settings domain.OrgSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Test Suite Setup ---

type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.SettingsSvcFacade

	orgID string
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewSettingsService(suite.mockRepo)
	suite.orgID = uuid.NewString()
}

// --- Test Cases ---

func (suite *SettingsServiceTestSuite) TestGetSettings_Stored() {
	ctx := context.Background()
	stored := &domain.OrgSettings{
		OrganizationID:         suite.orgID,
		RetailCommissionRate:   decimal.NewFromInt(12),
		ReferralCommissionRate: decimal.NewFromInt(8),
		ManagementFeePercent:   decimal.NewFromInt(20),
		AutoPayoutThreshold:    decimal.NewFromInt(2500),
		AutoPayoutEnabled:      true,
		Currency:               "EUR",
	}

	suite.mockRepo.On("FindSettings", ctx, suite.orgID).Return(stored, nil).Once()

	settings, err := suite.service.GetSettings(ctx, suite.orgID)

	suite.Require().NoError(err)
	suite.Equal(stored, settings)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestGetSettings_DefaultsWhenMissing() {
	ctx := context.Background()

	suite.mockRepo.On("FindSettings", ctx, suite.orgID).Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetSettings(ctx, suite.orgID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settings)
	suite.Equal(suite.orgID, settings.OrganizationID)
	suite.True(settings.RetailCommissionRate.Equal(domain.DefaultRetailCommissionRate))
	suite.True(settings.AutoPayoutThreshold.Equal(domain.DefaultAutoPayoutThreshold))
	suite.True(settings.AutoPayoutEnabled)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_PartialMerge() {
	ctx := context.Background()
	updaterID := uuid.NewString()
	current := &domain.OrgSettings{
		OrganizationID:         suite.orgID,
		RetailCommissionRate:   decimal.NewFromInt(12),
		ReferralCommissionRate: decimal.NewFromInt(8),
		ManagementFeePercent:   decimal.NewFromInt(20),
		AutoPayoutThreshold:    decimal.NewFromInt(2500),
		AutoPayoutEnabled:      true,
		Currency:               "USD",
	}

	suite.mockRepo.On("FindSettings", ctx, suite.orgID).Return(current, nil).Once()

	newThreshold := decimal.NewFromInt(500)
	suite.mockRepo.On("UpsertSettings", ctx, mock.MatchedBy(func(s domain.OrgSettings) bool {
		return s.AutoPayoutThreshold.Equal(newThreshold) &&
			s.RetailCommissionRate.Equal(decimal.NewFromInt(12)) &&
			s.ReferralCommissionRate.Equal(decimal.NewFromInt(8)) &&
			s.LastUpdatedBy == updaterID
	})).Return(nil).Once()

	req := dto.UpdateSettingsRequest{AutoPayoutThreshold: &newThreshold}
	updated, err := suite.service.UpdateSettings(ctx, suite.orgID, req, updaterID)

	suite.Require().NoError(err)
	suite.True(updated.AutoPayoutThreshold.Equal(newThreshold))
	suite.True(updated.RetailCommissionRate.Equal(decimal.NewFromInt(12)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_RateOutOfBounds() {
	ctx := context.Background()
	current := domain.DefaultOrgSettings(suite.orgID)

	suite.mockRepo.On("FindSettings", ctx, suite.orgID).Return(&current, nil).Once()

	badRate := decimal.NewFromInt(140)
	req := dto.UpdateSettingsRequest{RetailCommissionRate: &badRate}
	updated, err := suite.service.UpdateSettings(ctx, suite.orgID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertSettings", mock.Anything, mock.Anything)
}

func (suite *SettingsServiceTestSuite) TestUpdateSettings_NegativeThreshold() {
	ctx := context.Background()
	current := domain.DefaultOrgSettings(suite.orgID)

	suite.mockRepo.On("FindSettings", ctx, suite.orgID).Return(&current, nil).Once()

	negative := decimal.NewFromInt(-1)
	req := dto.UpdateSettingsRequest{AutoPayoutThreshold: &negative}
	updated, err := suite.service.UpdateSettings(ctx, suite.orgID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
