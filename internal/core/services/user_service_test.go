package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propstay/settlement_backend/internal/apperrors"
	"github.com/propstay/settlement_backend/internal/core/domain"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/core/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/utils"
)

// Writer and lifecycle methods so MockUserRepository satisfies the full
// UserRepositoryFacade. The reader methods live in commission_service_test.go.

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Test Suite Setup ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade

	orgID string
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
	suite.orgID = uuid.NewString()
}

// --- Test Cases ---

func (suite *UserServiceTestSuite) TestCreateUser() {
	ctx := context.Background()
	rate := decimal.NewFromInt(12)
	req := dto.CreateUserRequest{
		OrganizationID: suite.orgID,
		Name:           "Test Agent",
		Email:          "agent@example.com",
		Password:       "correct horse battery",
		Role:           domain.RoleRetailAgent,
		CommissionRate: &rate,
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email &&
			u.Role == domain.RoleRetailAgent &&
			u.IsActive &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Name, user.Name)
	suite.True(user.CommissionRate.Equal(rate))
	suite.WithinDuration(time.Now(), user.CreatedAt, time.Second)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		OrganizationID: suite.orgID,
		Name:           "Test Agent",
		Email:          "taken@example.com",
		Password:       "correct horse battery",
		Role:           domain.RoleRetailAgent,
	}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *UserServiceTestSuite) TestUpdateUser_PartialMerge() {
	ctx := context.Background()
	userID := uuid.NewString()
	updaterID := uuid.NewString()

	existing := &domain.User{
		UserID:         userID,
		OrganizationID: suite.orgID,
		Name:           "Old Name",
		Role:           domain.RoleRetailAgent,
		IsActive:       true,
	}
	suite.mockRepo.On("FindUserByID", ctx, userID).Return(existing, nil).Once()

	newName := "New Name"
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Name == newName && u.IsActive && u.LastUpdatedBy == updaterID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, userID, dto.UpdateUserRequest{Name: &newName}, updaterID)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	password := "correct horse battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "agent@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("the real password")
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "agent@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, user.Email, "a guess")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailSameError() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").
		Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "whatever")

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_InactiveRejected() {
	ctx := context.Background()
	password := "correct horse battery"
	hash, err := utils.HashPassword(password)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "former@example.com",
		PasswordHash: hash,
		IsActive:     false,
	}
	suite.mockRepo.On("FindUserByEmail", ctx, user.Email).Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, user.Email, password)

	suite.Require().Error(err)
	suite.Nil(authed)
	suite.ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *UserServiceTestSuite) TestDeleteUser() {
	ctx := context.Background()
	userID := uuid.NewString()
	deleterID := uuid.NewString()

	suite.mockRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), deleterID).
		Return(nil).Once()

	err := suite.service.DeleteUser(ctx, userID, deleterID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
