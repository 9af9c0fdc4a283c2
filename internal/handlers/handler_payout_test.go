package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propstay/settlement_backend/internal/core/domain"
	portssvc "github.com/propstay/settlement_backend/internal/core/ports/services"
	"github.com/propstay/settlement_backend/internal/dto"
	"github.com/propstay/settlement_backend/internal/handlers"
	"github.com/propstay/settlement_backend/internal/platform/config"
)

// --- Mock PayoutService ---
type MockPayoutService struct {
	mock.Mock
}

func (m *MockPayoutService) GetPayoutByID(ctx context.Context, organizationID string, payoutID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) ListPayouts(ctx context.Context, organizationID string, params dto.ListPayoutsParams) (*dto.ListPayoutsResponse, error) {
	args := m.Called(ctx, organizationID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPayoutsResponse), args.Error(1)
}
func (m *MockPayoutService) CreatePayout(ctx context.Context, organizationID string, req dto.CreatePayoutRequest, requesterUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, req, requesterUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) ApprovePayout(ctx context.Context, organizationID string, payoutID string, approverUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) RejectPayout(ctx context.Context, organizationID string, payoutID string, req dto.RejectPayoutRequest, approverUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, req, approverUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) MarkPayoutPaid(ctx context.Context, organizationID string, payoutID string, req dto.MarkPaidRequest, actorUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) UploadReceipt(ctx context.Context, organizationID string, payoutID string, req dto.UploadReceiptRequest, actorUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, req, actorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) ConfirmReceived(ctx context.Context, organizationID string, payoutID string, beneficiaryUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, beneficiaryUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}
func (m *MockPayoutService) CancelPayout(ctx context.Context, organizationID string, payoutID string, requestingUserID string) (*domain.PayoutRequest, error) {
	args := m.Called(ctx, organizationID, payoutID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayoutRequest), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PayoutSvcFacade = (*MockPayoutService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, organizationID string, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}
func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type PayoutHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockPayoutService *MockPayoutService
	mockUserService   *MockUserService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *PayoutHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "settlement-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *PayoutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockPayoutService = new(MockPayoutService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skips swagger registration
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Payout: suite.mockPayoutService,
		User:   suite.mockUserService,
	})
}

// expectOrgMember wires the user lookup the org scope middleware performs.
func (suite *PayoutHandlerTestSuite) expectOrgMember(userID, orgID string) {
	suite.mockUserService.On("GetUserByID", mock.Anything, userID).
		Return(&domain.User{
			UserID:         userID,
			OrganizationID: orgID,
			Role:           domain.RoleAdmin,
			IsActive:       true,
		}, nil).Once()
}

// --- Test Cases ---

func (suite *PayoutHandlerTestSuite) TestMarkPayoutPaid_ReferenceOptional() {
	orgID := uuid.NewString()
	payoutID := uuid.NewString()
	adminID := uuid.NewString()

	suite.expectOrgMember(adminID, orgID)

	paid := &domain.PayoutRequest{
		PayoutID:        payoutID,
		OrganizationID:  orgID,
		Status:          domain.PayoutPaid,
		RequestedAmount: decimal.NewFromInt(300),
		PaymentMethod:   "cash",
	}
	// Cash payments carry no transfer reference.
	suite.mockPayoutService.On("MarkPayoutPaid",
		mock.Anything, orgID, payoutID,
		dto.MarkPaidRequest{PaymentMethod: "cash", PaymentReference: ""},
		adminID,
	).Return(paid, nil).Once()

	body := bytes.NewBufferString(`{"paymentMethod":"cash"}`)
	url := fmt.Sprintf("/api/v1/organizations/%s/payouts/%s/mark-paid", orgID, payoutID)
	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var responseBody dto.PayoutResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Equal(payoutID, responseBody.PayoutID)
	suite.Empty(responseBody.PaymentReference)

	suite.mockPayoutService.AssertExpectations(suite.T())
}

func (suite *PayoutHandlerTestSuite) TestMarkPayoutPaid_MethodRequired() {
	orgID := uuid.NewString()
	payoutID := uuid.NewString()
	adminID := uuid.NewString()

	suite.expectOrgMember(adminID, orgID)

	body := bytes.NewBufferString(`{"paymentReference":"TXN-1"}`)
	url := fmt.Sprintf("/api/v1/organizations/%s/payouts/%s/mark-paid", orgID, payoutID)
	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayoutService.AssertNotCalled(suite.T(), "MarkPayoutPaid",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PayoutHandlerTestSuite) TestMarkPayoutPaid_WrongOrganizationForbidden() {
	orgID := uuid.NewString()
	payoutID := uuid.NewString()
	adminID := uuid.NewString()

	// The caller belongs to a different organization.
	suite.mockUserService.On("GetUserByID", mock.Anything, adminID).
		Return(&domain.User{
			UserID:         adminID,
			OrganizationID: uuid.NewString(),
			Role:           domain.RoleAdmin,
			IsActive:       true,
		}, nil).Once()

	body := bytes.NewBufferString(`{"paymentMethod":"bank-transfer","paymentReference":"TXN-1"}`)
	url := fmt.Sprintf("/api/v1/organizations/%s/payouts/%s/mark-paid", orgID, payoutID)
	req, _ := http.NewRequest(http.MethodPost, url, body)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(adminID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockPayoutService.AssertNotCalled(suite.T(), "MarkPayoutPaid",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestPayoutHandler(t *testing.T) {
	suite.Run(t, new(PayoutHandlerTestSuite))
}
