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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/finbooks/bookkeeping_app/internal/handlers"
	"github.com/finbooks/bookkeeping_app/internal/platform/config"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, userID string, req dto.CreateJournalEntryRequest, resolver portssvc.AccountTypeResolver) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, req, resolver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) UpdateEntry(ctx context.Context, userID string, entryID string, req dto.UpdateJournalEntryRequest, resolver portssvc.AccountTypeResolver) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, entryID, req, resolver)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) DeleteEntry(ctx context.Context, userID string, entryID string) error {
	args := m.Called(ctx, userID, entryID)
	return args.Error(0)
}

func (m *MockJournalService) GetEntryByID(ctx context.Context, userID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, userID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalService) ListEntries(ctx context.Context, userID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	jwtSecret          string
	mockJournalService *MockJournalService
}

func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockJournalService = new(MockJournalService)

	cfg := &config.Config{
		JWTSecret:          suite.jwtSecret,
		JWTExpiryDuration:  time.Hour,
		CurrencyCode:       "USD",
		RateLimitPerMinute: 1000,
	}
	container := &portssvc.ServicesContainer{
		Journal: suite.mockJournalService,
	}
	handlers.RegisterRoutes(suite.router, cfg, container)
}

func (suite *JournalHandlerTestSuite) postJSON(url, token string, payload any) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	suite.NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) validCreateRequest() dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		ID:          "j1",
		Date:        time.Date(2025, time.May, 10, 0, 0, 0, 0, time.UTC),
		Description: "cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountName: "Cash", Debit: decimal.NewFromInt(500)},
			{AccountName: "Sales Revenue", Credit: decimal.NewFromInt(500)},
		},
	}
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	userID := "ops"
	reqBody := suite.validCreateRequest()

	returned := &domain.JournalEntry{
		ID:          reqBody.ID,
		Date:        reqBody.Date,
		Description: reqBody.Description,
		Lines:       dto.ToDomainLines(reqBody.Lines),
	}
	suite.mockJournalService.On("CreateEntry",
		mock.Anything,
		userID,
		mock.AnythingOfType("dto.CreateJournalEntryRequest"),
		mock.Anything,
	).Return(returned, nil).Once()

	w := suite.postJSON("/api/v1/journals", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var response dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("j1", response.ID)
	suite.True(response.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_RequiresToken() {
	w := suite.postJSON("/api/v1/journals", "", suite.validCreateRequest())
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnknownAccountsConflict() {
	userID := "ops"
	suite.mockJournalService.On("CreateEntry", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, &portssvc.UnknownAccountsError{Names: []string{"Sales Revenue"}}).Once()

	w := suite.postJSON("/api/v1/journals", suite.generateTestToken(userID), suite.validCreateRequest())

	suite.Equal(http.StatusConflict, w.Code)
	var body struct {
		UnknownAccounts []string `json:"unknownAccounts"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal([]string{"Sales Revenue"}, body.UnknownAccounts)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnbalancedRejected() {
	userID := "ops"
	suite.mockJournalService.On("CreateEntry", mock.Anything, userID, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("create: %w", services.ErrEntryUnbalanced)).Once()

	w := suite.postJSON("/api/v1/journals", suite.generateTestToken(userID), suite.validCreateRequest())
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_NegativeAmountFailsBinding() {
	userID := "ops"
	reqBody := suite.validCreateRequest()
	reqBody.Lines[0].Debit = decimal.NewFromInt(-500)

	w := suite.postJSON("/api/v1/journals", suite.generateTestToken(userID), reqBody)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry_NotFound() {
	userID := "ops"
	suite.mockJournalService.On("DeleteEntry", mock.Anything, userID, "missing").
		Return(fmt.Errorf("entry %q: %w", "missing", apperrors.ErrNotFound)).Once()

	req, _ := http.NewRequest(http.MethodDelete, "/api/v1/journals/missing", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_Success() {
	userID := "ops"
	entry := &domain.JournalEntry{
		ID:   "j9",
		Date: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
		Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: decimal.NewFromInt(10)},
			{AccountName: "Sales Revenue", Credit: decimal.NewFromInt(10)},
		},
	}
	suite.mockJournalService.On("GetEntryByID", mock.Anything, userID, "j9").Return(entry, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/journals/j9", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.JournalEntryResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("j9", response.ID)
	suite.Len(response.Lines, 2)
}

func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
