package handlers_test

import (
	"bytes"
	"context"
	"encoding/csv"
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

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
	"github.com/propfolio/propfolio-backend/internal/handlers"
	"github.com/propfolio/propfolio-backend/internal/middleware"
)

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GenerateStatement(ctx context.Context, req dto.GenerateStatementRequest, ownerID string) (*domain.OwnerStatement, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerStatement), args.Error(1)
}

func (m *MockStatementService) GetStatement(ctx context.Context, statementID string, ownerID string) (*domain.OwnerStatement, error) {
	args := m.Called(ctx, statementID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerStatement), args.Error(1)
}

func (m *MockStatementService) ListStatements(ctx context.Context, ownerID string) ([]domain.OwnerStatement, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnerStatement), args.Error(1)
}

func (m *MockStatementService) UpdatePayoutStatus(ctx context.Context, statementID string, status domain.PayoutStatus, ownerID string) error {
	args := m.Called(ctx, statementID, status, ownerID)
	return args.Error(0)
}

var _ portssvc.StatementSvcFacade = (*MockStatementService)(nil)

// --- Test Suite ---
type StatementHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockStatementService
	jwtSecret   string
}

func (suite *StatementHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "propfolio-test",
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

func (suite *StatementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockService = new(MockStatementService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterStatementRoutes(v1, suite.mockService)
}

func (suite *StatementHandlerTestSuite) sampleStatement(ownerID string) *domain.OwnerStatement {
	statementID := uuid.NewString()
	return &domain.OwnerStatement{
		StatementID:   statementID,
		OwnerID:       ownerID,
		PropertyID:    uuid.NewString(),
		PropertyName:  "Beach House",
		PeriodStart:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalRevenue:  decimal.NewFromInt(1000),
		TotalExpenses: decimal.NewFromInt(100),
		ManagementFee: decimal.NewFromInt(100),
		NetPayout:     decimal.NewFromInt(800),
		PayoutStatus:  domain.PayoutPending,
		BookingLines: []domain.BookingLine{
			{
				LineID:        uuid.NewString(),
				StatementID:   statementID,
				ReservationID: uuid.NewString(),
				GuestName:     "Alice",
				CheckInDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				CheckOutDate:  time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
				Revenue:       decimal.NewFromInt(1000),
				NetRevenue:    decimal.NewFromInt(1000),
			},
		},
		ExpenseLines: []domain.ExpenseLine{
			{
				LineID:      uuid.NewString(),
				StatementID: statementID,
				ExpenseType: "cleaning",
				Amount:      decimal.NewFromInt(100),
				Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}

// --- Test Cases ---

func (suite *StatementHandlerTestSuite) TestGenerateStatement_Success() {
	ownerID := uuid.NewString()
	statement := suite.sampleStatement(ownerID)

	suite.mockService.On("GenerateStatement",
		mock.AnythingOfType("*context.valueCtx"),
		mock.MatchedBy(func(req dto.GenerateStatementRequest) bool {
			return req.PropertyID == statement.PropertyID
		}),
		ownerID,
	).Return(statement, nil).Once()

	body, _ := json.Marshal(dto.GenerateStatementRequest{
		PropertyID:  statement.PropertyID,
		PeriodStart: statement.PeriodStart,
		PeriodEnd:   statement.PeriodEnd,
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/statements", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(ownerID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.StatementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(statement.StatementID, resp.StatementID)
	suite.True(resp.NetPayout.Equal(decimal.NewFromInt(800)))
	suite.Len(resp.BookingLines, 1)
	suite.Len(resp.ExpenseLines, 1)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *StatementHandlerTestSuite) TestGenerateStatement_DuplicatePeriod() {
	ownerID := uuid.NewString()
	propertyID := uuid.NewString()

	suite.mockService.On("GenerateStatement",
		mock.AnythingOfType("*context.valueCtx"),
		mock.AnythingOfType("dto.GenerateStatementRequest"),
		ownerID,
	).Return(nil, fmt.Errorf("statement already exists for period: %w", apperrors.ErrDuplicate)).Once()

	body, _ := json.Marshal(dto.GenerateStatementRequest{
		PropertyID:  propertyID,
		PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	})
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/statements", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(ownerID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *StatementHandlerTestSuite) TestGenerateStatement_MissingToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/statements", bytes.NewReader([]byte(`{}`)))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GenerateStatement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StatementHandlerTestSuite) TestGetStatement_NotFound() {
	ownerID := uuid.NewString()
	statementID := uuid.NewString()

	suite.mockService.On("GetStatement",
		mock.AnythingOfType("*context.valueCtx"),
		statementID,
		ownerID,
	).Return(nil, apperrors.ErrNotFound).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/statements/"+statementID, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(ownerID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *StatementHandlerTestSuite) TestExportCSV_DownloadHeaders() {
	ownerID := uuid.NewString()
	statement := suite.sampleStatement(ownerID)

	suite.mockService.On("GetStatement",
		mock.AnythingOfType("*context.valueCtx"),
		statement.StatementID,
		ownerID,
	).Return(statement, nil).Once()

	url := fmt.Sprintf("/api/v1/statements/%s/export/csv", statement.StatementID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(ownerID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment;")
	suite.Contains(w.Header().Get("Content-Disposition"), ".csv")

	records, err := csv.NewReader(w.Body).ReadAll()
	suite.Require().NoError(err)
	suite.GreaterOrEqual(len(records), 2, "expected header plus at least one row")
}

func (suite *StatementHandlerTestSuite) TestUpdatePayoutStatus_MarksPaid() {
	ownerID := uuid.NewString()
	statementID := uuid.NewString()

	suite.mockService.On("UpdatePayoutStatus",
		mock.AnythingOfType("*context.valueCtx"),
		statementID,
		domain.PayoutPaid,
		ownerID,
	).Return(nil).Once()

	body, _ := json.Marshal(dto.UpdatePayoutStatusRequest{Status: domain.PayoutPaid})
	url := fmt.Sprintf("/api/v1/statements/%s/payout-status", statementID)
	req, _ := http.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(ownerID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func TestStatementHandler(t *testing.T) {
	suite.Run(t, new(StatementHandlerTestSuite))
}
