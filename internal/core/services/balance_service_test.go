package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/core/services"
)

// MockPaymentRepository is a mock type for the PaymentRepository interface
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) SavePaymentTransaction(ctx context.Context, txn domain.PaymentTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, status, userID, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}

func (m *MockPaymentRepository) ListCompletedTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentTransaction), args.Error(1)
}

// MockDisbursementRepository is a mock type for the DisbursementRepository interface
type MockDisbursementRepository struct {
	mock.Mock
}

func (m *MockDisbursementRepository) SaveDisbursement(ctx context.Context, d domain.Disbursement) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDisbursementRepository) FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	args := m.Called(ctx, disbursementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) UpdateDisbursementStatus(ctx context.Context, disbursementID string, status domain.TransactionStatus, userID string, now time.Time) error {
	args := m.Called(ctx, disbursementID, status, userID, now)
	return args.Error(0)
}

func (m *MockDisbursementRepository) ListDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Disbursement), args.Error(1)
}

func (m *MockDisbursementRepository) ListCompletedDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Disbursement), args.Error(1)
}

// --- Test Suite Setup ---

type BalanceServiceTestSuite struct {
	suite.Suite
	mockPayments      *MockPaymentRepository
	mockDisbursements *MockDisbursementRepository
	cacheMock         redismock.ClientMock
	service           portssvc.BalanceSvcFacade
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockPaymentRepository)
	suite.mockDisbursements = new(MockDisbursementRepository)

	cache, cacheMock := redismock.NewClientMock()
	suite.cacheMock = cacheMock
	suite.service = services.NewBalanceService(suite.mockPayments, suite.mockDisbursements, cache, 5*time.Minute)
}

func completedTransaction(ownerID string, txType domain.TransactionType, amount int64) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          txType,
		Amount:        decimal.NewFromInt(amount),
		CurrencyCode:  "USD",
		Status:        domain.StatusCompleted,
		OwnerID:       ownerID,
		Date:          time.Now(),
	}
}

func completedDisbursement(ownerID string, txType domain.TransactionType, amount int64) domain.Disbursement {
	return domain.Disbursement{
		DisbursementID: uuid.NewString(),
		Type:           txType,
		Amount:         decimal.NewFromInt(amount),
		CurrencyCode:   "USD",
		Status:         domain.StatusCompleted,
		OwnerID:        ownerID,
		Date:           time.Now(),
	}
}

// --- Test Cases ---

func (suite *BalanceServiceTestSuite) TestComputeBalance_ReceivedMinusPayout() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{
		completedTransaction(ownerID, domain.PaymentReceived, 500),
	}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{
		completedDisbursement(ownerID, domain.PayoutToOwner, 200),
	}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(300)), "expected 300, got %s", balance)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockDisbursements.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_ChargesSubtract() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{
		completedTransaction(ownerID, domain.PaymentReceived, 1000),
		completedTransaction(ownerID, domain.Charge, 150),
		completedTransaction(ownerID, domain.PaymentReceived, 50),
	}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{
		completedDisbursement(ownerID, domain.RefundToGuest, 100),
		completedDisbursement(ownerID, domain.StaffPayment, 75),
	}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().NoError(err)
	// 1000 - 150 + 50 - 100 - 75
	suite.True(balance.Equal(decimal.NewFromInt(725)), "expected 725, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_UnsettledRowsIgnored() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	pendingReceived := completedTransaction(ownerID, domain.PaymentReceived, 400)
	pendingReceived.Status = domain.StatusPending
	failedCharge := completedTransaction(ownerID, domain.Charge, 50)
	failedCharge.Status = domain.StatusFailed

	pendingPayout := completedDisbursement(ownerID, domain.PayoutToOwner, 300)
	pendingPayout.Status = domain.StatusPending

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{
		completedTransaction(ownerID, domain.PaymentReceived, 500),
		pendingReceived,
		failedCharge,
	}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{
		completedDisbursement(ownerID, domain.PayoutToOwner, 200),
		pendingPayout,
	}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().NoError(err)
	// only the completed 500 and 200 settle
	suite.True(balance.Equal(decimal.NewFromInt(300)), "expected 300, got %s", balance)
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_EmptyLedgersIsZero() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{}, nil).Once()

	balance, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
}

func (suite *BalanceServiceTestSuite) TestComputeBalance_LedgerError() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return(nil, fmt.Errorf("db down")).Once()

	_, err := suite.service.ComputeBalance(ctx, ownerID)

	suite.Require().Error(err)
	suite.mockDisbursements.AssertNotCalled(suite.T(), "ListCompletedDisbursementsByParty", mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalance_CacheHitSkipsLedgers() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	snapshot := domain.OwnerBalance{
		OwnerID:        ownerID,
		CurrentBalance: decimal.NewFromInt(300),
		CurrencyCode:   "USD",
		LastUpdated:    time.Now().UTC(),
	}
	payload, err := json.Marshal(snapshot)
	suite.Require().NoError(err)

	suite.cacheMock.ExpectGet("balance:" + ownerID).SetVal(string(payload))

	got, err := suite.service.GetBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.True(got.CurrentBalance.Equal(decimal.NewFromInt(300)))
	suite.Equal(ownerID, got.OwnerID)
	suite.mockPayments.AssertNotCalled(suite.T(), "ListCompletedTransactionsByParty", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.cacheMock.ExpectationsWereMet())
}

func (suite *BalanceServiceTestSuite) TestGetBalance_CacheMissRecomputes() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	// The snapshot write is not expected here, so it fails; a cache write
	// failure must not fail the request.
	suite.cacheMock.ExpectGet("balance:" + ownerID).RedisNil()

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{
		completedTransaction(ownerID, domain.PaymentReceived, 500),
	}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{
		completedDisbursement(ownerID, domain.PayoutToOwner, 200),
	}, nil).Once()

	got, err := suite.service.GetBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.True(got.CurrentBalance.Equal(decimal.NewFromInt(300)))
	suite.Equal("USD", got.CurrencyCode)
	suite.WithinDuration(time.Now(), got.LastUpdated, time.Second)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestInvalidateBalance_DeletesSnapshot() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	suite.cacheMock.ExpectDel("balance:" + ownerID).SetVal(1)

	err := suite.service.InvalidateBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.Require().NoError(suite.cacheMock.ExpectationsWereMet())
}

func (suite *BalanceServiceTestSuite) TestGetBalance_NilCacheStillComputes() {
	ctx := context.Background()
	ownerID := uuid.NewString()

	service := services.NewBalanceService(suite.mockPayments, suite.mockDisbursements, nil, time.Minute)

	suite.mockPayments.On("ListCompletedTransactionsByParty", ctx, ownerID).Return([]domain.PaymentTransaction{
		completedTransaction(ownerID, domain.PaymentReceived, 42),
	}, nil).Once()
	suite.mockDisbursements.On("ListCompletedDisbursementsByParty", ctx, ownerID).Return([]domain.Disbursement{}, nil).Once()

	got, err := service.GetBalance(ctx, ownerID)

	suite.Require().NoError(err)
	suite.True(got.CurrentBalance.Equal(decimal.NewFromInt(42)))
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
