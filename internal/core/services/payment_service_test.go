package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/core/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// MockBalanceService is a mock type for the BalanceSvcFacade interface
type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) ComputeBalance(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) GetBalance(ctx context.Context, ownerID string) (*domain.OwnerBalance, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnerBalance), args.Error(1)
}

func (m *MockBalanceService) InvalidateBalance(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// --- Test Suite Setup ---

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPayments      *MockPaymentRepository
	mockDisbursements *MockDisbursementRepository
	mockBalance       *MockBalanceService
	service           portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = new(MockPaymentRepository)
	suite.mockDisbursements = new(MockDisbursementRepository)
	suite.mockBalance = new(MockBalanceService)
	suite.service = services.NewPaymentService(suite.mockPayments, suite.mockDisbursements, suite.mockBalance)
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestRecordTransaction_CompletedAndInvalidated() {
	ctx := context.Background()
	userID := uuid.NewString()
	ownerID := uuid.NewString()
	req := dto.RecordTransactionRequest{
		Type:         domain.PaymentReceived,
		Amount:       decimal.NewFromInt(500),
		CurrencyCode: "USD",
		Date:         time.Now(),
		OwnerID:      ownerID,
	}

	suite.mockPayments.On("SavePaymentTransaction", ctx, mock.AnythingOfType("domain.PaymentTransaction")).Return(nil).Once()
	suite.mockBalance.On("InvalidateBalance", ctx, ownerID).Return(nil).Once()

	txn, err := suite.service.RecordTransaction(ctx, req, userID)

	suite.Require().NoError(err)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.StatusCompleted, txn.Status)
	suite.Equal(userID, txn.CreatedBy)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordTransaction_NegativeAmount() {
	ctx := context.Background()
	req := dto.RecordTransactionRequest{
		Type:         domain.Charge,
		Amount:       decimal.NewFromInt(-10),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}

	_, err := suite.service.RecordTransaction(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "SavePaymentTransaction", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordDisbursement_RejectsInboundType() {
	ctx := context.Background()
	req := dto.RecordDisbursementRequest{
		Type:         domain.PaymentReceived,
		Amount:       decimal.NewFromInt(100),
		CurrencyCode: "USD",
		Date:         time.Now(),
	}

	_, err := suite.service.RecordDisbursement(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDisbursements.AssertNotCalled(suite.T(), "SaveDisbursement", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordDisbursement_InvalidatesBothParties() {
	ctx := context.Background()
	ownerID := uuid.NewString()
	guestID := uuid.NewString()
	req := dto.RecordDisbursementRequest{
		Type:         domain.RefundToGuest,
		Amount:       decimal.NewFromInt(200),
		CurrencyCode: "USD",
		Date:         time.Now(),
		OwnerID:      ownerID,
		GuestID:      guestID,
	}

	suite.mockDisbursements.On("SaveDisbursement", ctx, mock.AnythingOfType("domain.Disbursement")).Return(nil).Once()
	suite.mockBalance.On("InvalidateBalance", ctx, ownerID).Return(nil).Once()
	suite.mockBalance.On("InvalidateBalance", ctx, guestID).Return(nil).Once()

	d, err := suite.service.RecordDisbursement(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.StatusCompleted, d.Status)
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdateTransactionStatus_Invalidates() {
	ctx := context.Background()
	userID := uuid.NewString()
	ownerID := uuid.NewString()
	txn := &domain.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.PaymentReceived,
		Status:        domain.StatusPending,
		OwnerID:       ownerID,
	}

	suite.mockPayments.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockPayments.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.StatusCompleted, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockBalance.On("InvalidateBalance", ctx, ownerID).Return(nil).Once()

	err := suite.service.UpdateTransactionStatus(ctx, txn.TransactionID, domain.StatusCompleted, userID)

	suite.Require().NoError(err)
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockBalance.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestUpdateTransactionStatus_SettledRowIsImmutable() {
	ctx := context.Background()
	txn := &domain.PaymentTransaction{
		TransactionID: uuid.NewString(),
		Type:          domain.PaymentReceived,
		Status:        domain.StatusCompleted,
		OwnerID:       uuid.NewString(),
	}

	suite.mockPayments.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	err := suite.service.UpdateTransactionStatus(ctx, txn.TransactionID, domain.StatusPending, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBalance.AssertNotCalled(suite.T(), "InvalidateBalance", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestUpdateDisbursementStatus_RejectsInvalidTarget() {
	ctx := context.Background()
	d := &domain.Disbursement{
		DisbursementID: uuid.NewString(),
		Type:           domain.PayoutToOwner,
		Status:         domain.StatusPending,
		OwnerID:        uuid.NewString(),
	}

	suite.mockDisbursements.On("FindDisbursementByID", ctx, d.DisbursementID).Return(d, nil).Once()

	err := suite.service.UpdateDisbursementStatus(ctx, d.DisbursementID, domain.StatusPending, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDisbursements.AssertNotCalled(suite.T(), "UpdateDisbursementStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestUpdateTransactionStatus_MissingRow() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockPayments.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.UpdateTransactionStatus(ctx, transactionID, domain.StatusCancelled, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBalance.AssertNotCalled(suite.T(), "InvalidateBalance", mock.Anything, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
