package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// PaymentSvcFacade exposes the two append-only money ledgers.
type PaymentSvcFacade interface {
	RecordTransaction(ctx context.Context, req dto.RecordTransactionRequest, userID string) (*domain.PaymentTransaction, error)
	RecordDisbursement(ctx context.Context, req dto.RecordDisbursementRequest, userID string) (*domain.Disbursement, error)
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string) error
	UpdateDisbursementStatus(ctx context.Context, disbursementID string, status domain.TransactionStatus, userID string) error
	ListTransactions(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error)
	ListDisbursements(ctx context.Context, partyID string) ([]domain.Disbursement, error)
}

// BalanceSvcFacade derives owner balances from the ledgers.
type BalanceSvcFacade interface {
	// ComputeBalance recomputes the balance from the ledgers, bypassing the
	// snapshot cache.
	ComputeBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)

	// GetBalance returns the cached snapshot, recomputing on a miss.
	GetBalance(ctx context.Context, ownerID string) (*domain.OwnerBalance, error)

	// InvalidateBalance drops the cached snapshot after a ledger write.
	InvalidateBalance(ctx context.Context, ownerID string) error
}
