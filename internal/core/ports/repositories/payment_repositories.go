package repositories

import (
	"context"
	"time"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// PaymentRepository defines persistence operations for the payment ledger.
// The ledger is append-only: rows are never deleted, and completed rows only
// ever change status.
type PaymentRepository interface {
	// SavePaymentTransaction appends a new transaction.
	SavePaymentTransaction(ctx context.Context, txn domain.PaymentTransaction) error

	// FindTransactionByID retrieves a transaction by id.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error)

	// UpdateTransactionStatus transitions a transaction's status.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error

	// ListTransactionsByParty retrieves transactions where the given identity
	// appears as owner or guest, newest first.
	ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error)

	// ListCompletedTransactionsByParty retrieves only completed transactions
	// for the party; the balance computation input.
	ListCompletedTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error)
}

// DisbursementRepository defines persistence operations for the disbursement
// ledger, the outbound counterpart of PaymentRepository.
type DisbursementRepository interface {
	// SaveDisbursement appends a new disbursement.
	SaveDisbursement(ctx context.Context, d domain.Disbursement) error

	// FindDisbursementByID retrieves a disbursement by id.
	FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error)

	// UpdateDisbursementStatus transitions a disbursement's status.
	UpdateDisbursementStatus(ctx context.Context, disbursementID string, status domain.TransactionStatus, userID string, now time.Time) error

	// ListDisbursementsByParty retrieves disbursements where the given
	// identity appears as owner or guest, newest first.
	ListDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error)

	// ListCompletedDisbursementsByParty retrieves only completed disbursements.
	ListCompletedDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error)
}
