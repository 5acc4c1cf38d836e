package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// StatementReader defines read operations for owner statements.
type StatementReader interface {
	// FindStatementByID retrieves a statement with its booking and expense lines.
	FindStatementByID(ctx context.Context, statementID string) (*domain.OwnerStatement, error)

	// FindStatementByPeriod retrieves the statement for an exact
	// (property, periodStart, periodEnd) tuple, or ErrNotFound.
	FindStatementByPeriod(ctx context.Context, propertyID string, periodStart, periodEnd time.Time) (*domain.OwnerStatement, error)

	// ListStatementsByOwner retrieves an owner's statements with the owning
	// property name projected, newest period first. Lines are not loaded.
	ListStatementsByOwner(ctx context.Context, ownerID string) ([]domain.OwnerStatement, error)
}

// StatementWriter defines write operations for owner statements. The parent
// row and all lines are written inside one transaction.
type StatementWriter interface {
	// SaveStatementInTx persists the statement row.
	SaveStatementInTx(ctx context.Context, tx pgx.Tx, statement domain.OwnerStatement) error

	// SaveBookingLinesInTx persists the booking lines of a statement.
	SaveBookingLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.BookingLine) error

	// SaveExpenseLinesInTx persists the expense lines of a statement.
	SaveExpenseLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.ExpenseLine) error

	// UpdatePayoutStatus transitions the payout status of a statement.
	UpdatePayoutStatus(ctx context.Context, statementID string, status domain.PayoutStatus, userID string, now time.Time) error
}

// StatementRepositoryWithTx combines statement reads/writes with transaction control.
type StatementRepositoryWithTx interface {
	StatementReader
	StatementWriter
	TransactionManager
}
