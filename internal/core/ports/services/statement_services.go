package services

import (
	"context"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// StatementSvcFacade exposes owner statement generation and retrieval.
type StatementSvcFacade interface {
	// GenerateStatement aggregates reservations and expenses for the period
	// into a new statement. Returns ErrDuplicate when a statement already
	// exists for the exact (property, periodStart, periodEnd).
	GenerateStatement(ctx context.Context, req dto.GenerateStatementRequest, ownerID string) (*domain.OwnerStatement, error)

	// GetStatement retrieves a statement with lines after an ownership check.
	GetStatement(ctx context.Context, statementID string, ownerID string) (*domain.OwnerStatement, error)

	// ListStatements retrieves the owner's statements, newest period first.
	ListStatements(ctx context.Context, ownerID string) ([]domain.OwnerStatement, error)

	// UpdatePayoutStatus transitions a statement's payout status.
	UpdatePayoutStatus(ctx context.Context, statementID string, status domain.PayoutStatus, ownerID string) error
}
