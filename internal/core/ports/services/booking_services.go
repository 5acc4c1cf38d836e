package services

import (
	"context"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// ReservationSvcFacade exposes reservation operations.
type ReservationSvcFacade interface {
	CreateReservation(ctx context.Context, req dto.CreateReservationRequest, ownerID string) (*domain.Reservation, error)
	ListReservations(ctx context.Context, unitID string, ownerID string) ([]domain.Reservation, error)
}

// ExpenseSvcFacade exposes property expense operations.
type ExpenseSvcFacade interface {
	CreateExpense(ctx context.Context, req dto.CreateExpenseRequest, ownerID string) (*domain.Expense, error)
	ListExpenses(ctx context.Context, propertyID string, ownerID string) ([]domain.Expense, error)
}
