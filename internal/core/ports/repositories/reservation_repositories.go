package repositories

import (
	"context"
	"time"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	// SaveReservation persists a new reservation.
	SaveReservation(ctx context.Context, reservation domain.Reservation) error

	// FindReservationByID retrieves a reservation by id.
	FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error)

	// ListReservationsByUnit retrieves all reservations for a unit.
	ListReservationsByUnit(ctx context.Context, unitID string) ([]domain.Reservation, error)

	// ListReservationsForPeriod retrieves reservations across the given units
	// whose stay falls entirely inside [periodStart, periodEnd] and whose
	// payment status is one of statuses. Both bounds are inclusive.
	ListReservationsForPeriod(ctx context.Context, unitIDs []string, periodStart, periodEnd time.Time, statuses []domain.ReservationPaymentStatus) ([]domain.Reservation, error)
}

// ExpenseRepository defines persistence operations for property expenses.
type ExpenseRepository interface {
	// SaveExpense persists a new expense.
	SaveExpense(ctx context.Context, expense domain.Expense) error

	// ListExpensesByProperty retrieves all expenses of a property.
	ListExpensesByProperty(ctx context.Context, propertyID string) ([]domain.Expense, error)

	// ListExpensesForPeriod retrieves the expenses of a property dated inside
	// [periodStart, periodEnd], both bounds inclusive.
	ListExpensesForPeriod(ctx context.Context, propertyID string, periodStart, periodEnd time.Time) ([]domain.Expense, error)
}
