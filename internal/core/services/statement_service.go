package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// Reservation payment statuses that count as revenue on a statement.
var revenueStatuses = []domain.ReservationPaymentStatus{
	domain.ReservationPaid,
	domain.ReservationConfirmed,
}

func countsAsRevenue(status domain.ReservationPaymentStatus) bool {
	for _, s := range revenueStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// statementService aggregates a property's reservations and expenses over a
// period into an immutable owner statement. The computation is deterministic:
// the same ledger contents always produce the same totals.
type statementService struct {
	BaseService
	statementRepo   portsrepo.StatementRepositoryWithTx
	reservationRepo portsrepo.ReservationRepository
	expenseRepo     portsrepo.ExpenseRepository
	unitRepo        portsrepo.UnitReader
}

// NewStatementService creates a new statement service.
func NewStatementService(
	statementRepo portsrepo.StatementRepositoryWithTx,
	reservationRepo portsrepo.ReservationRepository,
	expenseRepo portsrepo.ExpenseRepository,
	unitRepo portsrepo.UnitReader,
	authorizer portssvc.PropertyAuthorizerSvc,
) portssvc.StatementSvcFacade {
	return &statementService{
		BaseService:     BaseService{PropertyAuthorizer: authorizer},
		statementRepo:   statementRepo,
		reservationRepo: reservationRepo,
		expenseRepo:     expenseRepo,
		unitRepo:        unitRepo,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

// GenerateStatement builds the statement for (property, periodStart, periodEnd).
//
// Revenue counts reservations with status paid or confirmed whose stay falls
// entirely inside the period, both bounds inclusive. The management fee is
// total revenue times the property's fee fraction, and the net payout is
// revenue minus expenses minus fee. A second statement for the same exact
// period is rejected with ErrDuplicate.
func (s *statementService) GenerateStatement(ctx context.Context, req dto.GenerateStatementRequest, ownerID string) (*domain.OwnerStatement, error) {
	if req.PeriodEnd.Before(req.PeriodStart) {
		return nil, fmt.Errorf("period end before period start: %w", apperrors.ErrValidation)
	}

	property, err := s.AuthorizeOwner(ctx, req.PropertyID, ownerID)
	if err != nil {
		return nil, err
	}

	// Pre-check; the unique constraint on owner_statements backs this up under
	// concurrency.
	_, err = s.statementRepo.FindStatementByPeriod(ctx, property.PropertyID, req.PeriodStart, req.PeriodEnd)
	if err == nil {
		return nil, fmt.Errorf("statement already exists for this period: %w", apperrors.ErrDuplicate)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	units, err := s.unitRepo.ListUnitsByProperty(ctx, property.PropertyID)
	if err != nil {
		return nil, err
	}
	unitIDs := make([]string, len(units))
	for i, u := range units {
		unitIDs[i] = u.UnitID
	}

	reservations, err := s.reservationRepo.ListReservationsForPeriod(ctx, unitIDs, req.PeriodStart, req.PeriodEnd, revenueStatuses)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListExpensesForPeriod(ctx, property.PropertyID, req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	statementID := uuid.NewString()

	totalRevenue := decimal.Zero
	bookingLines := make([]domain.BookingLine, 0, len(reservations))
	for _, r := range reservations {
		// The repository query already restricts on status and period; the
		// loop re-checks so a row outside the inclusive bounds can never
		// enter a statement. A stay ending exactly on periodEnd counts, one
		// ending the day after does not.
		if !countsAsRevenue(r.PaymentStatus) {
			continue
		}
		if r.CheckInDate.Before(req.PeriodStart) || r.CheckOutDate.After(req.PeriodEnd) {
			continue
		}
		totalRevenue = totalRevenue.Add(r.TotalPrice)
		bookingLines = append(bookingLines, domain.BookingLine{
			LineID:        uuid.NewString(),
			StatementID:   statementID,
			ReservationID: r.ReservationID,
			GuestName:     r.GuestName,
			CheckInDate:   r.CheckInDate,
			CheckOutDate:  r.CheckOutDate,
			Revenue:       r.TotalPrice,
			Taxes:         decimal.Zero,
			Fees:          decimal.Zero,
			NetRevenue:    r.TotalPrice,
		})
	}

	totalExpenses := decimal.Zero
	expenseLines := make([]domain.ExpenseLine, len(expenses))
	for i, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
		expenseLines[i] = domain.ExpenseLine{
			LineID:      uuid.NewString(),
			StatementID: statementID,
			ExpenseType: e.ExpenseType,
			Amount:      e.Amount,
			Date:        e.Date,
			Notes:       e.Notes,
		}
	}

	managementFee := totalRevenue.Mul(property.ManagementFeePercent)
	netPayout := totalRevenue.Sub(totalExpenses).Sub(managementFee)

	statement := domain.OwnerStatement{
		StatementID:   statementID,
		OwnerID:       ownerID,
		PropertyID:    property.PropertyID,
		PropertyName:  property.Name,
		PeriodStart:   req.PeriodStart,
		PeriodEnd:     req.PeriodEnd,
		TotalRevenue:  totalRevenue,
		TotalExpenses: totalExpenses,
		ManagementFee: managementFee,
		NetPayout:     netPayout,
		PayoutStatus:  domain.PayoutPending,
		BookingLines:  bookingLines,
		ExpenseLines:  expenseLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	tx, err := s.statementRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.statementRepo.Rollback(ctx, tx) }()

	if err := s.statementRepo.SaveStatementInTx(ctx, tx, statement); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save statement", slog.String("property_id", property.PropertyID))
		return nil, err
	}
	if err := s.statementRepo.SaveBookingLinesInTx(ctx, tx, bookingLines); err != nil {
		s.LogError(ctx, err, "Failed to save booking lines", slog.String("statement_id", statementID))
		return nil, err
	}
	if err := s.statementRepo.SaveExpenseLinesInTx(ctx, tx, expenseLines); err != nil {
		s.LogError(ctx, err, "Failed to save expense lines", slog.String("statement_id", statementID))
		return nil, err
	}
	if err := s.statementRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Statement generated",
		slog.String("statement_id", statementID),
		slog.String("property_id", property.PropertyID),
		slog.String("net_payout", netPayout.String()))
	return &statement, nil
}

func (s *statementService) GetStatement(ctx context.Context, statementID string, ownerID string) (*domain.OwnerStatement, error) {
	statement, err := s.statementRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return nil, err
	}
	if statement.OwnerID != ownerID {
		return nil, apperrors.ErrForbidden
	}
	return statement, nil
}

func (s *statementService) ListStatements(ctx context.Context, ownerID string) ([]domain.OwnerStatement, error) {
	return s.statementRepo.ListStatementsByOwner(ctx, ownerID)
}

func (s *statementService) UpdatePayoutStatus(ctx context.Context, statementID string, status domain.PayoutStatus, ownerID string) error {
	statement, err := s.statementRepo.FindStatementByID(ctx, statementID)
	if err != nil {
		return err
	}
	if statement.OwnerID != ownerID {
		return apperrors.ErrForbidden
	}
	return s.statementRepo.UpdatePayoutStatus(ctx, statementID, status, ownerID, time.Now())
}
