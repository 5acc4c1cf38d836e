package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		PropertyRepo:     newPgxPropertyRepository(dbPool),
		UnitRepo:         newPgxUnitRepository(dbPool),
		ListingRepo:      newPgxListingRepository(dbPool),
		ReservationRepo:  newPgxReservationRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		PaymentRepo:      newPgxPaymentRepository(dbPool),
		DisbursementRepo: newPgxDisbursementRepository(dbPool),
		StatementRepo:    newPgxStatementRepository(dbPool),
	}
}
