package services

import (
	"github.com/go-redis/redis/v8"

	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	portssvc "github.com/propfolio/propfolio-backend/internal/core/ports/services"
	"github.com/propfolio/propfolio-backend/internal/imagestore"
	"github.com/propfolio/propfolio-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, images imagestore.Store, cache *redis.Client) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Property service first: its ownership check guards every unit,
	// reservation, expense and statement operation.
	container.Property = NewPropertyService(repos.PropertyRepo, cfg.ManagementFeePercent)
	propertyAuthorizer := container.Property.(portssvc.PropertyAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.Unit = NewUnitService(repos.UnitRepo, repos.ListingRepo, images, propertyAuthorizer)
	container.Reservation = NewReservationService(repos.ReservationRepo, repos.UnitRepo, propertyAuthorizer)
	container.Expense = NewExpenseService(repos.ExpenseRepo, propertyAuthorizer)

	container.Balance = NewBalanceService(repos.PaymentRepo, repos.DisbursementRepo, cache, cfg.BalanceCacheTTL)
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.DisbursementRepo, container.Balance)
	container.Statement = NewStatementService(repos.StatementRepo, repos.ReservationRepo, repos.ExpenseRepo, repos.UnitRepo, propertyAuthorizer)

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
