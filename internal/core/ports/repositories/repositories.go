package repositories

// RepositoryProvider bundles every repository implementation for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo         UserRepository
	PropertyRepo     PropertyRepository
	UnitRepo         UnitRepositoryWithTx
	ListingRepo      ListingRepository
	ReservationRepo  ReservationRepository
	ExpenseRepo      ExpenseRepository
	PaymentRepo      PaymentRepository
	DisbursementRepo DisbursementRepository
	StatementRepo    StatementRepositoryWithTx
}
