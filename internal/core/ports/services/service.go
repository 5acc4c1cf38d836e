package services

// ServiceContainer holds instances of all the application services. This is
// the main entry point for accessing service functionality and is what gets
// handed to the handlers at route registration time.
type ServiceContainer struct {
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Property           PropertySvcFacade
	Unit               UnitSvcFacade
	Reservation        ReservationSvcFacade
	Expense            ExpenseSvcFacade
	Payment            PaymentSvcFacade
	Balance            BalanceSvcFacade
	Statement          StatementSvcFacade
}
