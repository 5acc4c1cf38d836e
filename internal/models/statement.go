package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerStatement is the owner_statements table row. The table carries
// UNIQUE(property_id, period_start, period_end) so concurrent generation
// attempts cannot produce duplicates.
type OwnerStatement struct {
	StatementID   string          `db:"statement_id"`
	OwnerID       string          `db:"owner_id"`
	PropertyID    string          `db:"property_id"`
	PeriodStart   time.Time       `db:"period_start"`
	PeriodEnd     time.Time       `db:"period_end"`
	TotalRevenue  decimal.Decimal `db:"total_revenue"`
	TotalExpenses decimal.Decimal `db:"total_expenses"`
	ManagementFee decimal.Decimal `db:"management_fee"`
	NetPayout     decimal.Decimal `db:"net_payout"`
	PayoutStatus  string          `db:"payout_status"`
	AuditFields
}

// BookingLine is the statement_booking_lines table row.
type BookingLine struct {
	LineID        string          `db:"line_id"`
	StatementID   string          `db:"statement_id"`
	ReservationID string          `db:"reservation_id"`
	GuestName     string          `db:"guest_name"`
	CheckInDate   time.Time       `db:"check_in_date"`
	CheckOutDate  time.Time       `db:"check_out_date"`
	Revenue       decimal.Decimal `db:"revenue"`
	Taxes         decimal.Decimal `db:"taxes"`
	Fees          decimal.Decimal `db:"fees"`
	NetRevenue    decimal.Decimal `db:"net_revenue"`
}

// ExpenseLine is the statement_expense_lines table row.
type ExpenseLine struct {
	LineID      string          `db:"line_id"`
	StatementID string          `db:"statement_id"`
	ExpenseType string          `db:"expense_type"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"date"`
	Notes       string          `db:"notes"`
}
