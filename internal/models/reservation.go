package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Reservation is the reservations table row.
type Reservation struct {
	ReservationID string          `db:"reservation_id"`
	UnitID        string          `db:"unit_id"`
	GuestID       string          `db:"guest_id"` // Nullable
	GuestName     string          `db:"guest_name"`
	CheckInDate   time.Time       `db:"check_in_date"`
	CheckOutDate  time.Time       `db:"check_out_date"`
	TotalPrice    decimal.Decimal `db:"total_price"`
	PaymentStatus string          `db:"payment_status"`
	AuditFields
}

// Expense is the expenses table row.
type Expense struct {
	ExpenseID   string          `db:"expense_id"`
	PropertyID  string          `db:"property_id"`
	ExpenseType string          `db:"expense_type"`
	Amount      decimal.Decimal `db:"amount"`
	Date        time.Time       `db:"date"`
	Notes       string          `db:"notes"`
	AuditFields
}
