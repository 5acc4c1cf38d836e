package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutStatus tracks whether the net payout of a statement has been settled.
type PayoutStatus string

const (
	PayoutPending PayoutStatus = "pending"
	PayoutPaid    PayoutStatus = "paid"
	PayoutOnHold  PayoutStatus = "on_hold"
	PayoutOverdue PayoutStatus = "overdue"
)

// OwnerStatement is the periodic financial summary for one property. At most
// one statement exists per (property, periodStart, periodEnd), enforced both
// by a service pre-check and a database unique constraint.
type OwnerStatement struct {
	StatementID   string          `json:"statementID"` // Primary Key (UUID)
	OwnerID       string          `json:"ownerID"`     // FK -> users.user_id
	PropertyID    string          `json:"propertyID"`  // FK -> properties.property_id
	PropertyName  string          `json:"propertyName"` // Projection, not stored
	PeriodStart   time.Time       `json:"periodStart"`
	PeriodEnd     time.Time       `json:"periodEnd"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	ManagementFee decimal.Decimal `json:"managementFee"` // revenue * fee percent
	NetPayout     decimal.Decimal `json:"netPayout"`     // revenue - expenses - fee
	PayoutStatus  PayoutStatus    `json:"payoutStatus"`

	BookingLines []BookingLine `json:"bookingLines"`
	ExpenseLines []ExpenseLine `json:"expenseLines"`
	AuditFields
}

// BookingLine is one qualifying reservation inside a statement. Lines are
// created atomically with the parent statement and never mutated afterwards.
type BookingLine struct {
	LineID        string          `json:"lineID"`      // Primary Key (UUID)
	StatementID   string          `json:"statementID"` // FK -> owner_statements.statement_id
	ReservationID string          `json:"reservationID"`
	GuestName     string          `json:"guestName"`
	CheckInDate   time.Time       `json:"checkInDate"`
	CheckOutDate  time.Time       `json:"checkOutDate"`
	Revenue       decimal.Decimal `json:"revenue"`
	Taxes         decimal.Decimal `json:"taxes"`
	Fees          decimal.Decimal `json:"fees"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}

// ExpenseLine is one qualifying expense inside a statement.
type ExpenseLine struct {
	LineID      string          `json:"lineID"`      // Primary Key (UUID)
	StatementID string          `json:"statementID"` // FK -> owner_statements.statement_id
	ExpenseType string          `json:"expenseType"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes"`
}
