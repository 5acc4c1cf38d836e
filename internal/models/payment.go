package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction is the payment_transactions table row. The reference
// columns are all nullable; empty string maps to NULL.
type PaymentTransaction struct {
	TransactionID string          `db:"transaction_id"`
	Type          string          `db:"type"`
	Amount        decimal.Decimal `db:"amount"`
	CurrencyCode  string          `db:"currency_code"`
	PaymentMethod string          `db:"payment_method"`
	Date          time.Time       `db:"date"`
	Status        string          `db:"status"`
	OwnerID       string          `db:"owner_id"`
	GuestID       string          `db:"guest_id"`
	PropertyID    string          `db:"property_id"`
	UnitID        string          `db:"unit_id"`
	ReservationID string          `db:"reservation_id"`
	InvoiceID     string          `db:"invoice_id"`
	Notes         string          `db:"notes"`
	AuditFields
}

// Disbursement is the disbursements table row.
type Disbursement struct {
	DisbursementID string          `db:"disbursement_id"`
	Type           string          `db:"type"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	PaymentMethod  string          `db:"payment_method"`
	Date           time.Time       `db:"date"`
	Status         string          `db:"status"`
	OwnerID        string          `db:"owner_id"`
	GuestID        string          `db:"guest_id"`
	PropertyID     string          `db:"property_id"`
	UnitID         string          `db:"unit_id"`
	ReservationID  string          `db:"reservation_id"`
	InvoiceID      string          `db:"invoice_id"`
	Notes          string          `db:"notes"`
	AuditFields
}
