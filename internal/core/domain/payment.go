package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement on the payment ledger.
type TransactionType string

const (
	PaymentReceived TransactionType = "payment_received"
	Charge          TransactionType = "charge"
	PayoutToOwner   TransactionType = "payout_to_owner"
	RefundToGuest   TransactionType = "refund_to_guest"
	StaffPayment    TransactionType = "staff_payment"
	SupplierPayment TransactionType = "supplier_payment"
)

// TransactionStatus is the settlement state of a ledger row. Only completed
// rows count toward balances.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
	StatusRefunded  TransactionStatus = "refunded"
	StatusCancelled TransactionStatus = "cancelled"
)

// PaymentTransaction is a received-or-charged money movement on the
// append-only payment ledger. Completed rows are immutable apart from status
// transitions and are never deleted.
type PaymentTransaction struct {
	TransactionID string            `json:"transactionID"` // Primary Key (UUID)
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"` // Non-negative
	CurrencyCode  string            `json:"currencyCode"`
	PaymentMethod string            `json:"paymentMethod"`
	Date          time.Time         `json:"date"`
	Status        TransactionStatus `json:"status"`

	// Optional references; empty string means not linked.
	OwnerID       string `json:"ownerID"`
	GuestID       string `json:"guestID"`
	PropertyID    string `json:"propertyID"`
	UnitID        string `json:"unitID"`
	ReservationID string `json:"reservationID"`
	InvoiceID     string `json:"invoiceID"`

	Notes string `json:"notes"`
	AuditFields
}

// Disbursement is a paid-out money movement (owner payout, guest refund,
// staff or supplier payment). Same shape as PaymentTransaction minus the
// inbound types; a completed disbursement always decreases the balance.
type Disbursement struct {
	DisbursementID string            `json:"disbursementID"` // Primary Key (UUID)
	Type           TransactionType   `json:"type"`           // payout_to_owner, refund_to_guest, staff_payment, supplier_payment
	Amount         decimal.Decimal   `json:"amount"`         // Non-negative
	CurrencyCode   string            `json:"currencyCode"`
	PaymentMethod  string            `json:"paymentMethod"`
	Date           time.Time         `json:"date"`
	Status         TransactionStatus `json:"status"`

	OwnerID       string `json:"ownerID"`
	GuestID       string `json:"guestID"`
	PropertyID    string `json:"propertyID"`
	UnitID        string `json:"unitID"`
	ReservationID string `json:"reservationID"`
	InvoiceID     string `json:"invoiceID"`

	Notes string `json:"notes"`
	AuditFields
}

// IsDisbursementType reports whether t is one of the outbound movement types.
func IsDisbursementType(t TransactionType) bool {
	switch t {
	case PayoutToOwner, RefundToGuest, StaffPayment, SupplierPayment:
		return true
	}
	return false
}
