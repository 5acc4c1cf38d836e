package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// RecordTransactionRequest defines the data needed to append a payment
// transaction to the ledger.
type RecordTransactionRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=payment_received charge payout_to_owner refund_to_guest staff_payment supplier_payment"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode  string                 `json:"currencyCode" binding:"required"`
	PaymentMethod string                 `json:"paymentMethod"`
	Date          time.Time              `json:"date" binding:"required"`
	OwnerID       string                 `json:"ownerID"`
	GuestID       string                 `json:"guestID"`
	PropertyID    string                 `json:"propertyID"`
	UnitID        string                 `json:"unitID"`
	ReservationID string                 `json:"reservationID"`
	InvoiceID     string                 `json:"invoiceID"`
	Notes         string                 `json:"notes"`
}

// RecordDisbursementRequest defines the data needed to append a disbursement.
type RecordDisbursementRequest struct {
	Type          domain.TransactionType `json:"type" binding:"required,oneof=payout_to_owner refund_to_guest staff_payment supplier_payment"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	CurrencyCode  string                 `json:"currencyCode" binding:"required"`
	PaymentMethod string                 `json:"paymentMethod"`
	Date          time.Time              `json:"date" binding:"required"`
	OwnerID       string                 `json:"ownerID"`
	GuestID       string                 `json:"guestID"`
	PropertyID    string                 `json:"propertyID"`
	UnitID        string                 `json:"unitID"`
	ReservationID string                 `json:"reservationID"`
	InvoiceID     string                 `json:"invoiceID"`
	Notes         string                 `json:"notes"`
}

// UpdateLedgerStatusRequest carries a status transition for a ledger row.
// Pending rows settle exactly once; the settled states are the only targets.
type UpdateLedgerStatusRequest struct {
	Status domain.TransactionStatus `json:"status" binding:"required,oneof=completed failed cancelled"`
}

// TransactionResponse defines the data returned for a payment transaction.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	Type          domain.TransactionType   `json:"type"`
	Amount        decimal.Decimal          `json:"amount"`
	CurrencyCode  string                   `json:"currencyCode"`
	PaymentMethod string                   `json:"paymentMethod"`
	Date          time.Time                `json:"date"`
	Status        domain.TransactionStatus `json:"status"`
	OwnerID       string                   `json:"ownerID"`
	GuestID       string                   `json:"guestID"`
	PropertyID    string                   `json:"propertyID"`
	Notes         string                   `json:"notes"`
}

// DisbursementResponse defines the data returned for a disbursement.
type DisbursementResponse struct {
	DisbursementID string                   `json:"disbursementID"`
	Type           domain.TransactionType   `json:"type"`
	Amount         decimal.Decimal          `json:"amount"`
	CurrencyCode   string                   `json:"currencyCode"`
	PaymentMethod  string                   `json:"paymentMethod"`
	Date           time.Time                `json:"date"`
	Status         domain.TransactionStatus `json:"status"`
	OwnerID        string                   `json:"ownerID"`
	GuestID        string                   `json:"guestID"`
	PropertyID     string                   `json:"propertyID"`
	Notes          string                   `json:"notes"`
}

// BalanceResponse defines the data returned for an owner balance snapshot.
type BalanceResponse struct {
	OwnerID        string          `json:"ownerID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CurrencyCode   string          `json:"currencyCode"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// ToTransactionResponse converts a domain.PaymentTransaction to its DTO.
func ToTransactionResponse(t *domain.PaymentTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Type:          t.Type,
		Amount:        t.Amount,
		CurrencyCode:  t.CurrencyCode,
		PaymentMethod: t.PaymentMethod,
		Date:          t.Date,
		Status:        t.Status,
		OwnerID:       t.OwnerID,
		GuestID:       t.GuestID,
		PropertyID:    t.PropertyID,
		Notes:         t.Notes,
	}
}

// ToTransactionResponses converts a slice of transactions to DTOs.
func ToTransactionResponses(txns []domain.PaymentTransaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(&t)
	}
	return res
}

// ToDisbursementResponse converts a domain.Disbursement to its DTO.
func ToDisbursementResponse(d *domain.Disbursement) DisbursementResponse {
	return DisbursementResponse{
		DisbursementID: d.DisbursementID,
		Type:           d.Type,
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		PaymentMethod:  d.PaymentMethod,
		Date:           d.Date,
		Status:         d.Status,
		OwnerID:        d.OwnerID,
		GuestID:        d.GuestID,
		PropertyID:     d.PropertyID,
		Notes:          d.Notes,
	}
}

// ToDisbursementResponses converts a slice of disbursements to DTOs.
func ToDisbursementResponses(ds []domain.Disbursement) []DisbursementResponse {
	res := make([]DisbursementResponse, len(ds))
	for i, d := range ds {
		res[i] = ToDisbursementResponse(&d)
	}
	return res
}

// ToBalanceResponse converts a domain.OwnerBalance to its DTO.
func ToBalanceResponse(b *domain.OwnerBalance) BalanceResponse {
	return BalanceResponse{
		OwnerID:        b.OwnerID,
		CurrentBalance: b.CurrentBalance,
		CurrencyCode:   b.CurrencyCode,
		LastUpdated:    b.LastUpdated,
	}
}
