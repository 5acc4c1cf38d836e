package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OwnerBalance is a derived snapshot of an owner's running balance. It is a
// cache of the ledger sum, never authoritative:
//
//	current_balance == sum(completed payment_received)
//	                 - sum(completed charge)
//	                 - sum(completed disbursements)
type OwnerBalance struct {
	OwnerID        string          `json:"ownerID"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	CurrencyCode   string          `json:"currencyCode"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}
