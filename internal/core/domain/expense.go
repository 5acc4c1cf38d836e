package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost booked against a property (repairs, cleaning, utilities).
type Expense struct {
	ExpenseID   string          `json:"expenseID"`  // Primary Key (UUID)
	PropertyID  string          `json:"propertyID"` // FK -> properties.property_id (Not Null)
	ExpenseType string          `json:"expenseType"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes"`
	AuditFields
}
