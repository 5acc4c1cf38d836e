package domain

import "github.com/shopspring/decimal"

// Property is an owner-held building or house containing rentable units.
type Property struct {
	PropertyID string `json:"propertyID"` // Primary Key (UUID)
	OwnerID    string `json:"ownerID"`    // FK -> users.user_id
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Country    string `json:"country"`

	// ManagementFeePercent overrides the global statement fee when positive,
	// expressed as a fraction (0.10 == 10%).
	ManagementFeePercent decimal.Decimal `json:"managementFeePercent"`

	AuditFields
}
