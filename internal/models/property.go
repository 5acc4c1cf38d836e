package models

import "github.com/shopspring/decimal"

// Property is the properties table row.
type Property struct {
	PropertyID           string          `db:"property_id"`
	OwnerID              string          `db:"owner_id"`
	Name                 string          `db:"name"`
	Address              string          `db:"address"`
	City                 string          `db:"city"`
	Country              string          `db:"country"`
	ManagementFeePercent decimal.Decimal `db:"management_fee_percent"`
	AuditFields
}
