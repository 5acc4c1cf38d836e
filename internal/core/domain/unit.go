package domain

import "github.com/shopspring/decimal"

// UnitStatus reflects the occupancy state of a unit.
type UnitStatus string

const (
	UnitVacant      UnitStatus = "vacant"
	UnitOccupied    UnitStatus = "occupied"
	UnitReserved    UnitStatus = "reserved"
	UnitMaintenance UnitStatus = "maintenance"
)

// Unit is a rentable room or apartment belonging to a property.
//
// Deletion is always soft: IsDeleted flips to true and the row stays. The
// visibility lifecycle is active+visible <-> active+hidden -> deleted, with
// deleted terminal.
type Unit struct {
	UnitID        string          `json:"unitID"`     // Primary Key (UUID)
	PropertyID    string          `json:"propertyID"` // FK -> properties.property_id (Not Null)
	Name          string          `json:"name"`
	Floor         int             `json:"floor"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	MaxGuests     int             `json:"maxGuests"`
	Status        UnitStatus      `json:"status"`
	IsVisible     bool            `json:"isVisible"`
	IsDeleted     bool            `json:"isDeleted"`

	MainPictureURL         string   `json:"mainPictureURL"`
	AdditionalPictureURLs  []string `json:"additionalPictureURLs"` // ordered
	AuditFields
}
