package domain

import "github.com/shopspring/decimal"

// Listing is the marketplace-facing mirror of a Unit. Exactly one listing
// exists per unit, joined by UnitID. Title is derived as
// "{property.name} - {unit.name}" and refreshed whenever either name changes.
type Listing struct {
	ListingID     string          `json:"listingID"` // Primary Key (UUID)
	UnitID        string          `json:"unitID"`    // FK -> units.unit_id (Not Null, Unique)
	HostID        string          `json:"hostID"`    // FK -> users.user_id (the owner)
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     int             `json:"bathrooms"`
	Guests        int             `json:"guests"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	ImageURL      string          `json:"imageURL"`
	IsActive      bool            `json:"isActive"`
	IsVisible     bool            `json:"isVisible"`
	AuditFields
}
