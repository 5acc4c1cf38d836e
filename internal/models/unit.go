package models

import "github.com/shopspring/decimal"

// Unit is the units table row. AdditionalPictureURLs maps to a text[] column
// so the picture order survives round-trips.
type Unit struct {
	UnitID                string          `db:"unit_id"`
	PropertyID            string          `db:"property_id"`
	Name                  string          `db:"name"`
	Floor                 int             `db:"floor"`
	PricePerNight         decimal.Decimal `db:"price_per_night"`
	Bedrooms              int             `db:"bedrooms"`
	Bathrooms             int             `db:"bathrooms"`
	MaxGuests             int             `db:"max_guests"`
	Status                string          `db:"status"`
	IsVisible             bool            `db:"is_visible"`
	IsDeleted             bool            `db:"is_deleted"`
	MainPictureURL        string          `db:"main_picture_url"`
	AdditionalPictureURLs []string        `db:"additional_picture_urls"`
	AuditFields
}

// Listing is the listings table row. UnitID carries a unique foreign key to
// units so listing lookups never rely on title matching.
type Listing struct {
	ListingID     string          `db:"listing_id"`
	UnitID        string          `db:"unit_id"`
	HostID        string          `db:"host_id"`
	Title         string          `db:"title"`
	Description   string          `db:"description"`
	PricePerNight decimal.Decimal `db:"price_per_night"`
	Bedrooms      int             `db:"bedrooms"`
	Bathrooms     int             `db:"bathrooms"`
	Guests        int             `db:"guests"`
	Address       string          `db:"address"`
	City          string          `db:"city"`
	Country       string          `db:"country"`
	ImageURL      string          `db:"image_url"`
	IsActive      bool            `db:"is_active"`
	IsVisible     bool            `db:"is_visible"`
	AuditFields
}
