package dto

import (
	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// ImageUpload carries one base64-encoded image plus a display name used in
// the stored object path.
type ImageUpload struct {
	Name   string `json:"name" binding:"required"`
	Base64 string `json:"base64" binding:"required"`
}

// CreateUnitRequest defines the data needed to create a unit. Images are
// optional; when present the main picture is uploaded first, then the
// additional pictures in order.
type CreateUnitRequest struct {
	PropertyID         string          `json:"propertyID" binding:"required"`
	Name               string          `json:"name" binding:"required"`
	Floor              int             `json:"floor"`
	PricePerNight      decimal.Decimal `json:"pricePerNight" binding:"required"`
	Bedrooms           int             `json:"bedrooms" binding:"required,min=0"`
	Bathrooms          int             `json:"bathrooms" binding:"required,min=0"`
	MaxGuests          int             `json:"maxGuests" binding:"required,min=1"`
	Description        string          `json:"description"`
	MainPicture        *ImageUpload    `json:"mainPicture"`
	AdditionalPictures []ImageUpload   `json:"additionalPictures"`
}

// UpdateUnitRequest defines the data allowed for updating a unit. Supplying
// MainPicture or AdditionalPictures replaces the stored images.
type UpdateUnitRequest struct {
	Name               *string            `json:"name"`
	Floor              *int               `json:"floor"`
	PricePerNight      *decimal.Decimal   `json:"pricePerNight"`
	Bedrooms           *int               `json:"bedrooms"`
	Bathrooms          *int               `json:"bathrooms"`
	MaxGuests          *int               `json:"maxGuests"`
	Status             *domain.UnitStatus `json:"status"`
	Description        *string            `json:"description"`
	MainPicture        *ImageUpload       `json:"mainPicture"`
	AdditionalPictures []ImageUpload      `json:"additionalPictures"`
}

// UnitResponse defines the data returned for a unit.
type UnitResponse struct {
	UnitID                string            `json:"unitID"`
	PropertyID            string            `json:"propertyID"`
	Name                  string            `json:"name"`
	Floor                 int               `json:"floor"`
	PricePerNight         decimal.Decimal   `json:"pricePerNight"`
	Bedrooms              int               `json:"bedrooms"`
	Bathrooms             int               `json:"bathrooms"`
	MaxGuests             int               `json:"maxGuests"`
	Status                domain.UnitStatus `json:"status"`
	IsVisible             bool              `json:"isVisible"`
	MainPictureURL        string            `json:"mainPictureURL"`
	AdditionalPictureURLs []string          `json:"additionalPictureURLs"`
}

// ListUnitsResponse wraps the list of units.
type ListUnitsResponse struct {
	Units []UnitResponse `json:"units"`
}

// ListingResponse defines the data returned for a marketplace listing.
type ListingResponse struct {
	ListingID     string          `json:"listingID"`
	UnitID        string          `json:"unitID"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	City          string          `json:"city"`
	Country       string          `json:"country"`
	ImageURL      string          `json:"imageURL"`
	IsActive      bool            `json:"isActive"`
	IsVisible     bool            `json:"isVisible"`
}

// ToUnitResponse converts a domain.Unit to UnitResponse DTO.
func ToUnitResponse(u *domain.Unit) UnitResponse {
	return UnitResponse{
		UnitID:                u.UnitID,
		PropertyID:            u.PropertyID,
		Name:                  u.Name,
		Floor:                 u.Floor,
		PricePerNight:         u.PricePerNight,
		Bedrooms:              u.Bedrooms,
		Bathrooms:             u.Bathrooms,
		MaxGuests:             u.MaxGuests,
		Status:                u.Status,
		IsVisible:             u.IsVisible,
		MainPictureURL:        u.MainPictureURL,
		AdditionalPictureURLs: u.AdditionalPictureURLs,
	}
}

// ToUnitResponses converts a slice of domain.Unit to DTOs.
func ToUnitResponses(units []domain.Unit) []UnitResponse {
	res := make([]UnitResponse, len(units))
	for i, u := range units {
		res[i] = ToUnitResponse(&u)
	}
	return res
}

// ToListingResponse converts a domain.Listing to ListingResponse DTO.
func ToListingResponse(l *domain.Listing) ListingResponse {
	return ListingResponse{
		ListingID:     l.ListingID,
		UnitID:        l.UnitID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		City:          l.City,
		Country:       l.Country,
		ImageURL:      l.ImageURL,
		IsActive:      l.IsActive,
		IsVisible:     l.IsVisible,
	}
}
