package dto

import (
	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// CreatePropertyRequest defines the data needed to create a property.
type CreatePropertyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	Country string `json:"country" binding:"required"`
	// Optional per-property fee fraction; the configured default applies when absent.
	ManagementFeePercent *decimal.Decimal `json:"managementFeePercent"`
}

// UpdatePropertyRequest defines the data allowed for updating a property.
// Pointers distinguish zero-value updates from fields not provided.
type UpdatePropertyRequest struct {
	Name                 *string          `json:"name"`
	Address              *string          `json:"address"`
	City                 *string          `json:"city"`
	Country              *string          `json:"country"`
	ManagementFeePercent *decimal.Decimal `json:"managementFeePercent"`
}

// PropertyResponse defines the data returned for a property.
type PropertyResponse struct {
	PropertyID           string          `json:"propertyID"`
	OwnerID              string          `json:"ownerID"`
	Name                 string          `json:"name"`
	Address              string          `json:"address"`
	City                 string          `json:"city"`
	Country              string          `json:"country"`
	ManagementFeePercent decimal.Decimal `json:"managementFeePercent"`
}

// ListPropertiesResponse wraps the list of properties.
type ListPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

// ToPropertyResponse converts a domain.Property to PropertyResponse DTO.
func ToPropertyResponse(p *domain.Property) PropertyResponse {
	return PropertyResponse{
		PropertyID:           p.PropertyID,
		OwnerID:              p.OwnerID,
		Name:                 p.Name,
		Address:              p.Address,
		City:                 p.City,
		Country:              p.Country,
		ManagementFeePercent: p.ManagementFeePercent,
	}
}

// ToPropertyResponses converts a slice of domain.Property to DTOs.
func ToPropertyResponses(properties []domain.Property) []PropertyResponse {
	res := make([]PropertyResponse, len(properties))
	for i, p := range properties {
		res[i] = ToPropertyResponse(&p)
	}
	return res
}
