package repositories

import (
	"context"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	// SaveProperty persists a new property.
	SaveProperty(ctx context.Context, property domain.Property) error

	// FindPropertyByID retrieves a property by its unique identifier.
	FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error)

	// ListPropertiesByOwner retrieves all properties held by an owner.
	ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error)

	// UpdateProperty updates an existing property's details.
	UpdateProperty(ctx context.Context, property domain.Property) error
}
