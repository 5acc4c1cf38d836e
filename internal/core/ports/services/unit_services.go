package services

import (
	"context"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/dto"
)

// UnitSvcFacade exposes the unit operations. Every mutation keeps the
// mirrored marketplace listing consistent within the same database
// transaction.
type UnitSvcFacade interface {
	// CreateUnit verifies ownership, uploads any provided images, then
	// inserts the unit and its listing atomically.
	CreateUnit(ctx context.Context, req dto.CreateUnitRequest, ownerID string) (*domain.Unit, error)

	// UpdateUnit verifies ownership, replaces images when new ones are
	// supplied (old objects removed best-effort), then updates unit and
	// listing atomically. Listing visibility is preserved.
	UpdateUnit(ctx context.Context, unitID string, req dto.UpdateUnitRequest, ownerID string) (*domain.Unit, error)

	// ToggleVisibility flips the unit's is_visible flag and mirrors it onto
	// the listing's is_active/is_visible.
	ToggleVisibility(ctx context.Context, unitID string, ownerID string) (*domain.Unit, error)

	// SoftDeleteUnit marks the unit deleted (terminal) and deactivates the
	// listing.
	SoftDeleteUnit(ctx context.Context, unitID string, ownerID string) error

	// GetUnit retrieves a unit after an ownership check.
	GetUnit(ctx context.Context, unitID string, ownerID string) (*domain.Unit, error)

	// ListUnits retrieves the active (non-deleted) units of a property.
	ListUnits(ctx context.Context, propertyID string, ownerID string) ([]domain.Unit, error)
}
