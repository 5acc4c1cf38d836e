package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// UnitReader defines read operations for unit data. Reads always exclude
// soft-deleted rows unless stated otherwise.
type UnitReader interface {
	// FindUnitByID retrieves a unit by id, including soft-deleted rows so
	// callers can distinguish "deleted" from "never existed".
	FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error)

	// ListUnitsByProperty retrieves the non-deleted units of a property.
	ListUnitsByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error)
}

// UnitWriter defines write operations for unit data. Mutations run inside a
// caller-held transaction so the mirrored listing write commits atomically.
type UnitWriter interface {
	// SaveUnitInTx persists a new unit.
	SaveUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error

	// UpdateUnitInTx updates an existing unit's details.
	UpdateUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error

	// SetUnitVisibilityInTx flips the is_visible flag.
	SetUnitVisibilityInTx(ctx context.Context, tx pgx.Tx, unitID string, visible bool, userID string, now time.Time) error

	// SoftDeleteUnitInTx marks a unit deleted. Deletion is terminal.
	SoftDeleteUnitInTx(ctx context.Context, tx pgx.Tx, unitID string, userID string, now time.Time) error
}

// UnitRepositoryWithTx combines unit reads/writes with transaction control.
type UnitRepositoryWithTx interface {
	UnitReader
	UnitWriter
	TransactionManager
}

// ListingRepository defines persistence operations for marketplace listings.
// Lookups go through the unit_id foreign key, never the title.
type ListingRepository interface {
	// SaveListingInTx persists a new listing.
	SaveListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error

	// FindListingByUnitID retrieves the listing mirroring a unit.
	FindListingByUnitID(ctx context.Context, unitID string) (*domain.Listing, error)

	// UpdateListingInTx updates the mirrored fields of a listing.
	UpdateListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error

	// SetListingStateInTx updates is_active/is_visible for the listing of a unit.
	SetListingStateInTx(ctx context.Context, tx pgx.Tx, unitID string, active, visible bool, userID string, now time.Time) error
}
