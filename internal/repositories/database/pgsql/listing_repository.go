package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	"github.com/propfolio/propfolio-backend/internal/models"
)

// PgxListingRepository persists marketplace listings. All lookups go through
// the unit_id foreign key; the title is display data only.
type PgxListingRepository struct {
	db *pgxpool.Pool
}

func newPgxListingRepository(db *pgxpool.Pool) portsrepo.ListingRepository {
	return &PgxListingRepository{db: db}
}

var _ portsrepo.ListingRepository = (*PgxListingRepository)(nil)

func toModelListing(d domain.Listing) models.Listing {
	return models.Listing{
		ListingID:     d.ListingID,
		UnitID:        d.UnitID,
		HostID:        d.HostID,
		Title:         d.Title,
		Description:   d.Description,
		PricePerNight: d.PricePerNight,
		Bedrooms:      d.Bedrooms,
		Bathrooms:     d.Bathrooms,
		Guests:        d.Guests,
		Address:       d.Address,
		City:          d.City,
		Country:       d.Country,
		ImageURL:      d.ImageURL,
		IsActive:      d.IsActive,
		IsVisible:     d.IsVisible,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainListing(m models.Listing) domain.Listing {
	return domain.Listing{
		ListingID:     m.ListingID,
		UnitID:        m.UnitID,
		HostID:        m.HostID,
		Title:         m.Title,
		Description:   m.Description,
		PricePerNight: m.PricePerNight,
		Bedrooms:      m.Bedrooms,
		Bathrooms:     m.Bathrooms,
		Guests:        m.Guests,
		Address:       m.Address,
		City:          m.City,
		Country:       m.Country,
		ImageURL:      m.ImageURL,
		IsActive:      m.IsActive,
		IsVisible:     m.IsVisible,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxListingRepository) SaveListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error {
	m := toModelListing(listing)
	query := `
        INSERT INTO listings (listing_id, unit_id, host_id, title, description, price_per_night,
            bedrooms, bathrooms, guests, address, city, country, image_url, is_active, is_visible,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
    `
	_, err := tx.Exec(ctx, query,
		m.ListingID, m.UnitID, m.HostID, m.Title, m.Description, m.PricePerNight,
		m.Bedrooms, m.Bathrooms, m.Guests, m.Address, m.City, m.Country, m.ImageURL, m.IsActive, m.IsVisible,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("listing already exists for unit %s: %w", listing.UnitID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

func (r *PgxListingRepository) FindListingByUnitID(ctx context.Context, unitID string) (*domain.Listing, error) {
	query := `
		SELECT listing_id, unit_id, host_id, title, description, price_per_night,
		       bedrooms, bathrooms, guests, address, city, country, image_url, is_active, is_visible,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM listings
		WHERE unit_id = $1;
	`
	var m models.Listing
	err := r.db.QueryRow(ctx, query, unitID).Scan(
		&m.ListingID,
		&m.UnitID,
		&m.HostID,
		&m.Title,
		&m.Description,
		&m.PricePerNight,
		&m.Bedrooms,
		&m.Bathrooms,
		&m.Guests,
		&m.Address,
		&m.City,
		&m.Country,
		&m.ImageURL,
		&m.IsActive,
		&m.IsVisible,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find listing for unit %s: %w", unitID, err)
	}
	d := toDomainListing(m)
	return &d, nil
}

func (r *PgxListingRepository) UpdateListingInTx(ctx context.Context, tx pgx.Tx, listing domain.Listing) error {
	m := toModelListing(listing)
	query := `
        UPDATE listings
        SET title = $1, description = $2, price_per_night = $3, bedrooms = $4, bathrooms = $5,
            guests = $6, address = $7, city = $8, country = $9, image_url = $10,
            last_updated_at = $11, last_updated_by = $12
        WHERE unit_id = $13;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Title, m.Description, m.PricePerNight, m.Bedrooms, m.Bathrooms,
		m.Guests, m.Address, m.City, m.Country, m.ImageURL,
		m.LastUpdatedAt, m.LastUpdatedBy, m.UnitID,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxListingRepository) SetListingStateInTx(ctx context.Context, tx pgx.Tx, unitID string, active, visible bool, userID string, now time.Time) error {
	query := `
        UPDATE listings
        SET is_active = $1, is_visible = $2, last_updated_at = $3, last_updated_by = $4
        WHERE unit_id = $5;
    `
	cmdTag, err := tx.Exec(ctx, query, active, visible, now, userID, unitID)
	if err != nil {
		return fmt.Errorf("failed to set listing state: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
