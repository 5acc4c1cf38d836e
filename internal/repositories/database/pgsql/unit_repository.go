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

// PgxUnitRepository persists units. Mutations run in caller-held transactions
// so the listing mirror stays consistent with the unit row.
type PgxUnitRepository struct {
	BaseRepository
}

func newPgxUnitRepository(db *pgxpool.Pool) portsrepo.UnitRepositoryWithTx {
	return &PgxUnitRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.UnitRepositoryWithTx = (*PgxUnitRepository)(nil)

func toModelUnit(d domain.Unit) models.Unit {
	return models.Unit{
		UnitID:                d.UnitID,
		PropertyID:            d.PropertyID,
		Name:                  d.Name,
		Floor:                 d.Floor,
		PricePerNight:         d.PricePerNight,
		Bedrooms:              d.Bedrooms,
		Bathrooms:             d.Bathrooms,
		MaxGuests:             d.MaxGuests,
		Status:                string(d.Status),
		IsVisible:             d.IsVisible,
		IsDeleted:             d.IsDeleted,
		MainPictureURL:        d.MainPictureURL,
		AdditionalPictureURLs: d.AdditionalPictureURLs,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainUnit(m models.Unit) domain.Unit {
	return domain.Unit{
		UnitID:                m.UnitID,
		PropertyID:            m.PropertyID,
		Name:                  m.Name,
		Floor:                 m.Floor,
		PricePerNight:         m.PricePerNight,
		Bedrooms:              m.Bedrooms,
		Bathrooms:             m.Bathrooms,
		MaxGuests:             m.MaxGuests,
		Status:                domain.UnitStatus(m.Status),
		IsVisible:             m.IsVisible,
		IsDeleted:             m.IsDeleted,
		MainPictureURL:        m.MainPictureURL,
		AdditionalPictureURLs: m.AdditionalPictureURLs,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const unitColumns = `unit_id, property_id, name, floor, price_per_night, bedrooms, bathrooms, max_guests,
       status, is_visible, is_deleted, main_picture_url, additional_picture_urls,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxUnitRepository) FindUnitByID(ctx context.Context, unitID string) (*domain.Unit, error) {
	// Soft-deleted rows are returned so callers can tell deleted from missing.
	query := `SELECT ` + unitColumns + ` FROM units WHERE unit_id = $1;`
	m, err := scanUnit(r.Pool.QueryRow(ctx, query, unitID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find unit by ID %s: %w", unitID, err)
	}
	d := toDomainUnit(m)
	return &d, nil
}

func (r *PgxUnitRepository) ListUnitsByProperty(ctx context.Context, propertyID string) ([]domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units WHERE property_id = $1 AND is_deleted = FALSE ORDER BY created_at ASC;`
	rows, err := r.Pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer rows.Close()

	units := []domain.Unit{}
	for rows.Next() {
		m, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit row: %w", err)
		}
		units = append(units, toDomainUnit(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", rows.Err())
	}
	return units, nil
}

func (r *PgxUnitRepository) SaveUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error {
	m := toModelUnit(unit)
	query := `
        INSERT INTO units (unit_id, property_id, name, floor, price_per_night, bedrooms, bathrooms, max_guests,
            status, is_visible, is_deleted, main_picture_url, additional_picture_urls,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
    `
	_, err := tx.Exec(ctx, query,
		m.UnitID, m.PropertyID, m.Name, m.Floor, m.PricePerNight, m.Bedrooms, m.Bathrooms, m.MaxGuests,
		m.Status, m.IsVisible, m.IsDeleted, m.MainPictureURL, m.AdditionalPictureURLs,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("unit already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save unit: %w", err)
	}
	return nil
}

func (r *PgxUnitRepository) UpdateUnitInTx(ctx context.Context, tx pgx.Tx, unit domain.Unit) error {
	m := toModelUnit(unit)
	query := `
        UPDATE units
        SET name = $1, floor = $2, price_per_night = $3, bedrooms = $4, bathrooms = $5, max_guests = $6,
            status = $7, main_picture_url = $8, additional_picture_urls = $9,
            last_updated_at = $10, last_updated_by = $11
        WHERE unit_id = $12 AND is_deleted = FALSE;
    `
	cmdTag, err := tx.Exec(ctx, query,
		m.Name, m.Floor, m.PricePerNight, m.Bedrooms, m.Bathrooms, m.MaxGuests,
		m.Status, m.MainPictureURL, m.AdditionalPictureURLs,
		m.LastUpdatedAt, m.LastUpdatedBy, m.UnitID,
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUnitRepository) SetUnitVisibilityInTx(ctx context.Context, tx pgx.Tx, unitID string, visible bool, userID string, now time.Time) error {
	query := `
        UPDATE units
        SET is_visible = $1, last_updated_at = $2, last_updated_by = $3
        WHERE unit_id = $4 AND is_deleted = FALSE;
    `
	cmdTag, err := tx.Exec(ctx, query, visible, now, userID, unitID)
	if err != nil {
		return fmt.Errorf("failed to set unit visibility: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUnitRepository) SoftDeleteUnitInTx(ctx context.Context, tx pgx.Tx, unitID string, userID string, now time.Time) error {
	query := `
        UPDATE units
        SET is_deleted = TRUE, is_visible = FALSE, last_updated_at = $1, last_updated_by = $2
        WHERE unit_id = $3 AND is_deleted = FALSE;
    `
	cmdTag, err := tx.Exec(ctx, query, now, userID, unitID)
	if err != nil {
		return fmt.Errorf("failed to soft delete unit: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanUnit(row pgx.Row) (models.Unit, error) {
	var m models.Unit
	err := row.Scan(
		&m.UnitID,
		&m.PropertyID,
		&m.Name,
		&m.Floor,
		&m.PricePerNight,
		&m.Bedrooms,
		&m.Bathrooms,
		&m.MaxGuests,
		&m.Status,
		&m.IsVisible,
		&m.IsDeleted,
		&m.MainPictureURL,
		&m.AdditionalPictureURLs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
