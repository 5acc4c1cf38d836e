package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/propfolio-backend/internal/apperrors"
	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	"github.com/propfolio/propfolio-backend/internal/models"
)

type PgxPropertyRepository struct {
	db *pgxpool.Pool
}

func newPgxPropertyRepository(db *pgxpool.Pool) portsrepo.PropertyRepository {
	return &PgxPropertyRepository{db: db}
}

var _ portsrepo.PropertyRepository = (*PgxPropertyRepository)(nil)

func toModelProperty(d domain.Property) models.Property {
	return models.Property{
		PropertyID:           d.PropertyID,
		OwnerID:              d.OwnerID,
		Name:                 d.Name,
		Address:              d.Address,
		City:                 d.City,
		Country:              d.Country,
		ManagementFeePercent: d.ManagementFeePercent,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainProperty(m models.Property) domain.Property {
	return domain.Property{
		PropertyID:           m.PropertyID,
		OwnerID:              m.OwnerID,
		Name:                 m.Name,
		Address:              m.Address,
		City:                 m.City,
		Country:              m.Country,
		ManagementFeePercent: m.ManagementFeePercent,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const propertyColumns = `property_id, owner_id, name, address, city, country, management_fee_percent,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPropertyRepository) SaveProperty(ctx context.Context, property domain.Property) error {
	m := toModelProperty(property)
	query := `
        INSERT INTO properties (property_id, owner_id, name, address, city, country, management_fee_percent,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.db.Exec(ctx, query,
		m.PropertyID, m.OwnerID, m.Name, m.Address, m.City, m.Country, m.ManagementFeePercent,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("property already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

func (r *PgxPropertyRepository) FindPropertyByID(ctx context.Context, propertyID string) (*domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE property_id = $1;`
	m, err := scanProperty(r.db.QueryRow(ctx, query, propertyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find property by ID %s: %w", propertyID, err)
	}
	d := toDomainProperty(m)
	return &d, nil
}

func (r *PgxPropertyRepository) ListPropertiesByOwner(ctx context.Context, ownerID string) ([]domain.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE owner_id = $1 ORDER BY created_at ASC;`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := []domain.Property{}
	for rows.Next() {
		m, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		properties = append(properties, toDomainProperty(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", rows.Err())
	}
	return properties, nil
}

func (r *PgxPropertyRepository) UpdateProperty(ctx context.Context, property domain.Property) error {
	m := toModelProperty(property)
	query := `
        UPDATE properties
        SET name = $1, address = $2, city = $3, country = $4, management_fee_percent = $5,
            last_updated_at = $6, last_updated_by = $7
        WHERE property_id = $8;
    `
	cmdTag, err := r.db.Exec(ctx, query,
		m.Name, m.Address, m.City, m.Country, m.ManagementFeePercent,
		m.LastUpdatedAt, m.LastUpdatedBy, m.PropertyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanProperty(row pgx.Row) (models.Property, error) {
	var m models.Property
	err := row.Scan(
		&m.PropertyID,
		&m.OwnerID,
		&m.Name,
		&m.Address,
		&m.City,
		&m.Country,
		&m.ManagementFeePercent,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}
