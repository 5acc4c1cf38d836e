package pgsql

import (
	"context"
	"database/sql"
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

// PgxDisbursementRepository persists the outbound side of the ledger. Same
// append-only rules as payment transactions.
type PgxDisbursementRepository struct {
	db *pgxpool.Pool
}

func newPgxDisbursementRepository(db *pgxpool.Pool) portsrepo.DisbursementRepository {
	return &PgxDisbursementRepository{db: db}
}

var _ portsrepo.DisbursementRepository = (*PgxDisbursementRepository)(nil)

func toModelDisbursement(d domain.Disbursement) models.Disbursement {
	return models.Disbursement{
		DisbursementID: d.DisbursementID,
		Type:           string(d.Type),
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		PaymentMethod:  d.PaymentMethod,
		Date:           d.Date,
		Status:         string(d.Status),
		OwnerID:        d.OwnerID,
		GuestID:        d.GuestID,
		PropertyID:     d.PropertyID,
		UnitID:         d.UnitID,
		ReservationID:  d.ReservationID,
		InvoiceID:      d.InvoiceID,
		Notes:          d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainDisbursement(m models.Disbursement) domain.Disbursement {
	return domain.Disbursement{
		DisbursementID: m.DisbursementID,
		Type:           domain.TransactionType(m.Type),
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
		PaymentMethod:  m.PaymentMethod,
		Date:           m.Date,
		Status:         domain.TransactionStatus(m.Status),
		OwnerID:        m.OwnerID,
		GuestID:        m.GuestID,
		PropertyID:     m.PropertyID,
		UnitID:         m.UnitID,
		ReservationID:  m.ReservationID,
		InvoiceID:      m.InvoiceID,
		Notes:          m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const disbursementColumns = `disbursement_id, type, amount, currency_code, payment_method, date, status,
       owner_id, guest_id, property_id, unit_id, reservation_id, invoice_id, notes,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxDisbursementRepository) SaveDisbursement(ctx context.Context, d domain.Disbursement) error {
	m := toModelDisbursement(d)
	query := `
        INSERT INTO disbursements (disbursement_id, type, amount, currency_code, payment_method, date, status,
            owner_id, guest_id, property_id, unit_id, reservation_id, invoice_id, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.db.Exec(ctx, query,
		m.DisbursementID, m.Type, m.Amount, m.CurrencyCode, m.PaymentMethod, m.Date, m.Status,
		nullString(m.OwnerID), nullString(m.GuestID), nullString(m.PropertyID), nullString(m.UnitID),
		nullString(m.ReservationID), nullString(m.InvoiceID), m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("disbursement already recorded: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save disbursement: %w", err)
	}
	return nil
}

func (r *PgxDisbursementRepository) FindDisbursementByID(ctx context.Context, disbursementID string) (*domain.Disbursement, error) {
	query := `SELECT ` + disbursementColumns + ` FROM disbursements WHERE disbursement_id = $1;`
	m, err := scanDisbursement(r.db.QueryRow(ctx, query, disbursementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find disbursement by ID %s: %w", disbursementID, err)
	}
	d := toDomainDisbursement(m)
	return &d, nil
}

func (r *PgxDisbursementRepository) UpdateDisbursementStatus(ctx context.Context, disbursementID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
        UPDATE disbursements
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE disbursement_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), now, userID, disbursementID)
	if err != nil {
		return fmt.Errorf("failed to update disbursement status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDisbursementRepository) ListDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error) {
	query := `
		SELECT ` + disbursementColumns + `
		FROM disbursements
		WHERE owner_id = $1 OR guest_id = $1
		ORDER BY date DESC, disbursement_id ASC;
	`
	rows, err := r.db.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query disbursements: %w", err)
	}
	defer rows.Close()
	return collectDisbursements(rows)
}

func (r *PgxDisbursementRepository) ListCompletedDisbursementsByParty(ctx context.Context, partyID string) ([]domain.Disbursement, error) {
	query := `
		SELECT ` + disbursementColumns + `
		FROM disbursements
		WHERE (owner_id = $1 OR guest_id = $1) AND status = $2
		ORDER BY date DESC, disbursement_id ASC;
	`
	rows, err := r.db.Query(ctx, query, partyID, string(domain.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query completed disbursements: %w", err)
	}
	defer rows.Close()
	return collectDisbursements(rows)
}

func collectDisbursements(rows pgx.Rows) ([]domain.Disbursement, error) {
	ds := []domain.Disbursement{}
	for rows.Next() {
		m, err := scanDisbursement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan disbursement row: %w", err)
		}
		ds = append(ds, toDomainDisbursement(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating disbursement rows: %w", rows.Err())
	}
	return ds, nil
}

func scanDisbursement(row pgx.Row) (models.Disbursement, error) {
	var m models.Disbursement
	var ownerID, guestID, propertyID, unitID, reservationID, invoiceID sql.NullString
	err := row.Scan(
		&m.DisbursementID,
		&m.Type,
		&m.Amount,
		&m.CurrencyCode,
		&m.PaymentMethod,
		&m.Date,
		&m.Status,
		&ownerID,
		&guestID,
		&propertyID,
		&unitID,
		&reservationID,
		&invoiceID,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Disbursement{}, err
	}
	m.OwnerID = ownerID.String
	m.GuestID = guestID.String
	m.PropertyID = propertyID.String
	m.UnitID = unitID.String
	m.ReservationID = reservationID.String
	m.InvoiceID = invoiceID.String
	return m, nil
}
