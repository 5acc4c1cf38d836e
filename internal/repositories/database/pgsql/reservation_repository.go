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

type PgxReservationRepository struct {
	db *pgxpool.Pool
}

func newPgxReservationRepository(db *pgxpool.Pool) portsrepo.ReservationRepository {
	return &PgxReservationRepository{db: db}
}

var _ portsrepo.ReservationRepository = (*PgxReservationRepository)(nil)

func toModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ReservationID: d.ReservationID,
		UnitID:        d.UnitID,
		GuestID:       d.GuestID,
		GuestName:     d.GuestName,
		CheckInDate:   d.CheckInDate,
		CheckOutDate:  d.CheckOutDate,
		TotalPrice:    d.TotalPrice,
		PaymentStatus: string(d.PaymentStatus),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID: m.ReservationID,
		UnitID:        m.UnitID,
		GuestID:       m.GuestID,
		GuestName:     m.GuestName,
		CheckInDate:   m.CheckInDate,
		CheckOutDate:  m.CheckOutDate,
		TotalPrice:    m.TotalPrice,
		PaymentStatus: domain.ReservationPaymentStatus(m.PaymentStatus),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const reservationColumns = `reservation_id, unit_id, guest_id, guest_name, check_in_date, check_out_date,
       total_price, payment_status, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxReservationRepository) SaveReservation(ctx context.Context, reservation domain.Reservation) error {
	m := toModelReservation(reservation)
	query := `
        INSERT INTO reservations (reservation_id, unit_id, guest_id, guest_name, check_in_date, check_out_date,
            total_price, payment_status, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := r.db.Exec(ctx, query,
		m.ReservationID, m.UnitID, nullString(m.GuestID), m.GuestName, m.CheckInDate, m.CheckOutDate,
		m.TotalPrice, m.PaymentStatus, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("reservation already exists: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save reservation: %w", err)
	}
	return nil
}

func (r *PgxReservationRepository) FindReservationByID(ctx context.Context, reservationID string) (*domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE reservation_id = $1;`
	m, err := scanReservation(r.db.QueryRow(ctx, query, reservationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation by ID %s: %w", reservationID, err)
	}
	d := toDomainReservation(m)
	return &d, nil
}

func (r *PgxReservationRepository) ListReservationsByUnit(ctx context.Context, unitID string) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE unit_id = $1 ORDER BY check_in_date ASC;`
	rows, err := r.db.Query(ctx, query, unitID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func (r *PgxReservationRepository) ListReservationsForPeriod(ctx context.Context, unitIDs []string, periodStart, periodEnd time.Time, statuses []domain.ReservationPaymentStatus) ([]domain.Reservation, error) {
	if len(unitIDs) == 0 {
		return []domain.Reservation{}, nil
	}
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}
	// Both period bounds are inclusive: the stay must start on or after
	// periodStart and end on or before periodEnd.
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE unit_id = ANY($1)
		  AND check_in_date >= $2
		  AND check_out_date <= $3
		  AND payment_status = ANY($4)
		ORDER BY check_in_date ASC, reservation_id ASC;
	`
	rows, err := r.db.Query(ctx, query, unitIDs, periodStart, periodEnd, statusStrings)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations for period: %w", err)
	}
	defer rows.Close()
	return collectReservations(rows)
}

func collectReservations(rows pgx.Rows) ([]domain.Reservation, error) {
	reservations := []domain.Reservation{}
	for rows.Next() {
		m, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation row: %w", err)
		}
		reservations = append(reservations, toDomainReservation(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reservation rows: %w", rows.Err())
	}
	return reservations, nil
}

func scanReservation(row pgx.Row) (models.Reservation, error) {
	var m models.Reservation
	var guestID sql.NullString
	err := row.Scan(
		&m.ReservationID,
		&m.UnitID,
		&guestID,
		&m.GuestName,
		&m.CheckInDate,
		&m.CheckOutDate,
		&m.TotalPrice,
		&m.PaymentStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Reservation{}, err
	}
	m.GuestID = guestID.String
	return m, nil
}
