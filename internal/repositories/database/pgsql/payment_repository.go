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

// PgxPaymentRepository persists the append-only payment ledger. Rows are
// never deleted; the only mutation is a status transition.
type PgxPaymentRepository struct {
	db *pgxpool.Pool
}

func newPgxPaymentRepository(db *pgxpool.Pool) portsrepo.PaymentRepository {
	return &PgxPaymentRepository{db: db}
}

var _ portsrepo.PaymentRepository = (*PgxPaymentRepository)(nil)

func toModelTransaction(d domain.PaymentTransaction) models.PaymentTransaction {
	return models.PaymentTransaction{
		TransactionID: d.TransactionID,
		Type:          string(d.Type),
		Amount:        d.Amount,
		CurrencyCode:  d.CurrencyCode,
		PaymentMethod: d.PaymentMethod,
		Date:          d.Date,
		Status:        string(d.Status),
		OwnerID:       d.OwnerID,
		GuestID:       d.GuestID,
		PropertyID:    d.PropertyID,
		UnitID:        d.UnitID,
		ReservationID: d.ReservationID,
		InvoiceID:     d.InvoiceID,
		Notes:         d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.PaymentTransaction) domain.PaymentTransaction {
	return domain.PaymentTransaction{
		TransactionID: m.TransactionID,
		Type:          domain.TransactionType(m.Type),
		Amount:        m.Amount,
		CurrencyCode:  m.CurrencyCode,
		PaymentMethod: m.PaymentMethod,
		Date:          m.Date,
		Status:        domain.TransactionStatus(m.Status),
		OwnerID:       m.OwnerID,
		GuestID:       m.GuestID,
		PropertyID:    m.PropertyID,
		UnitID:        m.UnitID,
		ReservationID: m.ReservationID,
		InvoiceID:     m.InvoiceID,
		Notes:         m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, type, amount, currency_code, payment_method, date, status,
       owner_id, guest_id, property_id, unit_id, reservation_id, invoice_id, notes,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPaymentRepository) SavePaymentTransaction(ctx context.Context, txn domain.PaymentTransaction) error {
	m := toModelTransaction(txn)
	query := `
        INSERT INTO payment_transactions (transaction_id, type, amount, currency_code, payment_method, date, status,
            owner_id, guest_id, property_id, unit_id, reservation_id, invoice_id, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
    `
	_, err := r.db.Exec(ctx, query,
		m.TransactionID, m.Type, m.Amount, m.CurrencyCode, m.PaymentMethod, m.Date, m.Status,
		nullString(m.OwnerID), nullString(m.GuestID), nullString(m.PropertyID), nullString(m.UnitID),
		nullString(m.ReservationID), nullString(m.InvoiceID), m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction already recorded: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save payment transaction: %w", err)
	}
	return nil
}

func (r *PgxPaymentRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM payment_transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	d := toDomainTransaction(m)
	return &d, nil
}

func (r *PgxPaymentRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, userID string, now time.Time) error {
	query := `
        UPDATE payment_transactions
        SET status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE transaction_id = $4;
    `
	cmdTag, err := r.db.Exec(ctx, query, string(status), now, userID, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update transaction status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPaymentRepository) ListTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM payment_transactions
		WHERE owner_id = $1 OR guest_id = $1
		ORDER BY date DESC, transaction_id ASC;
	`
	rows, err := r.db.Query(ctx, query, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *PgxPaymentRepository) ListCompletedTransactionsByParty(ctx context.Context, partyID string) ([]domain.PaymentTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM payment_transactions
		WHERE (owner_id = $1 OR guest_id = $1) AND status = $2
		ORDER BY date DESC, transaction_id ASC;
	`
	rows, err := r.db.Query(ctx, query, partyID, string(domain.StatusCompleted))
	if err != nil {
		return nil, fmt.Errorf("failed to query completed transactions: %w", err)
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.PaymentTransaction, error) {
	txns := []domain.PaymentTransaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}
	return txns, nil
}

func scanTransaction(row pgx.Row) (models.PaymentTransaction, error) {
	var m models.PaymentTransaction
	var ownerID, guestID, propertyID, unitID, reservationID, invoiceID sql.NullString
	err := row.Scan(
		&m.TransactionID,
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
		return models.PaymentTransaction{}, err
	}
	m.OwnerID = ownerID.String
	m.GuestID = guestID.String
	m.PropertyID = propertyID.String
	m.UnitID = unitID.String
	m.ReservationID = reservationID.String
	m.InvoiceID = invoiceID.String
	return m, nil
}
