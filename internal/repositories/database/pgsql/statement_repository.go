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

// PgxStatementRepository persists owner statements and their lines. The
// owner_statements table carries UNIQUE(property_id, period_start, period_end)
// so the duplicate pre-check in the service has a hard backstop.
type PgxStatementRepository struct {
	BaseRepository
}

func newPgxStatementRepository(db *pgxpool.Pool) portsrepo.StatementRepositoryWithTx {
	return &PgxStatementRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.StatementRepositoryWithTx = (*PgxStatementRepository)(nil)

func toModelStatement(d domain.OwnerStatement) models.OwnerStatement {
	return models.OwnerStatement{
		StatementID:   d.StatementID,
		OwnerID:       d.OwnerID,
		PropertyID:    d.PropertyID,
		PeriodStart:   d.PeriodStart,
		PeriodEnd:     d.PeriodEnd,
		TotalRevenue:  d.TotalRevenue,
		TotalExpenses: d.TotalExpenses,
		ManagementFee: d.ManagementFee,
		NetPayout:     d.NetPayout,
		PayoutStatus:  string(d.PayoutStatus),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainStatement(m models.OwnerStatement) domain.OwnerStatement {
	return domain.OwnerStatement{
		StatementID:   m.StatementID,
		OwnerID:       m.OwnerID,
		PropertyID:    m.PropertyID,
		PeriodStart:   m.PeriodStart,
		PeriodEnd:     m.PeriodEnd,
		TotalRevenue:  m.TotalRevenue,
		TotalExpenses: m.TotalExpenses,
		ManagementFee: m.ManagementFee,
		NetPayout:     m.NetPayout,
		PayoutStatus:  domain.PayoutStatus(m.PayoutStatus),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const statementColumns = `statement_id, owner_id, property_id, period_start, period_end,
       total_revenue, total_expenses, management_fee, net_payout, payout_status,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxStatementRepository) FindStatementByID(ctx context.Context, statementID string) (*domain.OwnerStatement, error) {
	query := `
		SELECT s.statement_id, s.owner_id, s.property_id, p.name, s.period_start, s.period_end,
		       s.total_revenue, s.total_expenses, s.management_fee, s.net_payout, s.payout_status,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM owner_statements s
		JOIN properties p ON p.property_id = s.property_id
		WHERE s.statement_id = $1;
	`
	var m models.OwnerStatement
	var propertyName string
	err := r.Pool.QueryRow(ctx, query, statementID).Scan(
		&m.StatementID, &m.OwnerID, &m.PropertyID, &propertyName, &m.PeriodStart, &m.PeriodEnd,
		&m.TotalRevenue, &m.TotalExpenses, &m.ManagementFee, &m.NetPayout, &m.PayoutStatus,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement by ID %s: %w", statementID, err)
	}

	statement := toDomainStatement(m)
	statement.PropertyName = propertyName

	bookingLines, err := r.listBookingLines(ctx, statementID)
	if err != nil {
		return nil, err
	}
	expenseLines, err := r.listExpenseLines(ctx, statementID)
	if err != nil {
		return nil, err
	}
	statement.BookingLines = bookingLines
	statement.ExpenseLines = expenseLines
	return &statement, nil
}

func (r *PgxStatementRepository) FindStatementByPeriod(ctx context.Context, propertyID string, periodStart, periodEnd time.Time) (*domain.OwnerStatement, error) {
	query := `
		SELECT ` + statementColumns + `
		FROM owner_statements
		WHERE property_id = $1 AND period_start = $2 AND period_end = $3;
	`
	var m models.OwnerStatement
	err := r.Pool.QueryRow(ctx, query, propertyID, periodStart, periodEnd).Scan(
		&m.StatementID, &m.OwnerID, &m.PropertyID, &m.PeriodStart, &m.PeriodEnd,
		&m.TotalRevenue, &m.TotalExpenses, &m.ManagementFee, &m.NetPayout, &m.PayoutStatus,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find statement for period: %w", err)
	}
	statement := toDomainStatement(m)
	return &statement, nil
}

func (r *PgxStatementRepository) ListStatementsByOwner(ctx context.Context, ownerID string) ([]domain.OwnerStatement, error) {
	query := `
		SELECT s.statement_id, s.owner_id, s.property_id, p.name, s.period_start, s.period_end,
		       s.total_revenue, s.total_expenses, s.management_fee, s.net_payout, s.payout_status,
		       s.created_at, s.created_by, s.last_updated_at, s.last_updated_by
		FROM owner_statements s
		JOIN properties p ON p.property_id = s.property_id
		WHERE s.owner_id = $1
		ORDER BY s.period_start DESC, s.created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	statements := []domain.OwnerStatement{}
	for rows.Next() {
		var m models.OwnerStatement
		var propertyName string
		err := rows.Scan(
			&m.StatementID, &m.OwnerID, &m.PropertyID, &propertyName, &m.PeriodStart, &m.PeriodEnd,
			&m.TotalRevenue, &m.TotalExpenses, &m.ManagementFee, &m.NetPayout, &m.PayoutStatus,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement row: %w", err)
		}
		statement := toDomainStatement(m)
		statement.PropertyName = propertyName
		statements = append(statements, statement)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating statement rows: %w", rows.Err())
	}
	return statements, nil
}

func (r *PgxStatementRepository) SaveStatementInTx(ctx context.Context, tx pgx.Tx, statement domain.OwnerStatement) error {
	m := toModelStatement(statement)
	query := `
        INSERT INTO owner_statements (statement_id, owner_id, property_id, period_start, period_end,
            total_revenue, total_expenses, management_fee, net_payout, payout_status,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
    `
	_, err := tx.Exec(ctx, query,
		m.StatementID, m.OwnerID, m.PropertyID, m.PeriodStart, m.PeriodEnd,
		m.TotalRevenue, m.TotalExpenses, m.ManagementFee, m.NetPayout, m.PayoutStatus,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("statement already exists for this property and period: %w", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save statement: %w", err)
	}
	return nil
}

func (r *PgxStatementRepository) SaveBookingLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.BookingLine) error {
	query := `
        INSERT INTO statement_booking_lines (line_id, statement_id, reservation_id, guest_name,
            check_in_date, check_out_date, revenue, taxes, fees, net_revenue)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	for _, l := range lines {
		_, err := tx.Exec(ctx, query,
			l.LineID, l.StatementID, l.ReservationID, l.GuestName,
			l.CheckInDate, l.CheckOutDate, l.Revenue, l.Taxes, l.Fees, l.NetRevenue,
		)
		if err != nil {
			return fmt.Errorf("failed to save booking line: %w", err)
		}
	}
	return nil
}

func (r *PgxStatementRepository) SaveExpenseLinesInTx(ctx context.Context, tx pgx.Tx, lines []domain.ExpenseLine) error {
	query := `
        INSERT INTO statement_expense_lines (line_id, statement_id, expense_type, amount, date, notes)
        VALUES ($1, $2, $3, $4, $5, $6);
    `
	for _, l := range lines {
		_, err := tx.Exec(ctx, query, l.LineID, l.StatementID, l.ExpenseType, l.Amount, l.Date, l.Notes)
		if err != nil {
			return fmt.Errorf("failed to save expense line: %w", err)
		}
	}
	return nil
}

func (r *PgxStatementRepository) UpdatePayoutStatus(ctx context.Context, statementID string, status domain.PayoutStatus, userID string, now time.Time) error {
	query := `
        UPDATE owner_statements
        SET payout_status = $1, last_updated_at = $2, last_updated_by = $3
        WHERE statement_id = $4;
    `
	cmdTag, err := r.Pool.Exec(ctx, query, string(status), now, userID, statementID)
	if err != nil {
		return fmt.Errorf("failed to update payout status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxStatementRepository) listBookingLines(ctx context.Context, statementID string) ([]domain.BookingLine, error) {
	query := `
		SELECT line_id, statement_id, reservation_id, guest_name, check_in_date, check_out_date,
		       revenue, taxes, fees, net_revenue
		FROM statement_booking_lines
		WHERE statement_id = $1
		ORDER BY check_in_date ASC, line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query booking lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.BookingLine{}
	for rows.Next() {
		var m models.BookingLine
		err := rows.Scan(
			&m.LineID, &m.StatementID, &m.ReservationID, &m.GuestName, &m.CheckInDate, &m.CheckOutDate,
			&m.Revenue, &m.Taxes, &m.Fees, &m.NetRevenue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking line row: %w", err)
		}
		lines = append(lines, domain.BookingLine{
			LineID:        m.LineID,
			StatementID:   m.StatementID,
			ReservationID: m.ReservationID,
			GuestName:     m.GuestName,
			CheckInDate:   m.CheckInDate,
			CheckOutDate:  m.CheckOutDate,
			Revenue:       m.Revenue,
			Taxes:         m.Taxes,
			Fees:          m.Fees,
			NetRevenue:    m.NetRevenue,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating booking line rows: %w", rows.Err())
	}
	return lines, nil
}

func (r *PgxStatementRepository) listExpenseLines(ctx context.Context, statementID string) ([]domain.ExpenseLine, error) {
	query := `
		SELECT line_id, statement_id, expense_type, amount, date, notes
		FROM statement_expense_lines
		WHERE statement_id = $1
		ORDER BY date ASC, line_id ASC;
	`
	rows, err := r.Pool.Query(ctx, query, statementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.ExpenseLine{}
	for rows.Next() {
		var m models.ExpenseLine
		err := rows.Scan(&m.LineID, &m.StatementID, &m.ExpenseType, &m.Amount, &m.Date, &m.Notes)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense line row: %w", err)
		}
		lines = append(lines, domain.ExpenseLine{
			LineID:      m.LineID,
			StatementID: m.StatementID,
			ExpenseType: m.ExpenseType,
			Amount:      m.Amount,
			Date:        m.Date,
			Notes:       m.Notes,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense line rows: %w", rows.Err())
	}
	return lines, nil
}
