package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	portsrepo "github.com/propfolio/propfolio-backend/internal/core/ports/repositories"
	"github.com/propfolio/propfolio-backend/internal/models"
)

type PgxExpenseRepository struct {
	db *pgxpool.Pool
}

func newPgxExpenseRepository(db *pgxpool.Pool) portsrepo.ExpenseRepository {
	return &PgxExpenseRepository{db: db}
}

var _ portsrepo.ExpenseRepository = (*PgxExpenseRepository)(nil)

func toModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:   d.ExpenseID,
		PropertyID:  d.PropertyID,
		ExpenseType: d.ExpenseType,
		Amount:      d.Amount,
		Date:        d.Date,
		Notes:       d.Notes,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:   m.ExpenseID,
		PropertyID:  m.PropertyID,
		ExpenseType: m.ExpenseType,
		Amount:      m.Amount,
		Date:        m.Date,
		Notes:       m.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const expenseColumns = `expense_id, property_id, expense_type, amount, date, notes,
       created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := toModelExpense(expense)
	query := `
        INSERT INTO expenses (expense_id, property_id, expense_type, amount, date, notes,
            created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.db.Exec(ctx, query,
		m.ExpenseID, m.PropertyID, m.ExpenseType, m.Amount, m.Date, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	return nil
}

func (r *PgxExpenseRepository) ListExpensesByProperty(ctx context.Context, propertyID string) ([]domain.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE property_id = $1 ORDER BY date ASC, expense_id ASC;`
	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func (r *PgxExpenseRepository) ListExpensesForPeriod(ctx context.Context, propertyID string, periodStart, periodEnd time.Time) ([]domain.Expense, error) {
	// Both period bounds are inclusive.
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE property_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC, expense_id ASC;
	`
	rows, err := r.db.Query(ctx, query, propertyID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for period: %w", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

func collectExpenses(rows pgx.Rows) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	for rows.Next() {
		var m models.Expense
		err := rows.Scan(
			&m.ExpenseID,
			&m.PropertyID,
			&m.ExpenseType,
			&m.Amount,
			&m.Date,
			&m.Notes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense row: %w", err)
		}
		expenses = append(expenses, toDomainExpense(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating expense rows: %w", rows.Err())
	}
	return expenses, nil
}
