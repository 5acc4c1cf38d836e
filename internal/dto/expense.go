package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// CreateExpenseRequest defines the data needed to book a property expense.
type CreateExpenseRequest struct {
	PropertyID  string          `json:"propertyID" binding:"required"`
	ExpenseType string          `json:"expenseType" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Notes       string          `json:"notes"`
}

// ExpenseResponse defines the data returned for an expense.
type ExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	PropertyID  string          `json:"propertyID"`
	ExpenseType string          `json:"expenseType"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes"`
}

// ListExpensesResponse wraps the list of expenses.
type ListExpensesResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
}

// ToExpenseResponse converts a domain.Expense to ExpenseResponse DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:   e.ExpenseID,
		PropertyID:  e.PropertyID,
		ExpenseType: e.ExpenseType,
		Amount:      e.Amount,
		Date:        e.Date,
		Notes:       e.Notes,
	}
}

// ToExpenseResponses converts a slice of domain.Expense to DTOs.
func ToExpenseResponses(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		res[i] = ToExpenseResponse(&e)
	}
	return res
}
