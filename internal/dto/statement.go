package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// GenerateStatementRequest defines the period to aggregate.
type GenerateStatementRequest struct {
	PropertyID  string    `json:"propertyID" binding:"required"`
	PeriodStart time.Time `json:"periodStart" binding:"required"`
	PeriodEnd   time.Time `json:"periodEnd" binding:"required"`
}

// UpdatePayoutStatusRequest carries a payout status transition.
type UpdatePayoutStatusRequest struct {
	Status domain.PayoutStatus `json:"status" binding:"required,oneof=pending paid on_hold overdue"`
}

// BookingLineResponse defines one reservation line of a statement.
type BookingLineResponse struct {
	ReservationID string          `json:"reservationID"`
	GuestName     string          `json:"guestName"`
	CheckInDate   time.Time       `json:"checkInDate"`
	CheckOutDate  time.Time       `json:"checkOutDate"`
	Revenue       decimal.Decimal `json:"revenue"`
	Taxes         decimal.Decimal `json:"taxes"`
	Fees          decimal.Decimal `json:"fees"`
	NetRevenue    decimal.Decimal `json:"netRevenue"`
}

// ExpenseLineResponse defines one expense line of a statement.
type ExpenseLineResponse struct {
	ExpenseType string          `json:"expenseType"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes"`
}

// StatementResponse defines the data returned for an owner statement.
type StatementResponse struct {
	StatementID   string                `json:"statementID"`
	PropertyID    string                `json:"propertyID"`
	PropertyName  string                `json:"propertyName"`
	PeriodStart   time.Time             `json:"periodStart"`
	PeriodEnd     time.Time             `json:"periodEnd"`
	TotalRevenue  decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses decimal.Decimal       `json:"totalExpenses"`
	ManagementFee decimal.Decimal       `json:"managementFee"`
	NetPayout     decimal.Decimal       `json:"netPayout"`
	PayoutStatus  domain.PayoutStatus   `json:"payoutStatus"`
	CreatedAt     time.Time             `json:"createdAt"`
	BookingLines  []BookingLineResponse `json:"bookingLines"`
	ExpenseLines  []ExpenseLineResponse `json:"expenseLines"`
}

// ListStatementsResponse wraps the list of statements.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
}

// ToStatementResponse converts a domain.OwnerStatement to its DTO.
func ToStatementResponse(s *domain.OwnerStatement) StatementResponse {
	bookingLines := make([]BookingLineResponse, len(s.BookingLines))
	for i, l := range s.BookingLines {
		bookingLines[i] = BookingLineResponse{
			ReservationID: l.ReservationID,
			GuestName:     l.GuestName,
			CheckInDate:   l.CheckInDate,
			CheckOutDate:  l.CheckOutDate,
			Revenue:       l.Revenue,
			Taxes:         l.Taxes,
			Fees:          l.Fees,
			NetRevenue:    l.NetRevenue,
		}
	}
	expenseLines := make([]ExpenseLineResponse, len(s.ExpenseLines))
	for i, l := range s.ExpenseLines {
		expenseLines[i] = ExpenseLineResponse{
			ExpenseType: l.ExpenseType,
			Amount:      l.Amount,
			Date:        l.Date,
			Notes:       l.Notes,
		}
	}
	return StatementResponse{
		StatementID:   s.StatementID,
		PropertyID:    s.PropertyID,
		PropertyName:  s.PropertyName,
		PeriodStart:   s.PeriodStart,
		PeriodEnd:     s.PeriodEnd,
		TotalRevenue:  s.TotalRevenue,
		TotalExpenses: s.TotalExpenses,
		ManagementFee: s.ManagementFee,
		NetPayout:     s.NetPayout,
		PayoutStatus:  s.PayoutStatus,
		CreatedAt:     s.CreatedAt,
		BookingLines:  bookingLines,
		ExpenseLines:  expenseLines,
	}
}

// ToStatementResponses converts a slice of statements to DTOs.
func ToStatementResponses(statements []domain.OwnerStatement) []StatementResponse {
	res := make([]StatementResponse, len(statements))
	for i, s := range statements {
		res[i] = ToStatementResponse(&s)
	}
	return res
}
