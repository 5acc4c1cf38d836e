package export_test

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
	"github.com/propfolio/propfolio-backend/internal/export"
)

func sampleStatement() *domain.OwnerStatement {
	statementID := uuid.NewString()
	return &domain.OwnerStatement{
		StatementID:   statementID,
		OwnerID:       uuid.NewString(),
		PropertyID:    uuid.NewString(),
		PropertyName:  "Beach House",
		PeriodStart:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		TotalRevenue:  decimal.NewFromInt(1000),
		TotalExpenses: decimal.NewFromInt(100),
		ManagementFee: decimal.NewFromInt(100),
		NetPayout:     decimal.NewFromInt(800),
		PayoutStatus:  domain.PayoutPending,
		BookingLines: []domain.BookingLine{
			{
				LineID:        uuid.NewString(),
				StatementID:   statementID,
				ReservationID: uuid.NewString(),
				GuestName:     `Smith, "Bob"`,
				CheckInDate:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
				CheckOutDate:  time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
				Revenue:       decimal.NewFromInt(600),
				NetRevenue:    decimal.NewFromInt(600),
			},
			{
				LineID:        uuid.NewString(),
				StatementID:   statementID,
				ReservationID: uuid.NewString(),
				GuestName:     "Alice",
				CheckInDate:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				CheckOutDate:  time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC),
				Revenue:       decimal.NewFromInt(400),
				NetRevenue:    decimal.NewFromInt(400),
			},
		},
		ExpenseLines: []domain.ExpenseLine{
			{
				LineID:      uuid.NewString(),
				StatementID: statementID,
				ExpenseType: "cleaning",
				Amount:      decimal.NewFromInt(100),
				Date:        time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
				Notes:       "deep clean,\nincluding balcony",
			},
		},
	}
}

func TestWriteStatementCSV_RoundTrip(t *testing.T) {
	s := sampleStatement()

	var buf bytes.Buffer
	require.NoError(t, export.WriteStatementCSV(&buf, s))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err, "output must parse as RFC 4180 csv")

	// header + 2 bookings + 1 expense + 4 summary rows
	require.Len(t, records, 8)
	assert.Equal(t, "line_type", records[0][0])

	booking := records[1]
	assert.Equal(t, "booking", booking[0])
	assert.Equal(t, `Smith, "Bob"`, booking[2], "quoted fields must survive the round trip")
	assert.Equal(t, "2025-06-02", booking[3])
	assert.Equal(t, "600", booking[8])

	expense := records[3]
	assert.Equal(t, "expense", expense[0])
	assert.Equal(t, "cleaning", expense[5])
	assert.Equal(t, "deep clean,\nincluding balcony", expense[7])
	assert.Equal(t, "100", expense[8])

	summaries := map[string]string{}
	for _, row := range records[4:] {
		summaries[row[0]] = row[8]
	}
	assert.Equal(t, "1000", summaries["total_revenue"])
	assert.Equal(t, "100", summaries["total_expenses"])
	assert.Equal(t, "100", summaries["management_fee"])
	assert.Equal(t, "800", summaries["net_payout"])
}

func TestWriteStatementCSV_Deterministic(t *testing.T) {
	s := sampleStatement()

	var first, second bytes.Buffer
	require.NoError(t, export.WriteStatementCSV(&first, s))
	require.NoError(t, export.WriteStatementCSV(&second, s))

	assert.Equal(t, first.String(), second.String())
}

func TestStatementCSVFilename(t *testing.T) {
	s := sampleStatement()

	name := export.StatementCSVFilename(s)

	assert.Contains(t, name, s.PropertyID)
	assert.Contains(t, name, "2025-06-01")
	assert.Contains(t, name, "2025-06-30")
	assert.Contains(t, name, ".csv")
}

func TestWriteStatementHTML_RendersAndEscapes(t *testing.T) {
	s := sampleStatement()
	s.BookingLines[0].GuestName = `<script>alert("x")</script>`

	var buf bytes.Buffer
	require.NoError(t, export.WriteStatementHTML(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "Beach House")
	assert.Contains(t, out, "2025-06-01")
	assert.Contains(t, out, "800")
	assert.NotContains(t, out, "<script>alert", "guest names must be escaped")
}

func TestWriteStatementHTML_EmptyPeriod(t *testing.T) {
	s := sampleStatement()
	s.BookingLines = nil
	s.ExpenseLines = nil

	var buf bytes.Buffer
	require.NoError(t, export.WriteStatementHTML(&buf, s))
	out := buf.String()

	assert.Contains(t, out, "No bookings in this period")
	assert.Contains(t, out, "No expenses in this period")
}
