// Package export renders owner statements into downloadable formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

const dateLayout = "2006-01-02"

// statementCSVHeader is the fixed column set of a statement export. Line rows
// fill the columns relevant to their kind; summary rows carry a label and an
// amount.
var statementCSVHeader = []string{
	"line_type",
	"reservation_id",
	"guest_name",
	"check_in_date",
	"check_out_date",
	"expense_type",
	"date",
	"notes",
	"amount",
}

// WriteStatementCSV writes a statement as CSV: one row per booking line, one
// per expense line, then the four summary totals. Output is deterministic for
// a given statement, and values containing commas, quotes or newlines are
// quoted per RFC 4180 so the file round-trips through any CSV parser.
func WriteStatementCSV(w io.Writer, s *domain.OwnerStatement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(statementCSVHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, l := range s.BookingLines {
		row := []string{
			"booking",
			l.ReservationID,
			l.GuestName,
			l.CheckInDate.Format(dateLayout),
			l.CheckOutDate.Format(dateLayout),
			"",
			"",
			"",
			l.Revenue.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write booking line: %w", err)
		}
	}

	for _, l := range s.ExpenseLines {
		row := []string{
			"expense",
			"",
			"",
			"",
			"",
			l.ExpenseType,
			l.Date.Format(dateLayout),
			l.Notes,
			l.Amount.String(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write expense line: %w", err)
		}
	}

	summaries := []struct {
		label  string
		amount string
	}{
		{"total_revenue", s.TotalRevenue.String()},
		{"total_expenses", s.TotalExpenses.String()},
		{"management_fee", s.ManagementFee.String()},
		{"net_payout", s.NetPayout.String()},
	}
	for _, summary := range summaries {
		row := []string{summary.label, "", "", "", "", "", "", "", summary.amount}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// StatementCSVFilename builds the suggested download filename.
func StatementCSVFilename(s *domain.OwnerStatement) string {
	return fmt.Sprintf("statement_%s_%s_%s.csv",
		s.PropertyID,
		s.PeriodStart.Format(dateLayout),
		s.PeriodEnd.Format(dateLayout))
}
