package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/propfolio/propfolio-backend/internal/core/domain"
)

// statementTemplate is a self-contained printable document; styles are inline
// so the file renders the same when saved or printed from the browser.
var statementTemplate = template.Must(template.New("statement").Funcs(template.FuncMap{
	"date": func(t interface{ Format(string) string }) string { return t.Format(dateLayout) },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Owner Statement - {{.PropertyName}}</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #222; margin: 2rem auto; max-width: 52rem; }
  h1 { font-size: 1.4rem; margin-bottom: 0; }
  .period { color: #666; margin-top: 0.25rem; }
  table { width: 100%; border-collapse: collapse; margin: 1.25rem 0; }
  th, td { padding: 0.4rem 0.6rem; border-bottom: 1px solid #ddd; text-align: left; }
  th { background: #f5f5f5; }
  td.amount, th.amount { text-align: right; }
  .totals td { border-bottom: none; }
  .totals .net { font-weight: bold; border-top: 2px solid #222; }
  .status { display: inline-block; padding: 0.15rem 0.6rem; border-radius: 0.75rem; background: #eee; font-size: 0.85rem; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>Owner Statement &mdash; {{.PropertyName}}</h1>
<p class="period">{{date .PeriodStart}} to {{date .PeriodEnd}} &middot; <span class="status">{{.PayoutStatus}}</span></p>

<h2>Bookings</h2>
<table>
  <tr><th>Guest</th><th>Check-in</th><th>Check-out</th><th class="amount">Revenue</th></tr>
  {{range .BookingLines}}
  <tr><td>{{.GuestName}}</td><td>{{date .CheckInDate}}</td><td>{{date .CheckOutDate}}</td><td class="amount">{{.Revenue}}</td></tr>
  {{else}}
  <tr><td colspan="4">No bookings in this period</td></tr>
  {{end}}
</table>

<h2>Expenses</h2>
<table>
  <tr><th>Type</th><th>Date</th><th>Notes</th><th class="amount">Amount</th></tr>
  {{range .ExpenseLines}}
  <tr><td>{{.ExpenseType}}</td><td>{{date .Date}}</td><td>{{.Notes}}</td><td class="amount">{{.Amount}}</td></tr>
  {{else}}
  <tr><td colspan="4">No expenses in this period</td></tr>
  {{end}}
</table>

<h2>Summary</h2>
<table class="totals">
  <tr><td>Total revenue</td><td class="amount">{{.TotalRevenue}}</td></tr>
  <tr><td>Total expenses</td><td class="amount">{{.TotalExpenses}}</td></tr>
  <tr><td>Management fee</td><td class="amount">{{.ManagementFee}}</td></tr>
  <tr class="net"><td>Net payout</td><td class="amount net">{{.NetPayout}}</td></tr>
</table>
</body>
</html>
`))

// WriteStatementHTML renders the printable statement document.
func WriteStatementHTML(w io.Writer, s *domain.OwnerStatement) error {
	if err := statementTemplate.Execute(w, s); err != nil {
		return fmt.Errorf("failed to render statement html: %w", err)
	}
	return nil
}
