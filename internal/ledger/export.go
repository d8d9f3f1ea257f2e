package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReceivablesCSV streams an org-wide receivables report. Amounts are
// grouped with thousands separators the way the dashboard displays them.
func WriteReceivablesCSV(w io.Writer, snapshots []AccountSnapshot, names map[int64]string) error {
	printer := message.NewPrinter(language.English)
	out := csv.NewWriter(w)
	out.UseCRLF = true

	header := []string{"account", "total_sales_gross", "total_paid", "due_amount", "current", "overdue", "oldest_unpaid_age_days", "credit_days", "limit_status"}
	if err := out.Write(header); err != nil {
		return err
	}

	var totalDue, totalOverdue float64
	for _, snap := range snapshots {
		name := names[snap.AccountID]
		if name == "" {
			name = fmt.Sprintf("account %d", snap.AccountID)
		}
		status := "Within Limit"
		if snap.OverCreditLimit {
			status = "Over Limit"
		}
		row := []string{
			name,
			printer.Sprintf("%.2f", snap.Metrics.TotalGrossSales),
			printer.Sprintf("%.2f", snap.Aging.TotalPaid),
			printer.Sprintf("%.2f", snap.Aging.DueAmount),
			printer.Sprintf("%.2f", snap.Aging.CurrentAmount),
			printer.Sprintf("%.2f", snap.Aging.OverdueAmount),
			fmt.Sprintf("%d", snap.Aging.OldestUnpaidAgeDays),
			fmt.Sprintf("%d", snap.CreditDaysLimit),
			status,
		}
		if err := out.Write(row); err != nil {
			return err
		}
		totalDue += snap.Aging.DueAmount
		totalOverdue += snap.Aging.OverdueAmount
	}

	totals := []string{
		"TOTAL", "", "",
		printer.Sprintf("%.2f", totalDue),
		"",
		printer.Sprintf("%.2f", totalOverdue),
		"", "", "",
	}
	if err := out.Write(totals); err != nil {
		return err
	}

	out.Flush()
	return out.Error()
}
