package ledger

import (
	"math"
	"sort"
	"time"
)

// ComputeAging applies an account's total cash against its sales oldest-first
// and splits the unpaid remainder between current and overdue.
//
// Payments are a plain cash ledger, so the walk assumes FIFO allocation:
// cash retires the oldest sale first. Sales sharing a transaction date keep
// their relative input order (ascending id when loaded from storage), which
// makes allocation between same-day sales deterministic. The age of a sale
// with a zero or unparseable date is 0 days, so a single bad record is
// classified current instead of aborting the whole computation.
//
// DueAmount is computed independently of the walk as gross sales minus total
// paid; an overpaid account therefore reports a negative DueAmount with both
// aging buckets at zero.
func ComputeAging(sales []SaleRecord, payments []PaymentRecord, creditDaysLimit int, asOf time.Time) AgingResult {
	if asOf.IsZero() {
		asOf = time.Now().UTC()
	}

	var totalPaid, totalGross float64
	for _, p := range payments {
		totalPaid += p.Amount
	}
	for _, s := range sales {
		totalGross += s.GrossAmount
	}

	sorted := make([]SaleRecord, len(sales))
	copy(sorted, sales)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TransactionDate.Before(sorted[j].TransactionDate)
	})

	result := AgingResult{
		TotalPaid: totalPaid,
		DueAmount: totalGross - totalPaid,
	}

	remaining := totalPaid
	oldestRecorded := false
	for _, sale := range sorted {
		saleAmt := sale.GrossAmount
		var unpaid float64
		if remaining >= saleAmt {
			remaining -= saleAmt
		} else {
			unpaid = saleAmt - remaining
			remaining = 0
		}
		if unpaid <= 0 {
			continue
		}

		age := AgeDays(sale.TransactionDate, asOf)
		if !oldestRecorded {
			// The first unpaid sale in ascending order is the oldest one;
			// later unpaid sales never move this back.
			result.OldestUnpaidAgeDays = age
			oldestRecorded = true
		}
		if age > creditDaysLimit {
			result.OverdueAmount += unpaid
		} else {
			result.CurrentAmount += unpaid
		}
	}
	return result
}

// AgeDays returns the age of a transaction in whole days, rounding partial
// days up. Zero dates report age 0.
func AgeDays(txn, asOf time.Time) int {
	if txn.IsZero() {
		return 0
	}
	diff := asOf.Sub(txn)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ComputeMetrics sums the account's trading history. MarginPct is 0 when
// there are no net sales so the figure never degrades to NaN or Inf.
func ComputeMetrics(sales []SaleRecord, payments []PaymentRecord) AccountMetrics {
	var m AccountMetrics
	for _, s := range sales {
		m.TotalQty += s.Quantity
		m.TotalNetSales += s.NetAmount
		m.TotalGrossSales += s.GrossAmount
		m.TotalGrossProfit += s.NetAmount - s.Quantity*s.UnitCost
	}
	for _, p := range payments {
		m.TotalPaid += p.Amount
	}
	m.DueAmount = m.TotalGrossSales - m.TotalPaid
	if m.TotalNetSales > 0 {
		m.MarginPct = m.TotalGrossProfit / m.TotalNetSales * 100
	}

	for i := range payments {
		p := payments[i]
		if m.LastPaymentDate == nil || p.PaymentDate.After(*m.LastPaymentDate) {
			m.LastPaymentAmount = p.Amount
			d := p.PaymentDate
			m.LastPaymentDate = &d
		}
	}
	return m
}

// GrossFromNet applies the fixed VAT rate to a tax-exclusive amount.
func GrossFromNet(net float64) float64 {
	return net * (1 + VATRate)
}

// MonthlySeries groups sales by calendar month in ascending order.
func MonthlySeries(sales []SaleRecord) []MonthlyPoint {
	byMonth := make(map[string]*MonthlyPoint)
	for _, s := range sales {
		if s.TransactionDate.IsZero() {
			continue
		}
		key := s.TransactionDate.Format("2006-01")
		point, ok := byMonth[key]
		if !ok {
			point = &MonthlyPoint{Month: key}
			byMonth[key] = point
		}
		point.Quantity += s.Quantity
		point.NetAmount += s.NetAmount
		point.GrossAmount += s.GrossAmount
	}

	series := make([]MonthlyPoint, 0, len(byMonth))
	for _, point := range byMonth {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month < series[j].Month })
	return series
}
