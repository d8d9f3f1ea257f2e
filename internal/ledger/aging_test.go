package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func sale(id int64, date time.Time, gross float64) SaleRecord {
	net := gross / (1 + VATRate)
	return SaleRecord{ID: id, AccountID: 1, TransactionDate: date, NetAmount: net, GrossAmount: gross}
}

func payment(id int64, date time.Time, amount float64) PaymentRecord {
	return PaymentRecord{ID: id, AccountID: 1, PaymentDate: date, Amount: amount}
}

func TestComputeAgingNoActivity(t *testing.T) {
	result := ComputeAging(nil, nil, 30, asOf)
	require.Equal(t, AgingResult{}, result)
}

func TestComputeAgingFullyPaidRecent(t *testing.T) {
	sales := []SaleRecord{sale(1, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), 1000)}
	payments := []PaymentRecord{payment(1, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), 1000)}

	result := ComputeAging(sales, payments, 30, asOf)
	require.Equal(t, 0.0, result.DueAmount)
	require.Equal(t, 0.0, result.CurrentAmount)
	require.Equal(t, 0.0, result.OverdueAmount)
	require.Equal(t, 0, result.OldestUnpaidAgeDays)
}

func TestComputeAgingPartiallyPaidOverdue(t *testing.T) {
	sales := []SaleRecord{sale(1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 1000)}
	payments := []PaymentRecord{payment(1, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 400)}

	result := ComputeAging(sales, payments, 30, asOf)
	require.Equal(t, 600.0, result.DueAmount)
	require.Equal(t, 600.0, result.OverdueAmount)
	require.Equal(t, 0.0, result.CurrentAmount)
	require.Equal(t, 92, result.OldestUnpaidAgeDays)
}

func TestComputeAgingPaymentRetiresOldestFirst(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 500),
		sale(2, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), 500),
	}
	payments := []PaymentRecord{payment(1, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), 500)}

	result := ComputeAging(sales, payments, 30, asOf)
	require.Equal(t, 500.0, result.CurrentAmount)
	require.Equal(t, 0.0, result.OverdueAmount)
	// Sale B carries the only unpaid portion now, so it is the oldest.
	require.Equal(t, 7, result.OldestUnpaidAgeDays)
}

func TestComputeAgingOverpayment(t *testing.T) {
	sales := []SaleRecord{sale(1, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 1000)}
	payments := []PaymentRecord{payment(1, time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), 1500)}

	result := ComputeAging(sales, payments, 30, asOf)
	require.Equal(t, -500.0, result.DueAmount)
	require.Equal(t, 0.0, result.CurrentAmount)
	require.Equal(t, 0.0, result.OverdueAmount)
	require.Equal(t, 0, result.OldestUnpaidAgeDays)
}

func TestComputeAgingZeroAmountSaleNeverOldest(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 0),
		sale(2, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), 300),
	}

	result := ComputeAging(sales, nil, 30, asOf)
	require.Equal(t, 300.0, result.CurrentAmount)
	require.Equal(t, 7, result.OldestUnpaidAgeDays)
}

func TestComputeAgingInvalidDateAgesAsZero(t *testing.T) {
	sales := []SaleRecord{
		{ID: 1, AccountID: 1, GrossAmount: 400}, // zero date
		sale(2, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 600),
	}

	result := ComputeAging(sales, nil, 30, asOf)
	// The bad record is classified current, the rest of the account still ages.
	require.Equal(t, 400.0, result.CurrentAmount)
	require.Equal(t, 600.0, result.OverdueAmount)
	require.Equal(t, 1000.0, result.DueAmount)
}

func TestComputeAgingZeroPayments(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 100),
		sale(2, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC), 200),
	}

	result := ComputeAging(sales, nil, 30, asOf)
	require.Equal(t, 300.0, result.DueAmount)
	require.Equal(t, 100.0, result.OverdueAmount)
	require.Equal(t, 200.0, result.CurrentAmount)
	require.Equal(t, 120, result.OldestUnpaidAgeDays)
}

func TestComputeAgingSameDayTieBreakIsInputOrder(t *testing.T) {
	day := time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)
	sales := []SaleRecord{
		sale(1, day, 300),
		sale(2, day, 700),
	}
	payments := []PaymentRecord{payment(1, day, 300)}

	result := ComputeAging(sales, payments, 30, asOf)
	// The first-inserted sale is retired in full, the second stays unpaid.
	require.Equal(t, 700.0, result.CurrentAmount)
	require.Equal(t, 4, result.OldestUnpaidAgeDays)
}

func TestComputeAgingBucketsSumToDue(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 750),
		sale(2, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), 1250),
		sale(3, time.Date(2025, 5, 29, 0, 0, 0, 0, time.UTC), 400),
	}
	payments := []PaymentRecord{
		payment(1, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), 500),
		payment(2, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 300),
	}

	result := ComputeAging(sales, payments, 30, asOf)
	require.GreaterOrEqual(t, result.CurrentAmount, 0.0)
	require.GreaterOrEqual(t, result.OverdueAmount, 0.0)
	require.InDelta(t, math.Max(result.DueAmount, 0), result.CurrentAmount+result.OverdueAmount, 1e-9)
}

func TestComputeAgingIdempotent(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), 900),
		sale(2, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), 600),
	}
	payments := []PaymentRecord{payment(1, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 700)}

	first := ComputeAging(sales, payments, 30, asOf)
	second := ComputeAging(sales, payments, 30, asOf)
	require.Equal(t, first, second)
}

func TestComputeAgingPaymentIncreaseNeverIncreasesOverdue(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), 1000),
		sale(2, time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), 500),
	}

	prev := math.Inf(1)
	for _, amount := range []float64{0, 100, 500, 1000, 1300, 1500, 2000} {
		payments := []PaymentRecord{payment(1, time.Date(2025, 5, 26, 0, 0, 0, 0, time.UTC), amount)}
		result := ComputeAging(sales, payments, 30, asOf)
		require.LessOrEqual(t, result.OverdueAmount, prev, "amount=%v", amount)
		prev = result.OverdueAmount
	}
}

func TestComputeAgingInputOrderIndependent(t *testing.T) {
	sales := []SaleRecord{
		sale(1, time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), 450),
		sale(2, time.Date(2025, 4, 18, 0, 0, 0, 0, time.UTC), 820),
		sale(3, time.Date(2025, 5, 27, 0, 0, 0, 0, time.UTC), 130),
	}
	payments := []PaymentRecord{
		payment(1, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), 300),
		payment(2, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 250),
	}

	base := ComputeAging(sales, payments, 30, asOf)

	shuffledSales := []SaleRecord{sales[2], sales[0], sales[1]}
	shuffledPayments := []PaymentRecord{payments[1], payments[0]}
	permuted := ComputeAging(shuffledSales, shuffledPayments, 30, asOf)

	require.Equal(t, base, permuted)
}

func TestComputeMetricsMarginZeroWhenNoSales(t *testing.T) {
	m := ComputeMetrics(nil, []PaymentRecord{payment(1, asOf, 50)})
	require.Equal(t, 0.0, m.MarginPct)
	require.False(t, math.IsNaN(m.MarginPct))
	require.Equal(t, 50.0, m.TotalPaid)
	require.Equal(t, -50.0, m.DueAmount)
}

func TestComputeMetrics(t *testing.T) {
	sales := []SaleRecord{
		{ID: 1, TransactionDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Quantity: 10, UnitPrice: 100, UnitCost: 60, NetAmount: 1000, GrossAmount: 1150},
		{ID: 2, TransactionDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), Quantity: 5, UnitPrice: 200, UnitCost: 100, NetAmount: 1000, GrossAmount: 1150},
	}
	payments := []PaymentRecord{
		payment(1, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), 800),
		payment(2, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), 200),
	}

	m := ComputeMetrics(sales, payments)
	require.Equal(t, 15.0, m.TotalQty)
	require.Equal(t, 2000.0, m.TotalNetSales)
	require.Equal(t, 2300.0, m.TotalGrossSales)
	require.Equal(t, 1000.0, m.TotalPaid)
	require.Equal(t, 1300.0, m.DueAmount)
	// GP = (1000 - 10*60) + (1000 - 5*100) = 400 + 500
	require.Equal(t, 900.0, m.TotalGrossProfit)
	require.InDelta(t, 45.0, m.MarginPct, 1e-9)
	require.Equal(t, 200.0, m.LastPaymentAmount)
	require.Equal(t, time.Date(2025, 5, 12, 0, 0, 0, 0, time.UTC), *m.LastPaymentDate)
}

func TestGrossFromNet(t *testing.T) {
	require.InDelta(t, 115.0, GrossFromNet(100), 1e-9)
}

func TestMonthlySeries(t *testing.T) {
	sales := []SaleRecord{
		{TransactionDate: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Quantity: 2, NetAmount: 200, GrossAmount: 230},
		{TransactionDate: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), Quantity: 1, NetAmount: 100, GrossAmount: 115},
		{TransactionDate: time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), Quantity: 3, NetAmount: 300, GrossAmount: 345},
		{Quantity: 9, NetAmount: 900}, // zero date rows stay off the chart
	}

	series := MonthlySeries(sales)
	require.Len(t, series, 2)
	require.Equal(t, "2025-03", series[0].Month)
	require.Equal(t, "2025-05", series[1].Month)
	require.Equal(t, 5.0, series[1].Quantity)
	require.Equal(t, 500.0, series[1].NetAmount)
}

func TestAgeDays(t *testing.T) {
	require.Equal(t, 0, AgeDays(time.Time{}, asOf))
	require.Equal(t, 1, AgeDays(asOf.Add(-time.Hour), asOf))
	require.Equal(t, 92, AgeDays(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), asOf))
}
