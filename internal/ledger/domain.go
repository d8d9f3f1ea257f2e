package ledger

import "time"

// VATRate is the fixed value-added tax rate applied to every sale.
const VATRate = 0.15

// SaleRecord is one row of an account's sales history. GrossAmount is
// tax inclusive, NetAmount is tax exclusive.
type SaleRecord struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	TransactionDate time.Time `json:"transaction_date"`
	Quantity        float64   `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	UnitCost        float64   `json:"unit_cost"`
	NetAmount       float64   `json:"net_amount"`
	GrossAmount     float64   `json:"gross_amount"`
}

// PaymentRecord is unapplied cash received against an account. Payments
// are never linked to individual sales.
type PaymentRecord struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	PaymentDate time.Time `json:"payment_date"`
	Amount      float64   `json:"amount"`
	Notes       string    `json:"notes"`
}

// AccountPolicy carries the credit terms used to classify outstanding balances.
type AccountPolicy struct {
	AccountID       int64   `json:"account_id"`
	CreditDaysLimit int     `json:"credit_days_limit"`
	CreditLimit     float64 `json:"credit_limit"`
}

// AgingResult is the outstanding-balance breakdown for one account.
// CurrentAmount + OverdueAmount equals max(DueAmount, 0) for well-formed
// non-negative inputs. A negative DueAmount is a credit balance and is
// surfaced as-is.
type AgingResult struct {
	TotalPaid           float64 `json:"total_paid"`
	DueAmount           float64 `json:"due_amount"`
	CurrentAmount       float64 `json:"current_amount"`
	OverdueAmount       float64 `json:"overdue_amount"`
	OldestUnpaidAgeDays int     `json:"oldest_unpaid_age_days"`
}

// AccountMetrics reduces an account's full trading history into headline figures.
type AccountMetrics struct {
	TotalQty          float64    `json:"total_qty"`
	TotalNetSales     float64    `json:"total_net_sales"`
	TotalGrossSales   float64    `json:"total_gross_sales"`
	TotalPaid         float64    `json:"total_paid"`
	DueAmount         float64    `json:"due_amount"`
	TotalGrossProfit  float64    `json:"total_gross_profit"`
	MarginPct         float64    `json:"margin_pct"`
	LastPaymentAmount float64    `json:"last_payment_amount"`
	LastPaymentDate   *time.Time `json:"last_payment_date,omitempty"`
}

// MonthlyPoint is one month of sales activity for the account chart series.
type MonthlyPoint struct {
	Month       string  `json:"month"`
	Quantity    float64 `json:"quantity"`
	NetAmount   float64 `json:"net_amount"`
	GrossAmount float64 `json:"gross_amount"`
}

// AccountSnapshot is the full receivables picture for one account.
type AccountSnapshot struct {
	AccountID       int64           `json:"account_id"`
	AsOf            time.Time       `json:"as_of"`
	Metrics         AccountMetrics  `json:"metrics"`
	Aging           AgingResult     `json:"aging"`
	CreditDaysLimit int             `json:"credit_days_limit"`
	CreditLimit     float64         `json:"credit_limit"`
	OverCreditLimit bool            `json:"over_credit_limit"`
	MonthlySales    []MonthlyPoint  `json:"monthly_sales"`
	RecentPayments  []PaymentRecord `json:"recent_payments"`
}
