package payments

import "time"

// Payment is a cash receipt against an account. Receipts are not allocated
// to individual orders; the receivables engine applies them oldest-first.
type Payment struct {
	ID          int64     `json:"id" db:"id"`
	AccountID   int64     `json:"account_id" db:"account_id"`
	PaymentDate time.Time `json:"payment_date" db:"payment_date"`
	Amount      float64   `json:"amount" db:"amount"`
	Method      *string   `json:"method,omitempty" db:"method"`
	Reference   *string   `json:"reference,omitempty" db:"reference"`
	Notes       *string   `json:"notes,omitempty" db:"notes"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
