package orders

import "time"

// Order is a single delivered line of product. The original book keeps one
// row per delivery rather than a header/lines document, so totals are stored
// denormalised on the row.
type Order struct {
	ID              int64     `json:"id" db:"id"`
	AccountID       int64     `json:"account_id" db:"account_id"`
	TransactionDate time.Time `json:"transaction_date" db:"transaction_date"`
	ProductID       *int64    `json:"product_id,omitempty" db:"product_id"`
	ProductName     string    `json:"product_name" db:"product_name"`
	Quantity        float64   `json:"quantity" db:"quantity"`
	UnitPrice       float64   `json:"unit_price" db:"unit_price"`
	UnitCost        float64   `json:"unit_cost" db:"unit_cost"`
	NetAmount       float64   `json:"net_amount" db:"net_amount"`
	VATAmount       float64   `json:"vat_amount" db:"vat_amount"`
	GrossAmount     float64   `json:"gross_amount" db:"gross_amount"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedBy       int64     `json:"created_by" db:"created_by"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
