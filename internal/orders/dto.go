package orders

import "time"

type CreateOrderRequest struct {
	AccountID       int64   `json:"account_id" validate:"required,gt=0"`
	TransactionDate string  `json:"transaction_date" validate:"required,datetime=2006-01-02"`
	ProductID       *int64  `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	ProductName     string  `json:"product_name" validate:"required,max=120"`
	Quantity        float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	UnitCost        float64 `json:"unit_cost" validate:"gte=0"`
	Notes           *string `json:"notes,omitempty"`
}

// QuickCreateOrderRequest covers the fast entry path: today's date, price
// resolved from the account's agreed pricing, cost left for later backfill.
type QuickCreateOrderRequest struct {
	AccountID int64   `json:"account_id" validate:"required,gt=0"`
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	Quantity  float64 `json:"quantity" validate:"required,gt=0"`
}

type UpdateOrderRequest struct {
	TransactionDate *string  `json:"transaction_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	ProductID       *int64   `json:"product_id,omitempty" validate:"omitempty,gt=0"`
	ProductName     *string  `json:"product_name,omitempty" validate:"omitempty,max=120"`
	Quantity        *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	UnitPrice       *float64 `json:"unit_price,omitempty" validate:"omitempty,gte=0"`
	UnitCost        *float64 `json:"unit_cost,omitempty" validate:"omitempty,gte=0"`
	Notes           *string  `json:"notes,omitempty"`
}

type ListOrdersRequest struct {
	AccountID *int64     `json:"account_id,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
	Limit     int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset    int        `json:"offset" validate:"gte=0"`
}
