package products

import "time"

// Product is an item from the admixture catalogue.
type Product struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     *string   `json:"category,omitempty" db:"category"`
	UOM          string    `json:"uom" db:"uom"`
	DefaultPrice float64   `json:"default_price" db:"default_price"`
	DefaultCost  float64   `json:"default_cost" db:"default_cost"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ClientPrice is the agreed per-account price for a product. It overrides
// the catalogue default when present.
type ClientPrice struct {
	ID        int64     `json:"id" db:"id"`
	AccountID int64     `json:"account_id" db:"account_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
