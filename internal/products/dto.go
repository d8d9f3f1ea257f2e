package products

type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	Category     *string `json:"category,omitempty" validate:"omitempty,max=60"`
	UOM          string  `json:"uom" validate:"required,max=20"`
	DefaultPrice float64 `json:"default_price" validate:"gte=0"`
	DefaultCost  float64 `json:"default_cost" validate:"gte=0"`
}

type UpdateProductRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=120"`
	Category     *string  `json:"category,omitempty" validate:"omitempty,max=60"`
	UOM          *string  `json:"uom,omitempty" validate:"omitempty,max=20"`
	DefaultPrice *float64 `json:"default_price,omitempty" validate:"omitempty,gte=0"`
	DefaultCost  *float64 `json:"default_cost,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

type SetClientPriceRequest struct {
	AccountID int64   `json:"account_id" validate:"required,gt=0"`
	ProductID int64   `json:"product_id" validate:"required,gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"required,gt=0"`
}
