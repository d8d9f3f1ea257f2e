package accounts

type CreateAccountRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Location     *string `json:"location,omitempty" validate:"omitempty,max=200"`
	ContactName  *string `json:"contact_name,omitempty" validate:"omitempty,max=200"`
	ContactPhone *string `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	PaymentType  string  `json:"payment_type" validate:"required,oneof='Cash' 'Credit Customer'"`
	CreditDays   int     `json:"credit_days" validate:"gte=0,lte=365"`
	CreditLimit  float64 `json:"credit_limit" validate:"gte=0"`
}

type UpdateAccountRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Location     *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	ContactName  *string  `json:"contact_name,omitempty" validate:"omitempty,max=200"`
	ContactPhone *string  `json:"contact_phone,omitempty" validate:"omitempty,max=50"`
	PaymentType  *string  `json:"payment_type,omitempty" validate:"omitempty,oneof='Cash' 'Credit Customer'"`
	CreditDays   *int     `json:"credit_days,omitempty" validate:"omitempty,gte=0,lte=365"`
	CreditLimit  *float64 `json:"credit_limit,omitempty" validate:"omitempty,gte=0"`
	IsActive     *bool    `json:"is_active,omitempty"`
}

type ListAccountsRequest struct {
	Search    *string `json:"search,omitempty"`
	IsActive  *bool   `json:"is_active,omitempty"`
	Sentiment *string `json:"sentiment,omitempty" validate:"omitempty,oneof=Healthy Neutral Risk"`
	Limit     int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset    int     `json:"offset" validate:"gte=0"`
}
