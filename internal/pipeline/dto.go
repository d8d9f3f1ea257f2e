package pipeline

type CreateOpportunityRequest struct {
	ProspectName       string  `json:"prospect_name" validate:"required,max=120"`
	AccountID          *int64  `json:"account_id,omitempty" validate:"omitempty,gt=0"`
	ProductInterest    *string `json:"product_interest,omitempty" validate:"omitempty,max=120"`
	ExpectedMonthlyQty float64 `json:"expected_monthly_qty" validate:"gte=0"`
	Notes              *string `json:"notes,omitempty"`
}

type UpdateOpportunityRequest struct {
	ProspectName       *string  `json:"prospect_name,omitempty" validate:"omitempty,max=120"`
	AccountID          *int64   `json:"account_id,omitempty" validate:"omitempty,gt=0"`
	ProductInterest    *string  `json:"product_interest,omitempty" validate:"omitempty,max=120"`
	ExpectedMonthlyQty *float64 `json:"expected_monthly_qty,omitempty" validate:"omitempty,gte=0"`
	Notes              *string  `json:"notes,omitempty"`
}

type MoveStageRequest struct {
	Stage Stage `json:"stage" validate:"required"`
}

type ListOpportunitiesRequest struct {
	Stage   *Stage `json:"stage,omitempty"`
	OwnerID *int64 `json:"owner_id,omitempty"`
	Open    *bool  `json:"open,omitempty"`
}
