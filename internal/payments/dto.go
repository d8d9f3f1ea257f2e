package payments

import "time"

type CreatePaymentRequest struct {
	AccountID   int64   `json:"account_id" validate:"required,gt=0"`
	PaymentDate string  `json:"payment_date" validate:"required,datetime=2006-01-02"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Method      *string `json:"method,omitempty" validate:"omitempty,max=40"`
	Reference   *string `json:"reference,omitempty" validate:"omitempty,max=80"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdatePaymentRequest struct {
	PaymentDate *string  `json:"payment_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Method      *string  `json:"method,omitempty" validate:"omitempty,max=40"`
	Reference   *string  `json:"reference,omitempty" validate:"omitempty,max=80"`
	Notes       *string  `json:"notes,omitempty"`
}

type ListPaymentsRequest struct {
	AccountID *int64     `json:"account_id,omitempty"`
	DateFrom  *time.Time `json:"date_from,omitempty"`
	DateTo    *time.Time `json:"date_to,omitempty"`
	Limit     int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset    int        `json:"offset" validate:"gte=0"`
}
