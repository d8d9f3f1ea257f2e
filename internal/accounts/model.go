package accounts

import "time"

// PaymentType distinguishes cash accounts from credit accounts.
type PaymentType string

const (
	PaymentTypeCash   PaymentType = "Cash"
	PaymentTypeCredit PaymentType = "Credit Customer"
)

// Sentiment classifies an account's health from the stored AI summary.
type Sentiment string

const (
	SentimentHealthy Sentiment = "Healthy"
	SentimentNeutral Sentiment = "Neutral"
	SentimentRisk    Sentiment = "Risk"
)

// Account is a customer in the directory. Child records reference it by id;
// the name is a mutable display attribute, so renaming touches one row.
type Account struct {
	ID           int64       `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Location     *string     `json:"location,omitempty" db:"location"`
	ContactName  *string     `json:"contact_name,omitempty" db:"contact_name"`
	ContactPhone *string     `json:"contact_phone,omitempty" db:"contact_phone"`
	PaymentType  PaymentType `json:"payment_type" db:"payment_type"`
	CreditDays   int         `json:"credit_days" db:"credit_days"`
	CreditLimit  float64     `json:"credit_limit" db:"credit_limit"`
	AISummary    *string     `json:"ai_summary,omitempty" db:"ai_summary"`
	AISentiment  *Sentiment  `json:"ai_sentiment,omitempty" db:"ai_sentiment"`
	IsActive     bool        `json:"is_active" db:"is_active"`
	CreatedBy    int64       `json:"created_by" db:"created_by"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}
