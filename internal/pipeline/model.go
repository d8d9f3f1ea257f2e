package pipeline

import "time"

// Stage is a column on the opportunity board. Trials progress from the
// in-house mix to a full batch at the customer's plant before quoting.
type Stage string

const (
	StageProspect     Stage = "Prospect"
	StageInHouseTrial Stage = "In-House Trial"
	StageLabTrial     Stage = "Lab Trial"
	StageBatchTrial   Stage = "Batch Trial"
	StageQuotation    Stage = "Quotation"
	StageWon          Stage = "Won"
	StageLost         Stage = "Lost"
)

// Stages lists the board columns in display order.
var Stages = []Stage{
	StageProspect, StageInHouseTrial, StageLabTrial, StageBatchTrial,
	StageQuotation, StageWon, StageLost,
}

func ValidStage(s Stage) bool {
	for _, stage := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

func (s Stage) Closed() bool {
	return s == StageWon || s == StageLost
}

// Opportunity is a card on the board. Prospects are usually not yet in the
// account directory, so the card carries its own name and an optional link.
type Opportunity struct {
	ID                 int64      `json:"id" db:"id"`
	ProspectName       string     `json:"prospect_name" db:"prospect_name"`
	AccountID          *int64     `json:"account_id,omitempty" db:"account_id"`
	ProductInterest    *string    `json:"product_interest,omitempty" db:"product_interest"`
	Stage              Stage      `json:"stage" db:"stage"`
	ExpectedMonthlyQty float64    `json:"expected_monthly_qty" db:"expected_monthly_qty"`
	Notes              *string    `json:"notes,omitempty" db:"notes"`
	OwnerID            int64      `json:"owner_id" db:"owner_id"`
	ClosedAt           *time.Time `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`
}
