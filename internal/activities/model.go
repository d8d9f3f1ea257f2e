package activities

import "time"

// Kind categorises an activity entry.
type Kind string

const (
	KindVisit    Kind = "Visit"
	KindCall     Kind = "Call"
	KindTrial    Kind = "Trial"
	KindDelivery Kind = "Delivery"
	KindFollowUp Kind = "Follow-Up"
	KindOther    Kind = "Other"
)

var kinds = map[Kind]bool{
	KindVisit: true, KindCall: true, KindTrial: true,
	KindDelivery: true, KindFollowUp: true, KindOther: true,
}

func ValidKind(k Kind) bool { return kinds[k] }

// Activity is a logged interaction with an account or prospect. Entries with
// a future due date and no completion mark appear on the agenda.
type Activity struct {
	ID            int64      `json:"id" db:"id"`
	AccountID     *int64     `json:"account_id,omitempty" db:"account_id"`
	OpportunityID *int64     `json:"opportunity_id,omitempty" db:"opportunity_id"`
	Kind          Kind       `json:"kind" db:"kind"`
	Summary       string     `json:"summary" db:"summary"`
	Details       *string    `json:"details,omitempty" db:"details"`
	DueAt         *time.Time `json:"due_at,omitempty" db:"due_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	CreatedBy     int64      `json:"created_by" db:"created_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
