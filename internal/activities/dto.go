package activities

import "time"

type CreateActivityRequest struct {
	AccountID     *int64  `json:"account_id,omitempty" validate:"omitempty,gt=0"`
	OpportunityID *int64  `json:"opportunity_id,omitempty" validate:"omitempty,gt=0"`
	Kind          Kind    `json:"kind" validate:"required"`
	Summary       string  `json:"summary" validate:"required,max=200"`
	Details       *string `json:"details,omitempty"`
	DueAt         *string `json:"due_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateActivityRequest struct {
	Kind    *Kind   `json:"kind,omitempty"`
	Summary *string `json:"summary,omitempty" validate:"omitempty,max=200"`
	Details *string `json:"details,omitempty"`
	DueAt   *string `json:"due_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type ListActivitiesRequest struct {
	AccountID     *int64     `json:"account_id,omitempty"`
	OpportunityID *int64     `json:"opportunity_id,omitempty"`
	Kind          *Kind      `json:"kind,omitempty"`
	DueBefore     *time.Time `json:"due_before,omitempty"`
	PendingOnly   bool       `json:"pending_only"`
	Limit         int        `json:"limit" validate:"gte=0,lte=1000"`
	Offset        int        `json:"offset" validate:"gte=0"`
}
