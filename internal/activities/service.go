package activities

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidKind = errors.New("invalid activity kind")

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:  repo,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Create(ctx context.Context, req CreateActivityRequest, createdBy int64) (*Activity, error) {
	if !ValidKind(req.Kind) {
		return nil, ErrInvalidKind
	}

	activity := Activity{
		AccountID:     req.AccountID,
		OpportunityID: req.OpportunityID,
		Kind:          req.Kind,
		Summary:       req.Summary,
		Details:       req.Details,
		CreatedBy:     createdBy,
	}
	if req.DueAt != nil {
		due, err := time.Parse("2006-01-02", *req.DueAt)
		if err != nil {
			return nil, fmt.Errorf("parse due date: %w", err)
		}
		activity.DueAt = &due
	}

	id, err := s.repo.Create(ctx, activity)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateActivityRequest) (*Activity, error) {
	updates := map[string]interface{}{}
	if req.Kind != nil {
		if !ValidKind(*req.Kind) {
			return nil, ErrInvalidKind
		}
		updates["kind"] = *req.Kind
	}
	if req.Summary != nil {
		updates["summary"] = *req.Summary
	}
	if req.Details != nil {
		updates["details"] = *req.Details
	}
	if req.DueAt != nil {
		due, err := time.Parse("2006-01-02", *req.DueAt)
		if err != nil {
			return nil, fmt.Errorf("parse due date: %w", err)
		}
		updates["due_at"] = due
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Complete marks a scheduled entry as done.
func (s *Service) Complete(ctx context.Context, id int64) (*Activity, error) {
	if err := s.repo.Update(ctx, id, map[string]interface{}{"completed_at": s.clock()}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Activity, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListActivitiesRequest) ([]Activity, int, error) {
	return s.repo.List(ctx, req)
}

// Agenda returns pending entries due on or before the horizon, for the
// dashboard's follow-up widget.
func (s *Service) Agenda(ctx context.Context, horizon time.Time) ([]Activity, error) {
	if horizon.IsZero() {
		horizon = s.clock().AddDate(0, 0, 7)
	}
	items, _, err := s.repo.List(ctx, ListActivitiesRequest{
		DueBefore:   &horizon,
		PendingOnly: true,
		Limit:       100,
	})
	return items, err
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
