package pipeline

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidStage = errors.New("invalid stage")

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

func (s *Service) Create(ctx context.Context, req CreateOpportunityRequest, ownerID int64) (*Opportunity, error) {
	opp := Opportunity{
		ProspectName:       req.ProspectName,
		AccountID:          req.AccountID,
		ProductInterest:    req.ProductInterest,
		Stage:              StageProspect,
		ExpectedMonthlyQty: req.ExpectedMonthlyQty,
		Notes:              req.Notes,
		OwnerID:            ownerID,
	}

	id, err := s.repo.Create(ctx, opp)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOpportunityRequest) (*Opportunity, error) {
	updates := map[string]interface{}{}
	if req.ProspectName != nil {
		updates["prospect_name"] = *req.ProspectName
	}
	if req.AccountID != nil {
		updates["account_id"] = *req.AccountID
	}
	if req.ProductInterest != nil {
		updates["product_interest"] = *req.ProductInterest
	}
	if req.ExpectedMonthlyQty != nil {
		updates["expected_monthly_qty"] = *req.ExpectedMonthlyQty
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// MoveStage drags a card to another column. Moving into Won or Lost stamps
// the close time; reopening a closed card clears it.
func (s *Service) MoveStage(ctx context.Context, id int64, stage Stage) (*Opportunity, error) {
	if !ValidStage(stage) {
		return nil, ErrInvalidStage
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Stage == stage {
		return existing, nil
	}

	updates := map[string]interface{}{"stage": stage}
	if stage.Closed() {
		updates["closed_at"] = s.clock()
	} else if existing.ClosedAt != nil {
		updates["closed_at"] = nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Opportunity, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOpportunitiesRequest) ([]Opportunity, error) {
	return s.repo.List(ctx, req)
}

// Board groups open and recently closed cards by column for the kanban view.
func (s *Service) Board(ctx context.Context) (map[Stage][]Opportunity, error) {
	all, err := s.repo.List(ctx, ListOpportunitiesRequest{})
	if err != nil {
		return nil, err
	}

	board := make(map[Stage][]Opportunity, len(Stages))
	for _, stage := range Stages {
		board[stage] = []Opportunity{}
	}
	for _, opp := range all {
		board[opp.Stage] = append(board[opp.Stage], opp)
	}
	return board, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// RecentWins powers the dashboard widget: cards won within the window.
func (s *Service) RecentWins(ctx context.Context, since time.Time) ([]Opportunity, error) {
	stage := StageWon
	won, err := s.repo.List(ctx, ListOpportunitiesRequest{Stage: &stage})
	if err != nil {
		return nil, err
	}

	var out []Opportunity
	for _, opp := range won {
		if opp.ClosedAt != nil && !opp.ClosedAt.Before(since) {
			out = append(out, opp)
		}
	}
	return out, nil
}
