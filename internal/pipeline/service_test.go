package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryPipelineRepo struct {
	opportunities map[int64]*Opportunity
	nextID        int64
}

func newMemoryPipelineRepo() *memoryPipelineRepo {
	return &memoryPipelineRepo{opportunities: make(map[int64]*Opportunity)}
}

func (r *memoryPipelineRepo) Get(ctx context.Context, id int64) (*Opportunity, error) {
	o, ok := r.opportunities[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (r *memoryPipelineRepo) List(ctx context.Context, req ListOpportunitiesRequest) ([]Opportunity, error) {
	var out []Opportunity
	for _, o := range r.opportunities {
		if req.Stage != nil && o.Stage != *req.Stage {
			continue
		}
		if req.OwnerID != nil && o.OwnerID != *req.OwnerID {
			continue
		}
		if req.Open != nil && *req.Open != (o.ClosedAt == nil) {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *memoryPipelineRepo) Create(ctx context.Context, opp Opportunity) (int64, error) {
	r.nextID++
	opp.ID = r.nextID
	r.opportunities[opp.ID] = &opp
	return opp.ID, nil
}

func (r *memoryPipelineRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	o, ok := r.opportunities[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "prospect_name":
			o.ProspectName = value.(string)
		case "stage":
			o.Stage = value.(Stage)
		case "closed_at":
			if value == nil {
				o.ClosedAt = nil
			} else {
				ts := value.(time.Time)
				o.ClosedAt = &ts
			}
		case "expected_monthly_qty":
			o.ExpectedMonthlyQty = value.(float64)
		}
	}
	return nil
}

func (r *memoryPipelineRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.opportunities[id]; !ok {
		return ErrNotFound
	}
	delete(r.opportunities, id)
	return nil
}

func newTestService(now time.Time) (*Service, *memoryPipelineRepo) {
	repo := newMemoryPipelineRepo()
	svc := NewService(repo)
	svc.clock = func() time.Time { return now }
	return svc, repo
}

func TestCreateStartsAtProspect(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)
	require.Equal(t, StageProspect, opp.Stage)
	require.Nil(t, opp.ClosedAt)
	require.Equal(t, int64(7), opp.OwnerID)
}

func TestMoveStageWonStampsClose(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)

	moved, err := svc.MoveStage(ctx, opp.ID, StageWon)
	require.NoError(t, err)
	require.Equal(t, StageWon, moved.Stage)
	require.NotNil(t, moved.ClosedAt)
	require.True(t, moved.ClosedAt.Equal(now))
}

func TestMoveStageReopenClearsClose(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)

	_, err = svc.MoveStage(ctx, opp.ID, StageLost)
	require.NoError(t, err)

	reopened, err := svc.MoveStage(ctx, opp.ID, StageQuotation)
	require.NoError(t, err)
	require.Equal(t, StageQuotation, reopened.Stage)
	require.Nil(t, reopened.ClosedAt)
}

func TestMoveStageRejectsUnknownStage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)

	_, err = svc.MoveStage(ctx, opp.ID, Stage("Negotiation"))
	require.ErrorIs(t, err, ErrInvalidStage)
}

func TestMoveStageSameStageNoop(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)

	same, err := svc.MoveStage(ctx, opp.ID, StageProspect)
	require.NoError(t, err)
	require.Equal(t, StageProspect, same.Stage)
}

func TestBoardGroupsAllStages(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(time.Now())

	a, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "A"}, 7)
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateOpportunityRequest{ProspectName: "B"}, 7)
	require.NoError(t, err)

	_, err = svc.MoveStage(ctx, a.ID, StageLabTrial)
	require.NoError(t, err)

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board, len(Stages))
	require.Len(t, board[StageProspect], 1)
	require.Len(t, board[StageLabTrial], 1)
	require.Empty(t, board[StageWon])
}

func TestRecentWins(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	svc, _ := newTestService(now)

	opp, err := svc.Create(ctx, CreateOpportunityRequest{ProspectName: "Delta Precast"}, 7)
	require.NoError(t, err)
	_, err = svc.MoveStage(ctx, opp.ID, StageWon)
	require.NoError(t, err)

	wins, err := svc.RecentWins(ctx, now.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, wins, 1)

	wins, err = svc.RecentWins(ctx, now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Empty(t, wins)
}
