package activities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryActivityRepo struct {
	activities map[int64]*Activity
	nextID     int64
}

func newMemoryActivityRepo() *memoryActivityRepo {
	return &memoryActivityRepo{activities: make(map[int64]*Activity)}
}

func (r *memoryActivityRepo) Get(ctx context.Context, id int64) (*Activity, error) {
	a, ok := r.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryActivityRepo) List(ctx context.Context, req ListActivitiesRequest) ([]Activity, int, error) {
	var out []Activity
	for _, a := range r.activities {
		if req.AccountID != nil && (a.AccountID == nil || *a.AccountID != *req.AccountID) {
			continue
		}
		if req.Kind != nil && a.Kind != *req.Kind {
			continue
		}
		if req.DueBefore != nil && (a.DueAt == nil || a.DueAt.After(*req.DueBefore)) {
			continue
		}
		if req.PendingOnly && a.CompletedAt != nil {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (r *memoryActivityRepo) Create(ctx context.Context, activity Activity) (int64, error) {
	r.nextID++
	activity.ID = r.nextID
	r.activities[activity.ID] = &activity
	return activity.ID, nil
}

func (r *memoryActivityRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	a, ok := r.activities[id]
	if !ok {
		return ErrNotFound
	}
	for column, value := range updates {
		switch column {
		case "kind":
			a.Kind = value.(Kind)
		case "summary":
			a.Summary = value.(string)
		case "due_at":
			due := value.(time.Time)
			a.DueAt = &due
		case "completed_at":
			done := value.(time.Time)
			a.CompletedAt = &done
		}
	}
	return nil
}

func (r *memoryActivityRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.activities[id]; !ok {
		return ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

func newTestService(now time.Time) *Service {
	svc := NewService(newMemoryActivityRepo())
	svc.clock = func() time.Time { return now }
	return svc
}

func strptr(s string) *string { return &s }

func TestCreateActivity(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())

	activity, err := svc.Create(ctx, CreateActivityRequest{
		Kind:    KindVisit,
		Summary: "Site visit at batching plant",
		DueAt:   strptr("2025-06-20"),
	}, 7)
	require.NoError(t, err)
	require.Equal(t, KindVisit, activity.Kind)
	require.NotNil(t, activity.DueAt)
	require.Nil(t, activity.CompletedAt)
}

func TestCreateActivityRejectsUnknownKind(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(time.Now())

	_, err := svc.Create(ctx, CreateActivityRequest{Kind: Kind("Meeting"), Summary: "x"}, 7)
	require.ErrorIs(t, err, ErrInvalidKind)
}

func TestCompleteActivity(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	activity, err := svc.Create(ctx, CreateActivityRequest{Kind: KindCall, Summary: "Chase payment"}, 7)
	require.NoError(t, err)

	done, err := svc.Complete(ctx, activity.ID)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	require.True(t, done.CompletedAt.Equal(now))
}

func TestAgendaExcludesCompletedAndFarFuture(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(now)

	due, err := svc.Create(ctx, CreateActivityRequest{
		Kind: KindFollowUp, Summary: "Follow up trial", DueAt: strptr("2025-06-12"),
	}, 7)
	require.NoError(t, err)

	completed, err := svc.Create(ctx, CreateActivityRequest{
		Kind: KindFollowUp, Summary: "Already handled", DueAt: strptr("2025-06-11"),
	}, 7)
	require.NoError(t, err)
	_, err = svc.Complete(ctx, completed.ID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateActivityRequest{
		Kind: KindFollowUp, Summary: "Next month", DueAt: strptr("2025-07-15"),
	}, 7)
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateActivityRequest{
		Kind: KindOther, Summary: "No date logged",
	}, 7)
	require.NoError(t, err)

	agenda, err := svc.Agenda(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, agenda, 1)
	require.Equal(t, due.ID, agenda[0].ID)
}
