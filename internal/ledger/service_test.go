package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type memoryLedgerRepo struct {
	sales    map[int64][]SaleRecord
	payments map[int64][]PaymentRecord
	policies map[int64]AccountPolicy

	salesCalls int
}

func newMemoryLedgerRepo() *memoryLedgerRepo {
	return &memoryLedgerRepo{
		sales:    make(map[int64][]SaleRecord),
		payments: make(map[int64][]PaymentRecord),
		policies: make(map[int64]AccountPolicy),
	}
}

func (r *memoryLedgerRepo) ListSales(ctx context.Context, accountID int64) ([]SaleRecord, error) {
	r.salesCalls++
	return r.sales[accountID], nil
}

func (r *memoryLedgerRepo) ListPayments(ctx context.Context, accountID int64) ([]PaymentRecord, error) {
	return r.payments[accountID], nil
}

func (r *memoryLedgerRepo) GetPolicy(ctx context.Context, accountID int64) (AccountPolicy, error) {
	policy, ok := r.policies[accountID]
	if !ok {
		return AccountPolicy{}, ErrNotFound
	}
	return policy, nil
}

func (r *memoryLedgerRepo) ListAccountIDs(ctx context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(r.policies))
	for id := range r.policies {
		ids = append(ids, id)
	}
	return ids, nil
}

func seedAccount(repo *memoryLedgerRepo, accountID int64) {
	repo.policies[accountID] = AccountPolicy{AccountID: accountID, CreditDaysLimit: 30, CreditLimit: 500}
	repo.sales[accountID] = []SaleRecord{
		{ID: 1, AccountID: accountID, TransactionDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Quantity: 10, UnitPrice: 100, UnitCost: 60, NetAmount: 1000, GrossAmount: 1150},
		{ID: 2, AccountID: accountID, TransactionDate: time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC), Quantity: 5, UnitPrice: 100, UnitCost: 60, NetAmount: 500, GrossAmount: 575},
	}
	repo.payments[accountID] = []PaymentRecord{
		{ID: 1, AccountID: accountID, PaymentDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Amount: 1150},
	}
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	seedAccount(repo, 7)
	svc := NewService(repo, nil)

	snap, err := svc.Snapshot(ctx, 7, asOf)
	require.NoError(t, err)
	require.Equal(t, int64(7), snap.AccountID)

	// The old sale is retired in full, the recent one is fully unpaid.
	require.Equal(t, 575.0, snap.Aging.CurrentAmount)
	require.Equal(t, 0.0, snap.Aging.OverdueAmount)
	require.Equal(t, 7, snap.Aging.OldestUnpaidAgeDays)
	require.Equal(t, 575.0, snap.Aging.DueAmount)
	require.False(t, snap.OverCreditLimit)

	require.Equal(t, 1500.0, snap.Metrics.TotalNetSales)
	require.Len(t, snap.MonthlySales, 2)
	require.Len(t, snap.RecentPayments, 1)
}

func TestSnapshotUnknownAccount(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryLedgerRepo(), nil)

	_, err := svc.Snapshot(ctx, 42, asOf)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotAll(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryLedgerRepo()
	seedAccount(repo, 1)
	seedAccount(repo, 2)
	seedAccount(repo, 3)
	svc := NewService(repo, nil)

	snapshots, err := svc.SnapshotAll(ctx, asOf)
	require.NoError(t, err)
	require.Len(t, snapshots, 3)
	for _, snap := range snapshots {
		require.Equal(t, 575.0, snap.Aging.DueAmount)
	}
}

func TestSnapshotCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	repo := newMemoryLedgerRepo()
	seedAccount(repo, 9)
	svc := NewService(repo, NewCache(client, time.Minute))

	first, err := svc.Snapshot(ctx, 9, asOf)
	require.NoError(t, err)
	second, err := svc.Snapshot(ctx, 9, asOf)
	require.NoError(t, err)
	require.Equal(t, first.Aging, second.Aging)
	require.Equal(t, 1, repo.salesCalls)

	require.NoError(t, svc.Invalidate(ctx))

	_, err = svc.Snapshot(ctx, 9, asOf)
	require.NoError(t, err)
	require.Equal(t, 2, repo.salesCalls)
}
