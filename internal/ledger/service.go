package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
)

// snapshotFanout bounds how many accounts are aged concurrently during an
// org-wide pass. Accounts are independent, so the pass is safe to parallelise.
const snapshotFanout = 8

// RepositoryPort defines data access methods for receivables.
type RepositoryPort interface {
	ListSales(ctx context.Context, accountID int64) ([]SaleRecord, error)
	ListPayments(ctx context.Context, accountID int64) ([]PaymentRecord, error)
	GetPolicy(ctx context.Context, accountID int64) (AccountPolicy, error)
	ListAccountIDs(ctx context.Context) ([]int64, error)
}

// Service computes receivables snapshots on top of the raw ledgers.
type Service struct {
	repo  RepositoryPort
	cache *Cache
	clock func() time.Time
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// Snapshot assembles the full receivables picture for one account. The two
// ledgers have no ordering dependency so they are fetched concurrently.
func (s *Service) Snapshot(ctx context.Context, accountID int64, asOf time.Time) (*AccountSnapshot, error) {
	if asOf.IsZero() {
		asOf = s.clock()
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.buildSnapshot(ctx, accountID, asOf)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.(*AccountSnapshot), nil
	}

	key, err := s.cache.BuildKey(ctx, keySnapshot(accountID, asOf))
	if err != nil {
		return nil, err
	}
	var snap AccountSnapshot
	if err := s.cache.FetchJSON(ctx, key, &snap, loader); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Service) buildSnapshot(ctx context.Context, accountID int64, asOf time.Time) (*AccountSnapshot, error) {
	policy, err := s.repo.GetPolicy(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("ledger: load policy: %w", err)
	}

	var (
		sales    []SaleRecord
		payments []PaymentRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.repo.ListSales(gctx, accountID)
		if err != nil {
			return fmt.Errorf("ledger: load sales: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = s.repo.ListPayments(gctx, accountID)
		if err != nil {
			return fmt.Errorf("ledger: load payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := ComputeMetrics(sales, payments)
	aging := ComputeAging(sales, payments, policy.CreditDaysLimit, asOf)

	recent := make([]PaymentRecord, len(payments))
	copy(recent, payments)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PaymentDate.After(recent[j].PaymentDate)
	})
	if len(recent) > 10 {
		recent = recent[:10]
	}

	return &AccountSnapshot{
		AccountID:       accountID,
		AsOf:            asOf,
		Metrics:         metrics,
		Aging:           aging,
		CreditDaysLimit: policy.CreditDaysLimit,
		CreditLimit:     policy.CreditLimit,
		OverCreditLimit: aging.OverdueAmount > policy.CreditLimit,
		MonthlySales:    MonthlySeries(sales),
		RecentPayments:  recent,
	}, nil
}

// SnapshotAll ages every active account, one engine invocation per account.
func (s *Service) SnapshotAll(ctx context.Context, asOf time.Time) ([]AccountSnapshot, error) {
	if asOf.IsZero() {
		asOf = s.clock()
	}
	ids, err := s.repo.ListAccountIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list accounts: %w", err)
	}

	snapshots := make([]AccountSnapshot, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotFanout)
	for i, id := range ids {
		g.Go(func() error {
			snap, err := s.Snapshot(gctx, id, asOf)
			if err != nil {
				return err
			}
			snapshots[i] = *snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

// Invalidate drops every cached snapshot. Mutating services call this after
// writing to the sales or payments ledgers.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
