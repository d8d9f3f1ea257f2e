package dashboard

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pleko-crm/pleko-crm/internal/activities"
	"github.com/pleko-crm/pleko-crm/internal/ledger"
	"github.com/pleko-crm/pleko-crm/internal/pipeline"
)

var asOf = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type fakeLedgerRepo struct {
	sales    map[int64][]ledger.SaleRecord
	payments map[int64][]ledger.PaymentRecord
	policies map[int64]ledger.AccountPolicy
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		sales:    make(map[int64][]ledger.SaleRecord),
		payments: make(map[int64][]ledger.PaymentRecord),
		policies: make(map[int64]ledger.AccountPolicy),
	}
}

func (r *fakeLedgerRepo) ListSales(ctx context.Context, accountID int64) ([]ledger.SaleRecord, error) {
	return r.sales[accountID], nil
}

func (r *fakeLedgerRepo) ListPayments(ctx context.Context, accountID int64) ([]ledger.PaymentRecord, error) {
	return r.payments[accountID], nil
}

func (r *fakeLedgerRepo) GetPolicy(ctx context.Context, accountID int64) (ledger.AccountPolicy, error) {
	policy, ok := r.policies[accountID]
	if !ok {
		return ledger.AccountPolicy{}, ledger.ErrNotFound
	}
	return policy, nil
}

func (r *fakeLedgerRepo) ListAccountIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	for id := range r.policies {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeActivityRepo struct {
	items []activities.Activity
}

func (r *fakeActivityRepo) Get(ctx context.Context, id int64) (*activities.Activity, error) {
	return nil, activities.ErrNotFound
}

func (r *fakeActivityRepo) List(ctx context.Context, req activities.ListActivitiesRequest) ([]activities.Activity, int, error) {
	var out []activities.Activity
	for _, a := range r.items {
		if req.PendingOnly && a.CompletedAt != nil {
			continue
		}
		if req.DueBefore != nil && (a.DueAt == nil || a.DueAt.After(*req.DueBefore)) {
			continue
		}
		out = append(out, a)
	}
	return out, len(out), nil
}

func (r *fakeActivityRepo) Create(ctx context.Context, activity activities.Activity) (int64, error) {
	return 0, nil
}

func (r *fakeActivityRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r *fakeActivityRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakePipelineRepo struct {
	items []pipeline.Opportunity
}

func (r *fakePipelineRepo) Get(ctx context.Context, id int64) (*pipeline.Opportunity, error) {
	return nil, pipeline.ErrNotFound
}

func (r *fakePipelineRepo) List(ctx context.Context, req pipeline.ListOpportunitiesRequest) ([]pipeline.Opportunity, error) {
	var out []pipeline.Opportunity
	for _, o := range r.items {
		if req.Stage != nil && o.Stage != *req.Stage {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakePipelineRepo) Create(ctx context.Context, opp pipeline.Opportunity) (int64, error) {
	return 0, nil
}

func (r *fakePipelineRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r *fakePipelineRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

type fakeNamer struct {
	names map[int64]string
}

func (f *fakeNamer) AccountNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	return f.names, nil
}

func newTestService() (*Service, *fakeLedgerRepo, *fakeActivityRepo, *fakePipelineRepo) {
	ledgerRepo := newFakeLedgerRepo()
	activityRepo := &fakeActivityRepo{}
	pipelineRepo := &fakePipelineRepo{}
	namer := &fakeNamer{names: map[int64]string{1: "Readymix North", 2: "Precast Co"}}

	svc := NewService(
		ledger.NewService(ledgerRepo, nil),
		activities.NewService(activityRepo),
		pipeline.NewService(pipelineRepo),
		namer,
	)
	svc.clock = func() time.Time { return asOf }
	return svc, ledgerRepo, activityRepo, pipelineRepo
}

func seedOverdueAccount(repo *fakeLedgerRepo, accountID int64) {
	repo.policies[accountID] = ledger.AccountPolicy{AccountID: accountID, CreditDaysLimit: 30, CreditLimit: 1000}
	repo.sales[accountID] = []ledger.SaleRecord{
		{ID: 1, AccountID: accountID, TransactionDate: asOf.AddDate(0, 0, -90), NetAmount: 2000, GrossAmount: 2300},
	}
}

func seedCurrentAccount(repo *fakeLedgerRepo, accountID int64) {
	repo.policies[accountID] = ledger.AccountPolicy{AccountID: accountID, CreditDaysLimit: 30, CreditLimit: 10000}
	repo.sales[accountID] = []ledger.SaleRecord{
		{ID: 2, AccountID: accountID, TransactionDate: asOf.AddDate(0, 0, -5), NetAmount: 1000, GrossAmount: 1150},
	}
}

func TestOverviewFlagsOverdueAccounts(t *testing.T) {
	ctx := context.Background()
	svc, ledgerRepo, _, _ := newTestService()

	seedOverdueAccount(ledgerRepo, 1)
	seedCurrentAccount(ledgerRepo, 2)

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)

	require.Equal(t, 2, overview.Receivables.AccountsTotal)
	require.Equal(t, 1, overview.Receivables.AccountsRisk)
	require.InDelta(t, 3450.0, overview.Receivables.TotalDue, 1e-6)
	require.InDelta(t, 2300.0, overview.Receivables.TotalOverdue, 1e-6)
	require.InDelta(t, 1150.0, overview.Receivables.TotalCurrent, 1e-6)

	require.Len(t, overview.RiskAccounts, 1)
	require.Equal(t, "Readymix North", overview.RiskAccounts[0].Name)
	require.True(t, overview.RiskAccounts[0].OverCreditLimit)
	require.Equal(t, 90, overview.RiskAccounts[0].OldestUnpaidAgeDays)
}

func TestOverviewIncludesAgendaAndWins(t *testing.T) {
	ctx := context.Background()
	svc, ledgerRepo, activityRepo, pipelineRepo := newTestService()

	seedCurrentAccount(ledgerRepo, 2)

	due := asOf.AddDate(0, 0, 2)
	activityRepo.items = []activities.Activity{
		{ID: 1, Kind: activities.KindFollowUp, Summary: "Chase trial result", DueAt: &due},
	}

	closedAt := asOf.AddDate(0, 0, -3)
	pipelineRepo.items = []pipeline.Opportunity{
		{ID: 1, ProspectName: "Delta Precast", Stage: pipeline.StageWon, ClosedAt: &closedAt},
		{ID: 2, ProspectName: "Too Old", Stage: pipeline.StageWon, ClosedAt: ptrTime(asOf.AddDate(0, -3, 0))},
	}

	overview, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, overview.Agenda, 1)
	require.Len(t, overview.RecentWins, 1)
	require.Equal(t, "Delta Precast", overview.RecentWins[0].ProspectName)
}

func TestExportReceivablesCSV(t *testing.T) {
	ctx := context.Background()
	svc, ledgerRepo, _, _ := newTestService()

	seedOverdueAccount(ledgerRepo, 1)
	seedCurrentAccount(ledgerRepo, 2)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportReceivables(ctx, &buf, asOf))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\r\n")
	// header + two accounts + totals row
	require.Len(t, lines, 4)
	require.Contains(t, lines[0], "oldest_unpaid_age_days")
	require.Contains(t, out, "Readymix North")
	require.Contains(t, out, "Over Limit")
	require.Contains(t, out, "TOTAL")
	require.Contains(t, out, "3,450.00")
}

func ptrTime(t time.Time) *time.Time { return &t }
