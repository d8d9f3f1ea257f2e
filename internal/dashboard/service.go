package dashboard

import (
	"context"
	"io"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pleko-crm/pleko-crm/internal/activities"
	"github.com/pleko-crm/pleko-crm/internal/ledger"
	"github.com/pleko-crm/pleko-crm/internal/pipeline"
)

// Overview is the home screen payload: today's agenda, recent wins, accounts
// needing collection attention and the org-wide receivables position.
type Overview struct {
	AsOf         time.Time               `json:"as_of"`
	Agenda       []activities.Activity   `json:"agenda"`
	RecentWins   []pipeline.Opportunity  `json:"recent_wins"`
	RiskAccounts []RiskAccount           `json:"risk_accounts"`
	Receivables  ReceivablesTotals       `json:"receivables"`
}

// RiskAccount flags an account whose oldest unpaid delivery is past terms.
type RiskAccount struct {
	AccountID           int64   `json:"account_id"`
	Name                string  `json:"name"`
	OverdueAmount       float64 `json:"overdue_amount"`
	OldestUnpaidAgeDays int     `json:"oldest_unpaid_age_days"`
	CreditDaysLimit     int     `json:"credit_days_limit"`
	OverCreditLimit     bool    `json:"over_credit_limit"`
}

// ReceivablesTotals sums the book across all active accounts.
type ReceivablesTotals struct {
	TotalDue      float64 `json:"total_due"`
	TotalCurrent  float64 `json:"total_current"`
	TotalOverdue  float64 `json:"total_overdue"`
	AccountsTotal int     `json:"accounts_total"`
	AccountsRisk  int     `json:"accounts_risk"`
}

// AccountNamer resolves account ids to display names for report rows.
type AccountNamer interface {
	AccountNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

type Service struct {
	ledger     *ledger.Service
	activities *activities.Service
	pipeline   *pipeline.Service
	names      AccountNamer
	clock      func() time.Time
}

func NewService(ledgerSvc *ledger.Service, activitySvc *activities.Service, pipelineSvc *pipeline.Service, names AccountNamer) *Service {
	return &Service{
		ledger:     ledgerSvc,
		activities: activitySvc,
		pipeline:   pipelineSvc,
		names:      names,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Overview assembles the widgets concurrently; the snapshot fan-out is the
// slow leg and the others ride alongside it.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	now := s.clock()
	out := &Overview{AsOf: now}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		agenda, err := s.activities.Agenda(ctx, now.AddDate(0, 0, 7))
		if err != nil {
			return err
		}
		out.Agenda = agenda
		return nil
	})

	g.Go(func() error {
		wins, err := s.pipeline.RecentWins(ctx, now.AddDate(0, 0, -7))
		if err != nil {
			return err
		}
		out.RecentWins = wins
		return nil
	})

	g.Go(func() error {
		snapshots, err := s.ledger.SnapshotAll(ctx, now)
		if err != nil {
			return err
		}
		risks, totals, err := s.summarise(ctx, snapshots)
		if err != nil {
			return err
		}
		out.RiskAccounts = risks
		out.Receivables = totals
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) summarise(ctx context.Context, snapshots []ledger.AccountSnapshot) ([]RiskAccount, ReceivablesTotals, error) {
	totals := ReceivablesTotals{AccountsTotal: len(snapshots)}

	ids := make([]int64, 0, len(snapshots))
	for _, snap := range snapshots {
		ids = append(ids, snap.AccountID)
	}
	names, err := s.names.AccountNames(ctx, ids)
	if err != nil {
		return nil, totals, err
	}

	var risks []RiskAccount
	for _, snap := range snapshots {
		totals.TotalDue += snap.Aging.DueAmount
		totals.TotalCurrent += snap.Aging.CurrentAmount
		totals.TotalOverdue += snap.Aging.OverdueAmount

		if snap.Aging.OverdueAmount <= 0 && !snap.OverCreditLimit {
			continue
		}
		totals.AccountsRisk++
		risks = append(risks, RiskAccount{
			AccountID:           snap.AccountID,
			Name:                names[snap.AccountID],
			OverdueAmount:       snap.Aging.OverdueAmount,
			OldestUnpaidAgeDays: snap.Aging.OldestUnpaidAgeDays,
			CreditDaysLimit:     snap.CreditDaysLimit,
			OverCreditLimit:     snap.OverCreditLimit,
		})
	}

	sort.Slice(risks, func(i, j int) bool {
		return risks[i].OverdueAmount > risks[j].OverdueAmount
	})
	return risks, totals, nil
}

// ExportReceivables streams the org-wide receivables report as CSV.
func (s *Service) ExportReceivables(ctx context.Context, w io.Writer, asOf time.Time) error {
	snapshots, err := s.ledger.SnapshotAll(ctx, asOf)
	if err != nil {
		return err
	}

	ids := make([]int64, 0, len(snapshots))
	for _, snap := range snapshots {
		ids = append(ids, snap.AccountID)
	}
	names, err := s.names.AccountNames(ctx, ids)
	if err != nil {
		return err
	}

	return ledger.WriteReceivablesCSV(w, snapshots, names)
}
