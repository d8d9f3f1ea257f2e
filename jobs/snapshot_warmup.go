package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/pleko-crm/pleko-crm/internal/ledger"
)

// SnapshotWarmupJob rebuilds the receivables snapshot for every active
// account so the morning dashboard serves from cache.
type SnapshotWarmupJob struct {
	Ledger *ledger.Service
	Logger *slog.Logger
	clock  func() time.Time
}

func NewSnapshotWarmupJob(ledgerSvc *ledger.Service, logger *slog.Logger) *SnapshotWarmupJob {
	return &SnapshotWarmupJob{
		Ledger: ledgerSvc,
		Logger: logger,
		clock:  func() time.Time { return time.Now().UTC() },
	}
}

// Handle processes receivables snapshot tasks.
func (j *SnapshotWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Ledger == nil {
		return errors.New("snapshot warmup: handler not configured")
	}

	var payload ReceivablesSnapshotPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	asOf := j.clock()
	if payload.AsOf != "" {
		parsed, err := time.Parse("2006-01-02", payload.AsOf)
		if err != nil {
			return asynq.SkipRetry
		}
		asOf = parsed
	}

	started := j.clock()
	snapshots, err := j.Ledger.SnapshotAll(ctx, asOf)
	if err != nil {
		j.logger().Error("receivables warmup failed", slog.Any("error", err))
		return err
	}

	j.logger().Info("receivables warmup done",
		slog.Int("accounts", len(snapshots)),
		slog.Duration("took", j.clock().Sub(started)),
	)
	return nil
}

func (j *SnapshotWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
