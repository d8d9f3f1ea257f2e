package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReceivablesSnapshot pre-computes aging snapshots for every account.
	TaskReceivablesSnapshot = "receivables:snapshot"
)

// ReceivablesSnapshotPayload controls the warmup run. An empty AsOf means
// "now" at execution time.
type ReceivablesSnapshotPayload struct {
	AsOf string `json:"as_of,omitempty"`
}

// NewReceivablesSnapshotTask constructs the warmup task.
func NewReceivablesSnapshotTask(payload ReceivablesSnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReceivablesSnapshot, data), nil
}
