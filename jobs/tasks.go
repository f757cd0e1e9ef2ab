package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskRestockScan recomputes the low-stock worklists and exports them
	// as gauges.
	TaskRestockScan = "stock:restock_scan"
)

// RestockScanPayload configures a restock scan run.
type RestockScanPayload struct {
	// Worklists limits the scan to the named lists ("order", "build").
	// Empty means both.
	Worklists []string `json:"worklists,omitempty"`
}

// NewRestockScanTask constructs an Asynq task.
func NewRestockScanTask(payload RestockScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRestockScan, data), nil
}
