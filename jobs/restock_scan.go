package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/stocktree-app/stocktree/internal/jobs"
	"github.com/stocktree-app/stocktree/internal/part"
)

// RestockScanJob recomputes the low-stock worklists in the background so the
// gauges stay fresh for alerting. The dashboard still computes its lists per
// request; this job never mutates data.
type RestockScanJob struct {
	Parts   *part.Service
	Logger  *slog.Logger
	Metrics *jobmetrics.Metrics
}

// NewRestockScanJob wires dependencies for the scan handler.
func NewRestockScanJob(parts *part.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *RestockScanJob {
	return &RestockScanJob{Parts: parts, Logger: logger, Metrics: metrics}
}

// Handle processes restock scan tasks.
func (j *RestockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Parts == nil {
		return errors.New("restock scan: handler not configured")
	}
	var payload RestockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	tracker := j.metrics().Track(TaskRestockScan)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	for _, worklist := range j.worklists(payload) {
		var (
			parts []part.WithStock
			err   error
		)
		switch worklist {
		case "order":
			parts, err = j.Parts.ToOrder(ctx)
		case "build":
			parts, err = j.Parts.ToBuild(ctx)
		default:
			j.logger().Warn("unknown restock worklist", slog.String("worklist", worklist))
			continue
		}
		if err != nil {
			resultErr = err
			j.logger().Error("restock scan", slog.String("worklist", worklist), slog.Any("error", err))
			return resultErr
		}
		j.metrics().SetLowStock(worklist, len(parts))
		j.logger().Info("restock scan complete", slog.String("worklist", worklist), slog.Int("parts", len(parts)))
	}
	return resultErr
}

func (j *RestockScanJob) worklists(payload RestockScanPayload) []string {
	if len(payload.Worklists) > 0 {
		return payload.Worklists
	}
	return []string{"order", "build"}
}

func (j *RestockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

func (j *RestockScanJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return jobmetrics.NewMetrics(nil)
}
