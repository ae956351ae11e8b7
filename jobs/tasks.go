package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"github.com/forzencookie/verifikat/internal/periods"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskFilingRecompute warms up every open period's report.
	TaskFilingRecompute = "filing:recompute"
	// TaskFilingExport writes the XML for one period to the export dir.
	TaskFilingExport = "filing:export"
)

// FilingExportPayload identifies the report to serialize.
type FilingExportPayload struct {
	Kind     periods.Kind `json:"kind"`
	PeriodID string       `json:"periodId"`
}

// NewFilingRecomputeTask constructs the recompute warm-up task.
func NewFilingRecomputeTask() *asynq.Task {
	return asynq.NewTask(TaskFilingRecompute, nil)
}

// NewFilingExportTask constructs an export task for one period.
func NewFilingExportTask(payload FilingExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskFilingExport, data), nil
}
