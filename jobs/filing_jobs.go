package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hibiken/asynq"

	"github.com/forzencookie/verifikat/internal/filings"
	jobmetrics "github.com/forzencookie/verifikat/internal/jobs"
	"github.com/forzencookie/verifikat/internal/periods"
)

// FilingJobs wires the filings service into asynq handlers.
type FilingJobs struct {
	service   *filings.Service
	logger    *slog.Logger
	metrics   *jobmetrics.Metrics
	exportDir string
}

func NewFilingJobs(service *filings.Service, logger *slog.Logger, metrics *jobmetrics.Metrics, exportDir string) *FilingJobs {
	return &FilingJobs{service: service, logger: logger, metrics: metrics, exportDir: exportDir}
}

// HandleRecompute recomputes every open VAT period and logs cross-check
// discrepancies. Submitted periods stay frozen and are skipped upstream.
func (j *FilingJobs) HandleRecompute(ctx context.Context, _ *asynq.Task) error {
	tracker := j.metrics.Track("filing:recompute")
	reports, err := j.service.RecomputeAll(ctx)
	if err != nil {
		return tracker.End(err)
	}
	for _, report := range reports {
		for _, disc := range report.CrossCheck() {
			j.metrics.AddDiscrepancies(disc.Box, report.Period.ID, 1)
			j.logger.Warn("output VAT drift",
				slog.String("period", report.Period.ID),
				slog.String("box", disc.Box),
				slog.Float64("derived", disc.Derived),
				slog.Float64("posted", disc.Posted),
			)
		}
	}
	j.logger.Info("filing recompute done", slog.Int("periods", len(reports)))
	return tracker.End(nil)
}

// HandleExport writes one period's XML declaration to the export directory.
func (j *FilingJobs) HandleExport(ctx context.Context, t *asynq.Task) error {
	tracker := j.metrics.Track("filing:export")
	var payload FilingExportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		_ = tracker.End(err)
		return asynq.SkipRetry
	}
	var body []byte
	var err error
	switch payload.Kind {
	case periods.KindAGI:
		body, err = j.service.GetAGIXML(ctx, payload.PeriodID)
	default:
		body, err = j.service.GetVATXML(ctx, payload.PeriodID)
	}
	if err != nil {
		return tracker.End(err)
	}
	path := filepath.Join(j.exportDir, fmt.Sprintf("%s.xml", payload.PeriodID))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return tracker.End(err)
	}
	j.logger.Info("filing exported", slog.String("path", path))
	return tracker.End(nil)
}
