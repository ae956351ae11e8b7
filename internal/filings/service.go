package filings

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/forzencookie/verifikat/internal/agi"
	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/periods"
	"github.com/forzencookie/verifikat/internal/vat"
)

// maxRecomputeWorkers bounds the recompute pool; the effective pool size is
// the smaller of this and the period count.
const maxRecomputeWorkers = 8

// VerificationSource is the ledger read contract.
type VerificationSource interface {
	List(ctx context.Context, rng ledger.DateRange) ([]ledger.Verification, error)
}

// PeriodSource resolves reporting periods; its status is authoritative.
type PeriodSource interface {
	Known(ctx context.Context, kind periods.Kind) ([]periods.Period, error)
	Resolve(ctx context.Context, kind periods.Kind, id string) (periods.Period, error)
	MarkSubmitted(ctx context.Context, p periods.Period) error
	Settings() periods.Settings
}

// Service owns the filing lifecycle. A filing is computed from the current
// ledger snapshot while its period is open and frozen verbatim once the
// period is submitted.
type Service struct {
	source  VerificationSource
	periods PeriodSource
	store   SnapshotStore
}

func NewService(source VerificationSource, periodSource PeriodSource, store SnapshotStore) *Service {
	return &Service{source: source, periods: periodSource, store: store}
}

// GetVAT returns the period's VAT report: the frozen snapshot when
// submitted, otherwise a live computation over the ledger.
func (s *Service) GetVAT(ctx context.Context, periodID string) (vat.Report, error) {
	period, err := s.periods.Resolve(ctx, periods.KindVAT, periodID)
	if err != nil {
		return vat.Report{}, err
	}
	if period.Status == periods.StatusSubmitted {
		return s.frozenVAT(ctx, period)
	}
	return s.computeVAT(ctx, period)
}

// GetVATXML serializes the period's report in the filing format.
func (s *Service) GetVATXML(ctx context.Context, periodID string) ([]byte, error) {
	report, err := s.GetVAT(ctx, periodID)
	if err != nil {
		return nil, err
	}
	return vat.EncodeXML(report, s.periods.Settings())
}

// ListAGI returns one employer declaration per month with payroll activity,
// most recent first. Submitted months come back verbatim from the store.
func (s *Service) ListAGI(ctx context.Context) ([]agi.Report, error) {
	verifications, err := s.source.List(ctx, ledger.DateRange{})
	if err != nil {
		return nil, err
	}
	known, err := s.periods.Known(ctx, periods.KindAGI)
	if err != nil {
		return nil, err
	}
	reports := agi.CalculateFromLedger(verifications)
	for i := range reports {
		period := periods.BucketOrSynthesize(known, periods.KindAGI, s.periods.Settings(), reports[i].Period.Start)
		reports[i].Period = period
		if period.Status != periods.StatusSubmitted {
			continue
		}
		frozen, err := s.frozenAGI(ctx, period)
		if err != nil {
			return nil, err
		}
		reports[i] = frozen
	}
	return reports, nil
}

// GetAGIXML serializes one monthly declaration.
func (s *Service) GetAGIXML(ctx context.Context, periodID string) ([]byte, error) {
	reports, err := s.ListAGI(ctx)
	if err != nil {
		return nil, err
	}
	for _, report := range reports {
		if report.Period.ID == periodID {
			return agi.EncodeXML(report, s.periods.Settings())
		}
	}
	return nil, periods.ErrPeriodNotFound
}

// SubmitVAT freezes the period's report. The store's SaveOnce is the
// compare-and-set: of two racing submissions exactly one wins, the other
// gets ErrAlreadySubmitted.
func (s *Service) SubmitVAT(ctx context.Context, periodID string) (vat.Report, error) {
	period, err := s.periods.Resolve(ctx, periods.KindVAT, periodID)
	if err != nil {
		return vat.Report{}, err
	}
	if period.Status == periods.StatusSubmitted {
		return vat.Report{}, ErrAlreadySubmitted
	}
	report, err := s.computeVAT(ctx, period)
	if err != nil {
		return vat.Report{}, err
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return vat.Report{}, fmt.Errorf("filings: encode snapshot: %w", err)
	}
	if err := s.store.SaveOnce(ctx, periods.KindVAT, period.ID, payload); err != nil {
		return vat.Report{}, err
	}
	if err := s.periods.MarkSubmitted(ctx, period); err != nil {
		return vat.Report{}, err
	}
	report.Period.Status = periods.StatusSubmitted
	return report, nil
}

// SubmitAGI freezes one monthly employer declaration.
func (s *Service) SubmitAGI(ctx context.Context, periodID string) (agi.Report, error) {
	reports, err := s.ListAGI(ctx)
	if err != nil {
		return agi.Report{}, err
	}
	for _, report := range reports {
		if report.Period.ID != periodID {
			continue
		}
		if report.Period.Status == periods.StatusSubmitted {
			return agi.Report{}, ErrAlreadySubmitted
		}
		payload, err := json.Marshal(report)
		if err != nil {
			return agi.Report{}, fmt.Errorf("filings: encode snapshot: %w", err)
		}
		if err := s.store.SaveOnce(ctx, periods.KindAGI, report.Period.ID, payload); err != nil {
			return agi.Report{}, err
		}
		if err := s.periods.MarkSubmitted(ctx, report.Period); err != nil {
			return agi.Report{}, err
		}
		report.Period.Status = periods.StatusSubmitted
		return report, nil
	}
	return agi.Report{}, periods.ErrPeriodNotFound
}

// RecomputeAll computes every open VAT period in parallel over one shared
// verification snapshot. Submitted periods are skipped; their snapshots are
// the legal record.
func (s *Service) RecomputeAll(ctx context.Context) ([]vat.Report, error) {
	known, err := s.periods.Known(ctx, periods.KindVAT)
	if err != nil {
		return nil, err
	}
	verifications, err := s.source.List(ctx, ledger.DateRange{})
	if err != nil {
		return nil, err
	}

	open := make([]periods.Period, 0, len(known))
	for _, p := range known {
		if p.Status != periods.StatusSubmitted {
			open = append(open, p)
		}
	}

	results := make([]vat.Report, len(open))
	g, _ := errgroup.WithContext(ctx)
	limit := len(open)
	if limit > maxRecomputeWorkers {
		limit = maxRecomputeWorkers
	}
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, period := range open {
		i, period := i, period
		g.Go(func() error {
			results[i] = vat.CalculateFromLedger(verifications, period)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) computeVAT(ctx context.Context, period periods.Period) (vat.Report, error) {
	verifications, err := s.source.List(ctx, ledger.DateRange{From: period.Start, To: period.End})
	if err != nil {
		return vat.Report{}, err
	}
	return vat.CalculateFromLedger(verifications, period), nil
}

func (s *Service) frozenVAT(ctx context.Context, period periods.Period) (vat.Report, error) {
	payload, ok, err := s.store.Load(ctx, periods.KindVAT, period.ID)
	if err != nil {
		return vat.Report{}, err
	}
	if !ok {
		return vat.Report{}, ErrSnapshotMissing
	}
	var report vat.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return vat.Report{}, fmt.Errorf("filings: decode snapshot: %w", err)
	}
	report.Period.Status = periods.StatusSubmitted
	return report, nil
}

func (s *Service) frozenAGI(ctx context.Context, period periods.Period) (agi.Report, error) {
	payload, ok, err := s.store.Load(ctx, periods.KindAGI, period.ID)
	if err != nil {
		return agi.Report{}, err
	}
	if !ok {
		return agi.Report{}, ErrSnapshotMissing
	}
	var report agi.Report
	if err := json.Unmarshal(payload, &report); err != nil {
		return agi.Report{}, fmt.Errorf("filings: decode snapshot: %w", err)
	}
	report.Period = period
	return report, nil
}
