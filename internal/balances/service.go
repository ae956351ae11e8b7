package balances

import (
	"context"

	"github.com/forzencookie/verifikat/internal/bas"
	"github.com/forzencookie/verifikat/internal/ledger"
)

// VerificationSource is the read contract the aggregator depends on.
type VerificationSource interface {
	List(ctx context.Context, rng ledger.DateRange) ([]ledger.Verification, error)
}

// Service exposes account activity over the current ledger state.
type Service struct {
	source VerificationSource
	chart  bas.Chart
}

func NewService(source VerificationSource, chart bas.Chart) *Service {
	return &Service{source: source, chart: chart}
}

// AccountActivity fetches the verification snapshot and aggregates it.
func (s *Service) AccountActivity(ctx context.Context, opts Options) ([]AccountActivity, error) {
	verifications, err := s.source.List(ctx, opts.Range)
	if err != nil {
		return nil, err
	}
	return Aggregate(verifications, s.chart, opts), nil
}
