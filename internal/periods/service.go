package periods

import (
	"context"
	"errors"
	"time"
)

// Service reconciles derived periods with the external store.
type Service struct {
	repo     Repository
	settings Settings
	now      func() time.Time
}

func NewService(repo Repository, settings Settings) *Service {
	return &Service{repo: repo, settings: settings, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Settings() Settings {
	return s.settings
}

// Known returns all periods of the kind: the external records plus the
// derived current period when the store has no record covering now.
func (s *Service) Known(ctx context.Context, kind Kind) ([]Period, error) {
	external, err := s.repo.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	current := For(kind, s.settings, s.now())
	return Reconcile([]Period{current}, external), nil
}

// Resolve returns the period with the given id, deriving it when the store
// holds no record. Derivation only works for ids produced by this engine.
func (s *Service) Resolve(ctx context.Context, kind Kind, id string) (Period, error) {
	p, err := s.repo.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrPeriodNotFound) {
		return Period{}, err
	}
	known, err := s.Known(ctx, kind)
	if err != nil {
		return Period{}, err
	}
	for _, candidate := range known {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return Period{}, ErrPeriodNotFound
}

// MarkSubmitted persists the terminal status transition of a period.
func (s *Service) MarkSubmitted(ctx context.Context, p Period) error {
	p.Status = StatusSubmitted
	return s.repo.Upsert(ctx, p)
}
