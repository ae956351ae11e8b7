package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service owns the verification journal. It is the single writer; every
// other component reads through List.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Append validates the balance invariant and persists the verification
// atomically. A failed validation never touches the repository.
func (s *Service) Append(ctx context.Context, input AppendInput) (Verification, error) {
	if err := input.Validate(); err != nil {
		return Verification{}, err
	}
	v := Verification{
		ID:           uuid.New(),
		Date:         input.Date,
		Description:  input.Description,
		SourceModule: input.SourceModule,
		SourceID:     input.SourceID,
		CreatedAt:    s.now(),
		Rows:         toRows(input.Rows),
	}
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.InsertVerification(ctx, v); err != nil {
			return err
		}
		if err := tx.InsertRows(ctx, v.ID, v.Rows); err != nil {
			return err
		}
		return tx.LinkSource(ctx, v.SourceModule, v.SourceID, v.ID)
	})
	if err != nil {
		return Verification{}, err
	}
	return v, nil
}

// List returns verifications inside the half-open date range, oldest first.
func (s *Service) List(ctx context.Context, rng DateRange) ([]Verification, error) {
	return s.repo.List(ctx, rng)
}

// Get fetches a single verification with its rows.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Verification, error) {
	return s.repo.Get(ctx, id)
}

// Reverse books a compensating verification that mirrors the original's rows
// with debit and credit swapped. The original stays untouched.
func (s *Service) Reverse(ctx context.Context, id uuid.UUID, memo string) (Verification, error) {
	original, err := s.repo.Get(ctx, id)
	if err != nil {
		return Verification{}, err
	}
	input := AppendInput{
		Date:         s.now(),
		Description:  reversalMemo(memo, original.Description),
		SourceModule: original.SourceModule + ":REVERSAL",
		SourceID:     uuid.New(),
		Rows:         reverseRows(original.Rows),
	}
	return s.Append(ctx, input)
}

func reverseRows(rows []Row) []RowInput {
	out := make([]RowInput, 0, len(rows))
	for _, row := range rows {
		out = append(out, RowInput{
			Account:     row.Account,
			Debit:       row.Credit,
			Credit:      row.Debit,
			Description: row.Description,
		})
	}
	return out
}

func reversalMemo(memo, originalDescription string) string {
	if memo != "" {
		return memo
	}
	return fmt.Sprintf("Rättelse: %s", originalDescription)
}
