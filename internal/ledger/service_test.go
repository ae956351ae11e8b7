package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	_ "github.com/forzencookie/verifikat/testing"
)

type memoryRepo struct {
	verifications []Verification
	sources       map[string]uuid.UUID
}

type memoryTx struct {
	repo    *memoryRepo
	pending []Verification
	links   map[string]uuid.UUID
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{sources: make(map[string]uuid.UUID)}
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx := &memoryTx{repo: r, links: make(map[string]uuid.UUID)}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	r.verifications = append(r.verifications, tx.pending...)
	for key, id := range tx.links {
		r.sources[key] = id
	}
	return nil
}

func (r *memoryRepo) List(_ context.Context, rng DateRange) ([]Verification, error) {
	var out []Verification
	for _, v := range r.verifications {
		if rng.Contains(v.Date) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(_ context.Context, id uuid.UUID) (Verification, error) {
	for _, v := range r.verifications {
		if v.ID == id {
			return v, nil
		}
	}
	return Verification{}, ErrVerificationNotFound
}

func (t *memoryTx) InsertVerification(_ context.Context, v Verification) error {
	t.pending = append(t.pending, v)
	return nil
}

func (t *memoryTx) InsertRows(_ context.Context, id uuid.UUID, rows []Row) error {
	return nil
}

func (t *memoryTx) LinkSource(_ context.Context, module string, ref uuid.UUID, id uuid.UUID) error {
	key := module + ":" + ref.String()
	if _, ok := t.repo.sources[key]; ok {
		return ErrSourceAlreadyBooked
	}
	t.links[key] = id
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func saleInput(day time.Time, amount float64) AppendInput {
	return AppendInput{
		Date:         day,
		Description:  "Försäljning",
		SourceModule: "manual",
		SourceID:     uuid.New(),
		Rows: []RowInput{
			{Account: "1930", Debit: amount},
			{Account: "3001", Credit: amount},
		},
	}
}

func TestAppendAcceptsBalancedVerification(t *testing.T) {
	svc := NewService(newMemoryRepo())
	v, err := svc.Append(context.Background(), saleInput(date(2025, time.March, 5), 1000))
	require.NoError(t, err)
	require.Len(t, v.Rows, 2)
	require.NotEqual(t, uuid.Nil, v.ID)
}

func TestAppendRejectsImbalance(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo)
	input := saleInput(date(2025, time.March, 5), 1000)
	input.Rows[1].Credit = 750

	_, err := svc.Append(context.Background(), input)
	require.ErrorIs(t, err, ErrUnbalanced)

	var imbalance *ImbalanceError
	require.ErrorAs(t, err, &imbalance)
	require.Equal(t, 1000.0, imbalance.Debit)
	require.Equal(t, 750.0, imbalance.Credit)
	require.Equal(t, 250.0, imbalance.Diff())
	require.Empty(t, repo.verifications, "nothing may be persisted on rejection")
}

func TestAppendRejectsTooFewRows(t *testing.T) {
	svc := NewService(newMemoryRepo())
	input := saleInput(date(2025, time.March, 5), 1000)
	input.Rows = input.Rows[:1]
	_, err := svc.Append(context.Background(), input)
	require.ErrorIs(t, err, ErrTooFewRows)
}

func TestAppendRejectsRowOnBothSides(t *testing.T) {
	svc := NewService(newMemoryRepo())
	input := saleInput(date(2025, time.March, 5), 1000)
	input.Rows[0].Credit = 500
	input.Rows[0].Debit = 500
	input.Rows[1].Credit = 0
	input.Rows[1].Debit = 0
	_, err := svc.Append(context.Background(), input)
	require.Error(t, err)
}

func TestAppendIsIdempotentPerSource(t *testing.T) {
	svc := NewService(newMemoryRepo())
	input := saleInput(date(2025, time.March, 5), 1000)

	_, err := svc.Append(context.Background(), input)
	require.NoError(t, err)
	_, err = svc.Append(context.Background(), input)
	require.ErrorIs(t, err, ErrSourceAlreadyBooked)
}

func TestListRangeIsHalfOpen(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	for _, day := range []time.Time{
		date(2025, time.February, 28),
		date(2025, time.March, 1),
		date(2025, time.March, 31),
		date(2025, time.April, 1),
	} {
		_, err := svc.Append(ctx, saleInput(day, 100))
		require.NoError(t, err)
	}

	march, err := svc.List(ctx, DateRange{From: date(2025, time.March, 1), To: date(2025, time.April, 1)})
	require.NoError(t, err)
	require.Len(t, march, 2, "April 1 is excluded, March 1 included")
}

func TestReverseProducesBalancedMirror(t *testing.T) {
	svc := NewService(newMemoryRepo())
	ctx := context.Background()

	original, err := svc.Append(ctx, saleInput(date(2025, time.March, 5), 1000))
	require.NoError(t, err)

	reversal, err := svc.Reverse(ctx, original.ID, "")
	require.NoError(t, err)
	require.Equal(t, original.Rows[0].Account, reversal.Rows[0].Account)
	require.Equal(t, original.Rows[0].Debit, reversal.Rows[0].Credit)
	require.Equal(t, original.Rows[1].Credit, reversal.Rows[1].Debit)
	require.Equal(t, "manual:REVERSAL", reversal.SourceModule)

	// The original stays untouched.
	got, err := svc.Get(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, original.Rows, got.Rows)
}
