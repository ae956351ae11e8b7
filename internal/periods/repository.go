package periods

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPeriodNotFound indicates a missing external period record.
var ErrPeriodNotFound = errors.New("periods: period not found")

// Repository loads externally persisted period records. The store is
// authoritative for status; boundaries, when present, win over derivation.
type Repository interface {
	List(ctx context.Context, kind Kind) ([]Period, error)
	Get(ctx context.Context, id string) (Period, error)
	Upsert(ctx context.Context, p Period) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, kind Kind) ([]Period, error) {
	rows, err := r.db.Query(ctx, `SELECT id, kind, start_date, end_date, due_date, status
FROM report_periods WHERE kind=$1 ORDER BY start_date ASC`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.Kind, &p.Start, &p.End, &p.DueDate, &p.Status); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, id string) (Period, error) {
	var p Period
	err := r.db.QueryRow(ctx, `SELECT id, kind, start_date, end_date, due_date, status
FROM report_periods WHERE id=$1`, id).
		Scan(&p.ID, &p.Kind, &p.Start, &p.End, &p.DueDate, &p.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Period{}, ErrPeriodNotFound
		}
		return Period{}, err
	}
	return p, nil
}

func (r *repository) Upsert(ctx context.Context, p Period) error {
	_, err := r.db.Exec(ctx, `INSERT INTO report_periods (id, kind, start_date, end_date, due_date, status)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET start_date=EXCLUDED.start_date, end_date=EXCLUDED.end_date,
due_date=EXCLUDED.due_date, status=EXCLUDED.status`,
		p.ID, p.Kind, p.Start, p.End, p.DueDate, p.Status)
	return err
}
