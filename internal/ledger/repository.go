package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forzencookie/verifikat/internal/platform/db"
)

// Repository encapsulates storage for verifications.
type Repository interface {
	List(ctx context.Context, rng DateRange) ([]Verification, error)
	Get(ctx context.Context, id uuid.UUID) (Verification, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the write operations available within a transaction.
type TxRepository interface {
	InsertVerification(ctx context.Context, v Verification) error
	InsertRows(ctx context.Context, verificationID uuid.UUID, rows []Row) error
	LinkSource(ctx context.Context, module string, ref uuid.UUID, verificationID uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, rng DateRange) ([]Verification, error) {
	query := `SELECT id, date, description, source_module, source_id, created_at FROM verifications`
	args := []any{}
	switch {
	case !rng.From.IsZero() && !rng.To.IsZero():
		query += ` WHERE date >= $1 AND date < $2`
		args = append(args, rng.From, rng.To)
	case !rng.From.IsZero():
		query += ` WHERE date >= $1`
		args = append(args, rng.From)
	case !rng.To.IsZero():
		query += ` WHERE date < $1`
		args = append(args, rng.To)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Verification
	for rows.Next() {
		var v Verification
		if err := rows.Scan(&v.ID, &v.Date, &v.Description, &v.SourceModule, &v.SourceID, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		vrows, err := r.loadRows(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Rows = vrows
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Verification, error) {
	var v Verification
	err := r.db.QueryRow(ctx, `SELECT id, date, description, source_module, source_id, created_at
FROM verifications WHERE id=$1`, id).
		Scan(&v.ID, &v.Date, &v.Description, &v.SourceModule, &v.SourceID, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Verification{}, ErrVerificationNotFound
		}
		return Verification{}, err
	}
	vrows, err := r.loadRows(ctx, id)
	if err != nil {
		return Verification{}, err
	}
	v.Rows = vrows
	return v, nil
}

func (r *repository) loadRows(ctx context.Context, id uuid.UUID) ([]Row, error) {
	rows, err := r.db.Query(ctx, `SELECT account, debit, credit, description
FROM verification_rows WHERE verification_id=$1 ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.Account, &row.Debit, &row.Credit, &row.Description); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx})
	})
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertVerification(ctx context.Context, v Verification) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO verifications (id, date, description, source_module, source_id, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`, v.ID, v.Date, v.Description, v.SourceModule, v.SourceID, v.CreatedAt)
	return err
}

func (r *txRepository) InsertRows(ctx context.Context, verificationID uuid.UUID, rows []Row) error {
	for idx, row := range rows {
		if _, err := r.tx.Exec(ctx, `INSERT INTO verification_rows (verification_id, position, account, debit, credit, description)
VALUES ($1,$2,$3,$4,$5,$6)`, verificationID, idx, row.Account, toNumeric(row.Debit), toNumeric(row.Credit), row.Description); err != nil {
			return err
		}
	}
	return nil
}

func (r *txRepository) LinkSource(ctx context.Context, module string, ref uuid.UUID, verificationID uuid.UUID) error {
	_, err := r.tx.Exec(ctx, `INSERT INTO source_links (module, ref_id, verification_id) VALUES ($1,$2,$3)`, module, ref, verificationID)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok && pgErr.ConstraintName == "uq_source_links" {
			return ErrSourceAlreadyBooked
		}
		return err
	}
	return nil
}

func toNumeric(v float64) any {
	return fmt.Sprintf("%.2f", v)
}
