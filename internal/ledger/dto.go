package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// RowInput describes one row of a verification to be appended.
type RowInput struct {
	Account     string
	Debit       float64
	Credit      float64
	Description string
}

// AppendInput groups the fields required to book a verification.
type AppendInput struct {
	Date         time.Time
	Description  string
	SourceModule string
	SourceID     uuid.UUID
	Rows         []RowInput
}

// Validate enforces the double-entry invariant before anything is persisted.
func (in AppendInput) Validate() error {
	if in.Date.IsZero() {
		return errors.New("ledger: date required")
	}
	if len(in.Rows) < 2 {
		return ErrTooFewRows
	}
	var debit, credit float64
	for idx, row := range in.Rows {
		if row.Account == "" {
			return fmt.Errorf("ledger: row %d missing account", idx)
		}
		if row.Debit < 0 || row.Credit < 0 {
			return fmt.Errorf("ledger: row %d negative amount", idx)
		}
		if row.Debit > 0 && row.Credit > 0 {
			return fmt.Errorf("ledger: row %d cannot be both debit and credit", idx)
		}
		debit += row.Debit
		credit += row.Credit
	}
	if fmt.Sprintf("%.2f", debit) != fmt.Sprintf("%.2f", credit) {
		return &ImbalanceError{Debit: debit, Credit: credit}
	}
	if in.SourceModule == "" {
		return errors.New("ledger: source module required")
	}
	if in.SourceID == uuid.Nil {
		return errors.New("ledger: source id required")
	}
	return nil
}

func toRows(inputs []RowInput) []Row {
	out := make([]Row, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, Row{
			Account:     in.Account,
			Debit:       in.Debit,
			Credit:      in.Credit,
			Description: in.Description,
		})
	}
	return out
}
