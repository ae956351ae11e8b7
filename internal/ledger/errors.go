package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrUnbalanced indicates debit != credit across rows.
	ErrUnbalanced = errors.New("ledger: verification must balance")
	// ErrTooFewRows indicates less than two rows.
	ErrTooFewRows = errors.New("ledger: verification requires at least two rows")
	// ErrVerificationNotFound indicates a missing verification.
	ErrVerificationNotFound = errors.New("ledger: verification not found")
	// ErrSourceAlreadyBooked indicates the producing event was booked before.
	ErrSourceAlreadyBooked = errors.New("ledger: source already booked")
)

// ImbalanceError carries the debit and credit totals of a rejected
// verification. Matches ErrUnbalanced under errors.Is.
type ImbalanceError struct {
	Debit  float64
	Credit float64
}

func (e *ImbalanceError) Error() string {
	return fmt.Sprintf("ledger: verification must balance: debit %.2f != credit %.2f", e.Debit, e.Credit)
}

func (e *ImbalanceError) Is(target error) bool {
	return target == ErrUnbalanced
}

// Diff returns the mismatch amount, positive when debit exceeds credit.
func (e *ImbalanceError) Diff() float64 {
	return e.Debit - e.Credit
}
