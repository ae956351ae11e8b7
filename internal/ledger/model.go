package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Verification is one immutable journal entry. Corrections are booked as new
// compensating verifications; nothing updates a verification in place.
type Verification struct {
	ID           uuid.UUID
	Date         time.Time
	Description  string
	SourceModule string
	SourceID     uuid.UUID
	CreatedAt    time.Time
	Rows         []Row
}

// Row stores a debit or credit amount against a BAS account number. Exactly
// one of Debit and Credit is non-zero, or both are zero.
type Row struct {
	Account     string
	Debit       float64
	Credit      float64
	Description string
}

// DateRange is a half-open interval [From, To). Zero bounds are unbounded.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the range.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}
