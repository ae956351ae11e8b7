package payroll

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forzencookie/verifikat/internal/ledger"
)

// Booker is the ledger write contract the payroll producer needs.
type Booker interface {
	Append(ctx context.Context, input ledger.AppendInput) (ledger.Verification, error)
}

// Service previews payslips and books confirmed runs into the ledger.
type Service struct {
	booker Booker
	rates  Rates
	now    func() time.Time
}

func NewService(booker Booker, rates Rates) *Service {
	return &Service{booker: booker, rates: rates, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Preview computes a payslip without side effects.
func (s *Service) Preview(employee Employee, adjustments []Adjustment, period time.Time) Payslip {
	return ComputePayslip(employee, adjustments, s.rates, period)
}

// Confirm recomputes the payslip and books one verification for it. The run
// id makes the booking idempotent: a second confirm of the same run fails
// with ledger.ErrSourceAlreadyBooked.
func (s *Service) Confirm(ctx context.Context, employee Employee, adjustments []Adjustment, period time.Time, runID uuid.UUID) (Payslip, ledger.Verification, error) {
	payslip := ComputePayslip(employee, adjustments, s.rates, period)
	verification, err := s.booker.Append(ctx, BookingFor(payslip, payDate(period, s.now()), runID))
	if err != nil {
		return Payslip{}, ledger.Verification{}, err
	}
	return payslip, verification, nil
}

// payDate is the 25th of the period month, the customary Swedish payday,
// clamped to now's month when the period lies in the future.
func payDate(period, now time.Time) time.Time {
	d := time.Date(period.Year(), period.Month(), 25, 0, 0, 0, 0, period.Location())
	if d.After(now.AddDate(0, 1, 0)) {
		d = time.Date(now.Year(), now.Month(), 25, 0, 0, 0, 0, now.Location())
	}
	return d
}
