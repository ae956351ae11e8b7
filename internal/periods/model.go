package periods

import (
	"fmt"
	"time"
)

// Kind separates the two statutory reporting tracks.
type Kind string

const (
	KindVAT Kind = "VAT"
	KindAGI Kind = "AGI"
)

// Status enumerates period lifecycle values. Submitted is terminal.
type Status string

const (
	StatusOpen      Status = "OPEN"
	StatusUpcoming  Status = "UPCOMING"
	StatusSubmitted Status = "SUBMITTED"
)

// VATFrequency is the company's VAT reporting cadence.
type VATFrequency string

const (
	FrequencyMonthly   VATFrequency = "monthly"
	FrequencyQuarterly VATFrequency = "quarterly"
	FrequencyYearly    VATFrequency = "yearly"
)

// Settings carries the company configuration periods derive from.
type Settings struct {
	VATFrequency  VATFrequency
	FiscalYearEnd time.Month
	OrgNumber     string
	CompanyName   string
}

// Period is a half-open reporting interval [Start, End) with a filing due
// date. When loaded from the external store, Status is authoritative.
type Period struct {
	ID      string
	Kind    Kind
	Start   time.Time
	End     time.Time
	DueDate time.Time
	Status  Status
}

// Contains reports whether t falls inside the interval.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Key returns the period's sortable identifier: YYYYMM for monthly periods,
// YYYY-Qn for quarters, YYYY for fiscal years.
func (p Period) Key() string {
	switch {
	case isQuarter(p.Start, p.End):
		return fmt.Sprintf("%d-Q%d", p.Start.Year(), (int(p.Start.Month())-1)/3+1)
	case isMonth(p.Start, p.End):
		return fmt.Sprintf("%04d%02d", p.Start.Year(), int(p.Start.Month()))
	default:
		return fmt.Sprintf("%04d", p.Start.Year())
	}
}

func isMonth(start, end time.Time) bool {
	return start.AddDate(0, 1, 0).Equal(end)
}

func isQuarter(start, end time.Time) bool {
	return start.AddDate(0, 3, 0).Equal(end)
}
