package agi

import (
	"sort"
	"time"

	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/periods"
)

// Salary expense accounts qualifying for the employer declaration.
const (
	salaryFrom = "7000"
	salaryTo   = "7399"

	taxAccount        = "2710"
	contributionsFrom = "2730"
	contributionsTo   = "2739"
)

// Report is the employer declaration of one calendar month.
type Report struct {
	Period        periods.Period
	TotalSalary   float64
	Tax           float64
	Contributions float64
	Employees     int
}

// CalculateFromLedger groups verifications by calendar month and derives one
// declaration per month with payroll activity, most recent month first.
func CalculateFromLedger(verifications []ledger.Verification) []Report {
	byMonth := make(map[string]*Report)

	for _, v := range verifications {
		for _, row := range v.Rows {
			rep := func() *Report {
				key := monthKey(v.Date)
				r := byMonth[key]
				if r == nil {
					r = &Report{Period: monthPeriod(v.Date)}
					byMonth[key] = r
				}
				return r
			}
			switch {
			case row.Debit > 0 && row.Account >= salaryFrom && row.Account <= salaryTo:
				r := rep()
				r.TotalSalary += row.Debit
				r.Employees++
			case row.Credit > 0 && row.Account == taxAccount:
				rep().Tax += row.Credit
			case row.Credit > 0 && row.Account >= contributionsFrom && row.Account <= contributionsTo:
				rep().Contributions += row.Credit
			}
		}
	}

	out := make([]Report, 0, len(byMonth))
	for _, r := range byMonth {
		// Single-employee companies often book salary without a per-head
		// split; a month with salary but no counted heads reports one.
		if r.Employees == 0 && r.TotalSalary > 0 {
			r.Employees = 1
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period.Key() > out[j].Period.Key() })
	return out
}

func monthKey(t time.Time) string {
	return monthPeriod(t).Key()
}

func monthPeriod(t time.Time) periods.Period {
	return periods.For(periods.KindAGI, periods.Settings{}, t)
}
