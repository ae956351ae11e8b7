package periods

import (
	"fmt"
	"sort"
	"time"
)

// DueDate computes the filing deadline for a period ending at end
// (exclusive): the 12th of the month the interval ends in. A December
// period therefore falls due January 12 the following year.
func DueDate(end time.Time) time.Time {
	return time.Date(end.Year(), end.Month(), 12, 0, 0, 0, 0, end.Location())
}

// For derives the period of the given kind containing date, purely from
// company settings. AGI periods are always calendar months.
func For(kind Kind, settings Settings, date time.Time) Period {
	var start, end time.Time
	switch {
	case kind == KindAGI || settings.VATFrequency == FrequencyMonthly:
		start = time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
		end = start.AddDate(0, 1, 0)
	case settings.VATFrequency == FrequencyQuarterly:
		qm := time.Month((int(date.Month())-1)/3*3 + 1)
		start = time.Date(date.Year(), qm, 1, 0, 0, 0, 0, date.Location())
		end = start.AddDate(0, 3, 0)
	default:
		start = fiscalYearStart(settings.FiscalYearEnd, date)
		end = start.AddDate(1, 0, 0)
	}
	p := Period{
		Kind:    kind,
		Start:   start,
		End:     end,
		DueDate: DueDate(end),
		Status:  StatusOpen,
	}
	p.ID = idFor(kind, p)
	return p
}

// Next derives the period containing now.
func Next(kind Kind, settings Settings, now time.Time) Period {
	return For(kind, settings, now)
}

// fiscalYearStart returns the start of the fiscal year containing date when
// the fiscal year ends with the month fye.
func fiscalYearStart(fye time.Month, date time.Time) time.Time {
	if fye == 0 {
		fye = time.December
	}
	startMonth := fye%12 + 1
	start := time.Date(date.Year(), startMonth, 1, 0, 0, 0, 0, date.Location())
	if start.After(date) {
		start = start.AddDate(-1, 0, 0)
	}
	return start
}

// Bucket finds the known period covering date. Known boundaries take
// precedence over derivation; the second return is false on a miss.
func Bucket(known []Period, kind Kind, date time.Time) (Period, bool) {
	for _, p := range known {
		if p.Kind == kind && p.Contains(date) {
			return p, true
		}
	}
	return Period{}, false
}

// BucketOrSynthesize never drops a verification: on a miss it derives a
// fresh open period covering the date from settings.
func BucketOrSynthesize(known []Period, kind Kind, settings Settings, date time.Time) Period {
	if p, ok := Bucket(known, kind, date); ok {
		return p
	}
	return For(kind, settings, date)
}

// Reconcile merges derived periods with externally stored records. External
// records win on both boundaries and status; derived periods fill the gaps.
func Reconcile(derived, external []Period) []Period {
	byID := make(map[string]Period, len(derived)+len(external))
	for _, p := range derived {
		byID[p.ID] = p
	}
	for _, p := range external {
		byID[p.ID] = p
	}
	out := make([]Period, 0, len(byID))
	for _, p := range byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func idFor(kind Kind, p Period) string {
	switch kind {
	case KindAGI:
		return fmt.Sprintf("agi-%s", p.Key())
	default:
		return fmt.Sprintf("vat-%s", p.Key())
	}
}
