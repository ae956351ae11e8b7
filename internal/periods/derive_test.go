package periods

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAGIPeriodsAreCalendarMonths(t *testing.T) {
	p := For(KindAGI, Settings{VATFrequency: FrequencyYearly}, day(2025, time.June, 17))
	require.Equal(t, day(2025, time.June, 1), p.Start)
	require.Equal(t, day(2025, time.July, 1), p.End)
	require.Equal(t, day(2025, time.July, 12), p.DueDate)
	require.Equal(t, "agi-202506", p.ID)
}

func TestDecemberPeriodFallsDueInJanuary(t *testing.T) {
	p := For(KindAGI, Settings{}, day(2025, time.December, 24))
	require.Equal(t, day(2026, time.January, 12), p.DueDate)
}

func TestVATQuarterlyBoundaries(t *testing.T) {
	settings := Settings{VATFrequency: FrequencyQuarterly}
	p := For(KindVAT, settings, day(2025, time.May, 2))
	require.Equal(t, day(2025, time.April, 1), p.Start)
	require.Equal(t, day(2025, time.July, 1), p.End)
	require.Equal(t, day(2025, time.July, 12), p.DueDate)
	require.Equal(t, "vat-2025-Q2", p.ID)
}

func TestVATYearlyAlignsToFiscalYearEnd(t *testing.T) {
	settings := Settings{VATFrequency: FrequencyYearly, FiscalYearEnd: time.June}

	p := For(KindVAT, settings, day(2025, time.March, 1))
	require.Equal(t, day(2024, time.July, 1), p.Start)
	require.Equal(t, day(2025, time.July, 1), p.End)

	p = For(KindVAT, settings, day(2025, time.August, 1))
	require.Equal(t, day(2025, time.July, 1), p.Start)
}

func TestPeriodIntervalIsHalfOpen(t *testing.T) {
	p := For(KindVAT, Settings{VATFrequency: FrequencyMonthly}, day(2025, time.March, 10))
	require.True(t, p.Contains(day(2025, time.March, 1)))
	require.True(t, p.Contains(day(2025, time.March, 31)))
	require.False(t, p.Contains(day(2025, time.April, 1)))
	require.False(t, p.Contains(day(2025, time.February, 28)))
}

func TestBucketPrefersKnownBoundaries(t *testing.T) {
	// External record with shifted boundaries wins over derivation.
	external := Period{
		ID:     "vat-custom",
		Kind:   KindVAT,
		Start:  day(2025, time.February, 15),
		End:    day(2025, time.March, 15),
		Status: StatusOpen,
	}
	got, ok := Bucket([]Period{external}, KindVAT, day(2025, time.March, 1))
	require.True(t, ok)
	require.Equal(t, "vat-custom", got.ID)
}

func TestBucketOrSynthesizeNeverDrops(t *testing.T) {
	settings := Settings{VATFrequency: FrequencyMonthly}
	got := BucketOrSynthesize(nil, KindVAT, settings, day(2025, time.March, 1))
	require.Equal(t, "vat-202503", got.ID)
	require.Equal(t, StatusOpen, got.Status)
}

func TestReconcileExternalStatusIsAuthoritative(t *testing.T) {
	derived := For(KindVAT, Settings{VATFrequency: FrequencyMonthly}, day(2025, time.March, 1))
	external := derived
	external.Status = StatusSubmitted

	merged := Reconcile([]Period{derived}, []Period{external})
	require.Len(t, merged, 1)
	require.Equal(t, StatusSubmitted, merged[0].Status)
}

func TestReconcileSortsByStart(t *testing.T) {
	settings := Settings{VATFrequency: FrequencyMonthly}
	feb := For(KindVAT, settings, day(2025, time.February, 1))
	mar := For(KindVAT, settings, day(2025, time.March, 1))
	merged := Reconcile([]Period{mar}, []Period{feb})
	require.Equal(t, []string{"vat-202502", "vat-202503"}, []string{merged[0].ID, merged[1].ID})
}
