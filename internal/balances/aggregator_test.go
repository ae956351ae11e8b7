package balances

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/forzencookie/verifikat/internal/bas"
	"github.com/forzencookie/verifikat/internal/ledger"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func verification(date time.Time, rows ...ledger.Row) ledger.Verification {
	return ledger.Verification{ID: uuid.New(), Date: date, Description: "test", Rows: rows}
}

func fixture() []ledger.Verification {
	return []ledger.Verification{
		verification(day(2025, time.January, 10),
			ledger.Row{Account: "1930", Debit: 1000},
			ledger.Row{Account: "3001", Credit: 1000},
		),
		verification(day(2025, time.January, 20),
			ledger.Row{Account: "6110", Debit: 200},
			ledger.Row{Account: "1930", Credit: 200},
		),
		verification(day(2025, time.February, 2),
			ledger.Row{Account: "1930", Debit: 500},
			ledger.Row{Account: "3001", Credit: 500},
		),
	}
}

func findAccount(t *testing.T, activity []AccountActivity, number string) AccountActivity {
	t.Helper()
	for _, acc := range activity {
		if acc.Account.Number == number {
			return acc
		}
	}
	t.Fatalf("account %s not in result", number)
	return AccountActivity{}
}

func TestAggregateBalancesMatchSignedSums(t *testing.T) {
	verifications := fixture()
	activity := Aggregate(verifications, bas.StandardChart(), Options{})

	// Independent signed sums over the same rows.
	bank := findAccount(t, activity, "1930")
	require.Equal(t, 1000.0+500.0, bank.Debit)
	require.Equal(t, 200.0, bank.Credit)
	require.Equal(t, 1300.0, bank.Balance, "asset nets debit minus credit")
	require.Equal(t, 3, bank.TxCount)
	require.Equal(t, day(2025, time.February, 2), bank.LastDate)

	sales := findAccount(t, activity, "3001")
	require.Equal(t, 1500.0, sales.Balance, "revenue nets credit minus debit")

	office := findAccount(t, activity, "6110")
	require.Equal(t, 200.0, office.Balance)
}

func TestAggregateDateRangeFilters(t *testing.T) {
	opts := Options{Range: ledger.DateRange{
		From: day(2025, time.January, 1),
		To:   day(2025, time.February, 1),
	}}
	activity := Aggregate(fixture(), bas.StandardChart(), opts)

	bank := findAccount(t, activity, "1930")
	require.Equal(t, 2, bank.TxCount, "February verification excluded by half-open range")
	require.Equal(t, 800.0, bank.Balance)
}

func TestAggregateActivityViewOmitsIdleAccounts(t *testing.T) {
	activity := Aggregate(fixture(), bas.StandardChart(), Options{View: ViewActivity})
	require.Len(t, activity, 3)

	all := Aggregate(fixture(), bas.StandardChart(), Options{View: ViewAll})
	require.Greater(t, len(all), 3)
	idle := findAccount(t, all, "2440")
	require.Zero(t, idle.TxCount)
	require.Zero(t, idle.Balance)
}

func TestAggregateClassAndSearchFilters(t *testing.T) {
	byClass := Aggregate(fixture(), bas.StandardChart(), Options{Class: 3})
	require.Len(t, byClass, 1)
	require.Equal(t, "3001", byClass[0].Account.Number)

	bySearch := Aggregate(fixture(), bas.StandardChart(), Options{Search: "företagskonto"})
	require.Len(t, bySearch, 1)
	require.Equal(t, "1930", bySearch[0].Account.Number)
}

func TestAggregateUnknownAccountStaysVisible(t *testing.T) {
	verifications := []ledger.Verification{
		verification(day(2025, time.March, 1),
			ledger.Row{Account: "4711", Debit: 100},
			ledger.Row{Account: "1930", Credit: 100},
		),
	}
	activity := Aggregate(verifications, bas.StandardChart(), Options{})
	unknown := findAccount(t, activity, "4711")
	require.Equal(t, "Okontoterat", unknown.Account.Group)
	require.Equal(t, 100.0, unknown.Balance)
}

func TestAggregateCapsEntriesButNotCount(t *testing.T) {
	var verifications []ledger.Verification
	for i := 1; i <= 5; i++ {
		verifications = append(verifications, verification(day(2025, time.April, i),
			ledger.Row{Account: "1930", Debit: float64(i)},
			ledger.Row{Account: "3001", Credit: float64(i)},
		))
	}
	activity := Aggregate(verifications, bas.StandardChart(), Options{MaxEntries: 3})
	bank := findAccount(t, activity, "1930")
	require.Equal(t, 5, bank.TxCount)
	require.Len(t, bank.Entries, 3)
	require.Equal(t, day(2025, time.April, 5), bank.Entries[0].Date, "most recent first")
}

func TestAggregateSortedByAccountNumber(t *testing.T) {
	activity := Aggregate(fixture(), bas.StandardChart(), Options{})
	for i := 1; i < len(activity); i++ {
		require.Less(t, activity[i-1].Account.Number, activity[i].Account.Number)
	}
}
