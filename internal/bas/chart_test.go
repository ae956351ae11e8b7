package bas

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStandardChartLookup(t *testing.T) {
	chart := StandardChart()

	bank, ok := chart.Lookup("1930")
	require.True(t, ok)
	require.Equal(t, "Företagskonto", bank.Name)
	require.Equal(t, 1, bank.Class)
	require.Equal(t, AccountTypeAsset, bank.Type)

	sales, ok := chart.Lookup("3001")
	require.True(t, ok)
	require.Equal(t, AccountTypeRevenue, sales.Type)

	equity, ok := chart.Lookup("2099")
	require.True(t, ok)
	require.Equal(t, AccountTypeEquity, equity.Type)

	_, ok = chart.Lookup("9999")
	require.False(t, ok)
}

func TestChartAllSortedByNumber(t *testing.T) {
	accounts := StandardChart().All()
	require.NotEmpty(t, accounts)
	for i := 1; i < len(accounts); i++ {
		require.Less(t, accounts[i-1].Number, accounts[i].Number)
	}
}

func TestUncategorizedDerivesClassFromNumber(t *testing.T) {
	acc := Uncategorized("5999")
	require.Equal(t, 5, acc.Class)
	require.Equal(t, AccountTypeExpense, acc.Type)
	require.Equal(t, "Okontoterat", acc.Group)

	malformed := Uncategorized("abc")
	require.Equal(t, 0, malformed.Class)
}

func TestClassOf(t *testing.T) {
	require.Equal(t, 1, ClassOf("1930"))
	require.Equal(t, 8, ClassOf("8999"))
	require.Equal(t, 0, ClassOf("0100"))
	require.Equal(t, 0, ClassOf("193"))
}
