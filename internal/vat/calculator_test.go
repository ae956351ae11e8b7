package vat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/periods"
)

func q1_2025() periods.Period {
	return periods.For(periods.KindVAT, periods.Settings{VATFrequency: periods.FrequencyQuarterly}, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
}

func verification(date time.Time, rows ...ledger.Row) ledger.Verification {
	return ledger.Verification{Date: date, Rows: rows}
}

func TestCalculateDomesticSale(t *testing.T) {
	feb := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	report := CalculateFromLedger([]ledger.Verification{
		verification(feb,
			ledger.Row{Account: "1930", Debit: 12500},
			ledger.Row{Account: "3001", Credit: 10000},
			ledger.Row{Account: "2611", Credit: 2500},
		),
	}, q1_2025())

	require.Equal(t, 10000.0, report.Editable.Sales25)
	require.Equal(t, 2500.0, report.Derived.Output25)
	require.Equal(t, 2500.0, report.Derived.Net)
	require.Empty(t, report.CrossCheck())
}

func TestCalculateInputVATOnly(t *testing.T) {
	// A period of purchases only: ruta 48 carries the deduction and
	// ruta 49 goes negative, a refund.
	feb := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	report := CalculateFromLedger([]ledger.Verification{
		verification(feb,
			ledger.Row{Account: "4010", Debit: 1000},
			ledger.Row{Account: "2641", Debit: 250},
			ledger.Row{Account: "1930", Credit: 1250},
		),
	}, q1_2025())

	require.Equal(t, 250.0, report.Editable.InputVAT)
	require.Equal(t, -250.0, report.Derived.Net)
}

func TestCalculateIgnoresRowsOutsidePeriod(t *testing.T) {
	apr := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	report := CalculateFromLedger([]ledger.Verification{
		verification(apr,
			ledger.Row{Account: "3001", Credit: 10000},
			ledger.Row{Account: "2611", Credit: 2500},
			ledger.Row{Account: "1930", Debit: 12500},
		),
	}, q1_2025())

	require.Equal(t, 0.0, report.Editable.Sales25)
	require.Equal(t, 0.0, report.Derived.Net)
}

func TestCalculateReverseChargeEUPurchase(t *testing.T) {
	feb := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	report := CalculateFromLedger([]ledger.Verification{
		verification(feb,
			ledger.Row{Account: "4515", Debit: 8000},
			ledger.Row{Account: "2614", Credit: 2000},
			ledger.Row{Account: "2645", Debit: 2000},
			ledger.Row{Account: "1930", Credit: 8000},
		),
	}, q1_2025())

	require.Equal(t, 8000.0, report.Editable.PurchEUGoods)
	require.Equal(t, 2000.0, report.Derived.Reverse25)
	require.Equal(t, 2000.0, report.Editable.InputVAT)
	// Output and input cancel; nothing to pay.
	require.Equal(t, 0.0, report.Derived.Net)
	require.Empty(t, report.CrossCheck())
}

func TestRecalculateIsIdempotent(t *testing.T) {
	report := Report{Period: q1_2025()}
	report.Editable.Sales25 = 1000
	report.Editable.Sales12 = 500
	report.Editable.PurchEUGoods = 2000
	report.Editable.ImportBase = 400
	report.Editable.InputVAT = 133

	once := Recalculate(report)
	twice := Recalculate(once)
	require.Equal(t, once, twice)
}

func TestOutputAndInputVATCancelToZero(t *testing.T) {
	report := Report{Period: q1_2025()}
	report.Editable.Sales25 = 1000
	report.Editable.InputVAT = 250
	report = Recalculate(report)

	require.Equal(t, 250.0, report.Derived.Output25)
	require.Equal(t, 0.0, report.Derived.Net)
}

func TestRecalculateDerivesFromEditedBase(t *testing.T) {
	report := Report{Period: q1_2025()}
	report.Editable.Sales25 = 1000
	report = Recalculate(report)
	require.Equal(t, 250.0, report.Derived.Output25)

	report.Editable.Sales25 = 2000
	report = Recalculate(report)
	require.Equal(t, 500.0, report.Derived.Output25)
}

func TestNetSumsEveryOutputSection(t *testing.T) {
	report := Report{Period: q1_2025()}
	report.Editable.Sales25 = 1000  // 10 = 250
	report.Editable.Sales12 = 1000  // 11 = 120
	report.Editable.Sales6 = 1000   // 12 = 60
	report.Editable.PurchServ = 400 // 30 = 100
	report.Editable.ImportBase = 80 // 60 = 20
	report.Editable.InputVAT = 150
	report = Recalculate(report)

	require.Equal(t, 250.0+120+60+100+20-150, report.Derived.Net)
}

func TestCrossCheckFlagsDrift(t *testing.T) {
	feb := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	// VAT posted at 2000 kr although the sales base derives 2500 kr.
	report := CalculateFromLedger([]ledger.Verification{
		verification(feb,
			ledger.Row{Account: "1930", Debit: 12000},
			ledger.Row{Account: "3001", Credit: 10000},
			ledger.Row{Account: "2611", Credit: 2000},
		),
	}, q1_2025())

	drift := report.CrossCheck()
	require.Len(t, drift, 1)
	require.Equal(t, BoxOutput25, drift[0].Box)
	require.Equal(t, 2500.0, drift[0].Derived)
	require.Equal(t, 2000.0, drift[0].Posted)
}

func TestCrossCheckToleratesOneKrona(t *testing.T) {
	feb := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	report := CalculateFromLedger([]ledger.Verification{
		verification(feb,
			ledger.Row{Account: "1930", Debit: 1250},
			ledger.Row{Account: "3001", Credit: 1000.4},
			ledger.Row{Account: "2611", Credit: 249.6},
		),
	}, q1_2025())

	require.Equal(t, 250.0, report.Derived.Output25)
	require.Empty(t, report.CrossCheck())
}
