package vat

import (
	"math"

	"github.com/forzencookie/verifikat/internal/ledger"
	"github.com/forzencookie/verifikat/internal/periods"
)

// EditableBoxes hold the declaration fields a user may override after the
// ledger accumulation. Recalculate never writes these.
type EditableBoxes struct {
	Sales25 float64 // 05
	Sales12 float64 // 06
	Sales6  float64 // 07
	Rental  float64 // 08

	PurchEUGoods float64 // 20
	PurchEUServ  float64 // 21
	PurchServ    float64 // 22
	PurchGoodsRC float64 // 23
	PurchServRC  float64 // 24

	SalesEUGoods float64 // 35
	ExportGoods  float64 // 36
	TriangPurch  float64 // 37
	TriangSales  float64 // 38
	SalesEUServ  float64 // 39
	SalesServ    float64 // 40
	SalesRC      float64 // 41
	OtherExempt  float64 // 42

	InputVAT   float64 // 48
	ImportBase float64 // 50
}

// DerivedBoxes are written exclusively by Recalculate.
type DerivedBoxes struct {
	Output25 float64 // 10
	Output12 float64 // 11
	Output6  float64 // 12

	Reverse25 float64 // 30
	Reverse12 float64 // 31
	Reverse6  float64 // 32

	ImportVAT25 float64 // 60
	ImportVAT12 float64 // 61
	ImportVAT6  float64 // 62

	// Net is ruta 49: positive = owed, negative = refund.
	Net float64
}

// Report is the VAT declaration of one period. A live report is recomputed
// from the ledger on every read; a submitted one is a frozen snapshot.
type Report struct {
	Period   periods.Period
	Editable EditableBoxes
	Derived  DerivedBoxes

	// ledgerOutputVAT holds output VAT as posted per rate, kept for the
	// cross-check against the derived B boxes.
	ledgerOutputVAT map[float64]float64
}

// Boxes returns values keyed by statutory box code.
func (r Report) Boxes() map[string]float64 {
	e, d := r.Editable, r.Derived
	return map[string]float64{
		BoxSales25: e.Sales25, BoxSales12: e.Sales12, BoxSales6: e.Sales6, BoxRental: e.Rental,
		BoxOutput25: d.Output25, BoxOutput12: d.Output12, BoxOutput6: d.Output6,
		BoxPurchEUGoods: e.PurchEUGoods, BoxPurchEUServ: e.PurchEUServ, BoxPurchServ: e.PurchServ,
		BoxPurchGoodsRC: e.PurchGoodsRC, BoxPurchServRC: e.PurchServRC,
		BoxReverse25: d.Reverse25, BoxReverse12: d.Reverse12, BoxReverse6: d.Reverse6,
		BoxSalesEUGoods: e.SalesEUGoods, BoxExportGoods: e.ExportGoods,
		BoxTriangPurch: e.TriangPurch, BoxTriangSales: e.TriangSales,
		BoxSalesEUServ: e.SalesEUServ, BoxSalesServ: e.SalesServ,
		BoxSalesRC: e.SalesRC, BoxOtherExempt: e.OtherExempt,
		BoxInputVAT: e.InputVAT, BoxNet: d.Net, BoxImportBase: e.ImportBase,
		BoxImportVAT25: d.ImportVAT25, BoxImportVAT12: d.ImportVAT12, BoxImportVAT6: d.ImportVAT6,
	}
}

// CalculateFromLedger accumulates every row whose account maps to a box and
// whose verification date falls inside the period, then derives section B,
// D, H and G. Pure over the supplied snapshot.
func CalculateFromLedger(verifications []ledger.Verification, period periods.Period) Report {
	report := Report{
		Period:          period,
		ledgerOutputVAT: map[float64]float64{0.25: 0, 0.12: 0, 0.06: 0},
	}
	for _, v := range verifications {
		if !period.Contains(v.Date) {
			continue
		}
		for _, row := range v.Rows {
			if m, ok := boxFor(row.Account); ok {
				report.addToBox(m, row)
			}
			for _, rng := range outputVATRanges {
				if row.Account >= rng.From && row.Account <= rng.To {
					report.ledgerOutputVAT[rng.Rate] += row.Credit - row.Debit
				}
			}
		}
	}
	return Recalculate(report)
}

func (r *Report) addToBox(m boxMapping, row ledger.Row) {
	amount := row.Credit - row.Debit
	if m.Side == debitSide {
		amount = row.Debit - row.Credit
	}
	e := &r.Editable
	switch m.Box {
	case BoxSales25:
		e.Sales25 += amount
	case BoxSales12:
		e.Sales12 += amount
	case BoxSales6:
		e.Sales6 += amount
	case BoxRental:
		e.Rental += amount
	case BoxPurchEUGoods:
		e.PurchEUGoods += amount
	case BoxPurchEUServ:
		e.PurchEUServ += amount
	case BoxPurchServ:
		e.PurchServ += amount
	case BoxPurchGoodsRC:
		e.PurchGoodsRC += amount
	case BoxPurchServRC:
		e.PurchServRC += amount
	case BoxSalesEUGoods:
		e.SalesEUGoods += amount
	case BoxExportGoods:
		e.ExportGoods += amount
	case BoxTriangPurch:
		e.TriangPurch += amount
	case BoxTriangSales:
		e.TriangSales += amount
	case BoxSalesEUServ:
		e.SalesEUServ += amount
	case BoxSalesServ:
		e.SalesServ += amount
	case BoxSalesRC:
		e.SalesRC += amount
	case BoxOtherExempt:
		e.OtherExempt += amount
	case BoxInputVAT:
		e.InputVAT += amount
	case BoxImportBase:
		e.ImportBase += amount
	}
}

// Recalculate derives every computed box from the editable ones. It is the
// only writer of Derived, it is deterministic, and it is idempotent:
// Recalculate(Recalculate(r)) == Recalculate(r) for any r.
func Recalculate(r Report) Report {
	e := r.Editable
	d := DerivedBoxes{
		Output25:    roundKr((e.Sales25 + e.Rental) * 0.25),
		Output12:    roundKr(e.Sales12 * 0.12),
		Output6:     roundKr(e.Sales6 * 0.06),
		Reverse25:   roundKr((e.PurchEUGoods + e.PurchEUServ + e.PurchServ + e.PurchGoodsRC + e.PurchServRC) * 0.25),
		ImportVAT25: roundKr(e.ImportBase * 0.25),
	}
	d.Net = d.Output25 + d.Output12 + d.Output6 +
		d.Reverse25 + d.Reverse12 + d.Reverse6 +
		d.ImportVAT25 + d.ImportVAT12 + d.ImportVAT6 -
		roundKr(e.InputVAT)
	r.Derived = d
	return r
}

// Discrepancy reports a mismatch between a derived output-VAT box and the
// VAT actually posted to the ledger's output accounts.
type Discrepancy struct {
	Box     string
	Derived float64
	Posted  float64
}

// crossCheckTolerance allows rounding drift of one krona per box.
const crossCheckTolerance = 1.0

// CrossCheck compares the derived output VAT per rate against the
// independently accumulated output-VAT postings. Reverse-charge and import
// VAT share the posting accounts, so each rate is checked as a sum across
// sections B, D and H. Drift is reported, never silently corrected.
func (r Report) CrossCheck() []Discrepancy {
	if r.ledgerOutputVAT == nil {
		return nil
	}
	checks := []struct {
		box     string
		derived float64
		rate    float64
	}{
		{BoxOutput25, r.Derived.Output25 + r.Derived.Reverse25 + r.Derived.ImportVAT25, 0.25},
		{BoxOutput12, r.Derived.Output12 + r.Derived.Reverse12 + r.Derived.ImportVAT12, 0.12},
		{BoxOutput6, r.Derived.Output6 + r.Derived.Reverse6 + r.Derived.ImportVAT6, 0.06},
	}
	var out []Discrepancy
	for _, c := range checks {
		posted := r.ledgerOutputVAT[c.rate]
		if posted == 0 && c.derived == 0 {
			continue
		}
		if math.Abs(posted-c.derived) > crossCheckTolerance {
			out = append(out, Discrepancy{Box: c.box, Derived: c.derived, Posted: posted})
		}
	}
	return out
}

func roundKr(v float64) float64 {
	return math.Round(v)
}
