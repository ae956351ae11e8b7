package vat

// Box codes on the Swedish VAT declaration (SKV 4700), grouped by section.
// The engine keeps the statutory codes; names describe the content.
const (
	BoxSales25       = "05" // A. Momspliktig försäljning 25%
	BoxSales12       = "06" // A. Momspliktig försäljning 12%
	BoxSales6        = "07" // A. Momspliktig försäljning 6%
	BoxRental        = "08" // A. Hyresinkomster, frivillig skattskyldighet
	BoxOutput25      = "10" // B. Utgående moms 25%
	BoxOutput12      = "11" // B. Utgående moms 12%
	BoxOutput6       = "12" // B. Utgående moms 6%
	BoxPurchEUGoods  = "20" // C. Inköp av varor från annat EU-land
	BoxPurchEUServ   = "21" // C. Inköp av tjänster från annat EU-land
	BoxPurchServ     = "22" // C. Inköp av tjänster utanför EU
	BoxPurchGoodsRC  = "23" // C. Inköp av varor i Sverige, omvänd skattskyldighet
	BoxPurchServRC   = "24" // C. Inköp av tjänster i Sverige, omvänd skattskyldighet
	BoxReverse25     = "30" // D. Utgående moms 25% på rutorna 20-24
	BoxReverse12     = "31" // D. Utgående moms 12%
	BoxReverse6      = "32" // D. Utgående moms 6%
	BoxSalesEUGoods  = "35" // E. Försäljning av varor till annat EU-land
	BoxExportGoods   = "36" // E. Försäljning av varor utanför EU
	BoxTriangPurch   = "37" // E. Mellanmans inköp av varor vid trepartshandel
	BoxTriangSales   = "38" // E. Mellanmans försäljning av varor vid trepartshandel
	BoxSalesEUServ   = "39" // E. Försäljning av tjänster till annat EU-land
	BoxSalesServ     = "40" // E. Övrig försäljning av tjänster utanför EU
	BoxSalesRC       = "41" // E. Försäljning, omvänd skattskyldighet i Sverige
	BoxOtherExempt   = "42" // E. Övrig momsfri försäljning
	BoxInputVAT      = "48" // F. Ingående moms att dra av
	BoxNet           = "49" // G. Moms att betala eller få tillbaka
	BoxImportBase    = "50" // H. Beskattningsunderlag vid import
	BoxImportVAT25   = "60" // H. Utgående moms på import 25%
	BoxImportVAT12   = "61" // H. Utgående moms på import 12%
	BoxImportVAT6    = "62" // H. Utgående moms på import 6%
)

// boxOrder fixes the serialization order of the declaration. The XML codec
// iterates this slice, which keeps the output byte-stable.
var boxOrder = []string{
	BoxSales25, BoxSales12, BoxSales6, BoxRental,
	BoxOutput25, BoxOutput12, BoxOutput6,
	BoxPurchEUGoods, BoxPurchEUServ, BoxPurchServ, BoxPurchGoodsRC, BoxPurchServRC,
	BoxReverse25, BoxReverse12, BoxReverse6,
	BoxSalesEUGoods, BoxExportGoods, BoxTriangPurch, BoxTriangSales,
	BoxSalesEUServ, BoxSalesServ, BoxSalesRC, BoxOtherExempt,
	BoxInputVAT, BoxNet, BoxImportBase,
	BoxImportVAT25, BoxImportVAT12, BoxImportVAT6,
}

// side selects which leg of a row feeds a box.
type side int

const (
	creditSide side = iota
	debitSide
)

// boxMapping binds an inclusive account number range to a declaration box.
// First match wins, so narrower ranges come before wider ones.
type boxMapping struct {
	From string
	To   string
	Box  string
	Side side
}

// accountBoxTable is the single declarative account-to-box mapping. All
// report accumulation goes through it; no per-report range checks exist
// anywhere else.
var accountBoxTable = []boxMapping{
	// A. Domestic taxable sales by rate, plus voluntary-taxation rent.
	{From: "3001", To: "3001", Box: BoxSales25, Side: creditSide},
	{From: "3002", To: "3002", Box: BoxSales12, Side: creditSide},
	{From: "3003", To: "3003", Box: BoxSales6, Side: creditSide},
	{From: "3911", To: "3919", Box: BoxRental, Side: creditSide},
	// E. Exempt sales.
	{From: "3004", To: "3004", Box: BoxOtherExempt, Side: creditSide},
	{From: "3106", To: "3106", Box: BoxSalesEUGoods, Side: creditSide},
	{From: "3107", To: "3107", Box: BoxTriangSales, Side: creditSide},
	{From: "3108", To: "3108", Box: BoxExportGoods, Side: creditSide},
	{From: "3231", To: "3231", Box: BoxSalesRC, Side: creditSide},
	{From: "3305", To: "3305", Box: BoxSalesEUServ, Side: creditSide},
	{From: "3308", To: "3308", Box: BoxSalesServ, Side: creditSide},
	// C. Reverse-charge purchase bases.
	{From: "4400", To: "4409", Box: BoxPurchGoodsRC, Side: debitSide},
	{From: "4425", To: "4426", Box: BoxPurchServRC, Side: debitSide},
	{From: "4512", To: "4512", Box: BoxTriangPurch, Side: debitSide},
	{From: "4515", To: "4519", Box: BoxPurchEUGoods, Side: debitSide},
	{From: "4531", To: "4534", Box: BoxPurchServ, Side: debitSide},
	{From: "4535", To: "4539", Box: BoxPurchEUServ, Side: debitSide},
	// H. Import base.
	{From: "4545", To: "4549", Box: BoxImportBase, Side: debitSide},
	// F. Deductible input VAT, including computed VAT on foreign purchases.
	{From: "2640", To: "2649", Box: BoxInputVAT, Side: debitSide},
}

// outputVATRanges feed the independent cross-check of section B: output VAT
// as actually posted to the ledger, by rate.
var outputVATRanges = []struct {
	From string
	To   string
	Rate float64
}{
	{From: "2610", To: "2619", Rate: 0.25},
	{From: "2620", To: "2629", Rate: 0.12},
	{From: "2630", To: "2639", Rate: 0.06},
}

func boxFor(account string) (boxMapping, bool) {
	for _, m := range accountBoxTable {
		if account >= m.From && account <= m.To {
			return m, true
		}
	}
	return boxMapping{}, false
}
