package bas

import "sort"

// Chart provides lookups over a BAS account plan.
type Chart interface {
	Lookup(number string) (Account, bool)
	All() []Account
}

type chart struct {
	byNumber map[string]Account
	ordered  []Account
}

// NewChart builds a Chart from the supplied accounts.
func NewChart(accounts []Account) Chart {
	c := &chart{byNumber: make(map[string]Account, len(accounts))}
	for _, a := range accounts {
		if a.Class == 0 {
			a.Class = ClassOf(a.Number)
		}
		if a.Type == "" {
			a.Type = TypeForClass(a.Class)
		}
		c.byNumber[a.Number] = a
	}
	c.ordered = make([]Account, 0, len(c.byNumber))
	for _, a := range c.byNumber {
		c.ordered = append(c.ordered, a)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].Number < c.ordered[j].Number })
	return c
}

func (c *chart) Lookup(number string) (Account, bool) {
	a, ok := c.byNumber[number]
	return a, ok
}

func (c *chart) All() []Account {
	out := make([]Account, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Uncategorized synthesizes an account entry for a number missing from the
// chart, so postings against unknown accounts stay visible in aggregates.
func Uncategorized(number string) Account {
	class := ClassOf(number)
	return Account{
		Number: number,
		Name:   "Okontoterat",
		Class:  class,
		Type:   TypeForClass(class),
		Group:  "Okontoterat",
	}
}

// StandardChart returns the built-in BAS plan subset used by the engine.
// Statutory reference data; never mutated at runtime.
func StandardChart() Chart {
	return NewChart(standardAccounts)
}

var standardAccounts = []Account{
	{Number: "1220", Name: "Inventarier och verktyg", Group: "Anläggningstillgångar"},
	{Number: "1510", Name: "Kundfordringar", Group: "Fordringar"},
	{Number: "1630", Name: "Skattekonto", Group: "Fordringar"},
	{Number: "1650", Name: "Momsfordran", Group: "Fordringar"},
	{Number: "1910", Name: "Kassa", Group: "Kassa och bank"},
	{Number: "1930", Name: "Företagskonto", Group: "Kassa och bank"},
	{Number: "2081", Name: "Aktiekapital", Type: AccountTypeEquity, Group: "Eget kapital"},
	{Number: "2091", Name: "Balanserad vinst eller förlust", Type: AccountTypeEquity, Group: "Eget kapital"},
	{Number: "2098", Name: "Vinst eller förlust från föregående år", Type: AccountTypeEquity, Group: "Eget kapital"},
	{Number: "2099", Name: "Årets resultat", Type: AccountTypeEquity, Group: "Eget kapital"},
	{Number: "2230", Name: "Avsättningar för pensioner", Group: "Avsättningar"},
	{Number: "2440", Name: "Leverantörsskulder", Group: "Kortfristiga skulder"},
	{Number: "2510", Name: "Skatteskulder", Group: "Skatteskulder"},
	{Number: "2610", Name: "Utgående moms 25%", Group: "Moms"},
	{Number: "2611", Name: "Utgående moms på försäljning inom Sverige 25%", Group: "Moms"},
	{Number: "2614", Name: "Utgående moms omvänd skattskyldighet 25%", Group: "Moms"},
	{Number: "2615", Name: "Utgående moms import av varor 25%", Group: "Moms"},
	{Number: "2620", Name: "Utgående moms 12%", Group: "Moms"},
	{Number: "2630", Name: "Utgående moms 6%", Group: "Moms"},
	{Number: "2640", Name: "Ingående moms", Group: "Moms"},
	{Number: "2645", Name: "Beräknad ingående moms på förvärv från utlandet", Group: "Moms"},
	{Number: "2650", Name: "Redovisningskonto för moms", Group: "Moms"},
	{Number: "2710", Name: "Personalskatt", Group: "Personalens skatter"},
	{Number: "2730", Name: "Lagstadgade sociala avgifter", Group: "Sociala avgifter"},
	{Number: "2731", Name: "Avräkning lagstadgade sociala avgifter", Group: "Sociala avgifter"},
	{Number: "2890", Name: "Övriga kortfristiga skulder", Group: "Kortfristiga skulder"},
	{Number: "2990", Name: "Övriga upplupna kostnader", Group: "Upplupna kostnader"},
	{Number: "3001", Name: "Försäljning inom Sverige 25% moms", Group: "Försäljning"},
	{Number: "3002", Name: "Försäljning inom Sverige 12% moms", Group: "Försäljning"},
	{Number: "3003", Name: "Försäljning inom Sverige 6% moms", Group: "Försäljning"},
	{Number: "3004", Name: "Försäljning inom Sverige momsfri", Group: "Försäljning"},
	{Number: "3106", Name: "Försäljning varor till annat EU-land", Group: "Försäljning"},
	{Number: "3108", Name: "Försäljning varor till land utanför EU", Group: "Försäljning"},
	{Number: "3231", Name: "Försäljning inom byggsektorn, omvänd skattskyldighet", Group: "Försäljning"},
	{Number: "3305", Name: "Försäljning tjänster till annat EU-land", Group: "Försäljning"},
	{Number: "3308", Name: "Försäljning tjänster till land utanför EU", Group: "Försäljning"},
	{Number: "3911", Name: "Hyresintäkter, frivillig skattskyldighet", Group: "Övriga rörelseintäkter"},
	{Number: "4000", Name: "Inköp av varor från Sverige", Group: "Inköp"},
	{Number: "4515", Name: "Inköp av varor från annat EU-land 25%", Group: "Inköp"},
	{Number: "4516", Name: "Inköp av varor från annat EU-land 12%", Group: "Inköp"},
	{Number: "4517", Name: "Inköp av varor från annat EU-land 6%", Group: "Inköp"},
	{Number: "4531", Name: "Inköp av tjänster från land utanför EU 25%", Group: "Inköp"},
	{Number: "4535", Name: "Inköp av tjänster från annat EU-land 25%", Group: "Inköp"},
	{Number: "4545", Name: "Import av varor, 25% moms", Group: "Inköp"},
	{Number: "4600", Name: "Legoarbeten och underentreprenader", Group: "Inköp"},
	{Number: "5010", Name: "Lokalhyra", Group: "Lokalkostnader"},
	{Number: "5410", Name: "Förbrukningsinventarier", Group: "Förbrukningsmaterial"},
	{Number: "6110", Name: "Kontorsmaterial", Group: "Kontorskostnader"},
	{Number: "6212", Name: "Mobiltelefon", Group: "Tele och post"},
	{Number: "6570", Name: "Bankkostnader", Group: "Övriga externa tjänster"},
	{Number: "7010", Name: "Löner till kollektivanställda", Group: "Löner"},
	{Number: "7210", Name: "Löner till tjänstemän", Group: "Löner"},
	{Number: "7410", Name: "Pensionsförsäkringspremier", Group: "Pensionskostnader"},
	{Number: "7510", Name: "Lagstadgade sociala avgifter", Group: "Sociala avgifter"},
	{Number: "8310", Name: "Ränteintäkter", Group: "Finansiella poster"},
	{Number: "8410", Name: "Räntekostnader", Group: "Finansiella poster"},
	{Number: "8999", Name: "Årets resultat", Group: "Resultat"},
}
