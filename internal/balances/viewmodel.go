package balances

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var sekPrinter = message.NewPrinter(language.Swedish)

// FormatAmount renders an amount with Swedish digit grouping ("12 345,67").
func FormatAmount(v float64) string {
	return sekPrinter.Sprintf("%.2f", v)
}

// AccountRow is the JSON shape served to the UI.
type AccountRow struct {
	Number           string     `json:"number"`
	Name             string     `json:"name"`
	Class            int        `json:"class"`
	Type             string     `json:"type"`
	Group            string     `json:"group"`
	Debit            float64    `json:"debit"`
	Credit           float64    `json:"credit"`
	Balance          float64    `json:"balance"`
	BalanceFormatted string     `json:"balanceFormatted"`
	TxCount          int        `json:"txCount"`
	LastDate         *time.Time `json:"lastDate,omitempty"`
	Entries          []EntryRow `json:"entries"`
}

// EntryRow is one drill-down transaction.
type EntryRow struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
}

// ToRows converts aggregated activity into the UI shape.
func ToRows(activity []AccountActivity) []AccountRow {
	out := make([]AccountRow, 0, len(activity))
	for _, acc := range activity {
		row := AccountRow{
			Number:           acc.Account.Number,
			Name:             acc.Account.Name,
			Class:            acc.Account.Class,
			Type:             string(acc.Account.Type),
			Group:            acc.Account.Group,
			Debit:            acc.Debit,
			Credit:           acc.Credit,
			Balance:          acc.Balance,
			BalanceFormatted: FormatAmount(acc.Balance),
			TxCount:          acc.TxCount,
			Entries:          make([]EntryRow, 0, len(acc.Entries)),
		}
		if !acc.LastDate.IsZero() {
			last := acc.LastDate
			row.LastDate = &last
		}
		for _, e := range acc.Entries {
			row.Entries = append(row.Entries, EntryRow{Date: e.Date, Description: e.Description, Amount: e.Amount})
		}
		out = append(out, row)
	}
	return out
}
