package balances

import (
	"sort"
	"strings"
	"time"

	"github.com/forzencookie/verifikat/internal/bas"
	"github.com/forzencookie/verifikat/internal/ledger"
)

// ViewMode selects which accounts the aggregation returns.
type ViewMode string

const (
	// ViewActivity returns only accounts with at least one transaction.
	ViewActivity ViewMode = "activity"
	// ViewAll merges the static chart in, zero-activity accounts included.
	ViewAll ViewMode = "all"
)

// Entry is one contributing posting, signed per the account's convention.
type Entry struct {
	Date        time.Time
	Description string
	Amount      float64
}

// AccountActivity aggregates all postings of one account.
type AccountActivity struct {
	Account  bas.Account
	Debit    float64
	Credit   float64
	Balance  float64
	TxCount  int
	LastDate time.Time
	Entries  []Entry
}

// Options controls filtering of the aggregation.
type Options struct {
	Range  ledger.DateRange
	View   ViewMode
	Class  int    // 0 = all classes
	Search string // matches number, name or group, case-insensitive
	// MaxEntries caps the drill-down list per account; TxCount stays exact.
	// 0 means uncapped.
	MaxEntries int
}

// Aggregate rolls verifications into per-account activity. Pure: the
// verification slice is the complete input, nothing is fetched.
func Aggregate(verifications []ledger.Verification, chart bas.Chart, opts Options) []AccountActivity {
	byNumber := make(map[string]*AccountActivity)

	for _, v := range verifications {
		if !opts.Range.Contains(v.Date) {
			continue
		}
		for _, row := range v.Rows {
			acc := byNumber[row.Account]
			if acc == nil {
				account, ok := chart.Lookup(row.Account)
				if !ok {
					account = bas.Uncategorized(row.Account)
				}
				acc = &AccountActivity{Account: account}
				byNumber[row.Account] = acc
			}
			acc.Debit += row.Debit
			acc.Credit += row.Credit
			acc.TxCount++
			if v.Date.After(acc.LastDate) {
				acc.LastDate = v.Date
			}
			desc := row.Description
			if desc == "" {
				desc = v.Description
			}
			acc.Entries = append(acc.Entries, Entry{
				Date:        v.Date,
				Description: desc,
				Amount:      signedAmount(acc.Account.Type, row),
			})
		}
	}

	if opts.View == ViewAll {
		for _, account := range chart.All() {
			if _, ok := byNumber[account.Number]; !ok {
				byNumber[account.Number] = &AccountActivity{Account: account}
			}
		}
	}

	out := make([]AccountActivity, 0, len(byNumber))
	for _, acc := range byNumber {
		if !matches(acc.Account, opts) {
			continue
		}
		acc.Balance = balanceOf(acc.Account.Type, acc.Debit, acc.Credit)
		sort.Slice(acc.Entries, func(i, j int) bool { return acc.Entries[i].Date.After(acc.Entries[j].Date) })
		if opts.MaxEntries > 0 && len(acc.Entries) > opts.MaxEntries {
			acc.Entries = acc.Entries[:opts.MaxEntries]
		}
		out = append(out, *acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account.Number < out[j].Account.Number })
	return out
}

// signedAmount applies the balance sign convention to one row: asset and
// expense accounts grow with debit, the rest grow with credit.
func signedAmount(accountType bas.AccountType, row ledger.Row) float64 {
	if accountType == bas.AccountTypeAsset || accountType == bas.AccountTypeExpense {
		return row.Debit - row.Credit
	}
	return row.Credit - row.Debit
}

func balanceOf(accountType bas.AccountType, debit, credit float64) float64 {
	if accountType == bas.AccountTypeAsset || accountType == bas.AccountTypeExpense {
		return debit - credit
	}
	return credit - debit
}

func matches(account bas.Account, opts Options) bool {
	if opts.Class != 0 && account.Class != opts.Class {
		return false
	}
	if opts.Search == "" {
		return true
	}
	q := strings.ToLower(opts.Search)
	return strings.Contains(account.Number, q) ||
		strings.Contains(strings.ToLower(account.Name), q) ||
		strings.Contains(strings.ToLower(account.Group), q)
}
