package bas

// AccountType enumerates the five BAS account categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// Account models one node of the BAS chart of accounts. The first digit of
// Number is the account class (1-8).
type Account struct {
	Number string
	Name   string
	Class  int
	Type   AccountType
	Group  string
}

// ClassOf returns the BAS class encoded in the account number's first digit,
// or 0 when the number is malformed.
func ClassOf(number string) int {
	if len(number) != 4 {
		return 0
	}
	c := number[0]
	if c < '1' || c > '8' {
		return 0
	}
	return int(c - '0')
}

// TypeForClass maps a BAS class to its account category. Classes 5-8 all
// carry operating costs and net as expenses except class 8, which mixes
// financial revenue and cost; BAS convention nets 8 as expense for the
// purposes of sign handling.
func TypeForClass(class int) AccountType {
	switch class {
	case 1:
		return AccountTypeAsset
	case 2:
		return AccountTypeLiability
	case 3:
		return AccountTypeRevenue
	case 4, 5, 6, 7, 8:
		return AccountTypeExpense
	default:
		return AccountTypeExpense
	}
}

// Equity accounts live in class 2 under BAS (2081-2099 among others); the
// engine treats the whole of class 2 with the credit-minus-debit convention,
// so the distinction only matters for presentation.
