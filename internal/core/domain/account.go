package domain

// AccountType defines the fundamental accounting type of an account.
// The set is closed; an account's type is immutable once chosen.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether balances of this type increase with debits.
// Asset and Expense accounts are debit-normal; Liability, Equity and Revenue
// accounts are credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Precedence returns the sort rank used by the trial balance:
// Asset < Liability < Equity < Revenue < Expense.
func (t AccountType) Precedence() int {
	switch t {
	case Asset:
		return 0
	case Liability:
		return 1
	case Equity:
		return 2
	case Revenue:
		return 3
	case Expense:
		return 4
	default:
		return 5
	}
}

// Account is one row in the chart of accounts. The name is the primary key;
// there are no numeric account codes.
type Account struct {
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	AuditFields
}
