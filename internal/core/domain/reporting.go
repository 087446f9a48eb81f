package domain

import (
	"github.com/shopspring/decimal"
)

// TrialBalanceRow is a single account's balance split into its debit or
// credit column. Exactly one of the two columns is nonzero per row.
type TrialBalanceRow struct {
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every account with activity, ordered by account
// type precedence then registry insertion order.
type TrialBalanceReport struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
	Balanced    bool              `json:"balanced"`
}

// AccountBalance pairs an account with its raw signed balance for the income
// statement and balance sheet sections.
type AccountBalance struct {
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}

// IncomeStatementReport groups revenue accounts then expense accounts and
// derives net profit over all recorded activity.
type IncomeStatementReport struct {
	Revenues     []AccountBalance `json:"revenues"`
	Expenses     []AccountBalance `json:"expenses"`
	TotalRevenue decimal.Decimal  `json:"totalRevenue"`
	TotalExpense decimal.Decimal  `json:"totalExpense"`
	NetProfit    decimal.Decimal  `json:"netProfit"`
}

// BalanceSheetReport folds current net profit into equity as an unclosed
// retained-earnings adjustment; there is no period close.
type BalanceSheetReport struct {
	Assets           []AccountBalance `json:"assets"`
	Liabilities      []AccountBalance `json:"liabilities"`
	Equity           []AccountBalance `json:"equity"`
	TotalAssets      decimal.Decimal  `json:"totalAssets"`
	TotalLiabilities decimal.Decimal  `json:"totalLiabilities"`
	NetProfit        decimal.Decimal  `json:"netProfit"`
	TotalEquity      decimal.Decimal  `json:"totalEquity"`
	Balanced         bool             `json:"balanced"`
}

// BreakdownRow is one account in a dashboard breakdown, ranked descending by
// balance over the selected date window.
type BreakdownRow struct {
	AccountName string          `json:"accountName"`
	Balance     decimal.Decimal `json:"balance"`
}
