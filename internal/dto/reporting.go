package dto

import (
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils"
	"github.com/shopspring/decimal"
)

// TrialBalanceRowResponse is one formatted trial balance row.
type TrialBalanceRowResponse struct {
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
}

// TrialBalanceResponse is the full trial balance payload.
type TrialBalanceResponse struct {
	Rows                 []TrialBalanceRowResponse `json:"rows"`
	TotalDebit           decimal.Decimal           `json:"totalDebit"`
	TotalCredit          decimal.Decimal           `json:"totalCredit"`
	FormattedTotalDebit  string                    `json:"formattedTotalDebit"`
	FormattedTotalCredit string                    `json:"formattedTotalCredit"`
	Balanced             bool                      `json:"balanced"`
}

// AccountBalanceResponse is one account line in a report section.
type AccountBalanceResponse struct {
	AccountName      string          `json:"accountName"`
	Balance          decimal.Decimal `json:"balance"`
	FormattedBalance string          `json:"formattedBalance"`
}

// IncomeStatementResponse is the income statement payload.
type IncomeStatementResponse struct {
	Revenues           []AccountBalanceResponse `json:"revenues"`
	Expenses           []AccountBalanceResponse `json:"expenses"`
	TotalRevenue       decimal.Decimal          `json:"totalRevenue"`
	TotalExpense       decimal.Decimal          `json:"totalExpense"`
	NetProfit          decimal.Decimal          `json:"netProfit"`
	FormattedNetProfit string                   `json:"formattedNetProfit"`
}

// BalanceSheetResponse is the balance sheet payload.
type BalanceSheetResponse struct {
	Assets           []AccountBalanceResponse `json:"assets"`
	Liabilities      []AccountBalanceResponse `json:"liabilities"`
	Equity           []AccountBalanceResponse `json:"equity"`
	TotalAssets      decimal.Decimal          `json:"totalAssets"`
	TotalLiabilities decimal.Decimal          `json:"totalLiabilities"`
	NetProfit        decimal.Decimal          `json:"netProfit"`
	TotalEquity      decimal.Decimal          `json:"totalEquity"`
	Balanced         bool                     `json:"balanced"`
}

// BreakdownResponse ranks expense or revenue accounts for a dashboard view.
type BreakdownResponse struct {
	AccountType domain.AccountType       `json:"accountType"`
	Range       domain.RangeKind         `json:"range"`
	Rows        []AccountBalanceResponse `json:"rows"`
}

func toAccountBalanceResponses(balances []domain.AccountBalance, currencyCode string) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		out[i] = AccountBalanceResponse{
			AccountName:      b.AccountName,
			Balance:          b.Balance,
			FormattedBalance: utils.FormatAmount(b.Balance, currencyCode),
		}
	}
	return out
}

// ToTrialBalanceResponse converts the domain report to its response DTO.
func ToTrialBalanceResponse(report *domain.TrialBalanceReport, currencyCode string) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(report.Rows))
	for i, r := range report.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountName: r.AccountName,
			AccountType: r.AccountType,
			Debit:       r.Debit,
			Credit:      r.Credit,
		}
	}
	return TrialBalanceResponse{
		Rows:                 rows,
		TotalDebit:           report.TotalDebit,
		TotalCredit:          report.TotalCredit,
		FormattedTotalDebit:  utils.FormatAmount(report.TotalDebit, currencyCode),
		FormattedTotalCredit: utils.FormatAmount(report.TotalCredit, currencyCode),
		Balanced:             report.Balanced,
	}
}

// ToIncomeStatementResponse converts the domain report to its response DTO.
func ToIncomeStatementResponse(report *domain.IncomeStatementReport, currencyCode string) IncomeStatementResponse {
	return IncomeStatementResponse{
		Revenues:           toAccountBalanceResponses(report.Revenues, currencyCode),
		Expenses:           toAccountBalanceResponses(report.Expenses, currencyCode),
		TotalRevenue:       report.TotalRevenue,
		TotalExpense:       report.TotalExpense,
		NetProfit:          report.NetProfit,
		FormattedNetProfit: utils.FormatAmount(report.NetProfit, currencyCode),
	}
}

// ToBalanceSheetResponse converts the domain report to its response DTO.
func ToBalanceSheetResponse(report *domain.BalanceSheetReport, currencyCode string) BalanceSheetResponse {
	return BalanceSheetResponse{
		Assets:           toAccountBalanceResponses(report.Assets, currencyCode),
		Liabilities:      toAccountBalanceResponses(report.Liabilities, currencyCode),
		Equity:           toAccountBalanceResponses(report.Equity, currencyCode),
		TotalAssets:      report.TotalAssets,
		TotalLiabilities: report.TotalLiabilities,
		NetProfit:        report.NetProfit,
		TotalEquity:      report.TotalEquity,
		Balanced:         report.Balanced,
	}
}

// ToBreakdownResponse converts ranked breakdown rows to the response DTO.
func ToBreakdownResponse(accountType domain.AccountType, window domain.DateRange, rows []domain.BreakdownRow, currencyCode string) BreakdownResponse {
	out := make([]AccountBalanceResponse, len(rows))
	for i, r := range rows {
		out[i] = AccountBalanceResponse{
			AccountName:      r.AccountName,
			Balance:          r.Balance,
			FormattedBalance: utils.FormatAmount(r.Balance, currencyCode),
		}
	}
	return BreakdownResponse{AccountType: accountType, Range: window.Kind, Rows: out}
}
