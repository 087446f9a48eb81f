package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	portssvc "github.com/finbooks/bookkeeping_app/internal/core/ports/services"
	"github.com/finbooks/bookkeeping_app/internal/middleware"
	"github.com/finbooks/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService derives the trial balance, income statement and balance
// sheet from the live ledger projection. It never reads raw journal entries.
type reportingService struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewReportingService creates the report generator.
func NewReportingService(ledgerSvc portssvc.LedgerSvcFacade) portssvc.ReportingSvcFacade {
	return &reportingService{ledgerSvc: ledgerSvc}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance implements portssvc.ReportingSvcFacade. Accounts without
// transactions are excluded; rows are ordered by account type precedence
// with registry insertion order breaking ties.
func (s *reportingService) TrialBalance(ctx context.Context, userID string) (*domain.TrialBalanceReport, error) {
	accounts, err := s.ledgerSvc.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ledger for trial balance: %w", err)
	}

	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		if len(account.Transactions) == 0 {
			continue
		}
		balance := accounting.SignedBalance(account.AccountType, account.Transactions)
		debit, credit := accounting.SplitColumns(account.AccountType, balance)
		rows = append(rows, domain.TrialBalanceRow{
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
	}

	// Snapshot order is registry insertion order, so the stable sort keeps
	// it as the tie-break.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].AccountType.Precedence() < rows[j].AccountType.Precedence()
	})

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, row := range rows {
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	report := &domain.TrialBalanceReport{
		Rows:        rows,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Balanced:    domain.AmountsEqual(totalDebit, totalCredit),
	}

	middleware.GetLoggerFromCtx(ctx).Debug("Trial balance generated",
		slog.Int("rows", len(rows)), slog.Bool("balanced", report.Balanced))
	return report, nil
}

// incomeStatementFrom computes the income statement over an existing ledger
// snapshot, so the balance sheet can reuse the same consistent view.
func incomeStatementFrom(accounts []domain.LedgerAccount) *domain.IncomeStatementReport {
	report := &domain.IncomeStatementReport{
		TotalRevenue: decimal.Zero,
		TotalExpense: decimal.Zero,
	}
	for i := range accounts {
		account := &accounts[i]
		if account.AccountType != domain.Revenue && account.AccountType != domain.Expense {
			continue
		}
		balance := accounting.SignedBalance(account.AccountType, account.Transactions)
		if !balance.Abs().GreaterThan(domain.Tolerance) {
			continue
		}
		entry := domain.AccountBalance{AccountName: account.Name, Balance: balance}
		if account.AccountType == domain.Revenue {
			report.Revenues = append(report.Revenues, entry)
			report.TotalRevenue = report.TotalRevenue.Add(balance)
		} else {
			report.Expenses = append(report.Expenses, entry)
			report.TotalExpense = report.TotalExpense.Add(balance)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpense)
	return report
}

// IncomeStatement implements portssvc.ReportingSvcFacade. Net profit is
// always computed over all recorded revenue and expense activity; there is
// no period close.
func (s *reportingService) IncomeStatement(ctx context.Context, userID string) (*domain.IncomeStatementReport, error) {
	accounts, err := s.ledgerSvc.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ledger for income statement: %w", err)
	}
	return incomeStatementFrom(accounts), nil
}

// BalanceSheet implements portssvc.ReportingSvcFacade. Current net profit is
// folded into equity as an unclosed retained-earnings adjustment; this is
// the one place income statement output feeds the balance sheet.
func (s *reportingService) BalanceSheet(ctx context.Context, userID string) (*domain.BalanceSheetReport, error) {
	accounts, err := s.ledgerSvc.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ledger for balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	baseEquity := decimal.Zero

	for i := range accounts {
		account := &accounts[i]
		switch account.AccountType {
		case domain.Asset, domain.Liability, domain.Equity:
		default:
			continue
		}
		balance := accounting.SignedBalance(account.AccountType, account.Transactions)
		if !balance.Abs().GreaterThan(domain.Tolerance) {
			continue
		}
		entry := domain.AccountBalance{AccountName: account.Name, Balance: balance}
		switch account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, entry)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, entry)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			report.Equity = append(report.Equity, entry)
			baseEquity = baseEquity.Add(balance)
		}
	}

	report.NetProfit = incomeStatementFrom(accounts).NetProfit
	report.TotalEquity = baseEquity.Add(report.NetProfit)
	report.Balanced = domain.AmountsEqual(report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity))

	middleware.GetLoggerFromCtx(ctx).Debug("Balance sheet generated",
		slog.Bool("balanced", report.Balanced))
	return report, nil
}

// Breakdown implements portssvc.ReportingSvcFacade. Only Expense and Revenue
// accounts can be ranked; balances are computed over the transactions inside
// the inclusive date window.
func (s *reportingService) Breakdown(ctx context.Context, userID string, accountType domain.AccountType, window domain.DateRange) ([]domain.BreakdownRow, error) {
	if accountType != domain.Expense && accountType != domain.Revenue {
		return nil, fmt.Errorf("%w: breakdown supports EXPENSE or REVENUE, got %q", apperrors.ErrValidation, accountType)
	}

	accounts, err := s.ledgerSvc.Snapshot(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot ledger for breakdown: %w", err)
	}

	rows := make([]domain.BreakdownRow, 0, len(accounts))
	for i := range accounts {
		account := &accounts[i]
		if account.AccountType != accountType {
			continue
		}
		var inWindow []domain.LedgerTransaction
		for _, txn := range account.Transactions {
			if window.Contains(txn.Date) {
				inWindow = append(inWindow, txn)
			}
		}
		if len(inWindow) == 0 {
			continue
		}
		rows = append(rows, domain.BreakdownRow{
			AccountName: account.Name,
			Balance:     accounting.SignedBalance(accountType, inWindow),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Balance.GreaterThan(rows[j].Balance)
	})
	return rows, nil
}
