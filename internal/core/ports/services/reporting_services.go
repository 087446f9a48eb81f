package services

import (
	"context"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
)

// ReportingSvcFacade derives the standard financial reports from the live
// ledger projection. Accounts with no activity are excluded from output.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, userID string) (*domain.TrialBalanceReport, error)
	IncomeStatement(ctx context.Context, userID string) (*domain.IncomeStatementReport, error)
	BalanceSheet(ctx context.Context, userID string) (*domain.BalanceSheetReport, error)

	// Breakdown ranks Expense or Revenue accounts descending by balance over
	// the given date window.
	Breakdown(ctx context.Context, userID string, accountType domain.AccountType, window domain.DateRange) ([]domain.BreakdownRow, error)
}
