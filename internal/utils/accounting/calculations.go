// Package accounting holds the pure balance calculations shared by the
// ledger and reporting services.
package accounting

import (
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedBalance computes the signed balance for a set of ledger transactions
// under the given account type's convention:
//
//	ASSET/EXPENSE (debit-normal):            sum(debit) - sum(credit)
//	LIABILITY/EQUITY/REVENUE (credit-normal): sum(credit) - sum(debit)
func SignedBalance(accountType domain.AccountType, transactions []domain.LedgerTransaction) decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, txn := range transactions {
		debits = debits.Add(txn.Debit)
		credits = credits.Add(txn.Credit)
	}
	if accountType.IsDebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}

// RunningBalances returns the balance after each transaction, i.e. the
// signed balance of the prefix [0..i] for every i.
func RunningBalances(accountType domain.AccountType, transactions []domain.LedgerTransaction) []decimal.Decimal {
	balances := make([]decimal.Decimal, len(transactions))
	current := decimal.Zero
	for i, txn := range transactions {
		step := txn.Debit.Sub(txn.Credit)
		if !accountType.IsDebitNormal() {
			step = txn.Credit.Sub(txn.Debit)
		}
		current = current.Add(step)
		balances[i] = current
	}
	return balances
}

// SplitColumns distributes a signed balance into the debit/credit columns of
// a trial balance row. A positive balance lands in the account type's normal
// column; a negative balance flips to the opposite column as an absolute
// value.
func SplitColumns(accountType domain.AccountType, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	negative := balance.IsNegative()
	abs := balance.Abs()
	if accountType.IsDebitNormal() != negative {
		return abs, decimal.Zero
	}
	return decimal.Zero, abs
}
