package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTransaction is the flattened, per-account view of one journal line
// plus its parent entry's metadata. It is immutable once created and is
// removed only by reversing its originating entry.
type LedgerTransaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	JournalID   string          `json:"journalID"`
}

// LedgerAccount is the materialized per-account ledger. It is always a
// projection of registered accounts plus posted journal entries and is never
// persisted directly. Transactions are kept sorted ascending by date.
type LedgerAccount struct {
	Name         string              `json:"name"`
	AccountType  AccountType         `json:"accountType"`
	Transactions []LedgerTransaction `json:"transactions"`
}

// Balance computes the signed balance over all transactions using the
// account type's normal side. It is recomputed on demand rather than cached
// so the stored and derived state cannot drift.
func (a *LedgerAccount) Balance() decimal.Decimal {
	return a.BalanceThrough(len(a.Transactions))
}

// BalanceThrough computes the signed balance over the transaction prefix
// [0..n). A running balance display is BalanceThrough(i+1) for each row i.
func (a *LedgerAccount) BalanceThrough(n int) decimal.Decimal {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, txn := range a.Transactions[:n] {
		debits = debits.Add(txn.Debit)
		credits = credits.Add(txn.Credit)
	}
	if a.AccountType.IsDebitNormal() {
		return debits.Sub(credits)
	}
	return credits.Sub(debits)
}
