package dto

import (
	"time"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils"
	"github.com/shopspring/decimal"
)

// LedgerTransactionResponse is one row of an account's ledger view, carrying
// the balance after that row.
type LedgerTransactionResponse struct {
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	JournalID      string          `json:"journalID"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerAccountResponse is the full ledger view for one account.
type LedgerAccountResponse struct {
	Name             string                      `json:"name"`
	AccountType      domain.AccountType          `json:"accountType"`
	Balance          decimal.Decimal             `json:"balance"`
	FormattedBalance string                      `json:"formattedBalance"`
	Transactions     []LedgerTransactionResponse `json:"transactions"`
}

// ToLedgerAccountResponse flattens a ledger account and its per-row running
// balances into the response shape. Amounts are formatted in the configured
// display currency.
func ToLedgerAccountResponse(account *domain.LedgerAccount, running []decimal.Decimal, currencyCode string) LedgerAccountResponse {
	txns := make([]LedgerTransactionResponse, len(account.Transactions))
	for i, txn := range account.Transactions {
		txns[i] = LedgerTransactionResponse{
			Date:           txn.Date,
			Description:    txn.Description,
			Debit:          txn.Debit,
			Credit:         txn.Credit,
			JournalID:      txn.JournalID,
			RunningBalance: running[i],
		}
	}
	balance := account.Balance()
	return LedgerAccountResponse{
		Name:             account.Name,
		AccountType:      account.AccountType,
		Balance:          balance,
		FormattedBalance: utils.FormatAmount(balance, currencyCode),
		Transactions:     txns,
	}
}
