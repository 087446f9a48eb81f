package accounting_test

import (
	"testing"

	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSignedBalance_SignConvention(t *testing.T) {
	// Same transactions, opposite signs depending on the account type's
	// normal side.
	txns := []domain.LedgerTransaction{
		{Debit: dec("100"), JournalID: "j1"},
		{Credit: dec("30"), JournalID: "j2"},
	}

	tests := []struct {
		accountType domain.AccountType
		want        string
	}{
		{domain.Asset, "70"},
		{domain.Expense, "70"},
		{domain.Liability, "-70"},
		{domain.Equity, "-70"},
		{domain.Revenue, "-70"},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			got := accounting.SignedBalance(tt.accountType, txns)
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestSignedBalance_EmptyIsZero(t *testing.T) {
	got := accounting.SignedBalance(domain.Asset, nil)
	assert.True(t, got.IsZero())
}

func TestRunningBalances(t *testing.T) {
	txns := []domain.LedgerTransaction{
		{Debit: dec("500")},
		{Credit: dec("200")},
		{Debit: dec("50"), Credit: dec("25")},
	}

	got := accounting.RunningBalances(domain.Asset, txns)
	assert.Len(t, got, 3)
	assert.True(t, got[0].Equal(dec("500")))
	assert.True(t, got[1].Equal(dec("300")))
	assert.True(t, got[2].Equal(dec("325")))

	// Final running balance always matches the full-list balance.
	assert.True(t, got[2].Equal(accounting.SignedBalance(domain.Asset, txns)))

	// Credit-normal view of the same rows.
	gotRev := accounting.RunningBalances(domain.Revenue, txns)
	assert.True(t, gotRev[2].Equal(dec("-325")))
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		name        string
		accountType domain.AccountType
		balance     string
		wantDebit   string
		wantCredit  string
	}{
		{"positive asset stays in debit column", domain.Asset, "500", "500", "0"},
		{"negative asset flips to credit column", domain.Asset, "-120", "0", "120"},
		{"positive revenue stays in credit column", domain.Revenue, "300", "0", "300"},
		{"negative revenue flips to debit column", domain.Revenue, "-45", "45", "0"},
		{"positive liability stays in credit column", domain.Liability, "80", "0", "80"},
		{"negative expense flips to credit column", domain.Expense, "-10", "0", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit := accounting.SplitColumns(tt.accountType, dec(tt.balance))
			assert.True(t, debit.Equal(dec(tt.wantDebit)), "debit got %s want %s", debit, tt.wantDebit)
			assert.True(t, credit.Equal(dec(tt.wantCredit)), "credit got %s want %s", credit, tt.wantCredit)
		})
	}
}
