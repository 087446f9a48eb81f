package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

func day(d int) time.Time {
	return time.Date(2025, time.May, d, 0, 0, 0, 0, time.UTC)
}

func seedAccounts(t *testing.T, repo *memAccountRepo, accounts ...domain.Account) {
	t.Helper()
	for _, account := range accounts {
		require.NoError(t, repo.SaveAccount(context.Background(), testUser, account))
	}
}

func TestLedgerService_ReplaySortsByDate(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo,
		domain.Account{Name: "Cash", AccountType: domain.Asset},
		domain.Account{Name: "Sales Revenue", AccountType: domain.Revenue},
	)

	// Stored out of order; the replay must end up ascending by date.
	entries := []domain.JournalEntry{
		{ID: "j3", Date: day(20), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("30")},
			{AccountName: "Sales Revenue", Credit: dec("30")},
		}},
		{ID: "j1", Date: day(5), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("10")},
			{AccountName: "Sales Revenue", Credit: dec("10")},
		}},
		{ID: "j2", Date: day(12), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("20")},
			{AccountName: "Sales Revenue", Credit: dec("20")},
		}},
	}
	for _, entry := range entries {
		require.NoError(t, journalRepo.SaveEntry(ctx, testUser, entry))
	}

	svc := services.NewLedgerService(accountRepo, journalRepo)
	account, running, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)

	require.Len(t, account.Transactions, 3)
	assert.Equal(t, "j1", account.Transactions[0].JournalID)
	assert.Equal(t, "j2", account.Transactions[1].JournalID)
	assert.Equal(t, "j3", account.Transactions[2].JournalID)

	require.Len(t, running, 3)
	assert.True(t, running[0].Equal(dec("10")))
	assert.True(t, running[1].Equal(dec("30")))
	assert.True(t, running[2].Equal(dec("60")))
}

func TestLedgerService_PostThenReverseRoundTrip(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo,
		domain.Account{Name: "Cash", AccountType: domain.Asset},
		domain.Account{Name: "Rent Expense", AccountType: domain.Expense},
	)
	require.NoError(t, journalRepo.SaveEntry(ctx, testUser, domain.JournalEntry{
		ID: "base", Date: day(1), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("1000")},
			{AccountName: "Rent Expense", Credit: dec("1000")},
		},
	}))

	svc := services.NewLedgerService(accountRepo, journalRepo)

	before, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)

	entry := domain.JournalEntry{
		ID: "j-roundtrip", Date: day(2), Lines: []domain.JournalLine{
			{AccountName: "Rent Expense", Debit: dec("250")},
			{AccountName: "Cash", Credit: dec("250")},
		},
	}
	require.NoError(t, svc.PostEntry(ctx, testUser, entry))
	require.NoError(t, svc.ReverseEntry(ctx, testUser, entry.ID))

	after, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	assert.Equal(t, before.Transactions, after.Transactions)

	rent, _, err := svc.AccountLedger(ctx, testUser, "Rent Expense")
	require.NoError(t, err)
	for _, txn := range rent.Transactions {
		assert.NotEqual(t, "j-roundtrip", txn.JournalID)
	}
}

func TestLedgerService_ReverseUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo, domain.Account{Name: "Cash", AccountType: domain.Asset})

	svc := services.NewLedgerService(accountRepo, journalRepo)
	require.NoError(t, svc.PostEntry(ctx, testUser, domain.JournalEntry{
		ID: "j1", Date: day(1), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("5")},
			{AccountName: "Cash", Credit: dec("5")},
		},
	}))

	require.NoError(t, svc.ReverseEntry(ctx, testUser, "never-posted"))

	account, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	assert.Len(t, account.Transactions, 2)
}

func TestLedgerService_UnknownAccountLinesAreDropped(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo, domain.Account{Name: "Cash", AccountType: domain.Asset})

	svc := services.NewLedgerService(accountRepo, journalRepo)
	require.NoError(t, svc.PostEntry(ctx, testUser, domain.JournalEntry{
		ID: "j1", Date: day(1), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("40")},
			{AccountName: "Ghost", Credit: dec("40")},
		},
	}))

	account, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	assert.Len(t, account.Transactions, 1)

	_, _, err = svc.AccountLedger(ctx, testUser, "Ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestLedgerService_ApplyEditLeavesNoDuplicates(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo,
		domain.Account{Name: "Cash", AccountType: domain.Asset},
		domain.Account{Name: "Sales Revenue", AccountType: domain.Revenue},
	)

	svc := services.NewLedgerService(accountRepo, journalRepo)
	oldEntry := domain.JournalEntry{
		ID: "j1", Date: day(10), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("500")},
			{AccountName: "Sales Revenue", Credit: dec("500")},
		},
	}
	require.NoError(t, svc.PostEntry(ctx, testUser, oldEntry))

	newEntry := domain.JournalEntry{
		ID: "j1", Date: day(3), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("300")},
			{AccountName: "Sales Revenue", Credit: dec("300")},
		},
	}
	require.NoError(t, svc.ApplyEdit(ctx, testUser, oldEntry, newEntry))

	cash, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	require.Len(t, cash.Transactions, 1)
	assert.True(t, cash.Transactions[0].Debit.Equal(dec("300")))
	assert.True(t, cash.Balance().Equal(dec("300")))

	sales, _, err := svc.AccountLedger(ctx, testUser, "Sales Revenue")
	require.NoError(t, err)
	require.Len(t, sales.Transactions, 1)
	assert.True(t, sales.Balance().Equal(dec("300")))
}

func TestLedgerService_EditReordersByDate(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo,
		domain.Account{Name: "Cash", AccountType: domain.Asset},
		domain.Account{Name: "Sales Revenue", AccountType: domain.Revenue},
	)

	svc := services.NewLedgerService(accountRepo, journalRepo)
	first := domain.JournalEntry{
		ID: "j1", Date: day(5), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("10")},
			{AccountName: "Sales Revenue", Credit: dec("10")},
		},
	}
	second := domain.JournalEntry{
		ID: "j2", Date: day(10), Lines: []domain.JournalLine{
			{AccountName: "Cash", Debit: dec("20")},
			{AccountName: "Sales Revenue", Credit: dec("20")},
		},
	}
	require.NoError(t, svc.PostEntry(ctx, testUser, first))
	require.NoError(t, svc.PostEntry(ctx, testUser, second))

	// Move j2 before j1; the ledger must re-sort to ascending date order.
	moved := second
	moved.Date = day(1)
	require.NoError(t, svc.ApplyEdit(ctx, testUser, second, moved))

	cash, _, err := svc.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	require.Len(t, cash.Transactions, 2)
	assert.Equal(t, "j2", cash.Transactions[0].JournalID)
	assert.Equal(t, "j1", cash.Transactions[1].JournalID)
}

func TestLedgerService_SnapshotKeepsRegistryOrder(t *testing.T) {
	ctx := context.Background()
	accountRepo := newMemAccountRepo()
	journalRepo := newMemJournalRepo()
	seedAccounts(t, accountRepo,
		domain.Account{Name: "Sales Revenue", AccountType: domain.Revenue},
		domain.Account{Name: "Cash", AccountType: domain.Asset},
		domain.Account{Name: "Rent Expense", AccountType: domain.Expense},
	)

	svc := services.NewLedgerService(accountRepo, journalRepo)
	snapshot, err := svc.Snapshot(ctx, testUser)
	require.NoError(t, err)

	names := make([]string, len(snapshot))
	for i, account := range snapshot {
		names[i] = account.Name
	}
	assert.Equal(t, []string{"Sales Revenue", "Cash", "Rent Expense"}, names)
}
