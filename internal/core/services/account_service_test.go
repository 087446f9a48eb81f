package services_test

import (
	"context"
	"testing"

	"github.com/finbooks/bookkeeping_app/internal/apperrors"
	"github.com/finbooks/bookkeeping_app/internal/core/domain"
	"github.com/finbooks/bookkeeping_app/internal/core/services"
	"github.com/finbooks/bookkeeping_app/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountService_CreateIsIdempotentForSameType(t *testing.T) {
	ctx := context.Background()
	container, accountRepo, _ := newTestContainer()

	first, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)

	second, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)
	assert.Equal(t, first.Name, second.Name)
	assert.Equal(t, first.AccountType, second.AccountType)

	accounts, err := accountRepo.ListAccounts(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAccountService_TypeIsImmutable(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	_, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)

	_, err = container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Expense,
	})
	assert.ErrorIs(t, err, services.ErrAccountTypeImmutable)
}

func TestAccountService_CreateValidatesInput(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	_, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "", AccountType: domain.Asset,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.AccountType("PROFIT"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAccountService_CreateRegistersLedgerAccount(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	_, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)

	account, running, err := container.Ledger.AccountLedger(ctx, testUser, "Cash")
	require.NoError(t, err)
	assert.Equal(t, domain.Asset, account.AccountType)
	assert.Empty(t, account.Transactions)
	assert.Empty(t, running)
}

func TestAccountService_DeleteRemovesLedgerAccount(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	_, err := container.Account.CreateAccount(ctx, testUser, dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)

	require.NoError(t, container.Account.DeleteAccount(ctx, testUser, "Cash"))

	_, err = container.Account.GetAccountByName(ctx, testUser, "Cash")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, _, err = container.Ledger.AccountLedger(ctx, testUser, "Cash")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountService_DeleteUnknownAccount(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	err := container.Account.DeleteAccount(ctx, testUser, "Never Created")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAccountService_UsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	container, _, _ := newTestContainer()

	_, err := container.Account.CreateAccount(ctx, "alice", dto.CreateAccountRequest{
		Name: "Cash", AccountType: domain.Asset,
	})
	require.NoError(t, err)

	accounts, err := container.Account.ListAccounts(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
