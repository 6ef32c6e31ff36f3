package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

func newAdminService(store *memStore) AdminService {
	return NewAdminService(store.userRepo(), store.accountRepo(), store.transactionRepo(), store, nil)
}

func TestAdminCredit(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(10))

	svc := newAdminService(store)
	entry, err := svc.Credit(context.Background(), account.ID, decimal.NewFromFloat(25.50))
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeDeposit, entry.Type)
	assert.Equal(t, model.TransactionStatusCompleted, entry.Status)
	assert.Equal(t, "Administrative deposit", entry.Description)
	assert.Nil(t, entry.FromAccountID)
	require.NotNil(t, entry.ToAccountID)
	assert.Equal(t, account.ID, *entry.ToAccountID)

	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromFloat(35.50)))
}

func TestAdminCredit_AccountNotFound(t *testing.T) {
	store := newMemStore()
	svc := newAdminService(store)

	_, err := svc.Credit(context.Background(), 42, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, errors.ErrAccountNotFound)
}

func TestAdminDebit(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(100))

	svc := newAdminService(store)
	entry, err := svc.Debit(context.Background(), account.ID, decimal.NewFromInt(30))
	require.NoError(t, err)

	assert.Equal(t, model.TransactionTypeWithdrawal, entry.Type)
	assert.Equal(t, "Administrative withdrawal", entry.Description)
	require.NotNil(t, entry.FromAccountID)
	assert.Equal(t, account.ID, *entry.FromAccountID)
	assert.Nil(t, entry.ToAccountID)

	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(70)))
}

func TestAdminDebit_CannotGoNegative(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(20))

	svc := newAdminService(store)
	_, err := svc.Debit(context.Background(), account.ID, decimal.NewFromFloat(20.01))
	assert.ErrorIs(t, err, errors.ErrInsufficientFunds)

	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 0, store.transactionCount())
}

func TestAdminDebit_InvalidAmount(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(20))

	svc := newAdminService(store)
	_, err := svc.Debit(context.Background(), account.ID, decimal.NewFromFloat(1.999))
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
}

func TestCancelTransaction_Transfer(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	bob := store.addUser("bob@example.com", model.RoleClient)
	source := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(100))
	destination := store.addAccount(bob.ID, "FR0000000000000002", decimal.NewFromInt(40))

	transfers := NewTransferService(store, nil)
	entry, err := transfers.Transfer(context.Background(), alice.ID, source.AccountNumber, destination.AccountNumber, decimal.NewFromInt(60), "")
	require.NoError(t, err)
	require.True(t, store.balance(source.ID).Equal(decimal.NewFromInt(40)))
	require.True(t, store.balance(destination.ID).Equal(decimal.NewFromInt(100)))

	svc := newAdminService(store)
	audit, err := svc.CancelTransaction(context.Background(), entry.ID)
	require.NoError(t, err)

	// Balances are back to where they started.
	assert.True(t, store.balance(source.ID).Equal(decimal.NewFromInt(100)))
	assert.True(t, store.balance(destination.ID).Equal(decimal.NewFromInt(40)))

	// Original entry is kept, flipped to cancelled.
	original := store.transaction(entry.ID)
	assert.Equal(t, model.TransactionStatusCancelled, original.Status)

	// The audit entry records the opposite movement.
	assert.Equal(t, model.TransactionTypeTransfer, audit.Type)
	assert.Equal(t, model.TransactionStatusCompleted, audit.Status)
	require.NotNil(t, audit.FromAccountID)
	require.NotNil(t, audit.ToAccountID)
	assert.Equal(t, destination.ID, *audit.FromAccountID)
	assert.Equal(t, source.ID, *audit.ToAccountID)
	assert.True(t, audit.Amount.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, fmt.Sprintf("Administrative reversal of transaction #%d", entry.ID), audit.Description)
}

func TestCancelTransaction_Deposit(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.Zero)

	svc := newAdminService(store)
	entry, err := svc.Credit(context.Background(), account.ID, decimal.NewFromInt(50))
	require.NoError(t, err)

	_, err = svc.CancelTransaction(context.Background(), entry.ID)
	require.NoError(t, err)

	assert.True(t, store.balance(account.ID).IsZero())
	assert.Equal(t, model.TransactionStatusCancelled, store.transaction(entry.ID).Status)
}

func TestCancelTransaction_DepositAlreadySpent(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.Zero)

	svc := newAdminService(store)
	deposit, err := svc.Credit(context.Background(), account.ID, decimal.NewFromInt(50))
	require.NoError(t, err)

	// Part of the deposit is gone; clawing back the full amount would push
	// the balance negative.
	_, err = svc.Debit(context.Background(), account.ID, decimal.NewFromInt(30))
	require.NoError(t, err)

	_, err = svc.CancelTransaction(context.Background(), deposit.ID)
	assert.ErrorIs(t, err, errors.ErrInsufficientFundsToReverse)

	// The failed cancellation left everything untouched.
	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(20)))
	assert.Equal(t, model.TransactionStatusCompleted, store.transaction(deposit.ID).Status)
	assert.Equal(t, 2, store.transactionCount())
}

func TestCancelTransaction_Withdrawal(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(100))

	svc := newAdminService(store)
	entry, err := svc.Debit(context.Background(), account.ID, decimal.NewFromInt(30))
	require.NoError(t, err)
	require.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(70)))

	audit, err := svc.CancelTransaction(context.Background(), entry.ID)
	require.NoError(t, err)

	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(100)))
	require.NotNil(t, audit.ToAccountID)
	assert.Equal(t, account.ID, *audit.ToAccountID)
	assert.Nil(t, audit.FromAccountID)
}

func TestCancelTransaction_AlreadyCancelled(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.NewFromInt(100))

	svc := newAdminService(store)
	entry, err := svc.Debit(context.Background(), account.ID, decimal.NewFromInt(30))
	require.NoError(t, err)

	_, err = svc.CancelTransaction(context.Background(), entry.ID)
	require.NoError(t, err)

	_, err = svc.CancelTransaction(context.Background(), entry.ID)
	assert.ErrorIs(t, err, errors.ErrAlreadyCancelled)

	// The second attempt must not credit the account again.
	assert.True(t, store.balance(account.ID).Equal(decimal.NewFromInt(100)))
}

func TestCancelTransaction_NotFound(t *testing.T) {
	store := newMemStore()
	svc := newAdminService(store)

	_, err := svc.CancelTransaction(context.Background(), 42)
	assert.ErrorIs(t, err, errors.ErrTransactionNotFound)
}

func TestGetDashboardStats(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	store.addUser("bob@example.com", model.RoleClient)
	store.addAccount(alice.ID, "FR0000000000000001", decimal.Zero)
	store.addAccount(alice.ID, "FR0000000000000002", decimal.Zero)
	store.addAccount(alice.ID, "FR0000000000000003", decimal.Zero)

	svc := newAdminService(store)
	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.UserCount)
	assert.Equal(t, int64(3), stats.AccountCount)
}

func TestAdminListTransactions(t *testing.T) {
	store := newMemStore()
	alice := store.addUser("alice@example.com", model.RoleClient)
	account := store.addAccount(alice.ID, "FR0000000000000001", decimal.Zero)

	svc := newAdminService(store)
	for i := 0; i < 3; i++ {
		_, err := svc.Credit(context.Background(), account.ID, decimal.NewFromInt(1))
		require.NoError(t, err)
	}

	transactions, err := svc.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	// Newest first.
	assert.Greater(t, transactions[0].ID, transactions[1].ID)
	assert.Greater(t, transactions[1].ID, transactions[2].ID)
}
