package service

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/shopspring/decimal"

	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// The debit/credit helpers below are the only sanctioned balance mutations.
// They expect an account row that was locked (FOR UPDATE) inside the same
// transaction whose repos they receive, so the balance they see cannot be a
// stale snapshot.

// validateAmount rejects amounts that are not positive values with at most
// two decimal places. Checked before any storage access.
func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(2)) {
		return errors.ErrInvalidAmount
	}
	return nil
}

// debitAccount decreases a locked account's balance, refusing any debit that
// would make it negative. The account's in-memory balance is kept in sync.
func debitAccount(ctx context.Context, repos repository.Repos, account *model.Account, amount decimal.Decimal) error {
	newBalance := account.Balance.Sub(amount)
	if newBalance.IsNegative() {
		return errors.ErrInsufficientFunds
	}
	if err := repos.Accounts.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return err
	}
	account.Balance = newBalance
	return nil
}

// creditAccount increases a locked account's balance. No upper bound.
func creditAccount(ctx context.Context, repos repository.Repos, account *model.Account, amount decimal.Decimal) error {
	newBalance := account.Balance.Add(amount)
	if err := repos.Accounts.UpdateBalance(ctx, account.ID, newBalance); err != nil {
		return err
	}
	account.Balance = newBalance
	return nil
}

// generateAccountNumber produces an IBAN-shaped number: country prefix plus
// 16 random digits. Uniqueness is best-effort; the unique index catches the
// negligible collision case.
func generateAccountNumber() string {
	digits := make([]byte, 16)
	for i := range digits {
		digits[i] = byte('0' + rand.IntN(10))
	}
	return "FR" + string(digits)
}

func accountCacheKey(id uint) string {
	return fmt.Sprintf("account:%d", id)
}

// invalidateAccounts drops cached copies of the given accounts after a
// balance mutation committed.
func invalidateAccounts(ctx context.Context, c *cache.Client, ids ...*uint) {
	for _, id := range ids {
		if id != nil {
			_ = c.Delete(ctx, accountCacheKey(*id))
		}
	}
}
