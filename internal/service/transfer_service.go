package service

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// TransferService moves funds between two accounts identified by account
// number, as one atomic unit.
type TransferService interface {
	Transfer(ctx context.Context, userID uint, fromNumber, toNumber string, amount decimal.Decimal, description string) (*model.Transaction, error)
}

type transferService struct {
	tx    repository.TxManager
	cache *cache.Client
}

// NewTransferService creates a new transfer service.
func NewTransferService(tx repository.TxManager, cache *cache.Client) TransferService {
	return &transferService{
		tx:    tx,
		cache: cache,
	}
}

// Transfer debits the caller's source account, credits the destination and
// appends the journal entry, all inside one database transaction. The source
// must belong to the caller; the destination is resolved by number alone so
// third-party accounts can receive funds. Both rows are re-read under lock
// inside the transaction: a concurrent transfer draining the same source
// blocks on the row lock and then sees the reduced balance.
func (s *transferService) Transfer(ctx context.Context, userID uint, fromNumber, toNumber string, amount decimal.Decimal, description string) (*model.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	if fromNumber == toNumber {
		return nil, errors.ErrSelfTransfer
	}

	var entry *model.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		source, err := repos.Accounts.FindByNumberAndUserForUpdate(ctx, fromNumber, userID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrSourceAccountNotFound
			}
			return err
		}

		if source.Balance.LessThan(amount) {
			return errors.ErrInsufficientFunds
		}

		// Locks are taken source first so the ownership and funds errors
		// keep their precedence. Two opposite transfers over the same pair
		// can deadlock here; InnoDB aborts one and the caller retries.
		destination, err := repos.Accounts.FindByNumberForUpdate(ctx, toNumber)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrDestinationAccountNotFound
			}
			return err
		}

		if err := debitAccount(ctx, repos, source, amount); err != nil {
			return err
		}
		if err := creditAccount(ctx, repos, destination, amount); err != nil {
			return err
		}

		fromID, toID := source.ID, destination.ID
		entry = &model.Transaction{
			Type:          model.TransactionTypeTransfer,
			Amount:        amount,
			FromAccountID: &fromID,
			ToAccountID:   &toID,
			Description:   description,
			Status:        model.TransactionStatusCompleted,
		}
		return repos.Transactions.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	invalidateAccounts(ctx, s.cache, entry.FromAccountID, entry.ToAccountID)
	return entry, nil
}
