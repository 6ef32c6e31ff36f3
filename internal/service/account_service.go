package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

const accountCacheTTL = 5 * time.Minute

// AccountService owns account lifecycle: creation, lookup with ownership
// checks, and the two deletion paths with their distinct preconditions.
type AccountService interface {
	CreateAccount(ctx context.Context, userID uint, accountType model.AccountType) (*model.Account, error)
	ListAccounts(ctx context.Context, userID uint) ([]model.Account, error)
	GetAccount(ctx context.Context, userID, accountID uint) (*model.Account, error)
	DeleteAccount(ctx context.Context, userID, accountID uint) error
	AdminGetAccount(ctx context.Context, accountID uint) (*model.Account, error)
	AdminListAccounts(ctx context.Context) ([]model.Account, error)
	AdminDeleteAccount(ctx context.Context, accountID uint) error
}

type accountService struct {
	accountRepo repository.AccountRepository
	tx          repository.TxManager
	cache       *cache.Client
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo repository.AccountRepository, tx repository.TxManager, cache *cache.Client) AccountService {
	return &accountService{
		accountRepo: accountRepo,
		tx:          tx,
		cache:       cache,
	}
}

// CreateAccount opens a new account with a zero balance and a freshly
// generated account number.
func (s *accountService) CreateAccount(ctx context.Context, userID uint, accountType model.AccountType) (*model.Account, error) {
	if !accountType.Valid() {
		return nil, errors.ErrInvalidAccountType
	}

	account := &model.Account{
		UserID:        userID,
		AccountNumber: generateAccountNumber(),
		Type:          accountType,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	return account, nil
}

// ListAccounts returns the caller's accounts, newest first.
func (s *accountService) ListAccounts(ctx context.Context, userID uint) ([]model.Account, error) {
	return s.accountRepo.FindByUser(ctx, userID)
}

// GetAccount retrieves one of the caller's accounts with caching. A foreign
// account is reported as not found, never as forbidden.
func (s *accountService) GetAccount(ctx context.Context, userID, accountID uint) (*model.Account, error) {
	if data, _ := s.cache.Get(ctx, accountCacheKey(accountID)); data != nil {
		var cached model.Account
		if err := json.Unmarshal(data, &cached); err == nil {
			if cached.UserID != userID {
				return nil, errors.ErrAccountNotFound
			}
			return &cached, nil
		}
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, errors.ErrAccountNotFound
	}

	if payload, err := json.Marshal(account); err == nil {
		_ = s.cache.Set(ctx, accountCacheKey(accountID), payload, accountCacheTTL)
	}
	return account, nil
}

// DeleteAccount is the self-service path: the account must belong to the
// caller and its balance must be exactly zero.
func (s *accountService) DeleteAccount(ctx context.Context, userID, accountID uint) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if account.UserID != userID {
			return errors.ErrAccountNotFound
		}
		if !account.Balance.IsZero() {
			return errors.ErrNonZeroBalance
		}
		return repos.Accounts.Delete(ctx, account.ID)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountCacheKey(accountID))
	return nil
}

// AdminGetAccount retrieves any account, for back-office use.
func (s *accountService) AdminGetAccount(ctx context.Context, accountID uint) (*model.Account, error) {
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// AdminListAccounts returns every account.
func (s *accountService) AdminListAccounts(ctx context.Context) ([]model.Account, error) {
	return s.accountRepo.List(ctx)
}

// AdminDeleteAccount is the back-office path: deletion is refused while any
// journal entry references the account, whatever the balance.
func (s *accountService) AdminDeleteAccount(ctx context.Context, accountID uint) error {
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		count, err := repos.Transactions.CountForAccount(ctx, account.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.ErrHasTransactions
		}
		return repos.Accounts.Delete(ctx, account.ID)
	})
	if err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, accountCacheKey(accountID))
	return nil
}
