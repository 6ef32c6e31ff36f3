package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/cache"
	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// adminListLimit caps the back-office journal listing.
const adminListLimit = 200

// DashboardStats summarizes the back office landing page counters.
type DashboardStats struct {
	UserCount    int64 `json:"userCount"`
	AccountCount int64 `json:"accountCount"`
}

// AdminService performs operator-initiated balance adjustments and
// transaction cancellation with balance reversal.
type AdminService interface {
	Credit(ctx context.Context, accountID uint, amount decimal.Decimal) (*model.Transaction, error)
	Debit(ctx context.Context, accountID uint, amount decimal.Decimal) (*model.Transaction, error)
	CancelTransaction(ctx context.Context, transactionID uint) (*model.Transaction, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type adminService struct {
	userRepo        repository.UserRepository
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
	tx              repository.TxManager
	cache           *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	transactionRepo repository.TransactionRepository,
	tx repository.TxManager,
	cache *cache.Client,
) AdminService {
	return &adminService{
		userRepo:        userRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		tx:              tx,
		cache:           cache,
	}
}

// Credit adds funds to any account and journals the deposit. No counterpart
// account is involved.
func (s *adminService) Credit(ctx context.Context, accountID uint, amount decimal.Decimal) (*model.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var entry *model.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}

		if err := creditAccount(ctx, repos, account, amount); err != nil {
			return err
		}

		toID := account.ID
		entry = &model.Transaction{
			Type:        model.TransactionTypeDeposit,
			Amount:      amount,
			ToAccountID: &toID,
			Description: "Administrative deposit",
			Status:      model.TransactionStatusCompleted,
		}
		return repos.Transactions.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	invalidateAccounts(ctx, s.cache, entry.ToAccountID)
	return entry, nil
}

// Debit removes funds from any account and journals the withdrawal. The
// non-negativity invariant holds for operators too.
func (s *adminService) Debit(ctx context.Context, accountID uint, amount decimal.Decimal) (*model.Transaction, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	var entry *model.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		account, err := repos.Accounts.FindByIDForUpdate(ctx, accountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}

		if err := debitAccount(ctx, repos, account, amount); err != nil {
			return err
		}

		fromID := account.ID
		entry = &model.Transaction{
			Type:          model.TransactionTypeWithdrawal,
			Amount:        amount,
			FromAccountID: &fromID,
			Description:   "Administrative withdrawal",
			Status:        model.TransactionStatusCompleted,
		}
		return repos.Transactions.Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	invalidateAccounts(ctx, s.cache, entry.FromAccountID)
	return entry, nil
}

// CancelTransaction reverses the balance effect of a completed journal entry,
// marks it cancelled and appends an audit entry whose accounts are the
// original's swapped. Returns the audit entry.
//
// Reversal per type: a transfer puts the amount back on the source and takes
// it off the destination; a deposit takes it off the credited account; a
// withdrawal puts it back on the debited account. Whenever taking funds back
// would make a balance negative the cancellation fails instead — deposited
// money that was since spent cannot be clawed back.
func (s *adminService) CancelTransaction(ctx context.Context, transactionID uint) (*model.Transaction, error) {
	var audit *model.Transaction
	err := s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		entry, err := repos.Transactions.FindByIDForUpdate(ctx, transactionID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrTransactionNotFound
			}
			return err
		}

		switch entry.Status {
		case model.TransactionStatusCancelled:
			return errors.ErrAlreadyCancelled
		case model.TransactionStatusPending:
			return errors.ErrNotCancellable
		}

		switch entry.Type {
		case model.TransactionTypeTransfer:
			source, err := lockAccount(ctx, repos, entry.FromAccountID)
			if err != nil {
				return err
			}
			destination, err := lockAccount(ctx, repos, entry.ToAccountID)
			if err != nil {
				return err
			}
			if err := creditAccount(ctx, repos, source, entry.Amount); err != nil {
				return err
			}
			if err := reverseDebit(ctx, repos, destination, entry.Amount); err != nil {
				return err
			}
		case model.TransactionTypeDeposit:
			destination, err := lockAccount(ctx, repos, entry.ToAccountID)
			if err != nil {
				return err
			}
			if err := reverseDebit(ctx, repos, destination, entry.Amount); err != nil {
				return err
			}
		case model.TransactionTypeWithdrawal:
			source, err := lockAccount(ctx, repos, entry.FromAccountID)
			if err != nil {
				return err
			}
			if err := creditAccount(ctx, repos, source, entry.Amount); err != nil {
				return err
			}
		}

		if err := repos.Transactions.UpdateStatus(ctx, entry.ID, model.TransactionStatusCancelled); err != nil {
			return err
		}

		audit = &model.Transaction{
			Type:          model.TransactionTypeTransfer,
			Amount:        entry.Amount,
			FromAccountID: entry.ToAccountID,
			ToAccountID:   entry.FromAccountID,
			Description:   fmt.Sprintf("Administrative reversal of transaction #%d", entry.ID),
			Status:        model.TransactionStatusCompleted,
		}
		return repos.Transactions.Create(ctx, audit)
	})
	if err != nil {
		return nil, err
	}

	invalidateAccounts(ctx, s.cache, audit.FromAccountID, audit.ToAccountID)
	return audit, nil
}

// ListTransactions returns the newest journal entries for the back office.
func (s *adminService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.ListAll(ctx, adminListLimit, 0)
}

// GetDashboardStats returns the back office landing page counters.
func (s *adminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	userCount, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	accountCount, err := s.accountRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count accounts: %w", err)
	}
	return &DashboardStats{UserCount: userCount, AccountCount: accountCount}, nil
}

// lockAccount loads a journalled account with a row lock. A nil id or a
// missing row means the journal references an account that no longer exists;
// deletion guards should make that impossible.
func lockAccount(ctx context.Context, repos repository.Repos, id *uint) (*model.Account, error) {
	if id == nil {
		return nil, errors.ErrAccountNotFound
	}
	account, err := repos.Accounts.FindByIDForUpdate(ctx, *id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

// reverseDebit takes reversal funds back off an account, failing with the
// reversal-specific error when the balance was since spent down.
func reverseDebit(ctx context.Context, repos repository.Repos, account *model.Account, amount decimal.Decimal) error {
	if err := debitAccount(ctx, repos, account, amount); err != nil {
		if err == errors.ErrInsufficientFunds {
			return errors.ErrInsufficientFundsToReverse
		}
		return err
	}
	return nil
}
