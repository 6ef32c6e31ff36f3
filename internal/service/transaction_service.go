package service

import (
	"context"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// userListLimit caps the customer-facing transaction history.
const userListLimit = 50

// TransactionService exposes read access to the journal.
type TransactionService interface {
	ListUserTransactions(ctx context.Context, userID uint) ([]model.Transaction, error)
}

type transactionService struct {
	accountRepo     repository.AccountRepository
	transactionRepo repository.TransactionRepository
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(accountRepo repository.AccountRepository, transactionRepo repository.TransactionRepository) TransactionService {
	return &transactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// ListUserTransactions returns entries touching any of the caller's accounts,
// newest first.
func (s *transactionService) ListUserTransactions(ctx context.Context, userID uint) ([]model.Transaction, error) {
	accounts, err := s.accountRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(accounts) == 0 {
		return []model.Transaction{}, nil
	}

	accountIDs := make([]uint, 0, len(accounts))
	for _, account := range accounts {
		accountIDs = append(accountIDs, account.ID)
	}

	return s.transactionRepo.ListForAccounts(ctx, accountIDs, userListLimit, 0)
}
