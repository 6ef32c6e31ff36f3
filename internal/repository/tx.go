package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repositories participating in one atomic unit. Every
// balance mutation and its journal append must go through the same Repos
// instance handed to the transaction callback.
type Repos struct {
	Users        UserRepository
	Accounts     AccountRepository
	Cards        CardRepository
	Transactions TransactionRepository
}

// TxManager runs a function inside one database transaction. If the function
// returns an error the whole unit is rolled back; otherwise it is committed.
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error
}

type txManager struct {
	db *gorm.DB
}

// NewTxManager creates a transaction manager over the given database handle.
func NewTxManager(db *gorm.DB) TxManager {
	return &txManager{db: db}
}

// WithTransaction executes fn with transaction-scoped repositories.
func (m *txManager) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos Repos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := Repos{
			Users:        NewUserRepository(tx),
			Accounts:     NewAccountRepository(tx),
			Cards:        NewCardRepository(tx),
			Transactions: NewTransactionRepository(tx),
		}
		return fn(ctx, repos)
	})
}
