package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

// TransactionRepository defines journal persistence operations. Entries are
// append-once; the only permitted mutation is the status flip handled by
// UpdateStatus.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *model.Transaction) error
	FindByID(ctx context.Context, id uint) (*model.Transaction, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Transaction, error)
	ListForAccounts(ctx context.Context, accountIDs []uint, limit, offset int) ([]model.Transaction, error)
	ListAll(ctx context.Context, limit, offset int) ([]model.Transaction, error)
	CountForAccount(ctx context.Context, accountID uint) (int64, error)
	UpdateStatus(ctx context.Context, id uint, status model.TransactionStatus) error
}

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a journal entry.
func (r *transactionRepository) Create(ctx context.Context, transaction *model.Transaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

// FindByID finds a journal entry by ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// FindByIDForUpdate finds a journal entry by ID with a row-level lock.
func (r *transactionRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

// ListForAccounts returns entries touching any of the given accounts as
// source or destination, newest first.
func (r *transactionRepository) ListForAccounts(ctx context.Context, accountIDs []uint, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if len(accountIDs) == 0 {
		return transactions, nil
	}
	if err := r.db.WithContext(ctx).
		Where("from_account IN ? OR to_account IN ?", accountIDs, accountIDs).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// ListAll returns all entries, newest first.
func (r *transactionRepository) ListAll(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// CountForAccount counts entries referencing the account as source or destination.
func (r *transactionRepository) CountForAccount(ctx context.Context, accountID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("from_account = ? OR to_account = ?", accountID, accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateStatus updates the status of a journal entry.
func (r *transactionRepository) UpdateStatus(ctx context.Context, id uint, status model.TransactionStatus) error {
	return r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Update("status", status).Error
}
