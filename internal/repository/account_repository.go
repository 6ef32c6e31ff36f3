package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

// AccountRepository defines account persistence operations. The ForUpdate
// variants take a row-level lock and are only meaningful inside a TxManager
// unit.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Account, error)
	FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error)
	FindByNumberAndUserForUpdate(ctx context.Context, number string, userID uint) (*model.Account, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdateBalance(ctx context.Context, id uint, newBalance decimal.Decimal) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create creates a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByIDForUpdate finds an account by ID with a row-level lock.
func (r *accountRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByNumberForUpdate finds an account by account number with a row-level lock.
func (r *accountRepository) FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_number = ?", number).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByNumberAndUserForUpdate finds an account by account number and owner
// with a row-level lock. Used to resolve transfer sources with the ownership
// check folded into the lookup.
func (r *accountRepository) FindByNumberAndUserForUpdate(ctx context.Context, number string, userID uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("account_number = ? AND user_id = ?", number, userID).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// FindByUser lists a user's accounts, newest first.
func (r *accountRepository) FindByUser(ctx context.Context, userID uint) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// List returns all accounts.
func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// UpdateBalance updates the balance of an account.
func (r *accountRepository) UpdateBalance(ctx context.Context, id uint, newBalance decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("balance", newBalance).Error
}

// Delete removes an account row.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Account{}, id).Error
}

// Count returns the total number of accounts.
func (r *accountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
