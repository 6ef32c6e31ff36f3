package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the kind of bank account.
type AccountType string

const (
	AccountTypeCourant    AccountType = "courant"
	AccountTypeEpargne    AccountType = "epargne"
	AccountTypeEntreprise AccountType = "entreprise"
)

// Valid reports whether the account type is one of the known types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeCourant, AccountTypeEpargne, AccountTypeEntreprise:
		return true
	}
	return false
}

// Account is a monetary container owned by one user. Its balance is never
// negative after a committed operation and is only mutated through the
// ledger debit/credit primitives inside a database transaction.
type Account struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	UserID        uint            `json:"user_id" gorm:"not null;index"`
	AccountNumber string          `json:"account_number" gorm:"uniqueIndex;size:34;not null"`
	Balance       decimal.Decimal `json:"balance" gorm:"type:decimal(15,2);not null;default:0"`
	Type          AccountType     `json:"type" gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time       `json:"created_at"`

	// Relations
	User  User   `json:"-" gorm:"foreignKey:UserID"`
	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:AccountID"`
}
