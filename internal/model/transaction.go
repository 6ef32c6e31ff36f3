package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of balance-affecting event.
type TransactionType string

const (
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeDeposit    TransactionType = "deposit"
	TransactionTypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus represents the status of a journal entry.
// Pending exists for schema compatibility; no code path writes it.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
)

// Transaction is a journal entry recording one balance-affecting event.
// Entries are immutable once written except for the completed -> cancelled
// status transition; a cancellation additionally appends a new audit entry.
// FromAccountID is nil for pure deposits, ToAccountID is nil for pure
// withdrawals.
type Transaction struct {
	ID            uint              `json:"id" gorm:"primaryKey"`
	Type          TransactionType   `json:"type" gorm:"type:varchar(20);not null;default:'transfer';index"`
	Amount        decimal.Decimal   `json:"amount" gorm:"type:decimal(15,2);not null"`
	FromAccountID *uint             `json:"from_account" gorm:"column:from_account;index"`
	ToAccountID   *uint             `json:"to_account" gorm:"column:to_account;index"`
	Description   string            `json:"description" gorm:"type:text"`
	Status        TransactionStatus `json:"status" gorm:"type:varchar(20);not null;default:'completed';index"`
	CreatedAt     time.Time         `json:"created_at"`

	// Relations
	FromAccount *Account `json:"-" gorm:"foreignKey:FromAccountID"`
	ToAccount   *Account `json:"-" gorm:"foreignKey:ToAccountID"`
}
