package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CardType represents the card brand.
type CardType string

const (
	CardTypeVisa       CardType = "visa"
	CardTypeMastercard CardType = "mastercard"
	CardTypeAmex       CardType = "amex"
)

// Valid reports whether the card type is a supported brand.
func (t CardType) Valid() bool {
	switch t {
	case CardTypeVisa, CardTypeMastercard, CardTypeAmex:
		return true
	}
	return false
}

// CardStatus represents the lifecycle state of a card.
// Blocked is terminal: there is no transition out of it.
type CardStatus string

const (
	CardStatusInactive CardStatus = "inactive"
	CardStatusActive   CardStatus = "active"
	CardStatusBlocked  CardStatus = "blocked"
)

// Valid reports whether the status is one of the known states.
func (s CardStatus) Valid() bool {
	switch s {
	case CardStatusInactive, CardStatusActive, CardStatusBlocked:
		return true
	}
	return false
}

// Card is a spending instrument bound to exactly one account and its owner.
// The PIN is stored only as a bcrypt hash and never serialized.
type Card struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"not null;index"`
	AccountID      uint            `json:"account_id" gorm:"not null;index"`
	CardNumber     string          `json:"card_number" gorm:"uniqueIndex;size:19;not null"`
	ExpirationDate time.Time       `json:"expiration_date" gorm:"not null"`
	CVV            string          `json:"cvv" gorm:"size:3;not null"`
	PINHash        string          `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CardType       CardType        `json:"card_type" gorm:"type:varchar(20);not null"`
	Status         CardStatus      `json:"status" gorm:"type:varchar(20);not null;default:'inactive';index"`
	DailyLimit     decimal.Decimal `json:"daily_limit" gorm:"type:decimal(10,2);not null;default:500.00"`
	CreatedAt      time.Time       `json:"created_at"`

	// Relations
	User    User    `json:"-" gorm:"foreignKey:UserID"`
	Account Account `json:"-" gorm:"foreignKey:AccountID"`
}
