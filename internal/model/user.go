package model

import "time"

// Role represents a user's access level.
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered customer or back-office operator.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FirstName    string    `json:"first_name" gorm:"size:255;not null"`
	LastName     string    `json:"last_name" gorm:"size:255;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'client';index"`
	CreatedAt    time.Time `json:"created_at"`

	// Relations
	Accounts []Account `json:"accounts,omitempty" gorm:"foreignKey:UserID"`
	Cards    []Card    `json:"cards,omitempty" gorm:"foreignKey:UserID"`
}
