package models

import (
	"time"
)

// OAuthAccount links a user to an external OAuth provider identity. A
// provider account belongs to at most one user.
type OAuthAccount struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	UserID            uint   `gorm:"not null;index" json:"user_id"`
	User              *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Provider          string `gorm:"uniqueIndex:idx_provider_account;size:50;not null" json:"provider"`
	ProviderAccountID string `gorm:"uniqueIndex:idx_provider_account;size:255;not null" json:"provider_account_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (OAuthAccount) TableName() string { return "oauth_accounts" }
