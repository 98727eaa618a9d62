package model

import (
	"time"

	"gorm.io/datatypes"
)

// Credential is the identity provider's own record; Profile rows reference its ID.
type Credential struct {
	ID           string            `gorm:"type:uuid;primaryKey"`
	Email        string            `gorm:"uniqueIndex;not null"`
	PasswordHash string            `gorm:"not null"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	Confirmed    bool              `gorm:"default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthCode is a single use code exchanged for a session by the auth callback.
type AuthCode struct {
	Code         string    `gorm:"primaryKey"`
	CredentialID string    `gorm:"type:uuid;not null;index"`
	ExpiresAt    time.Time `gorm:"not null;index"`
	UsedAt       *time.Time
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}
