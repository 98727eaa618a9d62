package model

import (
	"strings"
	"time"
)

type UserType string

const (
	UserTypeOwner  UserType = "owner"
	UserTypeFinder UserType = "finder"
)

func (t UserType) Valid() bool {
	return t == UserTypeOwner || t == UserTypeFinder
}

// Profile mirrors an identity from the identity provider. ID is the identity ID.
type Profile struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Email       string    `json:"email" gorm:"not null"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	UserType    UserType  `json:"user_type,omitempty" gorm:"not null"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p *Profile) IsOwner() bool {
	return p.UserType == UserTypeOwner
}
