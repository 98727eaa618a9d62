package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"roomfinder_backend/internal/auth"
	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
)

const (
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit, in bytes.
	MaxPasswordLength = 72
)

// ConfirmationSender mails the sign-up confirmation link.
type ConfirmationSender interface {
	SendSignupConfirmation(ctx context.Context, to, firstName, code string) error
}

type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  model.UserType
}

func (in SignUpInput) validate() error {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" ||
		strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" || in.UserType == "" {
		return Invalid("Missing required fields")
	}
	if len(in.Password) < MinPasswordLength {
		return Invalid(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if len(in.Password) > MaxPasswordLength {
		return Invalid(fmt.Sprintf("Password must be at most %d bytes", MaxPasswordLength))
	}
	if !in.UserType.Valid() {
		return Invalid("Invalid user type")
	}
	return nil
}

// Accounts covers sign-up and the caller's own profile.
type Accounts struct {
	provider auth.Provider
	profiles repository.ProfileStore
	mailer   ConfirmationSender
}

// NewAccounts wires the account service. mailer may be nil.
func NewAccounts(provider auth.Provider, profiles repository.ProfileStore, mailer ConfirmationSender) *Accounts {
	return &Accounts{provider: provider, profiles: profiles, mailer: mailer}
}

// SignUp creates the identity, then the profile row. A failed profile insert
// is logged and the identity is kept; the caller still gets a success.
func (s *Accounts) SignUp(ctx context.Context, in SignUpInput) (*auth.Identity, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	identity, code, err := s.provider.SignUp(ctx, in.Email, in.Password, map[string]interface{}{
		"first_name": in.FirstName,
		"last_name":  in.LastName,
		"user_type":  string(in.UserType),
	})
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, Invalid(err.Error())
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	profile := &model.Profile{
		ID:        identity.ID,
		Email:     identity.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserType:  in.UserType,
	}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		log.Printf("[accounts] profile insert for %s failed: %v", identity.ID, err)
	}

	if s.mailer != nil {
		if err := s.mailer.SendSignupConfirmation(ctx, identity.Email, in.FirstName, code); err != nil {
			log.Printf("[accounts] confirmation email to %s failed: %v", identity.Email, err)
		}
	}
	return identity, nil
}

func (s *Accounts) Profile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Profile not found")
		}
		return nil, fmt.Errorf("find profile %s: %w", userID, err)
	}
	return profile, nil
}

// UpdateProfile changes the caller's own names and phone number.
func (s *Accounts) UpdateProfile(ctx context.Context, userID string, update repository.ProfileUpdate) (*model.Profile, error) {
	if update.FirstName != nil && strings.TrimSpace(*update.FirstName) == "" ||
		update.LastName != nil && strings.TrimSpace(*update.LastName) == "" {
		return nil, Invalid("Name cannot be empty")
	}

	profile, err := s.profiles.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Profile not found")
		}
		return nil, fmt.Errorf("update profile %s: %w", userID, err)
	}
	return profile, nil
}
