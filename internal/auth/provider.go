// Package auth is the identity provider boundary: credentials, sign-up
// confirmation codes and session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"roomfinder_backend/internal/model"
	"roomfinder_backend/internal/repository"
	"roomfinder_backend/pkg/utils/jwt"
)

var (
	ErrEmailTaken         = errors.New("User already registered")
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrInvalidCode        = errors.New("invalid or expired confirmation code")
	ErrInvalidSession     = errors.New("invalid session")
)

const DefaultCodeTTL = 24 * time.Hour

// Identity is the caller as the identity provider knows it.
type Identity struct {
	ID       string                 `json:"id"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Identity  Identity  `json:"user"`
}

type Provider interface {
	// SignUp creates the identity and returns a confirmation code for the
	// auth callback.
	SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Identity, string, error)
	SignIn(ctx context.Context, email, password string) (*Session, error)
	ExchangeCode(ctx context.Context, code string) (*Session, error)
	Verify(token string) (*Identity, error)
}

// LocalProvider keeps credentials next to the application data and issues
// JWT sessions.
type LocalProvider struct {
	store   repository.CredentialStore
	tokens  *jwt.Manager
	codeTTL time.Duration
	cost    int
	now     func() time.Time
}

func NewLocalProvider(store repository.CredentialStore, tokens *jwt.Manager) *LocalProvider {
	return &LocalProvider{
		store:   store,
		tokens:  tokens,
		codeTTL: DefaultCodeTTL,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (p *LocalProvider) SignUp(ctx context.Context, email, password string, metadata map[string]interface{}) (*Identity, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	cred := &model.Credential{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hash),
		Metadata:     datatypes.JSONMap(metadata),
	}
	if err := p.store.CreateCredential(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create credential: %w", err)
	}

	code := &model.AuthCode{
		Code:         uuid.NewString(),
		CredentialID: cred.ID,
		ExpiresAt:    p.now().Add(p.codeTTL),
	}
	if err := p.store.CreateAuthCode(ctx, code); err != nil {
		return nil, "", fmt.Errorf("create confirmation code: %w", err)
	}

	return identityOf(cred), code.Code, nil
}

func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	cred, err := p.store.FindCredentialByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p.issue(cred)
}

func (p *LocalProvider) ExchangeCode(ctx context.Context, code string) (*Session, error) {
	authCode, err := p.store.ConsumeAuthCode(ctx, code, p.now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("consume code: %w", err)
	}
	if err := p.store.ConfirmCredential(ctx, authCode.CredentialID); err != nil {
		return nil, fmt.Errorf("confirm credential: %w", err)
	}
	cred, err := p.store.FindCredential(ctx, authCode.CredentialID)
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return p.issue(cred)
}

func (p *LocalProvider) Verify(token string) (*Identity, error) {
	claims, err := p.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return &Identity{ID: claims.UserID, Email: claims.Email, Metadata: claims.Metadata}, nil
}

func (p *LocalProvider) issue(cred *model.Credential) (*Session, error) {
	identity := identityOf(cred)
	token, expiresAt, err := p.tokens.GenerateToken(identity.ID, identity.Email, identity.Metadata)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Identity: *identity}, nil
}

func identityOf(cred *model.Credential) *Identity {
	return &Identity{
		ID:       cred.ID,
		Email:    cred.Email,
		Metadata: map[string]interface{}(cred.Metadata),
	}
}

var _ Provider = (*LocalProvider)(nil)
