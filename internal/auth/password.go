package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrEmailExists        = errors.New("email already registered")
)

// PasswordAuthenticator registers accounts and verifies their passwords with bcrypt.
// Accounts live in the keyed store under storage.AccountKey.
type PasswordAuthenticator struct {
	mu    sync.Mutex
	store storage.KeyedStore
	cost  int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(store storage.KeyedStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account with a hashed password and a fresh principal.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (*models.Account, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrInvalidCredentials
	}
	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	// Hash before taking the lock, bcrypt is slow on purpose
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var existing models.Account
	found, err := a.store.Get(ctx, storage.AccountKey(email), &existing)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if found {
		return nil, ErrEmailExists
	}

	account := models.NewAccount(email, displayName, string(hashedPassword))
	if err := a.store.Set(ctx, storage.AccountKey(email), account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return account, nil
}

// Authenticate verifies the email and password, returning the account if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (*models.Account, error) {
	var account models.Account
	found, err := a.store.Get(ctx, storage.AccountKey(strings.TrimSpace(email)), &account)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if !found {
		return nil, ErrInvalidCredentials
	}

	// Compare password hash
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &account, nil
}
