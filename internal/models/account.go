package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered login that acts as a principal on the ledger.
//
// Accounts belong to the password authenticator only. The ledger itself never
// reads them; it only sees the Principal.
type Account struct {
	// Principal is the identity bills refer to (UUID format).
	Principal Principal `cbor:"1,keyasint"`

	// Email is the login name (unique).
	Email string `cbor:"2,keyasint"`

	// DisplayName is shown next to the principal in clients.
	DisplayName string `cbor:"3,keyasint"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `cbor:"4,keyasint"`

	// CreatedAt is the Unix timestamp when the account was registered.
	CreatedAt int64 `cbor:"5,keyasint"`
}

// NewAccount creates an account with a fresh principal.
func NewAccount(email, displayName, passwordHash string) *Account {
	return &Account{
		Principal:    Principal(uuid.New().String()),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().Unix(),
	}
}
