package ledger

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// Authenticator proves that the current call originates from a principal.
// Require returns nil when it does and an error otherwise.
type Authenticator interface {
	Require(ctx context.Context, principal models.Principal) error
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, principal models.Principal) error

func (f AuthenticatorFunc) Require(ctx context.Context, principal models.Principal) error {
	return f(ctx, principal)
}
