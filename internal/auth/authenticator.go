package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/splitledger/internal/models"
)

var ErrNotPrincipal = errors.New("caller is not the requested principal")

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// WithPrincipal returns a context marking the call as proven to come from p.
// Only code that has verified a credential (see middleware.RequireAuth) should call it.
func WithPrincipal(ctx context.Context, p models.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext extracts the proven principal from the context.
// Returns empty string if not found.
func PrincipalFromContext(ctx context.Context) models.Principal {
	p, _ := ctx.Value(principalKey).(models.Principal)
	return p
}

// ContextAuthenticator implements ledger.Authenticator by comparing the
// principal proven for the current call with the one an operation acts for.
type ContextAuthenticator struct{}

// Require succeeds only when ctx carries exactly principal.
func (ContextAuthenticator) Require(ctx context.Context, principal models.Principal) error {
	caller := PrincipalFromContext(ctx)
	if caller == "" {
		return ErrMissingToken
	}
	if caller != principal {
		return fmt.Errorf("%w: authenticated as %s", ErrNotPrincipal, caller)
	}
	return nil
}
