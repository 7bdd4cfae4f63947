package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

func TestContextAuthenticator(t *testing.T) {
	var a ContextAuthenticator
	ctx := context.Background()

	require.ErrorIs(t, a.Require(ctx, "alice"), ErrMissingToken)

	ctx = WithPrincipal(ctx, "alice")
	require.NoError(t, a.Require(ctx, "alice"))
	require.ErrorIs(t, a.Require(ctx, "bob"), ErrNotPrincipal)
	require.ErrorIs(t, a.Require(ctx, "Alice"), ErrNotPrincipal)
	require.Equal(t, models.Principal("alice"), PrincipalFromContext(ctx))
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate(&models.Account{Principal: "p-1", Email: "a@example.com"})
		require.NoError(t, err)
		claims, err := m.Validate(token)
		require.NoError(t, err)
		require.Equal(t, models.Principal("p-1"), claims.Principal())
		require.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("empty principal", func(t *testing.T) {
		_, err := m.GenerateFor("", "")
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("another-secret", time.Hour)
		token, err := other.GenerateFor("p-1", "")
		require.NoError(t, err)
		_, err = m.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.GenerateFor("p-1", "")
		require.NoError(t, err)
		_, err = m.Validate(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Validate("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func newTestPasswordAuthenticator() *PasswordAuthenticator {
	a := NewPasswordAuthenticator(memory.New())
	a.cost = bcrypt.MinCost
	return a
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	a := newTestPasswordAuthenticator()

	acc, err := a.Register(ctx, "alice@example.com", "Alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, acc.Principal)
	require.NotEqual(t, "password123", acc.PasswordHash)

	t.Run("duplicate email is case insensitive", func(t *testing.T) {
		_, err := a.Register(ctx, "ALICE@example.com", "Alice 2", "password123")
		require.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "bob@example.com", "Bob", "short")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("empty email", func(t *testing.T) {
		_, err := a.Register(ctx, "  ", "Nobody", "password123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("authenticate", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "alice@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, acc.Principal, got.Principal)
		require.Equal(t, "Alice", got.DisplayName)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", strings.Repeat("x", 12))
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "nobody@example.com", "password123")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
