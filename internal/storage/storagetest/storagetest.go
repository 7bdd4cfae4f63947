// Package storagetest holds behaviour tests every storage.Store must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Run exercises a store created by newStore. newStore must return an empty store;
// it is called once per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	ctx := context.Background()

	t.Run("Get missing key", func(t *testing.T) {
		s := newStore(t)
		var bill models.Bill
		found, err := s.Get(ctx, storage.BillKey(1), &bill)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("Set then Get bill", func(t *testing.T) {
		s := newStore(t)
		want := models.NewBill("A", 100, []models.Principal{"A", "B", "C"})
		want.Paid["B"] = true
		require.NoError(t, s.Set(ctx, storage.BillKey(7), want))

		var got models.Bill
		found, err := s.Get(ctx, storage.BillKey(7), &got)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, want, &got)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, storage.BillCounterKey(), uint32(1)))
		require.NoError(t, s.Set(ctx, storage.BillCounterKey(), uint32(2)))
		var n uint32
		found, err := s.Get(ctx, storage.BillCounterKey(), &n)
		require.NoError(t, err)
		require.True(t, found)
		require.EqualValues(t, 2, n)
	})

	t.Run("Get returns independent copies", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, storage.BillKey(1), models.NewBill("A", 10, []models.Principal{"A"})))
		var first models.Bill
		_, err := s.Get(ctx, storage.BillKey(1), &first)
		require.NoError(t, err)
		first.Paid["A"] = true

		var second models.Bill
		_, err = s.Get(ctx, storage.BillKey(1), &second)
		require.NoError(t, err)
		require.False(t, second.Paid["A"])
	})

	t.Run("invalid arguments", func(t *testing.T) {
		s := newStore(t)
		require.ErrorIs(t, s.Set(ctx, storage.Key{}, uint32(1)), storage.ErrEmptyKey)
		require.ErrorIs(t, s.Set(ctx, storage.BillCounterKey(), nil), storage.ErrNilValue)
		_, err := s.Get(ctx, storage.BillCounterKey(), nil)
		require.ErrorIs(t, err, storage.ErrNilValue)
	})

	t.Run("Update commits", func(t *testing.T) {
		s := newStore(t)
		err := s.Update(ctx, func(tx storage.KeyedStore) error {
			if err := tx.Set(ctx, storage.BillKey(1), models.NewBill("A", 10, []models.Principal{"A"})); err != nil {
				return err
			}
			// reads inside the unit observe its own writes
			var b models.Bill
			found, err := tx.Get(ctx, storage.BillKey(1), &b)
			require.NoError(t, err)
			require.True(t, found)
			return tx.Set(ctx, storage.BillCounterKey(), uint32(1))
		})
		require.NoError(t, err)

		var n uint32
		found, err := s.Get(ctx, storage.BillCounterKey(), &n)
		require.NoError(t, err)
		require.True(t, found)
		require.EqualValues(t, 1, n)
	})

	t.Run("Update rolls back on error", func(t *testing.T) {
		s := newStore(t)
		boom := errors.New("boom")
		err := s.Update(ctx, func(tx storage.KeyedStore) error {
			if err := tx.Set(ctx, storage.BillKey(1), models.NewBill("A", 10, []models.Principal{"A"})); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		var b models.Bill
		found, err := s.Get(ctx, storage.BillKey(1), &b)
		require.NoError(t, err)
		require.False(t, found)
	})

	t.Run("account keys", func(t *testing.T) {
		s := newStore(t)
		acc := &models.Account{Principal: "p-1", Email: "a@example.com", PasswordHash: "h", CreatedAt: 5}
		require.NoError(t, s.Set(ctx, storage.AccountKey("A@Example.com"), acc))
		var got models.Account
		found, err := s.Get(ctx, storage.AccountKey("a@example.com"), &got)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, *acc, got)
	})
}
