// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
)

var (
	ErrNilValue = errors.New("value is nil")
	ErrEmptyKey = errors.New("key is empty")
)

// KeyedStore is a durable mapping from a structured key to a structured value.
// It has no transactions of its own; callers sequence operations.
type KeyedStore interface {
	// Get decodes the value stored under key into v.
	// found is false when the key is absent; err is reserved for store failures.
	Get(ctx context.Context, key Key, v any) (found bool, err error)

	// Set encodes v and stores it under key, replacing any previous value.
	Set(ctx context.Context, key Key, v any) error
}

// Updater is implemented by stores that can apply several reads and writes as
// one indivisible unit. If fn returns an error nothing it wrote is kept.
type Updater interface {
	Update(ctx context.Context, fn func(tx KeyedStore) error) error
}

// Store is a KeyedStore backed by a resource that must be released.
// This abstraction allows swapping storage backends (SQLite, bbolt, memory)
// without changing the ledger.
type Store interface {
	KeyedStore
	Updater

	// Close releases any resources held by the store.
	Close() error
}

// CheckKeyAndValue validates arguments shared by every Set implementation.
func CheckKeyAndValue(key Key, v any) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	if v == nil {
		return ErrNilValue
	}
	return nil
}

// CheckKey validates a key before it is used.
func CheckKey(key Key) error {
	if key.Kind == "" {
		return ErrEmptyKey
	}
	return nil
}
