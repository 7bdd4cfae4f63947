// Package memory provides an in-process implementation of storage.Store.
// Values are kept encoded so every Get returns a fresh copy.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*MemoryStore)(nil)

// MemoryStore implements storage.Store with a map.
type MemoryStore struct {
	mu      sync.RWMutex
	data    map[string][]byte
	encoder storage.EncodeFn
	decoder storage.DecodeFn
}

// New creates an empty MemoryStore.
func New() *MemoryStore {
	return &MemoryStore{
		data:    make(map[string][]byte),
		encoder: storage.Encode,
		decoder: storage.Decode,
	}
}

func (s *MemoryStore) Get(_ context.Context, key storage.Key, v any) (bool, error) {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	s.mu.RLock()
	data, ok := s.data[key.String()]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := s.decoder(data, v); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MemoryStore) Set(_ context.Context, key storage.Key, v any) error {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	b, err := s.encoder(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	s.mu.Lock()
	s.data[key.String()] = b
	s.mu.Unlock()
	return nil
}

// Update runs fn against a staging area and applies its writes only when fn succeeds.
func (s *MemoryStore) Update(ctx context.Context, fn func(tx storage.KeyedStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{store: s, pending: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for k, b := range tx.pending {
		s.data[k] = b
	}
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) Close() error {
	return nil
}

// memoryTx reads through its pending writes to the parent store.
// The parent lock is held by Update for the whole lifetime of the tx.
type memoryTx struct {
	store   *MemoryStore
	pending map[string][]byte
}

func (tx *memoryTx) Get(_ context.Context, key storage.Key, v any) (bool, error) {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	data, ok := tx.pending[key.String()]
	if !ok {
		data, ok = tx.store.data[key.String()]
	}
	if !ok {
		return false, nil
	}
	if err := tx.store.decoder(data, v); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (tx *memoryTx) Set(_ context.Context, key storage.Key, v any) error {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	b, err := tx.store.encoder(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	tx.pending[key.String()] = b
	return nil
}
