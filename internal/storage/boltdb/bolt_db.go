// Package boltdb provides a bbolt-backed implementation of the storage.Store interface.
package boltdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmynk/splitledger/internal/storage"
)

var _ storage.Store = (*BoltDB)(nil)

// all records live in one bucket, the key kind is part of the key itself
const defaultBucket = "ledger"

type BoltDB struct {
	db      *bolt.DB
	bucket  []byte
	encoder storage.EncodeFn
	decoder storage.DecodeFn
}

// New opens (or creates) the bolt database file and its parent directories.
func New(dbFile string) (*BoltDB, error) {
	if err := os.MkdirAll(filepath.Dir(dbFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	db, err := bolt.Open(dbFile, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	s := &BoltDB{
		db:      db,
		bucket:  []byte(defaultBucket),
		encoder: storage.Encode,
		decoder: storage.Decode,
	}
	if err = s.createBuckets(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (db *BoltDB) createBuckets() error {
	return db.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(db.bucket)
		return err
	})
}

func (db *BoltDB) Get(_ context.Context, key storage.Key, v any) (bool, error) {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	var found bool
	err := db.db.View(func(tx *bolt.Tx) error {
		var err error
		found, err = db.bucketTx(tx).read(key, v)
		return err
	})
	if err != nil {
		return found, fmt.Errorf("bolt db read failed, %w", err)
	}
	return found, nil
}

func (db *BoltDB) Set(_ context.Context, key storage.Key, v any) error {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	if err := db.db.Update(func(tx *bolt.Tx) error {
		return db.bucketTx(tx).write(key, v)
	}); err != nil {
		return fmt.Errorf("bolt db write failed, %w", err)
	}
	return nil
}

// Update runs fn in a single read-write bolt transaction.
func (db *BoltDB) Update(ctx context.Context, fn func(tx storage.KeyedStore) error) error {
	return db.db.Update(func(tx *bolt.Tx) error {
		return fn(db.bucketTx(tx))
	})
}

func (db *BoltDB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}

func (db *BoltDB) bucketTx(tx *bolt.Tx) *boltTx {
	return &boltTx{bucket: tx.Bucket(db.bucket), encoder: db.encoder, decoder: db.decoder}
}

// boltTx adapts an open bolt transaction to storage.KeyedStore.
type boltTx struct {
	bucket  *bolt.Bucket
	encoder storage.EncodeFn
	decoder storage.DecodeFn
}

func (t *boltTx) Get(_ context.Context, key storage.Key, v any) (bool, error) {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	return t.read(key, v)
}

func (t *boltTx) Set(_ context.Context, key storage.Key, v any) error {
	if err := storage.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	return t.write(key, v)
}

func (t *boltTx) read(key storage.Key, v any) (bool, error) {
	data := t.bucket.Get(key.Bytes())
	if data == nil {
		return false, nil
	}
	if err := t.decoder(data, v); err != nil {
		return true, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

func (t *boltTx) write(key storage.Key, v any) error {
	b, err := t.encoder(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return t.bucket.Put(key.Bytes(), b)
}
