package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const localStorageBucket = "local_storage"

type boltLocalStorage struct {
	db *bolt.DB
}

// NewBoltLocalStorage opens (or creates) a bbolt file at path and returns
// a LocalStorage over its single bucket.
func NewBoltLocalStorage(path string) (LocalStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: create bolt directory: %w", ErrLocalStorageUnavailable, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: open bolt file: %w", ErrLocalStorageUnavailable, err)
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(localStorageBucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: create bucket: %w", ErrLocalStorageUnavailable, err)
	}

	return &boltLocalStorage{db: db}, nil
}

func (s *boltLocalStorage) GetItem(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		ok    bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Get returns memory owned by the transaction, copy it out.
		if raw := tx.Bucket([]byte(localStorageBucket)).Get([]byte(key)); raw != nil {
			value, ok = string(raw), true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: %w", ErrLocalStorageUnavailable, err)
	}

	return value, ok, nil
}

func (s *boltLocalStorage) SetItem(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(localStorageBucket)).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalStorageUnavailable, err)
	}

	return nil
}

func (s *boltLocalStorage) RemoveItem(_ context.Context, keys ...string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(localStorageBucket))
		for _, key := range keys {
			if err := bkt.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLocalStorageUnavailable, err)
	}

	return nil
}

func (s *boltLocalStorage) Close() error {
	return s.db.Close()
}
