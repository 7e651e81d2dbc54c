// Package storage provides the device-local persistence layer: auth session,
// install identity, per-survey progress records, and cached API payloads.
// Everything lives in a single bbolt file so one backend serves every caller.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

var (
	bucketSession  = []byte("session")
	bucketProgress = []byte("progress")
	bucketCache    = []byte("cache")
	bucketDevice   = []byte("device")
)

// ErrNotFound is returned when a requested key has no stored value.
var ErrNotFound = errors.New("storage: not found")

// Store is the device-local key-value store. Writes are last-write-wins.
type Store struct {
	db     *bolt.DB
	logger *zap.Logger
}

// Open opens (creating if needed) the store at path. The parent directory is
// created with owner-only permissions, matching the sensitivity of the auth
// token kept inside.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open storage file %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketSession, bucketProgress, bucketCache, bucketDevice} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database file.
func (s *Store) Close() error {
	return s.db.Close()
}

// get reads one key from a bucket. Returns ErrNotFound for missing keys.
func (s *Store) get(bucket []byte, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucket).Get([]byte(key))
		if raw == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), raw...)
		return nil
	})
	return value, err
}

// put writes one key into a bucket.
func (s *Store) put(bucket []byte, key string, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), value)
	})
}

// delete removes keys from a bucket. Missing keys are not an error.
func (s *Store) delete(bucket []byte, keys ...string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}
