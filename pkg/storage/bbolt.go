package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BoltBackend implements Backend on a bbolt database file.
type BoltBackend struct {
	db *bolt.DB
}

// NewBoltBackend opens (or creates) the database at dbPath.
func NewBoltBackend(dbPath string) (*BoltBackend, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt database: %w", err)
	}

	log.Printf("[STORE] Bbolt backend opened at %s", dbPath)
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) EnsureBuckets(names ...string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		for _, name := range names {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
}

func (b *BoltBackend) Put(bucket, key string, value []byte) error {
	return b.Batch(func(w Writer) error {
		return w.Put(bucket, key, value)
	})
}

func (b *BoltBackend) Get(bucket, key string) ([]byte, bool, error) {
	var (
		value []byte
		found bool
	)
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
		}
		v := bkt.Get([]byte(key))
		if v != nil {
			// Copy the value since it's only valid during the transaction
			value = make([]byte, len(v))
			copy(value, v)
			found = true
		}
		return nil
	})
	return value, found, err
}

func (b *BoltBackend) Delete(bucket, key string) error {
	return b.Batch(func(w Writer) error {
		return w.Delete(bucket, key)
	})
}

func (b *BoltBackend) ForEach(bucket string, fn func(key string, value []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
		}
		return bkt.ForEach(func(k, v []byte) error {
			return fn(string(k), v)
		})
	})
}

// Batch runs fn in one read-write transaction.
func (b *BoltBackend) Batch(fn func(w Writer) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(boltWriter{tx: tx})
	})
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}

type boltWriter struct {
	tx *bolt.Tx
}

func (w boltWriter) Put(bucket, key string, value []byte) error {
	bkt := w.tx.Bucket([]byte(bucket))
	if bkt == nil {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	return bkt.Put([]byte(key), value)
}

func (w boltWriter) Delete(bucket, key string) error {
	bkt := w.tx.Bucket([]byte(bucket))
	if bkt == nil {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	return bkt.Delete([]byte(key))
}
