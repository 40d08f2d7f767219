// Package storage holds the key/value backends reference data is kept in.
package storage

import "errors"

// ErrBucketNotFound is returned when an operation names a bucket that was never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key/value store. Keys are strings; values are raw
// bytes and the caller picks the encoding.
type Backend interface {
	// EnsureBuckets creates the named buckets if they do not exist yet.
	EnsureBuckets(names ...string) error

	// KV operations within buckets
	Put(bucket, key string, value []byte) error
	// Get reports ok == false for a missing key.
	Get(bucket, key string) (value []byte, ok bool, err error)
	Delete(bucket, key string) error

	// ForEach visits every pair of a bucket in ascending key order.
	ForEach(bucket string, fn func(key string, value []byte) error) error

	// Batch applies several writes atomically where the backend supports it.
	Batch(fn func(w Writer) error) error

	Close() error
}

// Writer is the write side handed to Batch.
type Writer interface {
	Put(bucket, key string, value []byte) error
	Delete(bucket, key string) error
}
