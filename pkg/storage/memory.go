package storage

import (
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend implements Backend using in-memory maps (not persistent)
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBackend creates a new in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
	}
}

func (m *MemoryBackend) EnsureBuckets(names ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, name := range names {
		if _, exists := m.buckets[name]; !exists {
			m.buckets[name] = make(map[string][]byte)
		}
	}
	return nil
}

func (m *MemoryBackend) Put(bucket, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.put(bucket, key, value)
}

func (m *MemoryBackend) put(bucket, key string, value []byte) error {
	bkt, exists := m.buckets[bucket]
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	// Copy value to prevent external modifications
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	bkt[key] = valueCopy
	return nil
}

func (m *MemoryBackend) Get(bucket, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, exists := m.buckets[bucket]
	if !exists {
		return nil, false, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}

	value, exists := bkt[key]
	if !exists {
		return nil, false, nil
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	return valueCopy, true, nil
}

func (m *MemoryBackend) Delete(bucket, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(bucket, key)
}

func (m *MemoryBackend) delete(bucket, key string) error {
	bkt, exists := m.buckets[bucket]
	if !exists {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	delete(bkt, key)
	return nil
}

// ForEach visits a snapshot of the bucket, so fn may write back to the backend.
func (m *MemoryBackend) ForEach(bucket string, fn func(key string, value []byte) error) error {
	m.mu.RLock()
	bkt, exists := m.buckets[bucket]
	if !exists {
		m.mu.RUnlock()
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		keys = append(keys, k)
	}
	snapshot := make(map[string][]byte, len(bkt))
	for k, v := range bkt {
		snapshot[k] = v
	}
	m.mu.RUnlock()

	sort.Strings(keys)
	for _, k := range keys {
		if err := fn(k, snapshot[k]); err != nil {
			return err
		}
	}
	return nil
}

// Batch holds the write lock for the whole of fn. Writes made before an
// error are kept; the memory backend has no rollback.
func (m *MemoryBackend) Batch(fn func(w Writer) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(memoryWriter{m: m})
}

// Close is a no-op for memory backend
func (m *MemoryBackend) Close() error {
	return nil
}

type memoryWriter struct {
	m *MemoryBackend
}

func (w memoryWriter) Put(bucket, key string, value []byte) error {
	return w.m.put(bucket, key, value)
}

func (w memoryWriter) Delete(bucket, key string) error {
	return w.m.delete(bucket, key)
}
