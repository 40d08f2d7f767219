package storage

import "testing"

func TestMemoryBackend(t *testing.T) {
	backendTestSuite(t, func() (Backend, func(), error) {
		backend := NewMemoryBackend()
		return backend, func() {}, nil
	})
}

func TestMemoryForEachAllowsWrites(t *testing.T) {
	backend := NewMemoryBackend()
	backend.EnsureBuckets("test")
	backend.Put("test", "a", []byte("1"))

	err := backend.ForEach("test", func(k string, v []byte) error {
		return backend.Put("test", k+"-copy", v)
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}
	if _, ok, _ := backend.Get("test", "a-copy"); !ok {
		t.Error("write from inside ForEach was lost")
	}
}
