package storage

import (
	"path/filepath"
	"testing"
)

func TestBoltBackend(t *testing.T) {
	backendTestSuite(t, func() (Backend, func(), error) {
		dbPath := filepath.Join(t.TempDir(), "nested", "refdata.db")

		backend, err := NewBoltBackend(dbPath)
		if err != nil {
			return nil, nil, err
		}

		return backend, func() { backend.Close() }, nil
	})
}

func TestBoltBackendPersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "refdata.db")

	backend, err := NewBoltBackend(dbPath)
	if err != nil {
		t.Fatalf("NewBoltBackend failed: %v", err)
	}
	backend.EnsureBuckets("regions")
	backend.Put("regions", "77", []byte("Moscow"))
	if err := backend.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewBoltBackend(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get("regions", "77")
	if err != nil || !ok || string(got) != "Moscow" {
		t.Errorf("after reopen got %s (ok=%v, err=%v)", got, ok, err)
	}
}
