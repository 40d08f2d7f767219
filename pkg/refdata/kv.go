package refdata

import (
	"context"
	"fmt"

	"pkg.jsn.cam/regfake/pkg/regfake"
	"pkg.jsn.cam/regfake/pkg/storage"
)

const (
	regionsBucket  = "regions"
	marksBucket    = "vehicle_marks"
	vehiclesBucket = "vehicles"
	accountsBucket = "accounts"
)

var _ Store = (*KVStore)(nil)

// KVStore keeps reference data in a storage.Backend. Regions and marks are
// keyed by their own name; vehicles by plate; accounts by login.
type KVStore struct {
	backend storage.Backend
}

// NewKVStore prepares the buckets on backend and wraps it.
func NewKVStore(backend storage.Backend) (*KVStore, error) {
	if err := backend.EnsureBuckets(regionsBucket, marksBucket, vehiclesBucket, accountsBucket); err != nil {
		return nil, fmt.Errorf("prepare reference buckets: %w", err)
	}
	return &KVStore{backend: backend}, nil
}

// NewMemoryStore returns a KVStore on a fresh in-memory backend.
func NewMemoryStore() *KVStore {
	s, err := NewKVStore(storage.NewMemoryBackend())
	if err != nil {
		// The memory backend cannot fail to create buckets.
		panic(err)
	}
	return s
}

// OpenBoltStore returns a KVStore on a bbolt file.
func OpenBoltStore(path string) (*KVStore, error) {
	backend, err := storage.NewBoltBackend(path)
	if err != nil {
		return nil, err
	}
	s, err := NewKVStore(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	return s, nil
}

func (s *KVStore) Close() error {
	return s.backend.Close()
}

func (s *KVStore) Regions(ctx context.Context) ([]string, error) {
	return s.keys(ctx, regionsBucket)
}

func (s *KVStore) VehicleMarks(ctx context.Context) ([]string, error) {
	return s.keys(ctx, marksBucket)
}

func (s *KVStore) keys(ctx context.Context, bucket string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	err := s.backend.ForEach(bucket, func(k string, _ []byte) error {
		out = append(out, k)
		return nil
	})
	return out, err
}

func (s *KVStore) PlateByValue(ctx context.Context, plate string) (regfake.Vehicle, bool, error) {
	if err := ctx.Err(); err != nil {
		return regfake.Vehicle{}, false, err
	}
	var v regfake.Vehicle
	ok, err := storage.GetJSON(s.backend, vehiclesBucket, plate, &v)
	if err != nil || !ok {
		return regfake.Vehicle{}, false, err
	}
	return v, true, nil
}

// ValidAccount returns the first matching account in login order.
func (s *KVStore) ValidAccount(ctx context.Context, mods regfake.Modifiers) (regfake.Account, bool, error) {
	if err := ctx.Err(); err != nil {
		return regfake.Account{}, false, err
	}
	var (
		found regfake.Account
		ok    bool
	)
	err := s.backend.ForEach(accountsBucket, func(k string, v []byte) error {
		if ok {
			return nil
		}
		var acc Account
		if err := storage.DecodeJSON(v, &acc); err != nil {
			return fmt.Errorf("account %s: %w", k, err)
		}
		if acc.matches(mods) {
			found, ok = acc.Credentials(), true
		}
		return nil
	})
	return found, ok, err
}

func (s *KVStore) AddRegions(_ context.Context, names ...string) error {
	return s.addNames(regionsBucket, names)
}

func (s *KVStore) AddVehicleMarks(_ context.Context, marks ...string) error {
	return s.addNames(marksBucket, marks)
}

func (s *KVStore) addNames(bucket string, names []string) error {
	return s.backend.Batch(func(w storage.Writer) error {
		for _, name := range names {
			if name == "" {
				return fmt.Errorf("%w in %s", ErrEmptyKey, bucket)
			}
			if err := w.Put(bucket, name, []byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *KVStore) AddVehicles(_ context.Context, vehicles ...regfake.Vehicle) error {
	return s.backend.Batch(func(w storage.Writer) error {
		for _, v := range vehicles {
			if v.Plate == "" {
				return fmt.Errorf("%w in %s", ErrEmptyKey, vehiclesBucket)
			}
			if err := storage.PutJSON(w, vehiclesBucket, v.Plate, v); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *KVStore) AddAccounts(_ context.Context, accounts ...Account) error {
	return s.backend.Batch(func(w storage.Writer) error {
		for _, a := range accounts {
			if a.Login == "" {
				return fmt.Errorf("%w in %s", ErrEmptyKey, accountsBucket)
			}
			if err := storage.PutJSON(w, accountsBucket, a.Login, a); err != nil {
				return err
			}
		}
		return nil
	})
}
