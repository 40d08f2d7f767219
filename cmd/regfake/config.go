package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"

	"pkg.jsn.cam/regfake/pkg/fakeprovider"
	"pkg.jsn.cam/regfake/pkg/refdata"
	"pkg.jsn.cam/regfake/pkg/regfake"
)

var errUnknownStore = errors.New("unknown store")

// Store kinds accepted by -store.
const (
	storeMemory   = "memory"
	storeBolt     = "bolt"
	storePostgres = "postgres"
	storeSQLite   = "sqlite"
)

// Config holds the settings shared by every subcommand
type Config struct {
	Store            string // memory, bolt, postgres or sqlite
	DSN              string // Store location; file path for bolt and sqlite
	RefData          string // Optional YAML seed applied when the store opens
	Seed             uint64 // Random seed; 0 picks one
	Locale           string // BCP 47 tag for localised values
	MaxPlateAttempts int
}

// register binds the shared flags to fs.
func (c *Config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.Store, "store", storeMemory, "reference data store: memory, bolt, postgres or sqlite")
	fs.StringVar(&c.DSN, "dsn", "", "store location (file path for bolt/sqlite, connection string for postgres)")
	fs.StringVar(&c.RefData, "refdata", "", "YAML reference data applied to the store on startup")
	fs.Uint64Var(&c.Seed, "seed", 0, "random seed (0 = random)")
	fs.StringVar(&c.Locale, "locale", "ru", "locale for country names")
	fs.IntVar(&c.MaxPlateAttempts, "max-plate-attempts", regfake.DefaultMaxPlateAttempts, "uniqueness lookups per UNIQUE plate")
}

func (c Config) dsn() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Store {
	case storeBolt:
		return filepath.Join("var", "regfake", "refdata.db")
	case storeSQLite:
		return filepath.Join("var", "regfake", "refdata.sqlite")
	}
	return ""
}

// openStore opens the configured reference data store and applies
// -refdata to it.
func (c Config) openStore(ctx context.Context) (refdata.Store, error) {
	var (
		store refdata.Store
		err   error
	)
	switch c.Store {
	case storeMemory, "":
		store = refdata.NewMemoryStore()
	case storeBolt:
		store, err = refdata.OpenBoltStore(c.dsn())
	case storePostgres, storeSQLite:
		if c.Store == storePostgres && c.DSN == "" {
			return nil, fmt.Errorf("-dsn is required for the postgres store")
		}
		if c.Store == storeSQLite && c.DSN == "" {
			if err := os.MkdirAll(filepath.Dir(c.dsn()), 0o755); err != nil {
				return nil, err
			}
		}
		var sqlStore *refdata.SQLStore
		sqlStore, err = refdata.OpenSQLStore(ctx, refdata.Dialect(c.Store), c.dsn())
		if err == nil {
			if err = sqlStore.Migrate(ctx); err != nil {
				sqlStore.Close()
			}
		}
		store = sqlStore
	default:
		return nil, fmt.Errorf("%w %q", errUnknownStore, c.Store)
	}
	if err != nil {
		return nil, err
	}

	if c.RefData != "" {
		seed, err := refdata.LoadSeed(c.RefData)
		if err != nil {
			store.Close()
			return nil, err
		}
		if err := seed.Apply(ctx, store); err != nil {
			store.Close()
			return nil, err
		}
		log.Printf("[CLI] Loaded %d reference rows from %s", seed.Rows(), c.RefData)
	}
	return store, nil
}

// newEngine builds the generation engine over store.
func (c Config) newEngine(store refdata.Store) (*regfake.Engine, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid -locale %q: %w", c.Locale, err)
	}
	seed := c.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	fake := fakeprovider.New(fakeprovider.WithLocale(tag), fakeprovider.WithSeed(seed))
	return regfake.New(fake,
		regfake.WithReference(store),
		regfake.WithRand(regfake.NewSeededRand(seed)),
		regfake.WithMaxPlateAttempts(c.MaxPlateAttempts),
	), nil
}

// modList collects repeated -mod flags; each value may also be comma separated.
type modList []string

func (m *modList) String() string { return strings.Join(*m, ",") }

func (m *modList) Set(v string) error {
	for _, tok := range strings.Split(v, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			*m = append(*m, tok)
		}
	}
	return nil
}
