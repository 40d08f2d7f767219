package refdata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"regexp"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"pkg.jsn.cam/regfake/pkg/regfake"
)

// Dialect names a supported SQL database. Its value is also the
// database/sql driver name.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect validates a dialect name.
func ParseDialect(name string) (Dialect, error) {
	switch d := Dialect(name); d {
	case Postgres, SQLite:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDialect, name)
	}
}

var _ Store = (*SQLStore)(nil)

// SQLStore reads reference data from SQL tables. Queries are written with
// $n placeholders and rewritten for dialects that use '?'.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLStore opens and pings a database.
func OpenSQLStore(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	if _, err := ParseDialect(string(dialect)); err != nil {
		return nil, err
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if dialect == SQLite {
		// SQLite allows one writer; a single connection also keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}
	log.Printf("[STORE] Connected to %s reference database", dialect)
	return NewSQLStore(db, dialect), nil
}

// NewSQLStore wraps an open database handle.
func NewSQLStore(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

var placeholder = regexp.MustCompile(`\$\d+`)

func (s *SQLStore) query(q string) string {
	if s.dialect == SQLite {
		return placeholder.ReplaceAllString(q, "?")
	}
	return q
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS regions (name TEXT PRIMARY KEY)`,
	`CREATE TABLE IF NOT EXISTS vehicle_marks (name TEXT PRIMARY KEY)`,
	`CREATE TABLE IF NOT EXISTS vehicles (plate TEXT PRIMARY KEY, mark TEXT NOT NULL DEFAULT '')`,
	`CREATE TABLE IF NOT EXISTS accounts (login TEXT PRIMARY KEY, password TEXT NOT NULL, ` +
		`negative_balance BOOLEAN NOT NULL DEFAULT FALSE, disabled BOOLEAN NOT NULL DEFAULT FALSE)`,
}

// Migrate creates the reference tables if they are missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) Regions(ctx context.Context) ([]string, error) {
	return s.column(ctx, `SELECT name FROM regions ORDER BY name`)
}

func (s *SQLStore) VehicleMarks(ctx context.Context) ([]string, error) {
	return s.column(ctx, `SELECT name FROM vehicle_marks ORDER BY name`)
}

func (s *SQLStore) column(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.query(q))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLStore) PlateByValue(ctx context.Context, plate string) (regfake.Vehicle, bool, error) {
	var v regfake.Vehicle
	err := s.db.QueryRowContext(ctx, s.query(`SELECT plate, mark FROM vehicles WHERE plate = $1`), plate).
		Scan(&v.Plate, &v.Mark)
	if errors.Is(err, sql.ErrNoRows) {
		return regfake.Vehicle{}, false, nil
	}
	if err != nil {
		return regfake.Vehicle{}, false, err
	}
	return v, true, nil
}

// ValidAccount returns the first enabled account, in login order, whose
// balance state matches the negative_balance modifier.
func (s *SQLStore) ValidAccount(ctx context.Context, mods regfake.Modifiers) (regfake.Account, bool, error) {
	var acc regfake.Account
	err := s.db.QueryRowContext(ctx,
		s.query(`SELECT login, password FROM accounts WHERE negative_balance = $1 AND NOT disabled ORDER BY login LIMIT 1`),
		mods.Has(regfake.ModNegativeBalance),
	).Scan(&acc.Login, &acc.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return regfake.Account{}, false, nil
	}
	if err != nil {
		return regfake.Account{}, false, err
	}
	return acc, true, nil
}

func (s *SQLStore) AddRegions(ctx context.Context, names ...string) error {
	return s.insertNames(ctx, `INSERT INTO regions (name) VALUES ($1) ON CONFLICT DO NOTHING`, names)
}

func (s *SQLStore) AddVehicleMarks(ctx context.Context, marks ...string) error {
	return s.insertNames(ctx, `INSERT INTO vehicle_marks (name) VALUES ($1) ON CONFLICT DO NOTHING`, marks)
}

func (s *SQLStore) insertNames(ctx context.Context, q string, names []string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, name := range names {
			if name == "" {
				return ErrEmptyKey
			}
			if _, err := tx.ExecContext(ctx, s.query(q), name); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) AddVehicles(ctx context.Context, vehicles ...regfake.Vehicle) error {
	q := s.query(`INSERT INTO vehicles (plate, mark) VALUES ($1, $2) ` +
		`ON CONFLICT (plate) DO UPDATE SET mark = excluded.mark`)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, v := range vehicles {
			if v.Plate == "" {
				return ErrEmptyKey
			}
			if _, err := tx.ExecContext(ctx, q, v.Plate, v.Mark); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) AddAccounts(ctx context.Context, accounts ...Account) error {
	q := s.query(`INSERT INTO accounts (login, password, negative_balance, disabled) VALUES ($1, $2, $3, $4) ` +
		`ON CONFLICT (login) DO UPDATE SET password = excluded.password, ` +
		`negative_balance = excluded.negative_balance, disabled = excluded.disabled`)
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, a := range accounts {
			if a.Login == "" {
				return ErrEmptyKey
			}
			if _, err := tx.ExecContext(ctx, q, a.Login, a.Password, a.NegativeBalance, a.Disabled); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SQLStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
