// Package refdata provides regfake.ReferenceData implementations: a
// key/value store over pkg/storage and a SQL store for PostgreSQL or SQLite.
package refdata

import (
	"context"
	"errors"

	"pkg.jsn.cam/regfake/pkg/regfake"
)

// Sentinel errors for common error conditions
var (
	ErrUnknownDialect = errors.New("unknown SQL dialect")
	ErrEmptyKey       = errors.New("reference row has an empty key")
)

// Account is a provisioned account row.
type Account struct {
	Login           string `json:"login" yaml:"login"`
	Password        string `json:"password" yaml:"password"`
	NegativeBalance bool   `json:"negative_balance,omitempty" yaml:"negative_balance"`
	Disabled        bool   `json:"disabled,omitempty" yaml:"disabled"`
}

// Credentials strips an account row down to its login pair.
func (a Account) Credentials() regfake.Account {
	return regfake.Account{Login: a.Login, Password: a.Password}
}

// matches reports whether the account can serve a lookup with mods.
// Disabled accounts never match; negative_balance selects indebted accounts.
func (a Account) matches(mods regfake.Modifiers) bool {
	if a.Disabled {
		return false
	}
	return a.NegativeBalance == mods.Has(regfake.ModNegativeBalance)
}

// Writer is the write side shared by the stores, used by seeding.
type Writer interface {
	AddRegions(ctx context.Context, names ...string) error
	AddVehicleMarks(ctx context.Context, marks ...string) error
	AddVehicles(ctx context.Context, vehicles ...regfake.Vehicle) error
	AddAccounts(ctx context.Context, accounts ...Account) error
}

// Store is a reference data store that can also be written to and closed.
type Store interface {
	regfake.ReferenceData
	Writer
	Close() error
}
