package regfake

import (
	"context"
	"time"
)

// FakeValueProvider supplies generic synthetic content. Every call may return
// a different value; implementations have no other side effects.
type FakeValueProvider interface {
	// Full names
	Name() string
	NameMale() string
	NameFemale() string

	// Name parts
	FirstName() string
	FirstNameMale() string
	FirstNameFemale() string
	LastName() string
	LastNameMale() string
	LastNameFemale() string
	MiddleName() string
	MiddleNameMale() string
	MiddleNameFemale() string

	// Business identifiers, as decimal strings
	BusinessINN() string
	BusinessOGRN() string

	// Contact and address data
	UserName() string
	SafeEmail() string
	PhoneNumber() string
	Address() string
	Country() string

	// Banking and misc words
	Bank() string
	Word() string

	// RandomInt returns an integer in [min, max].
	RandomInt(min, max int) int
	// RandomDigits returns a random decimal string of exactly n digits with no leading zero.
	RandomDigits(n int) string
	// Password returns a password of the given length using the selected character classes.
	Password(length int, special, digits, upper, lower bool) string
	// DateBetween returns a date between now+from and now+to.
	DateBetween(from, to time.Duration) time.Time
	// Format replaces '?' with a random letter from letters and '#' with a random digit.
	Format(pattern, letters string) string
}

// ReferenceData is the read side of a backing store holding real reference
// rows. Lookups that find nothing report ok == false rather than an error.
type ReferenceData interface {
	Regions(ctx context.Context) ([]string, error)
	VehicleMarks(ctx context.Context) ([]string, error)
	PlateByValue(ctx context.Context, plate string) (Vehicle, bool, error)
	ValidAccount(ctx context.Context, mods Modifiers) (Account, bool, error)
}
