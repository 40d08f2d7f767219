package regfake

import (
	"context"
	"strings"
	"sync"
	"time"
)

// stubFake returns fixed, recognisable values so tests can tell which
// provider method a generator called.
type stubFake struct {
	inn       string
	ogrn      string
	randomInt func(min, max int) int
}

func newStubFake() *stubFake {
	return &stubFake{inn: "7707083893", ogrn: "1027700132195"}
}

func (s *stubFake) Name() string             { return "name:neutral" }
func (s *stubFake) NameMale() string         { return "name:male" }
func (s *stubFake) NameFemale() string       { return "name:female" }
func (s *stubFake) FirstName() string        { return "first:neutral" }
func (s *stubFake) FirstNameMale() string    { return "first:male" }
func (s *stubFake) FirstNameFemale() string  { return "first:female" }
func (s *stubFake) LastName() string         { return "last:neutral" }
func (s *stubFake) LastNameMale() string     { return "last:male" }
func (s *stubFake) LastNameFemale() string   { return "last:female" }
func (s *stubFake) MiddleName() string       { return "middle:neutral" }
func (s *stubFake) MiddleNameMale() string   { return "middle:male" }
func (s *stubFake) MiddleNameFemale() string { return "middle:female" }
func (s *stubFake) BusinessINN() string      { return s.inn }
func (s *stubFake) BusinessOGRN() string     { return s.ogrn }
func (s *stubFake) UserName() string         { return "jdoe" }
func (s *stubFake) SafeEmail() string        { return "jdoe@example.org" }
func (s *stubFake) PhoneNumber() string      { return "+7 (495) 123-45-67" }
func (s *stubFake) Address() string          { return "1 Main St" }
func (s *stubFake) Country() string          { return "Abkhazia" }
func (s *stubFake) Bank() string             { return "Test Bank" }
func (s *stubFake) Word() string             { return "word" }

func (s *stubFake) RandomInt(min, max int) int {
	if s.randomInt != nil {
		return s.randomInt(min, max)
	}
	return min
}

func (s *stubFake) RandomDigits(n int) string {
	return "1" + strings.Repeat("0", n-1)
}

func (s *stubFake) Password(length int, _, _, _, _ bool) string {
	return strings.Repeat("p", length)
}

func (s *stubFake) DateBetween(_, _ time.Duration) time.Time {
	return time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
}

func (s *stubFake) Format(pattern, _ string) string {
	return pattern
}

// stubReference is an in-memory ReferenceData. takenPlates counts down:
// the first takenPlates plate lookups report the plate as taken.
type stubReference struct {
	mu           sync.Mutex
	regions      []string
	marks        []string
	takenPlates  int
	plateLookups int
	lookedUp     []string
	account      *Account
	accountMods  Modifiers
	err          error
}

func (s *stubReference) Regions(context.Context) ([]string, error) {
	return s.regions, s.err
}

func (s *stubReference) VehicleMarks(context.Context) ([]string, error) {
	return s.marks, s.err
}

func (s *stubReference) PlateByValue(_ context.Context, plate string) (Vehicle, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return Vehicle{}, false, s.err
	}
	s.plateLookups++
	s.lookedUp = append(s.lookedUp, plate)
	if s.takenPlates < 0 || s.plateLookups <= s.takenPlates {
		return Vehicle{Plate: plate}, true, nil
	}
	return Vehicle{}, false, nil
}

func (s *stubReference) ValidAccount(_ context.Context, mods Modifiers) (Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accountMods = mods
	if s.err != nil {
		return Account{}, false, s.err
	}
	if s.account == nil {
		return Account{}, false, nil
	}
	return *s.account, true, nil
}

// countingRand wraps a Rand and counts draws.
type countingRand struct {
	Rand
	mu    sync.Mutex
	draws int
}

func (c *countingRand) IntN(n int) int {
	c.mu.Lock()
	c.draws++
	c.mu.Unlock()
	return c.Rand.IntN(n)
}
