// Package fakeprovider is the default regfake.FakeValueProvider. Human data
// comes from go-faker; business identifiers carry valid checksums; country
// names are localised through golang.org/x/text.
package fakeprovider

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/go-faker/faker/v4"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"pkg.jsn.cam/regfake/pkg/regfake"
)

var _ regfake.FakeValueProvider = (*Provider)(nil)

// Provider implements regfake.FakeValueProvider.
type Provider struct {
	locale    language.Tag
	countries display.Namer

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

// Option configures a Provider.
type Option func(*Provider)

// WithLocale sets the language country names are rendered in.
func WithLocale(tag language.Tag) Option {
	return func(p *Provider) { p.locale = tag }
}

// WithSeed makes the provider's own draws reproducible. Values delegated to
// go-faker are not affected.
func WithSeed(seed uint64) Option {
	return func(p *Provider) { p.rnd = rand.New(rand.NewPCG(seed, seed>>1|1)) }
}

// WithClock replaces time.Now for date generation.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// New creates a Provider. The default locale is Russian.
func New(opts ...Option) *Provider {
	p := &Provider{
		locale: language.Russian,
		rnd:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.countries = display.Regions(p.locale)
	return p
}

// Locale returns the language country names are rendered in.
func (p *Provider) Locale() language.Tag {
	return p.locale
}

func (p *Provider) intN(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.IntN(n)
}

func (p *Provider) int64N(n int64) int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rnd.Int64N(n)
}

func (p *Provider) choice(items []string) string {
	return items[p.intN(len(items))]
}

// Names

func (p *Provider) Name() string { return faker.Name() }

func (p *Provider) NameMale() string {
	return fmt.Sprintf("%s %s", faker.FirstNameMale(), faker.LastName())
}

func (p *Provider) NameFemale() string {
	return fmt.Sprintf("%s %s", faker.FirstNameFemale(), faker.LastName())
}

func (p *Provider) FirstName() string       { return faker.FirstName() }
func (p *Provider) FirstNameMale() string   { return faker.FirstNameMale() }
func (p *Provider) FirstNameFemale() string { return faker.FirstNameFemale() }
func (p *Provider) LastName() string        { return faker.LastName() }
func (p *Provider) LastNameMale() string    { return faker.LastName() }
func (p *Provider) LastNameFemale() string  { return faker.LastName() }

func (p *Provider) MiddleName() string {
	if p.intN(2) == 0 {
		return p.MiddleNameMale()
	}
	return p.MiddleNameFemale()
}

func (p *Provider) MiddleNameMale() string {
	return patronymics[p.intN(len(patronymics))].male
}

func (p *Provider) MiddleNameFemale() string {
	return patronymics[p.intN(len(patronymics))].female
}

// Contact data

func (p *Provider) UserName() string { return faker.Username() }

// SafeEmail returns an address on a reserved example domain.
func (p *Provider) SafeEmail() string {
	return strings.ToLower(faker.Username()) + "@" + p.choice(safeEmailDomains)
}

func (p *Provider) PhoneNumber() string { return faker.E164PhoneNumber() }

func (p *Provider) Address() string {
	a := faker.GetRealAddress()
	return fmt.Sprintf("%s, %s, %s %s", a.Address, a.City, a.State, a.PostalCode)
}

// Country returns a country name in the provider's locale.
func (p *Provider) Country() string {
	region := language.MustParseRegion(p.choice(countryCodes))
	if name := p.countries.Name(region); name != "" {
		return name
	}
	return region.String()
}

// Misc

func (p *Provider) Bank() string { return p.choice(banks) }
func (p *Provider) Word() string { return faker.Word() }

func (p *Provider) RandomInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + p.intN(max-min+1)
}

func (p *Provider) RandomDigits(n int) string {
	if n <= 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(n)
	b.WriteByte(byte('1' + p.intN(9)))
	for i := 1; i < n; i++ {
		b.WriteByte(byte('0' + p.intN(10)))
	}
	return b.String()
}

// DateBetween returns a day between now+from and now+to, truncated to midnight.
func (p *Provider) DateBetween(from, to time.Duration) time.Time {
	if to < from {
		from, to = to, from
	}
	offset := from + time.Duration(p.int64N(int64(to-from)+1))
	t := p.now().Add(offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Format replaces '?' with a letter drawn from letters and '#' with a digit.
func (p *Provider) Format(pattern, letters string) string {
	pool := []rune(letters)
	var b strings.Builder
	b.Grow(len(pattern))
	for _, r := range pattern {
		switch {
		case r == '?' && len(pool) > 0:
			b.WriteRune(pool[p.intN(len(pool))])
		case r == '#':
			b.WriteByte(byte('0' + p.intN(10)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
