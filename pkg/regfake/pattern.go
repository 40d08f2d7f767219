package regfake

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DefaultDigits is the digit set used by Compile.
const DefaultDigits = "0123456789"

// Compile synthesizes one random string from an escape-sequence pattern.
//
// Escapes:
//
//	\s  random lowercase letter from alphabet
//	\S  random uppercase letter from alphabet
//	\d  random digit, emitted half of the time
//	\D  random digit, always emitted
//	\n  random non-zero digit, emitted half of the time
//	\N  random non-zero digit, always emitted
//	\x  any other escaped character is emitted as-is
//
// An unescaped '.' draws from a pool holding digits and letters in roughly
// equal shares. Everything else is copied through. A trailing '\' with
// nothing after it is an *InvalidPatternError.
func Compile(r Rand, pattern, alphabet string) (string, error) {
	return CompileDigits(r, pattern, alphabet, DefaultDigits)
}

// CompileDigits is Compile with a caller-supplied digit set.
func CompileDigits(r Rand, pattern, alphabet, digits string) (string, error) {
	c := newCharset(alphabet, digits)
	src := []rune(pattern)

	var out strings.Builder
	out.Grow(len(pattern))

	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case ch == '\\':
			if i+1 >= len(src) {
				return "", &InvalidPatternError{Pattern: pattern, Offset: i, Reason: "trailing escape character"}
			}
			i++
			if err := c.emitEscape(r, &out, src[i]); err != nil {
				return "", &InvalidPatternError{Pattern: pattern, Offset: i, Reason: err.Error()}
			}
		case ch == '.':
			pool := c.mixed()
			if len(pool) == 0 {
				return "", &InvalidPatternError{Pattern: pattern, Offset: i, Reason: "empty alphabet and digit set"}
			}
			out.WriteRune(pick(r, pool))
		default:
			out.WriteRune(ch)
		}
	}

	return out.String(), nil
}

// charset holds the rune pools a single compilation draws from.
type charset struct {
	upper   []rune
	lower   []rune
	digits  []rune
	nonZero []rune
	pool    []rune // lazily built for '.'
}

func newCharset(alphabet, digits string) *charset {
	c := &charset{
		upper:  []rune(cases.Upper(language.Und).String(alphabet)),
		lower:  []rune(cases.Lower(language.Und).String(alphabet)),
		digits: []rune(digits),
	}
	c.nonZero = []rune(strings.ReplaceAll(digits, "0", ""))
	return c
}

type emptyPoolError string

func (e emptyPoolError) Error() string { return "empty " + string(e) + " set" }

func (c *charset) emitEscape(r Rand, out *strings.Builder, directive rune) error {
	var (
		from     []rune
		optional bool
		name     string
	)
	switch directive {
	case 's':
		from, name = c.lower, "alphabet"
	case 'S':
		from, name = c.upper, "alphabet"
	case 'd':
		from, optional, name = c.digits, true, "digit"
	case 'D':
		from, name = c.digits, "digit"
	case 'n':
		from, optional, name = c.nonZero, true, "non-zero digit"
	case 'N':
		from, name = c.nonZero, "non-zero digit"
	default:
		out.WriteRune(directive)
		return nil
	}

	if optional && r.IntN(2) == 0 {
		return nil
	}
	if len(from) == 0 {
		return emptyPoolError(name)
	}
	out.WriteRune(pick(r, from))
	return nil
}

// mixed returns digits repeated up to the letter-pool length followed by
// the upper and lower letters, so digits and letters are drawn about equally.
func (c *charset) mixed() []rune {
	if c.pool != nil {
		return c.pool
	}
	letters := make([]rune, 0, len(c.upper)+len(c.lower))
	letters = append(letters, c.upper...)
	letters = append(letters, c.lower...)

	pool := make([]rune, 0, 2*len(letters))
	if len(c.digits) > 0 {
		for len(pool) < len(letters) {
			pool = append(pool, c.digits...)
		}
		pool = pool[:len(letters)]
	}
	if len(letters) == 0 {
		pool = append(pool, c.digits...)
	}
	c.pool = append(pool, letters...)
	return c.pool
}
