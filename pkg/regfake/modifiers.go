package regfake

import "sort"

// Well-known modifier tokens. Generators ignore tokens they do not check for.
const (
	ModMale            = "male"
	ModFemale          = "female"
	ModIndividual      = "individual"
	ModSole            = "sole"
	ModProprietor      = "proprietor"
	ModLegal           = "legal"
	ModLLC             = "llc"
	ModOOO             = "ooo"
	ModUnique          = "UNIQUE"
	ModAny             = "ANY"
	ModNegativeBalance = "negative_balance"
)

// legalForms marks a record as belonging to a business rather than a private person.
var legalForms = []string{ModIndividual, ModSole, ModLegal}

// Modifiers is a set of modifier tokens.
type Modifiers map[string]struct{}

// NewModifiers builds a set from tokens. Duplicates collapse.
func NewModifiers(tokens ...string) Modifiers {
	m := make(Modifiers, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

// Has reports whether token is in the set. A nil set has nothing.
func (m Modifiers) Has(token string) bool {
	_, ok := m[token]
	return ok
}

// HasAny reports whether any of tokens is in the set.
func (m Modifiers) HasAny(tokens ...string) bool {
	for _, t := range tokens {
		if m.Has(t) {
			return true
		}
	}
	return false
}

// Slice returns the tokens sorted.
func (m Modifiers) Slice() []string {
	out := make([]string, 0, len(m))
	for t := range m {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets hold the same tokens.
func (m Modifiers) Equal(other Modifiers) bool {
	if len(m) != len(other) {
		return false
	}
	for t := range m {
		if !other.Has(t) {
			return false
		}
	}
	return true
}

// ResolveModifiers merges caller modifiers with template defaults.
// The result is the set union; nil inputs count as empty. Neither input is modified.
func ResolveModifiers(caller, defaults Modifiers) Modifiers {
	out := make(Modifiers, len(caller)+len(defaults))
	for t := range caller {
		out[t] = struct{}{}
	}
	for t := range defaults {
		out[t] = struct{}{}
	}
	return out
}
