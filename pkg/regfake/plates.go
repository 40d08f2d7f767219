package regfake

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// DefaultCountryCode is used when no modifier names a known plate country.
const DefaultCountryCode = "RU"

// DefaultMaxPlateAttempts bounds the uniqueness lookups of one plate.
const DefaultMaxPlateAttempts = 100

// PlateFormat describes how a country's plate numbers look.
type PlateFormat struct {
	Country string `json:"country"`
	// Pattern is a Compile pattern.
	Pattern string `json:"pattern"`
	// Alphabet holds the Latin look-alike letters the plate is drawn from.
	Alphabet string `json:"alphabet"`
	// NativeAlphabet holds the same letters in the country's own script.
	NativeAlphabet string `json:"native_alphabet"`
}

// PlateFormats is a plate format table keyed by country code.
type PlateFormats map[string]PlateFormat

// DefaultPlateFormats returns the built-in plate table.
func DefaultPlateFormats() PlateFormats {
	return PlateFormats{
		"RU": {
			Country:        "RU",
			Pattern:        `\S\D\D\D\S\S\n\N\D`,
			Alphabet:       "ABEKMHOPCTYX",
			NativeAlphabet: "АВЕКМНОРСТУХ",
		},
		"ABH": {
			Country:        "ABH",
			Pattern:        `\S\D\D\D\S\S\ABH`,
			Alphabet:       "AБBEKMHOPCTYX",
			NativeAlphabet: "АБВЕКМНОРСТУХ",
		},
	}
}

// Codes returns the country codes in the table, sorted.
func (pf PlateFormats) Codes() []string {
	codes := make([]string, 0, len(pf))
	for code := range pf {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// countryFor picks the plate country named by mods. Several matches are
// resolved by a uniform random choice; no match means DefaultCountryCode.
func (pf PlateFormats) countryFor(r Rand, mods Modifiers) string {
	var matches []string
	for _, code := range pf.Codes() {
		if mods.Has(code) {
			matches = append(matches, code)
		}
	}
	if len(matches) == 0 {
		return DefaultCountryCode
	}
	return pick(r, matches)
}

// plateNumber generates a vehicle plate number ("grnz"). With UNIQUE it
// recompiles until the reference data no longer knows the candidate.
type plateNumber struct{}

func (plateNumber) Generate(ctx context.Context, env *Env, mods Modifiers) (Value, error) {
	code := env.Plates.countryFor(env.Rand, mods)
	format, ok := env.Plates[code]
	if !ok {
		return None, fmt.Errorf("no plate format for country %q", code)
	}

	plate, err := Compile(env.Rand, format.Pattern, format.Alphabet)
	if err != nil {
		return None, err
	}
	if !mods.Has(ModUnique) {
		return Some(plate), nil
	}
	if env.Reference == nil {
		log.Printf("[ENGINE] Warning: UNIQUE plate requested without reference data; %s is unverified", plate)
		return Some(plate), nil
	}

	limit := env.MaxPlateAttempts
	if limit <= 0 {
		limit = DefaultMaxPlateAttempts
	}
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return None, err
		}
		_, taken, err := env.Reference.PlateByValue(ctx, plate)
		if err != nil {
			return None, fmt.Errorf("look up plate %s: %w", plate, err)
		}
		if !taken {
			return Some(plate), nil
		}
		if attempt == limit {
			break
		}
		if plate, err = Compile(env.Rand, format.Pattern, format.Alphabet); err != nil {
			return None, err
		}
	}
	return None, fmt.Errorf("%w: %d %s plates already taken", ErrUniquenessExhausted, limit, code)
}
