package regfake

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Env is what a field generator may use: the fake value provider, the
// optional reference data, and the shared random source.
type Env struct {
	Fake FakeValueProvider
	// Reference is nil when no backing store is configured.
	Reference ReferenceData
	Rand      Rand

	Plates           PlateFormats
	MaxPlateAttempts int
}

// FieldGenerator produces the value of one field. It sees only the merged
// modifiers of the record being built, never sibling field values.
type FieldGenerator interface {
	Generate(ctx context.Context, env *Env, mods Modifiers) (Value, error)
}

// FieldFunc adapts a plain function to FieldGenerator.
type FieldFunc func(ctx context.Context, env *Env, mods Modifiers) (Value, error)

func (f FieldFunc) Generate(ctx context.Context, env *Env, mods Modifiers) (Value, error) {
	return f(ctx, env, mods)
}

// Fields maps field names to their generators.
type Fields map[FieldName]FieldGenerator

// Lookup returns the generator for name.
func (fs Fields) Lookup(name FieldName) (FieldGenerator, bool) {
	g, ok := fs[name]
	return g, ok
}

// Fixed values of the constant fields.
const (
	DefaultCountry      = "Russian Federation"
	OwnershipPrivate    = "ownership: private"
	DefaultVehicleName  = "IVECO"
	DefaultVehicleType  = "car transporter"
	OwnerLegalEntity    = "legal entity"
	OwnerNaturalPerson  = "natural person"
	vinFormat           = "????###?##?######"
	vinLetters          = "ABCDEFJKMNPQRSTUXWZ"
	stsDateLayout       = "01.02.2006"
	stsIssuedFrom       = -730 * 24 * time.Hour
	stsIssuedTo         = -365 * 24 * time.Hour
	vehicleMaxMassLow   = 15000
	vehicleMaxMassHigh  = 30000
	defaultPasswordLen  = 8
	innSuffixLow        = 10
	innSuffixHigh       = 99
	ogrnChecksumModulus = 13
)

// DefaultFields returns the built-in field generator table.
func DefaultFields() Fields {
	return Fields{
		"full_name": personName{
			neutral: FakeValueProvider.Name,
			male:    FakeValueProvider.NameMale,
			female:  FakeValueProvider.NameFemale,
		},
		"first_name": personName{
			neutral: FakeValueProvider.FirstName,
			male:    FakeValueProvider.FirstNameMale,
			female:  FakeValueProvider.FirstNameFemale,
		},
		"last_name": personName{
			neutral: FakeValueProvider.LastName,
			male:    FakeValueProvider.LastNameMale,
			female:  FakeValueProvider.LastNameFemale,
		},
		"middle_name": personName{
			neutral: FakeValueProvider.MiddleName,
			male:    FakeValueProvider.MiddleNameMale,
			female:  FakeValueProvider.MiddleNameFemale,
		},

		"inn":  innField{},
		"ogrn": ogrnField{},

		"client_short_name":    fakeString(FakeValueProvider.UserName),
		"email":                fakeString(FakeValueProvider.SafeEmail),
		"phone_number":         FieldFunc(phoneNumber),
		"registration_address": fakeString(FakeValueProvider.Address),
		"locale_address":       fakeString(FakeValueProvider.Address),
		"region":               referenceList(ReferenceData.Regions),
		"bank_name":            fakeString(FakeValueProvider.Bank),
		"bank_bic":             digitString(9),
		"bank_kor_num":         digitString(21),
		"bank_client_num":      digitString(20),
		"bank_rec_name":        fakeString(FakeValueProvider.Word),
		"password":             FieldFunc(password),

		"grnz":               plateNumber{},
		"country":            FieldFunc(country),
		"basis_of_ownership": constant(OwnershipPrivate),
		"vehicle_doc_number": digitString(10),
		"vehicle_name":       constant(DefaultVehicleName),
		"vehicle_type":       constant(DefaultVehicleType),
		"date_of_issue_STS":  FieldFunc(stsIssueDate),
		"vehicle_max_mass":   FieldFunc(vehicleMaxMass),
		"vehicle_mark":       referenceList(ReferenceData.VehicleMarks),
		"vehicle_vin":        FieldFunc(vehicleVIN),

		"owner_type": FieldFunc(ownerType),
		"account_lk": FieldFunc(realAccount),
	}
}

// personName picks a name variant by gender modifier. With no modifiers the
// neutral form is used; with modifiers but no gender tag the male form is.
type personName struct {
	neutral func(FakeValueProvider) string
	male    func(FakeValueProvider) string
	female  func(FakeValueProvider) string
}

func (p personName) Generate(_ context.Context, env *Env, mods Modifiers) (Value, error) {
	switch {
	case len(mods) == 0:
		return Some(p.neutral(env.Fake)), nil
	case mods.Has(ModMale):
		return Some(p.male(env.Fake)), nil
	case mods.Has(ModFemale):
		return Some(p.female(env.Fake)), nil
	default:
		return Some(p.male(env.Fake)), nil
	}
}

// innField scales the base INN up with two random digits for business records.
type innField struct{}

func (innField) Generate(_ context.Context, env *Env, mods Modifiers) (Value, error) {
	base, err := parseIdentifier("inn", env.Fake.BusinessINN())
	if err != nil {
		return None, err
	}
	if !mods.HasAny(legalForms...) {
		return Some(strconv.FormatInt(base, 10)), nil
	}
	inn := base*100 + int64(env.Fake.RandomInt(innSuffixLow, innSuffixHigh))
	return Some(strconv.FormatInt(inn, 10)), nil
}

// ogrnField appends a random digit and a mod-13 check digit to the base OGRN
// for business records.
type ogrnField struct{}

func (ogrnField) Generate(_ context.Context, env *Env, mods Modifiers) (Value, error) {
	base, err := parseIdentifier("ogrn", env.Fake.BusinessOGRN())
	if err != nil {
		return None, err
	}
	if !mods.HasAny(legalForms...) {
		return Some(strconv.FormatInt(base, 10)), nil
	}
	ogrn := base*10 + int64(env.Fake.RandomInt(0, 9))
	ogrn = ogrn*10 + OGRNCheckDigit(ogrn)
	return Some(strconv.FormatInt(ogrn, 10)), nil
}

// OGRNCheckDigit returns the last decimal digit of v mod 13.
func OGRNCheckDigit(v int64) int64 {
	return (v % ogrnChecksumModulus) % 10
}

func parseIdentifier(kind, s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse base %s %q: %w", kind, s, err)
	}
	return v, nil
}

type fakeString func(FakeValueProvider) string

func (f fakeString) Generate(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(f(env.Fake)), nil
}

type digitString int

func (n digitString) Generate(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(env.Fake.RandomDigits(int(n))), nil
}

type constant string

func (c constant) Generate(context.Context, *Env, Modifiers) (Value, error) {
	return Some(string(c)), nil
}

// referenceList draws a uniform element from a reference collection.
// It yields None when no store is configured or the collection is empty.
type referenceList func(ReferenceData, context.Context) ([]string, error)

func (load referenceList) Generate(ctx context.Context, env *Env, _ Modifiers) (Value, error) {
	if env.Reference == nil {
		return None, nil
	}
	items, err := load(env.Reference, ctx)
	if err != nil {
		return None, err
	}
	if len(items) == 0 {
		return None, nil
	}
	return Some(pick(env.Rand, items)), nil
}

func phoneNumber(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	raw := env.Fake.PhoneNumber()
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return Some(b.String()), nil
}

func password(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(env.Fake.Password(defaultPasswordLen, false, true, true, true)), nil
}

func country(_ context.Context, env *Env, mods Modifiers) (Value, error) {
	if mods.Has(ModAny) {
		return Some(env.Fake.Country()), nil
	}
	return Some(DefaultCountry), nil
}

func stsIssueDate(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(env.Fake.DateBetween(stsIssuedFrom, stsIssuedTo).Format(stsDateLayout)), nil
}

func vehicleMaxMass(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(env.Fake.RandomInt(vehicleMaxMassLow, vehicleMaxMassHigh)), nil
}

func vehicleVIN(_ context.Context, env *Env, _ Modifiers) (Value, error) {
	return Some(env.Fake.Format(vinFormat, vinLetters)), nil
}

func ownerType(_ context.Context, _ *Env, mods Modifiers) (Value, error) {
	if mods.HasAny(legalForms...) {
		return Some(OwnerLegalEntity), nil
	}
	return Some(OwnerNaturalPerson), nil
}

func realAccount(ctx context.Context, env *Env, mods Modifiers) (Value, error) {
	if env.Reference == nil {
		return None, nil
	}
	acc, ok, err := env.Reference.ValidAccount(ctx, mods)
	if err != nil {
		return None, err
	}
	if !ok {
		return None, nil
	}
	return Some(acc), nil
}
