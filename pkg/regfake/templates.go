package regfake

import (
	"fmt"
	"sort"
)

// Record type names.
const (
	RTNone                       = "RT_NONE"
	RTNaturalPerson              = "RT_NATURAL_PERSON"
	RTSoleProprietor             = "RT_SOLE_PROPRIETOR"
	RTLegalPerson                = "RT_LEGAL_PERSON"
	RTCar                        = "RT_CAR"
	RTCarSafe                    = "RT_CAR_SAFE"
	RTRealAccount                = "RT_REAL_ACCOUNT"
	RTRealAccountNegativeBalance = "RT_REAL_ACCOUNT_NEGATIVE_BALANCE"
)

// Template declares which fields a record type holds and its default modifiers.
type Template struct {
	Name        string
	Description string
	Fields      []FieldName
	Defaults    Modifiers
}

// Templates is a registry of record templates keyed by name.
type Templates struct {
	byName map[string]Template
}

// NewTemplates returns an empty registry.
func NewTemplates() *Templates {
	return &Templates{byName: make(map[string]Template)}
}

// Register adds t to the registry. Field names must be unique within t.
func (ts *Templates) Register(t Template) error {
	if t.Name == "" {
		return ErrEmptyTemplateName
	}
	if _, exists := ts.byName[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.Name)
	}

	seen := make(map[FieldName]struct{}, len(t.Fields))
	for _, f := range t.Fields {
		if _, dup := seen[f]; dup {
			return fmt.Errorf("%w: %s in %s", ErrDuplicateField, f, t.Name)
		}
		seen[f] = struct{}{}
	}

	fields := make([]FieldName, len(t.Fields))
	copy(fields, t.Fields)
	t.Fields = fields
	t.Defaults = ResolveModifiers(nil, t.Defaults)
	ts.byName[t.Name] = t
	return nil
}

// MustRegister is Register that panics on error. Used to build static tables.
func (ts *Templates) MustRegister(t Template) *Templates {
	if err := ts.Register(t); err != nil {
		panic(err)
	}
	return ts
}

// Lookup returns the template registered under name.
func (ts *Templates) Lookup(name string) (Template, bool) {
	t, ok := ts.byName[name]
	return t, ok
}

// Names returns all registered template names, sorted.
func (ts *Templates) Names() []string {
	names := make([]string, 0, len(ts.byName))
	for name := range ts.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var personFields = []FieldName{
	"first_name", "last_name", "middle_name", "inn", "ogrn",
	"client_short_name", "email", "phone_number", "registration_address",
	"locale_address", "region", "bank_name", "bank_bic", "bank_kor_num",
	"bank_client_num", "bank_rec_name", "password", "owner_type",
}

var legalPersonFields = []FieldName{
	"first_name", "last_name", "middle_name", "inn", "ogrn",
	"client_short_name", "email", "phone_number", "registration_address",
	"locale_address", "bank_name", "bank_bic", "bank_kor_num",
	"bank_client_num", "bank_rec_name", "password", "owner_type",
}

var carFields = []FieldName{
	"grnz", "country", "basis_of_ownership", "vehicle_doc_number", "vehicle_name",
	"vehicle_type", "date_of_issue_STS", "vehicle_max_mass", "vehicle_mark", "vehicle_vin",
}

// DefaultTemplates returns the built-in record templates.
func DefaultTemplates() *Templates {
	return NewTemplates().
		MustRegister(Template{
			Name:        RTNone,
			Description: "Unspecified client; person fields without defaults",
			Fields:      personFields,
		}).
		MustRegister(Template{
			Name:        RTNaturalPerson,
			Description: "Natural person",
			Fields:      personFields,
		}).
		MustRegister(Template{
			Name:        RTSoleProprietor,
			Description: "Sole proprietor",
			Fields:      personFields,
			Defaults:    NewModifiers(ModIndividual, ModSole, ModProprietor),
		}).
		MustRegister(Template{
			Name:        RTLegalPerson,
			Description: "Legal entity",
			Fields:      legalPersonFields,
			Defaults:    NewModifiers(ModLegal, ModLLC, ModOOO),
		}).
		MustRegister(Template{
			Name:        RTCar,
			Description: "Vehicle",
			Fields:      carFields,
		}).
		MustRegister(Template{
			Name:        RTCarSafe,
			Description: "Vehicle with a plate number not yet in the reference data",
			Fields:      carFields,
			Defaults:    NewModifiers(ModUnique),
		}).
		MustRegister(Template{
			Name:        RTRealAccount,
			Description: "Real provisioned login and password",
			Fields:      []FieldName{"account_lk"},
		}).
		MustRegister(Template{
			Name:        RTRealAccountNegativeBalance,
			Description: "Real provisioned login and password with a postpaid debt",
			Fields:      []FieldName{"account_lk"},
			Defaults:    NewModifiers(ModNegativeBalance),
		})
}
