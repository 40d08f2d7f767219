package regfake

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newTestEngine(opts ...Option) *Engine {
	opts = append([]Option{WithRand(NewSeededRand(7))}, opts...)
	return New(newStubFake(), opts...)
}

func TestGenerateKeysMatchTemplate(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	for _, name := range engine.Templates().Names() {
		t.Run(name, func(t *testing.T) {
			tmpl, _ := engine.Templates().Lookup(name)
			rec, err := engine.Generate(ctx, name, nil)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			if diff := cmp.Diff(tmpl.Fields, rec.Keys()); diff != "" {
				t.Errorf("record keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerateUnknownTypeIsEmpty(t *testing.T) {
	rec, err := newTestEngine().Generate(context.Background(), "RT_SPACESHIP", NewModifiers("male"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if rec.Len() != 0 {
		t.Errorf("unknown type produced %d fields", rec.Len())
	}
	data, _ := json.Marshal(rec)
	if string(data) != "{}" {
		t.Errorf("empty record JSON = %s, want {}", data)
	}
}

func TestGenerateCarWithAbkhazPlate(t *testing.T) {
	rec, err := newTestEngine().Generate(context.Background(), RTCar, NewModifiers("ABH"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	expected := []FieldName{"grnz", "country", "basis_of_ownership", "vehicle_doc_number",
		"vehicle_name", "vehicle_type", "date_of_issue_STS", "vehicle_max_mass", "vehicle_mark", "vehicle_vin"}
	if diff := cmp.Diff(expected, rec.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	plate, _ := rec.Get("grnz")
	s := plate.Any().(string)
	allowed := DefaultPlateFormats()["ABH"].Alphabet + "0123456789"
	for _, r := range s {
		if !strings.ContainsRune(allowed, r) {
			t.Errorf("plate %q has rune %q outside the ABH character set", s, r)
		}
	}
	if !strings.HasSuffix(s, "ABH") {
		t.Errorf("plate %q should end with ABH", s)
	}

	mark, _ := rec.Get("vehicle_mark")
	if mark.IsPresent() {
		t.Errorf("vehicle_mark without reference data = %v, want None", mark.Any())
	}
}

func TestGenerateLegalPersonIsAlwaysLegalEntity(t *testing.T) {
	engine := newTestEngine()
	for _, mods := range []Modifiers{nil, NewModifiers("male"), NewModifiers("female", "ANY")} {
		rec, err := engine.Generate(context.Background(), RTLegalPerson, mods)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		owner, _ := rec.Get("owner_type")
		if owner.Any() != OwnerLegalEntity {
			t.Errorf("owner_type with %v = %v, want %s", mods.Slice(), owner.Any(), OwnerLegalEntity)
		}
	}
}

func TestGenerateNaturalPersonUsesNeutralNames(t *testing.T) {
	rec, err := newTestEngine().Generate(context.Background(), RTNaturalPerson, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	first, _ := rec.Get("first_name")
	if first.Any() != "first:neutral" {
		t.Errorf("first_name = %v, want neutral form", first.Any())
	}
	owner, _ := rec.Get("owner_type")
	if owner.Any() != OwnerNaturalPerson {
		t.Errorf("owner_type = %v, want %s", owner.Any(), OwnerNaturalPerson)
	}
}

func TestGenerateSoleProprietorMergesDefaults(t *testing.T) {
	rec, err := newTestEngine().Generate(context.Background(), RTSoleProprietor, NewModifiers("female"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	first, _ := rec.Get("first_name")
	if first.Any() != "first:female" {
		t.Errorf("first_name = %v, want female form", first.Any())
	}
	owner, _ := rec.Get("owner_type")
	if owner.Any() != OwnerLegalEntity {
		t.Errorf("owner_type = %v, want %s", owner.Any(), OwnerLegalEntity)
	}
}

func TestGenerateUnknownFieldIsNone(t *testing.T) {
	ts := NewTemplates().MustRegister(Template{
		Name:   "RT_PARTIAL",
		Fields: []FieldName{"email", "favourite_colour"},
	})
	rec, err := newTestEngine(WithTemplates(ts)).Generate(context.Background(), "RT_PARTIAL", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"email":"jdoe@example.org","favourite_colour":null}` {
		t.Errorf("record JSON = %s", data)
	}
}

func TestGenerateSafeCarUsesReference(t *testing.T) {
	ref := &stubReference{takenPlates: 2, marks: []string{"SCANIA"}}
	rec, err := newTestEngine(WithReference(ref)).Generate(context.Background(), RTCarSafe, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if ref.plateLookups != 3 {
		t.Errorf("plate lookups = %d, want 3", ref.plateLookups)
	}
	mark, _ := rec.Get("vehicle_mark")
	if mark.Any() != "SCANIA" {
		t.Errorf("vehicle_mark = %v, want SCANIA", mark.Any())
	}
}

func TestGenerateNegativeBalanceAccount(t *testing.T) {
	ref := &stubReference{account: &Account{Login: "debtor", Password: "pw"}}
	rec, err := newTestEngine(WithReference(ref)).Generate(context.Background(), RTRealAccountNegativeBalance, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !ref.accountMods.Has(ModNegativeBalance) {
		t.Errorf("account lookup modifiers = %v, want negative_balance", ref.accountMods.Slice())
	}
	acc, _ := rec.Get("account_lk")
	if acc.Any() != (Account{Login: "debtor", Password: "pw"}) {
		t.Errorf("account_lk = %v", acc.Any())
	}
}

func TestGenerateFailureReturnsNoRecord(t *testing.T) {
	ref := &stubReference{takenPlates: -1}
	engine := newTestEngine(WithReference(ref), WithMaxPlateAttempts(2))

	rec, err := engine.Generate(context.Background(), RTCarSafe, nil)
	if rec != nil {
		t.Errorf("expected no record on failure, got %d fields", rec.Len())
	}
	if !errors.Is(err, ErrUniquenessExhausted) {
		t.Fatalf("got %v, want ErrUniquenessExhausted", err)
	}
	var ferr *FieldError
	if !errors.As(err, &ferr) || ferr.Field != "grnz" || ferr.RecordType != RTCarSafe {
		t.Errorf("error %v should name field grnz of %s", err, RTCarSafe)
	}
}

func TestGenerateCustomFields(t *testing.T) {
	calls := 0
	fields := DefaultFields()
	fields["email"] = FieldFunc(func(_ context.Context, _ *Env, mods Modifiers) (Value, error) {
		calls++
		return Some(strings.Join(mods.Slice(), ",")), nil
	})

	rec, err := newTestEngine(WithFields(fields)).Generate(context.Background(), RTLegalPerson, NewModifiers("x"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	email, _ := rec.Get("email")
	if email.Any() != "legal,llc,ooo,x" {
		t.Errorf("email = %v, want merged modifiers", email.Any())
	}
	if calls != 1 {
		t.Errorf("custom generator called %d times, want 1", calls)
	}
}

func TestGenerateConcurrentUse(t *testing.T) {
	engine := New(newStubFake(), WithReference(&stubReference{regions: []string{"A", "B"}}))

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := engine.Generate(context.Background(), RTCar, NewModifiers("ABH")); err != nil {
					errs <- err
					return
				}
				if _, err := engine.Generate(context.Background(), RTNaturalPerson, nil); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Generate failed: %v", err)
	}
}

func TestGenerateBatch(t *testing.T) {
	engine := newTestEngine()
	records, err := engine.GenerateBatch(context.Background(), RTCar, nil, 25, 4)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}
	if len(records) != 25 {
		t.Fatalf("got %d records, want 25", len(records))
	}
	for i, rec := range records {
		if rec == nil || rec.Len() != 10 {
			t.Fatalf("record %d incomplete", i)
		}
	}

	if _, err := engine.GenerateBatch(context.Background(), RTCar, nil, -1, 1); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestGenerateBatchStopsOnFailure(t *testing.T) {
	engine := newTestEngine(WithReference(&stubReference{takenPlates: -1}), WithMaxPlateAttempts(1))
	if _, err := engine.GenerateBatch(context.Background(), RTCarSafe, nil, 10, 3); !errors.Is(err, ErrUniquenessExhausted) {
		t.Errorf("got %v, want ErrUniquenessExhausted", err)
	}
}

func TestRecordJSONKeepsOrder(t *testing.T) {
	rec := NewRecord()
	rec.Set("z", Some(1))
	rec.Set("a", None)
	rec.Set("m", Some(Account{Login: "l", Password: "p"}))
	rec.Set("z", Some(2))

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"z":2,"a":null,"m":{"login":"l","password":"p"}}`
	if string(data) != want {
		t.Errorf("JSON = %s, want %s", data, want)
	}

	if diff := cmp.Diff(map[string]any{"z": 2, "a": nil, "m": Account{Login: "l", Password: "p"}}, rec.Map()); diff != "" {
		t.Errorf("Map mismatch (-want +got):\n%s", diff)
	}
}
