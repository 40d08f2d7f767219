package regfake

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Engine builds records from templates. One Engine is meant to be built by
// the host application and shared; Generate is safe for concurrent use as
// long as the configured provider and reference data are.
type Engine struct {
	templates *Templates
	fields    Fields
	env       Env
}

// Option configures an Engine.
type Option func(*Engine)

// WithReference sets the reference data used by region, vehicle_mark,
// account_lk and UNIQUE plate lookups.
func WithReference(ref ReferenceData) Option {
	return func(e *Engine) { e.env.Reference = ref }
}

// WithRand replaces the random source. It must be safe for concurrent use
// if the engine is shared between goroutines.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.env.Rand = r }
}

// WithTemplates replaces the template registry.
func WithTemplates(ts *Templates) Option {
	return func(e *Engine) { e.templates = ts }
}

// WithFields replaces the field generator table.
func WithFields(fs Fields) Option {
	return func(e *Engine) { e.fields = fs }
}

// WithPlateFormats replaces the plate format table.
func WithPlateFormats(pf PlateFormats) Option {
	return func(e *Engine) { e.env.Plates = pf }
}

// WithMaxPlateAttempts caps the uniqueness lookups per plate.
func WithMaxPlateAttempts(n int) Option {
	return func(e *Engine) { e.env.MaxPlateAttempts = n }
}

// New creates an Engine around a fake value provider.
func New(fake FakeValueProvider, opts ...Option) *Engine {
	e := &Engine{
		templates: DefaultTemplates(),
		fields:    DefaultFields(),
		env: Env{
			Fake:             fake,
			Plates:           DefaultPlateFormats(),
			MaxPlateAttempts: DefaultMaxPlateAttempts,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.env.Rand == nil {
		e.env.Rand = NewLockedRand(nil)
	}
	return e
}

// Templates returns the engine's template registry.
func (e *Engine) Templates() *Templates {
	return e.templates
}

// PlateFormats returns the engine's plate table.
func (e *Engine) PlateFormats() PlateFormats {
	return e.env.Plates
}

// Generate builds one record of the named type. An unknown type yields an
// empty record, and a field without a generator yields None. If any
// generator fails, no record is returned.
func (e *Engine) Generate(ctx context.Context, recordType string, mods Modifiers) (*Record, error) {
	rec := NewRecord()
	tmpl, ok := e.templates.Lookup(recordType)
	if !ok {
		return rec, nil
	}

	effective := ResolveModifiers(mods, tmpl.Defaults)
	for _, field := range tmpl.Fields {
		gen, ok := e.fields.Lookup(field)
		if !ok {
			rec.Set(field, None)
			continue
		}
		v, err := gen.Generate(ctx, &e.env, effective)
		if err != nil {
			return nil, &FieldError{RecordType: recordType, Field: field, Err: err}
		}
		rec.Set(field, v)
	}
	return rec, nil
}

// GenerateBatch builds n records of the same type on up to workers
// goroutines. Records are returned in index order. The first failure cancels
// the rest.
func (e *Engine) GenerateBatch(ctx context.Context, recordType string, mods Modifiers, n, workers int) ([]*Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative record count %d", n)
	}
	if workers <= 0 {
		workers = 1
	}

	records := make([]*Record, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range n {
		g.Go(func() error {
			rec, err := e.Generate(gctx, recordType, mods)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			records[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
