package fabrik

import "github.com/syssam/fabrik/schema"

// A Trait is a named overlay of field overrides, field generators, and
// lifecycle callbacks applicable on top of a factory definition. Traits are
// built once at declaration time and never mutated.
type Trait struct {
	name            string
	overrides       map[*schema.Column]any
	generators      map[*schema.Column]ValueGenerator
	beforeCreate    []Callback
	afterCreate     []Callback
	transientBefore []TransientCallback
	transientAfter  []TransientCallback
}

// Name returns the trait name.
func (t *Trait) Name() string { return t.name }

// A TraitBuilder populates one trait inside a definition declaration:
//
//	ctx.Define(Author, func(f *fabrik.DefinitionBuilder) {
//		f.Trait("european", func(t *fabrik.TraitBuilder) {
//			t.Set(Author.Column("country"), "DE")
//		})
//	})
type TraitBuilder struct {
	trait *Trait
}

func newTraitBuilder(name string) *TraitBuilder {
	return &TraitBuilder{trait: &Trait{
		name:       name,
		overrides:  make(map[*schema.Column]any),
		generators: make(map[*schema.Column]ValueGenerator),
	}}
}

// Set records a field override applied when the trait is active.
func (b *TraitBuilder) Set(c *schema.Column, v any) *TraitBuilder {
	b.trait.overrides[c] = v
	return b
}

// WithGenerator records a field generator applied when the trait is active.
func (b *TraitBuilder) WithGenerator(c *schema.Column, g ValueGenerator) *TraitBuilder {
	b.trait.generators[c] = g
	return b
}

// BeforeCreate appends a callback run before record persistence.
func (b *TraitBuilder) BeforeCreate(cb Callback) *TraitBuilder {
	b.trait.beforeCreate = append(b.trait.beforeCreate, cb)
	return b
}

// AfterCreate appends a callback run after record persistence.
func (b *TraitBuilder) AfterCreate(cb Callback) *TraitBuilder {
	b.trait.afterCreate = append(b.trait.afterCreate, cb)
	return b
}

// TransientBeforeCreate appends a transient-aware callback run before record
// persistence.
func (b *TraitBuilder) TransientBeforeCreate(cb TransientCallback) *TraitBuilder {
	b.trait.transientBefore = append(b.trait.transientBefore, cb)
	return b
}

// TransientAfterCreate appends a transient-aware callback run after record
// persistence.
func (b *TraitBuilder) TransientAfterCreate(cb TransientCallback) *TraitBuilder {
	b.trait.transientAfter = append(b.trait.transientAfter, cb)
	return b
}

// build seals the trait with defensive copies.
func (b *TraitBuilder) build() *Trait {
	return &Trait{
		name:            b.trait.name,
		overrides:       cloneMap(b.trait.overrides),
		generators:      cloneMap(b.trait.generators),
		beforeCreate:    cloneSlice(b.trait.beforeCreate),
		afterCreate:     cloneSlice(b.trait.afterCreate),
		transientBefore: cloneSlice(b.trait.transientBefore),
		transientAfter:  cloneSlice(b.trait.transientAfter),
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneSlice[E any](s []E) []E {
	out := make([]E, len(s))
	copy(out, s)
	return out
}
