package fabrik

import "github.com/syssam/fabrik/schema"

// A Definition is a reusable recipe for populating rows of one table. It
// stores default field values, per-field generators, named traits, and
// lifecycle callbacks, and optionally names another registered definition to
// inherit from. Definitions are immutable once built via DefinitionBuilder.
type Definition struct {
	table           *schema.Table
	parentName      string
	defaultValues   map[*schema.Column]any
	generators      map[*schema.Column]ValueGenerator
	traits          map[string]*Trait
	beforeCreate    []Callback
	afterCreate     []Callback
	transientBefore []TransientCallback
	transientAfter  []TransientCallback
}

// Table returns the table this definition populates.
func (d *Definition) Table() *schema.Table { return d.table }

// ParentName returns the name of the parent definition, or "" for a root
// definition. A resolved (inheritance-flattened) definition always returns "".
func (d *Definition) ParentName() string { return d.parentName }

// HasTrait reports whether a trait with the given name is declared.
func (d *Definition) HasTrait(name string) bool {
	_, ok := d.traits[name]
	return ok
}

// TraitNames returns the names of all declared traits.
func (d *Definition) TraitNames() []string {
	names := make([]string, 0, len(d.traits))
	for name := range d.traits {
		names = append(names, name)
	}
	return names
}

// resolveAttributes flattens base defaults and generators with the active
// traits into one attribute map. Tiers, highest first: active traits in
// request order (a later trait beats an earlier one on the same column), then
// the base state. Within one tier a generator beats a default. A requested
// trait name with no declared trait is silently ignored. skip marks columns
// whose value the caller supplies itself; they are left unset here and no
// generator runs for them. Generators also never run for columns a higher
// tier already decided.
func (d *Definition) resolveAttributes(traitNames []string, skip func(*schema.Column) bool) map[*schema.Column]any {
	attrs := make(map[*schema.Column]any, len(d.defaultValues))
	decided := func(c *schema.Column) bool {
		if skip != nil && skip(c) {
			return true
		}
		_, ok := attrs[c]
		return ok
	}
	for i := len(traitNames) - 1; i >= 0; i-- {
		t, ok := d.traits[traitNames[i]]
		if !ok {
			continue
		}
		for c, g := range t.generators {
			if !decided(c) {
				attrs[c] = g(paramsFor(c))
			}
		}
		for c, v := range t.overrides {
			if !decided(c) {
				attrs[c] = v
			}
		}
	}
	for c, g := range d.generators {
		if !decided(c) {
			attrs[c] = g(paramsFor(c))
		}
	}
	for c, v := range d.defaultValues {
		if !decided(c) {
			attrs[c] = v
		}
	}
	return attrs
}

// resolveBeforeCreate concatenates base callbacks with active-trait callbacks
// in request order.
func (d *Definition) resolveBeforeCreate(traitNames []string) []Callback {
	resolved := cloneSlice(d.beforeCreate)
	for _, name := range traitNames {
		if t, ok := d.traits[name]; ok {
			resolved = append(resolved, t.beforeCreate...)
		}
	}
	return resolved
}

// resolveAfterCreate concatenates base callbacks with active-trait callbacks
// in request order.
func (d *Definition) resolveAfterCreate(traitNames []string) []Callback {
	resolved := cloneSlice(d.afterCreate)
	for _, name := range traitNames {
		if t, ok := d.traits[name]; ok {
			resolved = append(resolved, t.afterCreate...)
		}
	}
	return resolved
}

// resolveTransientBeforeCreate concatenates transient-aware before-create
// callbacks with active-trait ones in request order.
func (d *Definition) resolveTransientBeforeCreate(traitNames []string) []TransientCallback {
	resolved := cloneSlice(d.transientBefore)
	for _, name := range traitNames {
		if t, ok := d.traits[name]; ok {
			resolved = append(resolved, t.transientBefore...)
		}
	}
	return resolved
}

// resolveTransientAfterCreate concatenates transient-aware after-create
// callbacks with active-trait ones in request order.
func (d *Definition) resolveTransientAfterCreate(traitNames []string) []TransientCallback {
	resolved := cloneSlice(d.transientAfter)
	for _, name := range traitNames {
		if t, ok := d.traits[name]; ok {
			resolved = append(resolved, t.transientAfter...)
		}
	}
	return resolved
}

// A DefinitionBuilder populates one factory definition at registration time:
//
//	ctx.Define(Author, func(f *fabrik.DefinitionBuilder) {
//		f.Set(Author.Column("name"), "Base Author")
//		f.WithGenerator(Author.Column("id"), func(fabrik.Params) any { return uuid.New() })
//		f.AfterCreate(func(r *schema.Record) error { ... })
//	})
type DefinitionBuilder struct {
	def *Definition
}

func newDefinitionBuilder(table *schema.Table) *DefinitionBuilder {
	return &DefinitionBuilder{def: &Definition{
		table:         table,
		defaultValues: make(map[*schema.Column]any),
		generators:    make(map[*schema.Column]ValueGenerator),
		traits:        make(map[string]*Trait),
	}}
}

// Parent declares another registered definition to inherit defaults,
// generators, traits, and callbacks from.
func (b *DefinitionBuilder) Parent(name string) *DefinitionBuilder {
	b.def.parentName = name
	return b
}

// Set records a default value for a field.
func (b *DefinitionBuilder) Set(c *schema.Column, v any) *DefinitionBuilder {
	b.def.defaultValues[c] = v
	return b
}

// WithGenerator records a value generator for a field.
func (b *DefinitionBuilder) WithGenerator(c *schema.Column, g ValueGenerator) *DefinitionBuilder {
	b.def.generators[c] = g
	return b
}

// Trait declares a named variation of this definition. Declaring a trait
// under an existing name replaces it.
func (b *DefinitionBuilder) Trait(name string, fn func(*TraitBuilder)) *DefinitionBuilder {
	tb := newTraitBuilder(name)
	fn(tb)
	b.def.traits[name] = tb.build()
	return b
}

// BeforeCreate appends a callback run before record persistence.
func (b *DefinitionBuilder) BeforeCreate(cb Callback) *DefinitionBuilder {
	b.def.beforeCreate = append(b.def.beforeCreate, cb)
	return b
}

// AfterCreate appends a callback run after record persistence.
func (b *DefinitionBuilder) AfterCreate(cb Callback) *DefinitionBuilder {
	b.def.afterCreate = append(b.def.afterCreate, cb)
	return b
}

// TransientBeforeCreate appends a transient-aware callback run before record
// persistence.
func (b *DefinitionBuilder) TransientBeforeCreate(cb TransientCallback) *DefinitionBuilder {
	b.def.transientBefore = append(b.def.transientBefore, cb)
	return b
}

// TransientAfterCreate appends a transient-aware callback run after record
// persistence.
func (b *DefinitionBuilder) TransientAfterCreate(cb TransientCallback) *DefinitionBuilder {
	b.def.transientAfter = append(b.def.transientAfter, cb)
	return b
}

// build seals the definition with defensive copies.
func (b *DefinitionBuilder) build() *Definition {
	return &Definition{
		table:           b.def.table,
		parentName:      b.def.parentName,
		defaultValues:   cloneMap(b.def.defaultValues),
		generators:      cloneMap(b.def.generators),
		traits:          cloneMap(b.def.traits),
		beforeCreate:    cloneSlice(b.def.beforeCreate),
		afterCreate:     cloneSlice(b.def.afterCreate),
		transientBefore: cloneSlice(b.def.transientBefore),
		transientAfter:  cloneSlice(b.def.transientAfter),
	}
}
