package fabrik

import (
	"context"

	"github.com/syssam/fabrik/schema"
)

// A RecordBuilder assembles one record from a registered definition plus
// per-build configuration. Precedence of attribute sources, highest first:
// explicit Set values, per-build generators, trait overlays, base
// defaults/generators. The builder owns its configuration exclusively and is
// not safe for concurrent use.
type RecordBuilder struct {
	ctx               *Context
	table             *schema.Table
	key               string
	explicit          map[*schema.Column]any
	generators        map[*schema.Column]ValueGenerator
	traits            []string
	transient         map[string]any
	generateNullables bool
}

// Set records an explicit value for a field. The last call per field wins.
// Explicit values suppress every generator registered for the field.
func (b *RecordBuilder) Set(c *schema.Column, v any) *RecordBuilder {
	b.explicit[c] = v
	return b
}

// WithGenerator registers a per-build generator for a field, evaluated only
// if no explicit value is set for the field at build time.
func (b *RecordBuilder) WithGenerator(c *schema.Column, g ValueGenerator) *RecordBuilder {
	b.generators[c] = g
	return b
}

// Trait appends a trait name to the active list. Traits apply in the order
// listed; a later trait overrides an earlier one on the same field. A name
// with no matching trait on the definition is silently ignored.
func (b *RecordBuilder) Trait(name string) *RecordBuilder {
	b.traits = append(b.traits, name)
	return b
}

// TransientAttr stores a non-persisted value forwarded to lifecycle
// callbacks. The last call per name wins.
func (b *RecordBuilder) TransientAttr(name string, v any) *RecordBuilder {
	b.transient[name] = v
	return b
}

// GenerateNullables toggles whether nullable columns lacking any value
// receive a generated value, overriding the context-wide default.
func (b *RecordBuilder) GenerateNullables(generate bool) *RecordBuilder {
	b.generateNullables = generate
	return b
}

// resolved bundles everything a build needs from the definition.
type resolved struct {
	attrs           map[*schema.Column]any
	beforeCreate    []Callback
	afterCreate     []Callback
	transientBefore []TransientCallback
	transientAfter  []TransientCallback
}

// resolve flattens the definition (registry inheritance plus active traits)
// and applies the builder's own configuration on top.
func (b *RecordBuilder) resolve() (*resolved, error) {
	def, err := b.ctx.registry.Resolve(b.key)
	if err != nil {
		return nil, err
	}
	attrs := def.resolveAttributes(b.traits, func(c *schema.Column) bool {
		if _, ok := b.explicit[c]; ok {
			return true
		}
		_, ok := b.generators[c]
		return ok
	})
	for c, g := range b.generators {
		if _, ok := b.explicit[c]; ok {
			continue
		}
		attrs[c] = g(paramsFor(c))
	}
	for c, v := range b.explicit {
		attrs[c] = v
	}
	if b.generateNullables {
		for _, c := range b.table.Columns() {
			if _, ok := attrs[c]; !ok && c.IsNillable() {
				attrs[c] = generateValue(c)
			}
		}
	}
	return &resolved{
		attrs:           attrs,
		beforeCreate:    def.resolveBeforeCreate(b.traits),
		afterCreate:     def.resolveAfterCreate(b.traits),
		transientBefore: def.resolveTransientBeforeCreate(b.traits),
		transientAfter:  def.resolveTransientAfterCreate(b.traits),
	}, nil
}

// Build resolves the definition, runs the before-create callbacks, persists
// the record through the context driver, runs the after-create callbacks, and
// returns the persisted record. Within each phase plain callbacks run first,
// then transient-aware callbacks, each list in registration order. Any
// callback or driver error aborts the build and propagates unchanged.
func (b *RecordBuilder) Build(ctx context.Context) (*schema.Record, error) {
	res, err := b.resolve()
	if err != nil {
		return nil, err
	}
	rec := schema.NewRecord(b.table)
	rec.SetValues(res.attrs)
	transients := NewTransientAttributes(b.transient)
	for _, cb := range res.beforeCreate {
		if err := cb(rec); err != nil {
			return nil, err
		}
	}
	for _, cb := range res.transientBefore {
		if err := cb(rec, transients); err != nil {
			return nil, err
		}
	}
	if err := b.ctx.insert(ctx, rec); err != nil {
		return nil, err
	}
	for _, cb := range res.afterCreate {
		if err := cb(rec); err != nil {
			return nil, err
		}
	}
	for _, cb := range res.transientAfter {
		if err := cb(rec, transients); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// BuildWithoutInsert resolves attributes exactly like Build but skips
// persistence and all lifecycle callbacks. Callbacks react to a real
// creation; they never fire on a non-persisting build.
func (b *RecordBuilder) BuildWithoutInsert() (*schema.Record, error) {
	res, err := b.resolve()
	if err != nil {
		return nil, err
	}
	rec := schema.NewRecord(b.table)
	rec.SetValues(res.attrs)
	return rec, nil
}

// BuildAttributes resolves attributes exactly like Build and returns only the
// flattened field to value map. No record is constructed, nothing is
// persisted, and no callback runs.
func (b *RecordBuilder) BuildAttributes() (map[*schema.Column]any, error) {
	res, err := b.resolve()
	if err != nil {
		return nil, err
	}
	return res.attrs, nil
}

// Times builds count independent records. Each iteration clones the full
// builder configuration, so callbacks that mutate one record never leak into
// another.
func (b *RecordBuilder) Times(ctx context.Context, count int) ([]*schema.Record, error) {
	return b.TimesWith(ctx, count, nil)
}

// TimesWith builds count independent records, applying the customizer to
// each iteration's cloned builder before building. Customizing instance i
// never perturbs instance i+1.
func (b *RecordBuilder) TimesWith(ctx context.Context, count int, customize func(*RecordBuilder, int)) ([]*schema.Record, error) {
	records := make([]*schema.Record, 0, count)
	for i := 0; i < count; i++ {
		fresh := b.clone()
		if customize != nil {
			customize(fresh, i)
		}
		rec, err := fresh.Build(ctx)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// clone deep-copies the builder configuration. Clones share no mutable state
// with the original.
func (b *RecordBuilder) clone() *RecordBuilder {
	return &RecordBuilder{
		ctx:               b.ctx,
		table:             b.table,
		key:               b.key,
		explicit:          cloneMap(b.explicit),
		generators:        cloneMap(b.generators),
		traits:            cloneSlice(b.traits),
		transient:         cloneMap(b.transient),
		generateNullables: b.generateNullables,
	}
}
