package fabrik

import (
	"context"

	"github.com/syssam/fabrik/schema"
)

// A StructBuilder produces plain struct values instead of records. It mirrors
// the RecordBuilder configuration surface and delegates to an internal
// RecordBuilder at build time, projecting the resulting record into P via
// schema.Record.Into.
type StructBuilder[P any] struct {
	record *RecordBuilder
}

// Set records an explicit value for a field. The last call per field wins.
func (b *StructBuilder[P]) Set(c *schema.Column, v any) *StructBuilder[P] {
	b.record.Set(c, v)
	return b
}

// WithGenerator registers a per-build generator for a field.
func (b *StructBuilder[P]) WithGenerator(c *schema.Column, g ValueGenerator) *StructBuilder[P] {
	b.record.WithGenerator(c, g)
	return b
}

// Trait appends a trait name to the active list.
func (b *StructBuilder[P]) Trait(name string) *StructBuilder[P] {
	b.record.Trait(name)
	return b
}

// TransientAttr stores a non-persisted value forwarded to lifecycle callbacks.
func (b *StructBuilder[P]) TransientAttr(name string, v any) *StructBuilder[P] {
	b.record.TransientAttr(name, v)
	return b
}

// GenerateNullables toggles generated values for unset nullable columns.
func (b *StructBuilder[P]) GenerateNullables(generate bool) *StructBuilder[P] {
	b.record.GenerateNullables(generate)
	return b
}

// Build persists a record and projects it into P.
func (b *StructBuilder[P]) Build(ctx context.Context) (P, error) {
	var p P
	rec, err := b.record.Build(ctx)
	if err != nil {
		return p, err
	}
	if err := rec.Into(&p); err != nil {
		return p, err
	}
	return p, nil
}

// BuildWithoutInsert resolves attributes and projects them into P without
// persisting and without running any lifecycle callback.
func (b *StructBuilder[P]) BuildWithoutInsert() (P, error) {
	var p P
	rec, err := b.record.BuildWithoutInsert()
	if err != nil {
		return p, err
	}
	if err := rec.Into(&p); err != nil {
		return p, err
	}
	return p, nil
}

// BuildAttributes returns the flattened field to value map.
func (b *StructBuilder[P]) BuildAttributes() (map[*schema.Column]any, error) {
	return b.record.BuildAttributes()
}

// Times builds count independent values. Each iteration clones the full
// builder configuration.
func (b *StructBuilder[P]) Times(ctx context.Context, count int) ([]P, error) {
	return b.TimesWith(ctx, count, nil)
}

// TimesWith builds count independent values, applying the customizer to each
// iteration's cloned builder before building.
func (b *StructBuilder[P]) TimesWith(ctx context.Context, count int, customize func(*StructBuilder[P], int)) ([]P, error) {
	values := make([]P, 0, count)
	for i := 0; i < count; i++ {
		fresh := &StructBuilder[P]{record: b.record.clone()}
		if customize != nil {
			customize(fresh, i)
		}
		p, err := fresh.Build(ctx)
		if err != nil {
			return nil, err
		}
		values = append(values, p)
	}
	return values, nil
}
