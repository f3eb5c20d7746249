package schema

import (
	"fmt"

	"github.com/go-openapi/inflect"
	"github.com/mitchellh/mapstructure"
)

// A Record is one in-flight row of a table: a mutable column -> value store.
// Records are created by factory builders and handed to lifecycle callbacks,
// which may overwrite already-set columns. A Record is not safe for concurrent
// use; each build call owns its record exclusively.
type Record struct {
	table  *Table
	values map[*Column]any
}

// NewRecord returns an empty record for the given table.
func NewRecord(table *Table) *Record {
	return &Record{table: table, values: make(map[*Column]any)}
}

// Table returns the table this record belongs to.
func (r *Record) Table() *Table { return r.table }

// Set stores a value for the given column, replacing any previous value.
func (r *Record) Set(c *Column, v any) { r.values[c] = v }

// Get returns the value stored for the given column, or nil if unset.
func (r *Record) Get(c *Column) any { return r.values[c] }

// Has reports whether a value is set for the given column. A stored nil
// counts as set.
func (r *Record) Has(c *Column) bool {
	_, ok := r.values[c]
	return ok
}

// Values returns a snapshot of the set columns and their values. Mutating the
// returned map does not affect the record.
func (r *Record) Values() map[*Column]any {
	m := make(map[*Column]any, len(r.values))
	for c, v := range r.values {
		m[c] = v
	}
	return m
}

// SetValues stores every entry of the given map on the record.
func (r *Record) SetValues(values map[*Column]any) {
	for c, v := range values {
		r.values[c] = v
	}
}

// Into projects the record into a plain struct. Column names are camelized
// (author_id -> AuthorId) and matched against struct fields case-insensitively,
// so author_id binds to an AuthorID field. target must be a non-nil pointer
// to a struct.
func (r *Record) Into(target any) error {
	src := make(map[string]any, len(r.values))
	for c, v := range r.values {
		src[inflect.Camelize(c.name)] = v
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return fmt.Errorf("schema: project %s record: %w", r.table.name, err)
	}
	if err := dec.Decode(src); err != nil {
		return fmt.Errorf("schema: project %s record into %T: %w", r.table.name, target, err)
	}
	return nil
}
