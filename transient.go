package fabrik

import (
	"fmt"

	"github.com/syssam/fabrik/schema"
)

// A Callback is a lifecycle hook that receives the in-flight record. Before-
// create callbacks may mutate already-set fields; later callbacks observe
// those mutations.
type Callback func(*schema.Record) error

// A TransientCallback is a lifecycle hook that additionally receives the
// transient attributes set on the builder. Use it when a callback needs
// non-persisted values such as dependent entity counts.
type TransientCallback func(*schema.Record, *TransientAttributes) error

// TransientAttributes is an immutable bag of named, non-persisted values
// forwarded verbatim from a builder into lifecycle callbacks. Values are
// stored untyped and checked at access time.
type TransientAttributes struct {
	values map[string]any
}

// NewTransientAttributes copies the given map into an immutable bag. Builders
// construct the bag automatically; the constructor is exported so callback
// logic can be unit tested in isolation.
func NewTransientAttributes(values map[string]any) *TransientAttributes {
	m := make(map[string]any, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &TransientAttributes{values: m}
}

// Has reports whether an attribute is set under the given name.
func (t *TransientAttributes) Has(name string) bool {
	_, ok := t.values[name]
	return ok
}

// Len returns the number of attributes in the bag.
func (t *TransientAttributes) Len() int {
	return len(t.values)
}

// Value returns the raw attribute value and whether it is set.
func (t *TransientAttributes) Value(name string) (any, bool) {
	v, ok := t.values[name]
	return v, ok
}

// AsMap returns a copy of all attributes.
func (t *TransientAttributes) AsMap() map[string]any {
	m := make(map[string]any, len(t.values))
	for k, v := range t.values {
		m[k] = v
	}
	return m
}

// TransientValue returns the attribute under name as type T. The second
// return reports whether the attribute is set; an unset attribute yields the
// zero value. A set attribute of a different type fails with a
// TypeMismatchError.
func TransientValue[T any](t *TransientAttributes, name string) (T, bool, error) {
	var zero T
	raw, ok := t.values[name]
	if !ok {
		return zero, false, nil
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false, &TypeMismatchError{
			attr: name,
			want: fmt.Sprintf("%T", zero),
			got:  fmt.Sprintf("%T", raw),
		}
	}
	return v, true, nil
}

// TransientOr returns the attribute under name as type T, or def if the
// attribute is not set. A set attribute of a different type still fails with
// a TypeMismatchError; the default never masks a mismatch.
func TransientOr[T any](t *TransientAttributes, name string, def T) (T, error) {
	v, ok, err := TransientValue[T](t, name)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}
