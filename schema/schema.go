// Package schema describes the table shapes the factory engine populates.
//
// It is the boundary contract between the engine and whatever owns the real
// database schema: a Table exposes a stable name and typed column handles, and
// a Record supports get/set by column handle plus projection into a plain
// struct. Columns are declared with fluent builders:
//
//	var Author = schema.NewTable("author",
//		schema.UUID("id").Unique(),
//		schema.String("name").MaxLen(255),
//		schema.String("country").Nillable(),
//	)
package schema

import "fmt"

// A Type describes the value kind a column holds. It drives default value
// generation and snapshot decoding.
type Type int

// Column types supported by the factory engine.
const (
	TypeInvalid Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeTime
	TypeUUID
	TypeBytes
)

var typeNames = [...]string{
	TypeInvalid: "invalid",
	TypeString:  "string",
	TypeInt:     "int",
	TypeFloat:   "float",
	TypeBool:    "bool",
	TypeTime:    "time",
	TypeUUID:    "uuid",
	TypeBytes:   "bytes",
}

// String returns the lower-cased name of the type.
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("invalid(%d)", t)
	}
	return typeNames[t]
}

// Valid reports whether t is a known column type.
func (t Type) Valid() bool {
	return t > TypeInvalid && int(t) < len(typeNames)
}

// A Column is a typed handle to one field of a table. Columns are compared by
// identity: the *Column obtained from a table declaration is the map key used
// by factory definitions and builders.
type Column struct {
	name     string
	typ      Type
	nillable bool
	unique   bool
	maxLen   int
}

// String declares a string column.
func String(name string) *Column { return &Column{name: name, typ: TypeString} }

// Int declares an integer column.
func Int(name string) *Column { return &Column{name: name, typ: TypeInt} }

// Float declares a floating point column.
func Float(name string) *Column { return &Column{name: name, typ: TypeFloat} }

// Bool declares a boolean column.
func Bool(name string) *Column { return &Column{name: name, typ: TypeBool} }

// Time declares a timestamp column.
func Time(name string) *Column { return &Column{name: name, typ: TypeTime} }

// UUID declares a UUID column.
func UUID(name string) *Column { return &Column{name: name, typ: TypeUUID} }

// Bytes declares a binary column.
func Bytes(name string) *Column { return &Column{name: name, typ: TypeBytes} }

// Nillable marks the column as accepting NULL and returns it.
func (c *Column) Nillable() *Column { c.nillable = true; return c }

// Unique marks the column values as unique and returns it. Value generators
// receive this as a uniqueness hint.
func (c *Column) Unique() *Column { c.unique = true; return c }

// MaxLen sets the maximum value length and returns the column. Value
// generators receive it as an upper bound.
func (c *Column) MaxLen(n int) *Column { c.maxLen = n; return c }

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column type.
func (c *Column) Type() Type { return c.typ }

// IsNillable reports whether the column accepts NULL.
func (c *Column) IsNillable() bool { return c.nillable }

// IsUnique reports whether the column values are unique.
func (c *Column) IsUnique() bool { return c.unique }

// MaxLength returns the maximum value length, or 0 if unbounded.
func (c *Column) MaxLength() int { return c.maxLen }

// A Table describes the shape of one relation. Tables are immutable after
// construction via NewTable.
type Table struct {
	name    string
	columns []*Column
	byName  map[string]*Column
}

// NewTable builds a table from its name and column set. It panics on a
// duplicate column name so that broken declarations fail at init time rather
// than at build time.
func NewTable(name string, columns ...*Column) *Table {
	t := &Table{
		name:    name,
		columns: columns,
		byName:  make(map[string]*Column, len(columns)),
	}
	for _, c := range columns {
		if _, ok := t.byName[c.name]; ok {
			panic(fmt.Sprintf("schema: duplicate column %q in table %q", c.name, name))
		}
		t.byName[c.name] = c
	}
	return t
}

// Name returns the table name. It doubles as the default factory registry key.
func (t *Table) Name() string { return t.name }

// Columns returns the table columns in declaration order.
func (t *Table) Columns() []*Column {
	cols := make([]*Column, len(t.columns))
	copy(cols, t.columns)
	return cols
}

// Column returns the column with the given name, or nil if the table has no
// such column.
func (t *Table) Column(name string) *Column {
	return t.byName[name]
}
