package fabrik

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/syssam/fabrik/dialect"
	"github.com/syssam/fabrik/schema"
)

// A Context owns the factory registry and the persistence driver. It is the
// explicit entry point for declaring and building test data; there is no
// ambient global state. Create one per test process or per test scope and
// pass it around:
//
//	ctx := fabrik.NewContext(drv)
//	ctx.Define(Author, func(f *fabrik.DefinitionBuilder) {
//		f.Set(Author.Column("name"), "Base Author")
//	})
//	rec, err := ctx.CreateRecord(Author).Build(context.Background())
//
// The registry tolerates concurrent Define and build calls. Builders obtained
// from a context are not safe for concurrent use themselves.
type Context struct {
	drv               dialect.Driver
	registry          *Registry
	generateNullables bool
}

// An Option configures a Context.
type Option func(*Context)

// WithGenerateNullables sets the context-wide default for generating values
// on nullable columns that received no value. Builders can override it per
// build.
func WithGenerateNullables(generate bool) Option {
	return func(c *Context) { c.generateNullables = generate }
}

// WithRegistry shares a pre-populated registry between contexts.
func WithRegistry(r *Registry) Option {
	return func(c *Context) { c.registry = r }
}

// NewContext returns a context persisting through the given driver.
func NewContext(drv dialect.Driver, opts ...Option) *Context {
	c := &Context{drv: drv, registry: NewRegistry()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the context's definition registry.
func (c *Context) Registry() *Registry { return c.registry }

// Driver returns the context's persistence driver.
func (c *Context) Driver() dialect.Driver { return c.drv }

// Define registers a factory definition for a table, keyed by the table
// name. Re-defining a table replaces the previous definition.
func (c *Context) Define(table *schema.Table, fn func(*DefinitionBuilder)) {
	c.DefineAs(table.Name(), table, fn)
}

// DefineAs registers a named factory definition for a table. Named
// definitions serve as inheritance parents and as alternate recipes for the
// same table.
func (c *Context) DefineAs(name string, table *schema.Table, fn func(*DefinitionBuilder)) {
	b := newDefinitionBuilder(table)
	fn(b)
	c.registry.Register(name, b.build())
}

// CreateRecord returns a builder producing records of the given table from
// its registered definition.
func (c *Context) CreateRecord(table *schema.Table) *RecordBuilder {
	return c.CreateRecordAs(table.Name(), table)
}

// CreateRecordAs returns a builder producing records of the given table from
// the named definition, typically one registered with DefineAs.
func (c *Context) CreateRecordAs(name string, table *schema.Table) *RecordBuilder {
	return &RecordBuilder{
		ctx:               c,
		table:             table,
		key:               name,
		explicit:          make(map[*schema.Column]any),
		generators:        make(map[*schema.Column]ValueGenerator),
		transient:         make(map[string]any),
		generateNullables: c.generateNullables,
	}
}

// Create returns a builder producing P values of the given table from its
// registered definition. P must be a struct whose fields match the table's
// camelized column names.
func Create[P any](c *Context, table *schema.Table) *StructBuilder[P] {
	return &StructBuilder[P]{record: c.CreateRecord(table)}
}

// CreateAs returns a builder producing P values of the given table from the
// named definition.
func CreateAs[P any](c *Context, name string, table *schema.Table) *StructBuilder[P] {
	return &StructBuilder[P]{record: c.CreateRecordAs(name, table)}
}

// insert persists a record through the context driver. Columns are emitted
// in table declaration order so generated SQL is deterministic. Driver
// failures propagate unchanged.
func (c *Context) insert(ctx context.Context, rec *schema.Record) error {
	var (
		names  []string
		values []any
	)
	for _, col := range rec.Table().Columns() {
		if !rec.Has(col) {
			continue
		}
		names = append(names, col.Name())
		values = append(values, rec.Get(col))
	}
	qb := sq.Insert(rec.Table().Name()).Columns(names...).Values(values...)
	if c.drv.Dialect() == dialect.Postgres {
		qb = qb.PlaceholderFormat(sq.Dollar)
	}
	query, args, err := qb.ToSql()
	if err != nil {
		return err
	}
	return c.drv.Exec(ctx, query, args, nil)
}
