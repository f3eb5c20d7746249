// Package fabrik is a test-data factory engine for schema-described SQL
// tables: declare reusable recipes for producing populated rows, with default
// values, randomized value generation, named variations (traits), parent and
// child inheritance between recipes, lifecycle callbacks, and non-persisted
// transient parameters passed into those callbacks.
//
// # Declaring factories
//
// All state hangs off an explicit Context holding the definition registry and
// the persistence driver:
//
//	drv, err := sql.Open(dialect.SQLite, "file:test?mode=memory")
//	ctx := fabrik.NewContext(drv)
//
//	ctx.Define(Author, func(f *fabrik.DefinitionBuilder) {
//		f.WithGenerator(Author.Column("id"), func(fabrik.Params) any { return uuid.New() })
//		f.Set(Author.Column("name"), "Base Author")
//		f.Trait("european", func(t *fabrik.TraitBuilder) {
//			t.Set(Author.Column("country"), "DE")
//		})
//	})
//
// # Building
//
//	rec, err := ctx.CreateRecord(Author).
//		Trait("european").
//		Set(Author.Column("name"), "Override").
//		Build(context.Background())
//
// Attribute precedence, highest first: explicit Set values, per-build
// generators, trait overlays (later active trait wins), base defaults and
// generators. BuildWithoutInsert skips persistence and every callback;
// BuildAttributes returns only the flattened value map.
//
// # Inheritance
//
// A definition may name a registered parent. Resolution flattens the chain
// parent-first, child values winning per field; a child trait of the same
// name fully replaces the parent's. Cycles and missing parents fail with
// CircularInheritanceError and ParentNotFoundError respectively.
//
// # Transient attributes
//
// Values set via TransientAttr are never persisted; they reach transient-
// aware callbacks for things like dependent entity counts:
//
//	f.TransientAfterCreate(func(r *schema.Record, tr *fabrik.TransientAttributes) error {
//		n, err := fabrik.TransientOr(tr, "bookCount", 0)
//		...
//	})
package fabrik
