package fabrik_test

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrik"
	"github.com/syssam/fabrik/dialect"
	fsql "github.com/syssam/fabrik/dialect/sql"
	"github.com/syssam/fabrik/schema"
)

// authorShape bundles a fresh author table with its column handles. Each test
// builds its own so column identity never leaks between tests.
type authorShape struct {
	table   *schema.Table
	id      *schema.Column
	name    *schema.Column
	country *schema.Column
}

func newAuthor() authorShape {
	id := schema.UUID("id").Unique()
	name := schema.String("name").MaxLen(255)
	country := schema.String("country").Nillable()
	return authorShape{
		table:   schema.NewTable("author", id, name, country),
		id:      id,
		name:    name,
		country: country,
	}
}

// newMockContext returns a context persisting into a sqlmock-backed driver.
func newMockContext(t *testing.T, opts ...fabrik.Option) (*fabrik.Context, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	drv := fsql.OpenDB(dialect.SQLite, db)
	return fabrik.NewContext(drv, opts...), mock, db
}
