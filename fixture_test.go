package fabrik_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrik"
)

func TestDefineYAML(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		a := newAuthor()
		ctx := fabrik.NewContext(nil)
		err := ctx.DefineYAML(a.table, []byte(`
defaults:
  name: "Fixture Author"
  country: "US"
`))
		require.NoError(t, err)

		attrs, err := ctx.CreateRecord(a.table).BuildAttributes()
		require.NoError(t, err)
		assert.Equal(t, "Fixture Author", attrs[a.name])
		assert.Equal(t, "US", attrs[a.country])
	})

	t.Run("Parent", func(t *testing.T) {
		a := newAuthor()
		ctx := fabrik.NewContext(nil)
		ctx.DefineAs("baseAuthor", a.table, func(f *fabrik.DefinitionBuilder) {
			f.Set(a.country, "US")
		})
		err := ctx.DefineYAML(a.table, []byte(`
parent: baseAuthor
defaults:
  name: "Child Author"
`))
		require.NoError(t, err)

		attrs, err := ctx.CreateRecord(a.table).BuildAttributes()
		require.NoError(t, err)
		assert.Equal(t, "Child Author", attrs[a.name])
		assert.Equal(t, "US", attrs[a.country])
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		a := newAuthor()
		ctx := fabrik.NewContext(nil)
		err := ctx.DefineYAML(a.table, []byte(`
defaults:
  nickname: "nope"
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `no column "nickname"`)

		// Nothing was registered.
		_, err = ctx.Registry().Resolve("author")
		assert.True(t, fabrik.IsNotFound(err))
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		a := newAuthor()
		ctx := fabrik.NewContext(nil)
		err := ctx.DefineYAML(a.table, []byte("defaults: ["))
		require.Error(t, err)
	})
}
