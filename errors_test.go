package fabrik_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/fabrik"
)

// resolveErr provokes each registry failure mode and returns the error.
func resolveErr(t *testing.T, setup func(*fabrik.Context), key string) error {
	t.Helper()
	ctx := fabrik.NewContext(nil)
	setup(ctx)
	_, err := ctx.Registry().Resolve(key)
	require.Error(t, err)
	return err
}

func TestNotFoundError(t *testing.T) {
	err := resolveErr(t, func(*fabrik.Context) {}, "ghost")

	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, `fabrik: no factory definition registered for "ghost". Register it with ctx.Define before building`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, fabrik.ErrNotFound))
	})

	t.Run("IsNotFound", func(t *testing.T) {
		assert.True(t, fabrik.IsNotFound(err))

		// Wrapped error
		wrapped := fmt.Errorf("wrapper: %w", err)
		assert.True(t, fabrik.IsNotFound(wrapped))

		// Sentinel error
		assert.True(t, fabrik.IsNotFound(fabrik.ErrNotFound))

		// Non-matching error
		assert.False(t, fabrik.IsNotFound(errors.New("other error")))
		assert.False(t, fabrik.IsNotFound(nil))
	})

	t.Run("Key", func(t *testing.T) {
		var e *fabrik.NotFoundError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "ghost", e.Key())
	})
}

func TestParentNotFoundError(t *testing.T) {
	a := newAuthor()
	err := resolveErr(t, func(ctx *fabrik.Context) {
		ctx.Define(a.table, func(f *fabrik.DefinitionBuilder) {
			f.Parent("missingParent")
		})
	}, "author")

	t.Run("Error", func(t *testing.T) {
		assert.Contains(t, err.Error(), `parent factory definition "missingParent" not found`)
		assert.Contains(t, err.Error(), `ctx.DefineAs("missingParent", ...)`)
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, fabrik.ErrParentNotFound))
		assert.False(t, errors.Is(err, fabrik.ErrNotFound))
	})

	t.Run("IsParentNotFound", func(t *testing.T) {
		assert.True(t, fabrik.IsParentNotFound(err))
		assert.True(t, fabrik.IsParentNotFound(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, fabrik.IsParentNotFound(nil))
	})

	t.Run("Parent", func(t *testing.T) {
		var e *fabrik.ParentNotFoundError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "missingParent", e.Parent())
	})
}

func TestCircularInheritanceError(t *testing.T) {
	a := newAuthor()
	err := resolveErr(t, func(ctx *fabrik.Context) {
		ctx.DefineAs("a", a.table, func(f *fabrik.DefinitionBuilder) { f.Parent("b") })
		ctx.DefineAs("b", a.table, func(f *fabrik.DefinitionBuilder) { f.Parent("a") })
	}, "a")

	t.Run("Error", func(t *testing.T) {
		assert.Contains(t, err.Error(), "circular factory inheritance")
		assert.Contains(t, err.Error(), "forms a cycle")
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, fabrik.ErrCircularInheritance))
	})

	t.Run("IsCircularInheritance", func(t *testing.T) {
		assert.True(t, fabrik.IsCircularInheritance(err))
		assert.True(t, fabrik.IsCircularInheritance(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, fabrik.IsCircularInheritance(errors.New("other")))
		assert.False(t, fabrik.IsCircularInheritance(nil))
	})
}

func TestTypeMismatchError(t *testing.T) {
	bag := fabrik.NewTransientAttributes(map[string]any{"count": 7})
	_, _, err := fabrik.TransientValue[string](bag, "count")
	require.Error(t, err)

	t.Run("Error", func(t *testing.T) {
		assert.Equal(t, `fabrik: transient attribute "count" holds int, not string`, err.Error())
	})

	t.Run("Is", func(t *testing.T) {
		assert.True(t, errors.Is(err, fabrik.ErrTypeMismatch))
	})

	t.Run("IsTypeMismatch", func(t *testing.T) {
		assert.True(t, fabrik.IsTypeMismatch(err))
		assert.True(t, fabrik.IsTypeMismatch(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, fabrik.IsTypeMismatch(nil))
	})

	t.Run("Attr", func(t *testing.T) {
		var e *fabrik.TypeMismatchError
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "count", e.Attr())
	})
}
