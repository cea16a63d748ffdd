package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("first non-empty source wins", func(t *testing.T) {
		value, source := Resolve(
			Source{Name: "attribute", Value: ""},
			Source{Name: "query", Value: "pk.from-query"},
			Source{Name: "saved", Value: "pk.from-store"},
		)
		assert.Equal(t, "pk.from-query", value)
		assert.Equal(t, "query", source)
	})

	t.Run("attribute outranks everything", func(t *testing.T) {
		value, source := Resolve(
			Source{Name: "attribute", Value: "pk.attr"},
			Source{Name: "query", Value: "pk.query"},
		)
		assert.Equal(t, "pk.attr", value)
		assert.Equal(t, "attribute", source)
	})

	t.Run("whitespace-only values are treated as empty", func(t *testing.T) {
		value, source := Resolve(
			Source{Name: "attribute", Value: "   "},
			Source{Name: "saved", Value: "pk.saved"},
		)
		assert.Equal(t, "pk.saved", value)
		assert.Equal(t, "saved", source)
	})

	t.Run("all empty resolves to nothing", func(t *testing.T) {
		value, source := Resolve(Source{Name: "attribute", Value: ""})
		assert.Empty(t, value)
		assert.Empty(t, source)
	})
}

func TestTokenStore(t *testing.T) {
	t.Run("save then load round-trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := NewTokenStore(path)

		require.NoError(t, store.Save("pk.test-token"))
		assert.Equal(t, "pk.test-token", store.Load())
	})

	t.Run("missing file loads empty", func(t *testing.T) {
		store := NewTokenStore(filepath.Join(t.TempDir(), "absent"))
		assert.Empty(t, store.Load())
	})

	t.Run("save creates parent directories with a private file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "token")
		store := NewTokenStore(path)
		require.NoError(t, store.Save("pk.nested"))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("surrounding whitespace is trimmed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token")
		store := NewTokenStore(path)
		require.NoError(t, store.Save("  pk.padded \n"))
		assert.Equal(t, "pk.padded", store.Load())
	})
}
