package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "nested", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_GetSetRemove(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	_, ok, err := s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, KeyUser, `{"email":"a@b.c"}`))
	require.NoError(t, s.Set(ctx, KeyUser, `{"email":"x@y.z"}`))
	v, ok, err := s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"email":"x@y.z"}`, v)

	require.NoError(t, s.Set(ctx, KeyOptions, "{}"))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyOptions, KeyUser}, keys)

	require.NoError(t, s.Remove(ctx, KeyUser))
	require.NoError(t, s.Remove(ctx, KeyUser))
	_, ok, err = s.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyTrades, "[]"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, KeyTrades)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

// TestProperty_KVRoundTrip verifies that any value written under a key is
// read back unchanged by both KV implementations.
func TestProperty_KVRoundTrip(t *testing.T) {
	ctx := context.Background()
	stores := map[string]KV{
		"sqlite": newTestSQLite(t),
		"memory": NewMemoryStore(),
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	for name, kv := range stores {
		kv := kv
		properties.Property(name+": set then get returns the value", prop.ForAll(
			func(key, value string) bool {
				if err := kv.Set(ctx, key, value); err != nil {
					return false
				}
				got, ok, err := kv.Get(ctx, key)
				return err == nil && ok && got == value
			},
			gen.Identifier(), gen.AlphaString(),
		))
	}

	properties.TestingRun(t)
}
