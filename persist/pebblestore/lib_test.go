package pebblestore

import (
	"context"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ydtak/vkv"
)

var ctx = context.Background()

func openTestDB(t *testing.T) *pebble.DB {
	t.Helper()
	db, err := pebble.Open("test", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPebble(t *testing.T) {
	db := openTestDB(t)
	p := NewPersist(db, "snap/")

	err := p.Store(ctx, "foo", []byte("hello"))
	require.NoError(t, err)
	// Content is immutable; a second store of the same name is a no-op.
	err = p.Store(ctx, "foo", []byte("ignored"))
	require.NoError(t, err)
	loaded, err := p.Load(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), loaded)

	_, err = p.Load(ctx, "missing")
	require.Error(t, err)
}

func TestPrefixesAreIndependent(t *testing.T) {
	db := openTestDB(t)
	a := NewPersist(db, "a/")
	b := NewPersist(db, "b/")

	require.NoError(t, a.Store(ctx, "foo", []byte("from a")))
	require.NoError(t, b.Store(ctx, "foo", []byte("from b")))
	loaded, err := a.Load(ctx, "foo")
	require.NoError(t, err)
	assert.Equal(t, []byte("from a"), loaded)
}

func TestStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)

	s := vkv.NewStore[string, int]()
	s.Set("a", 1)
	s.Set("b", 2)
	v := s.Save()
	s.Delete("b")

	config := &vkv.RemoteConfig{StoreImmutablePartsWith: NewPersist(db, "snap/")}
	root, err := s.Export(ctx, v, config)
	require.NoError(t, err)

	s2, err := vkv.ImportStore[string, int](ctx, root, config)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), s2.Size())
	assert.Equal(t, 1, s2.Get("a"))
	assert.Equal(t, 2, s2.Get("b"))
}
