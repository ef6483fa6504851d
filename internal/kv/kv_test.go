package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	file, err := NewFile(filepath.Join(t.TempDir(), "links"))
	require.NoError(t, err)

	db, err := NewSQLite(filepath.Join(t.TempDir(), "links.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{
		"memory": NewMemory(),
		"file":   file,
		"sqlite": db,
	}
}

func TestStore_SetGetDelete(t *testing.T) {
	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := store.Get("linksByObject")
			require.NoError(t, err)
			assert.False(t, ok)

			value := `{"building":[{"position":[1,0,0],"target":"floor1.glb"}]}`
			require.NoError(t, store.Set("linksByObject", value))

			got, ok, err := store.Get("linksByObject")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, value, got)

			require.NoError(t, store.Set("linksByObject", "{}"))
			got, _, err = store.Get("linksByObject")
			require.NoError(t, err)
			assert.Equal(t, "{}", got)

			require.NoError(t, store.Delete("linksByObject"))
			_, ok, err = store.Get("linksByObject")
			require.NoError(t, err)
			assert.False(t, ok)

			// deleting twice is fine
			require.NoError(t, store.Delete("linksByObject"))
		})
	}
}

func TestFile_WritesReadableSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("linksByObject", `{"a":[]}`))

	data, err := os.ReadFile(filepath.Join(dir, "linksByObject.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"a":[]}`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFile_RejectsPathKeys(t *testing.T) {
	store, err := NewFile(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, store.Set("../escape", "x"))
	_, _, err = store.Get("a/b")
	assert.Error(t, err)
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "links.db")

	db, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set("linksByObject", "persisted"))
	require.NoError(t, db.Close())

	_, _, err = db.Get("linksByObject")
	assert.ErrorIs(t, err, ErrClosed)

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })

	got, ok, err := reopened.Get("linksByObject")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestOpen(t *testing.T) {
	store, err := Open(Config{Type: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, store)

	store, err = Open(Config{Type: "file", Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, store)

	dir := t.TempDir()
	store, err = Open(Config{Type: "sqlite", Path: dir})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	assert.FileExists(t, filepath.Join(dir, "gobuilding.db"))

	_, err = Open(Config{Type: "redis"})
	assert.Error(t, err)
}
