package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDirDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "floor1.stl")
	require.NoError(t, os.WriteFile(file, []byte("solid a"), 0644))

	fw, err := NewFileWatcher(100*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { fw.Close() })

	changed := make(chan string, 10)
	require.NoError(t, fw.WatchDir(dir, func(path string) { changed <- path }))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("solid b"), 0644))
	}

	absFile, err := filepath.Abs(file)
	require.NoError(t, err)

	select {
	case path := <-changed:
		assert.Equal(t, absFile, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification received")
	}

	// The burst collapses into a single notification.
	select {
	case path := <-changed:
		t.Fatalf("unexpected second notification for %s", path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { fw.Close() })

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing.glb")}, func(string) {})
	assert.Error(t, err)
}
