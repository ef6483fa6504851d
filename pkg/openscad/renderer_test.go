package openscad

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestResolveDependencies(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "room.scad"), `use <lib/walls.scad>
include <./furniture.scad>
// use <ignored.scad>
cube(10);
`)
	write(t, filepath.Join(dir, "lib", "walls.scad"), "include <../furniture.scad>\n")
	write(t, filepath.Join(dir, "furniture.scad"), "use <room.scad>\n")

	deps, err := NewRenderer(dir).ResolveDependencies("room.scad")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "room.scad"),
		filepath.Join(dir, "lib", "walls.scad"),
		filepath.Join(dir, "furniture.scad"),
	}, deps)
}

func TestResolveDependencies_Missing(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "room.scad"), "use <gone.scad>\n")

	_, err := NewRenderer(dir).ResolveDependencies("room.scad")
	assert.Error(t, err)
}

func TestRenderToSTL_NotInstalled(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	err := NewRenderer(t.TempDir()).RenderToSTL(t.Context(), "room.scad", "out.stl")
	assert.ErrorIs(t, err, ErrNotInstalled)
}
