package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpandInputPaths_LiteralPathsPassThroughUnchanged(t *testing.T) {
	out, err := expandInputPaths([]string{"main.tau", "lib/util.tau"})
	require.NoError(t, err)
	require.Equal(t, []string{"main.tau", "lib/util.tau"}, out)
}

func TestExpandInputPaths_DoubleStarExpandsNestedSources(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "geometry"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.tau"), []byte("fun f() -> unit { return; }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "geometry", "point.tau"), []byte("struct Point { x: i32 }"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("ignore me"), 0o644))

	pattern := filepath.ToSlash(filepath.Join(root, "src", "**", "*.tau"))
	out, err := expandInputPaths([]string{pattern})
	require.NoError(t, err)
	require.Len(t, out, 2)
}

func TestExpandInputPaths_PatternWithNoMatchesIsAnError(t *testing.T) {
	root := t.TempDir()
	pattern := filepath.ToSlash(filepath.Join(root, "**", "*.tau"))
	_, err := expandInputPaths([]string{pattern})
	require.Error(t, err)
}
