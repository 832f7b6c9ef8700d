package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Baleg00/tau/internal/linker"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.Equal(t, "a.out", c.OutputFile)
	require.Equal(t, linker.KindGCC, c.LinkerKind)
	require.Equal(t, linker.OutputDynamicNonPIE, c.OutputKind)
	require.Equal(t, linker.OptimizationNone, c.OptimizationLevel)
	require.Equal(t, linker.VisibilityDefault, c.Visibility)
	require.False(t, c.Debugging)
}

func TestLoadEnvFile_NoFileOnlyReadsEnvironment(t *testing.T) {
	t.Setenv("TAU_LINKER", "msvc")
	t.Setenv("TAU_OUTPUT", "prog")
	t.Setenv("TAU_DEBUG", "true")
	t.Setenv("TAU_ENTRY", "_mystart")
	t.Setenv("TAU_VERBOSE", "1")

	c := Default()
	err := LoadEnvFile(c, "")
	require.NoError(t, err)

	require.Equal(t, linker.KindMSVC, c.LinkerKind)
	require.Equal(t, "prog", c.OutputFile)
	require.True(t, c.Debugging)
	require.Equal(t, "_mystart", c.EntryPoint)
	require.True(t, c.Verbose)
}

func TestLoadEnvFile_UnrecognizedLinkerValueKeepsGCC(t *testing.T) {
	t.Setenv("TAU_LINKER", "bogus")

	c := Default()
	require.NoError(t, LoadEnvFile(c, ""))
	require.Equal(t, linker.KindGCC, c.LinkerKind)
}

func TestLoadEnvFile_MissingFileIsNotAnError(t *testing.T) {
	c := Default()
	err := LoadEnvFile(c, filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.NoError(t, err)
}

func TestLoadEnvFile_ReadsDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("TAU_OUTPUT=fromfile\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("TAU_OUTPUT") })

	c := Default()
	require.NoError(t, LoadEnvFile(c, envPath))
	require.Equal(t, "fromfile", c.OutputFile)
}
