package linker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_DispatchesByKind(t *testing.T) {
	gcc, err := New(KindGCC)
	require.NoError(t, err)
	require.IsType(t, &gccBackend{}, gcc.backend)

	msvc, err := New(KindMSVC)
	require.NoError(t, err)
	require.IsType(t, &msvcBackend{}, msvc.backend)

	_, err = New(Kind(99))
	require.Error(t, err)
}

func TestLinker_ForwardsToBackend(t *testing.T) {
	l, err := New(KindGCC)
	require.NoError(t, err)

	l.SetOutputFile("app")
	l.AddObject("main.o")

	g := l.backend.(*gccBackend)
	require.Equal(t, "app", g.outputFile)
	require.Equal(t, []string{"main.o"}, g.objects)
}

func TestGCCBackend_BuildArgs_BasicExecutable(t *testing.T) {
	g := newGCCBackend()
	g.AddObject("main.o")
	g.SetOutputFile("app")
	g.SetOptimizationLevel(OptimizationDefault)

	args := g.buildArgs()
	require.Equal(t, []string{"main.o", "-O2", "-o", "app"}, args)
}

func TestGCCBackend_BuildArgs_StaticPIE(t *testing.T) {
	g := newGCCBackend()
	g.AddObject("main.o")
	g.SetOutputKind(OutputStaticPIE)
	g.SetOptimizationLevel(OptimizationNone)
	g.SetOutputFile("app")

	args := g.buildArgs()
	require.Equal(t, []string{"main.o", "-static", "-pie", "-O0", "-o", "app"}, args)
}

func TestGCCBackend_BuildArgs_DebugEntryVisibility(t *testing.T) {
	g := newGCCBackend()
	g.AddObject("main.o")
	g.SetOptimizationLevel(OptimizationNone)
	g.SetDebugging(true)
	g.SetEntryPoint("_start")
	g.SetVisibility(VisibilityHidden)
	g.SetOutputFile("app")

	args := g.buildArgs()
	require.Equal(t, []string{
		"main.o", "-O0", "-g", "-Wl,-e,_start", "-fvisibility=hidden", "-o", "app",
	}, args)
}

func TestGCCBackend_BuildArgs_LibrariesAndFlags(t *testing.T) {
	g := newGCCBackend()
	g.AddObject("main.o")
	g.AddLibraryDirectory("/usr/local/lib")
	g.AddStaticLibraryByName("foo")
	g.AddDynamicLibraryByName("bar")
	g.AddFlag("-Wl,--gc-sections")
	g.SetOptimizationLevel(OptimizationNone)
	g.SetOutputFile("app")

	args := g.buildArgs()
	require.Equal(t, []string{
		"main.o", "-L/usr/local/lib", "-l:libfoo.a", "-lbar",
		"-O0", "-Wl,--gc-sections", "-o", "app",
	}, args)
}
