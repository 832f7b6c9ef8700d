package linker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMSVCBackend_BuildArgs_BasicExecutable(t *testing.T) {
	m := newMSVCBackend()
	m.AddObject("main.obj")
	m.SetOutputFile("app.exe")

	args := m.buildArgs()
	require.Equal(t, []string{"main.obj", "/DYNAMICBASE:NO", "/DEBUG:NONE", "/OUT:app.exe"}, args)
}

func TestMSVCBackend_BuildArgs_DynamicLibraryWithDebug(t *testing.T) {
	m := newMSVCBackend()
	m.AddObject("main.obj")
	m.SetOutputKind(OutputDynamicLibrary)
	m.SetDebugging(true)
	m.SetEntryPoint("DllMain")
	m.SetOutputFile("app.dll")

	args := m.buildArgs()
	require.Equal(t, []string{"main.obj", "/DLL", "/DEBUG", "/ENTRY:DllMain", "/OUT:app.dll"}, args)
}

func TestMSVCBackend_BuildArgs_LibrariesByName(t *testing.T) {
	m := newMSVCBackend()
	m.AddObject("main.obj")
	m.AddLibraryDirectory(`C:\libs`)
	m.AddStaticLibraryByName("foo")
	m.AddDynamicLibraryByName("bar")
	m.SetOutputFile("app.exe")

	args := m.buildArgs()
	require.Equal(t, []string{
		"main.obj", `/LIBPATH:C:\libs`, "foo.lib", "bar.lib", "/DYNAMICBASE:NO", "/DEBUG:NONE", "/OUT:app.exe",
	}, args)
}

func TestNewMSVCBackend_DefaultsToExeOutput(t *testing.T) {
	m := newMSVCBackend()
	require.Equal(t, "a.exe", m.outputFile)
}
