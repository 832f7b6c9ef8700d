package linker

import (
	"fmt"
	"os/exec"
)

// msvcBackend drives link.exe, using its /-prefixed option syntax in
// place of gcc's -prefixed one. Both backends implement the same
// Backend interface, so Linker never branches on which one it holds.
type msvcBackend struct {
	objects         []string
	libDirs         []string
	staticLibs      []string
	staticLibPaths  []string
	dynamicLibs     []string
	dynamicLibPaths []string
	outputKind      OutputKind
	outputFile      string
	optLevel        OptimizationLevel
	debugging       bool
	entryPoint      string
	visibility      Visibility
	flags           []string
}

func newMSVCBackend() *msvcBackend {
	return &msvcBackend{outputFile: "a.exe"}
}

func (m *msvcBackend) AddObject(path string)             { m.objects = append(m.objects, path) }
func (m *msvcBackend) AddLibraryDirectory(path string)    { m.libDirs = append(m.libDirs, path) }
func (m *msvcBackend) AddStaticLibraryByName(name string) { m.staticLibs = append(m.staticLibs, name) }
func (m *msvcBackend) AddStaticLibraryByPath(path string) {
	m.staticLibPaths = append(m.staticLibPaths, path)
}
func (m *msvcBackend) AddDynamicLibraryByName(name string) {
	m.dynamicLibs = append(m.dynamicLibs, name)
}
func (m *msvcBackend) AddDynamicLibraryByPath(path string) {
	m.dynamicLibPaths = append(m.dynamicLibPaths, path)
}
func (m *msvcBackend) SetOutputKind(kind OutputKind)             { m.outputKind = kind }
func (m *msvcBackend) SetOutputFile(file string)                 { m.outputFile = file }
func (m *msvcBackend) SetOptimizationLevel(lv OptimizationLevel) { m.optLevel = lv }
func (m *msvcBackend) SetDebugging(enabled bool)                 { m.debugging = enabled }
func (m *msvcBackend) SetEntryPoint(entry string)                { m.entryPoint = entry }
func (m *msvcBackend) SetVisibility(v Visibility)                { m.visibility = v }
func (m *msvcBackend) AddFlag(flag string)                       { m.flags = append(m.flags, flag) }

func (m *msvcBackend) buildArgs() []string {
	var args []string
	args = append(args, m.objects...)
	for _, d := range m.libDirs {
		args = append(args, "/LIBPATH:"+d)
	}
	for _, p := range m.staticLibPaths {
		args = append(args, p)
	}
	for _, p := range m.dynamicLibPaths {
		args = append(args, p)
	}
	for _, n := range m.staticLibs {
		args = append(args, n+".lib")
	}
	for _, n := range m.dynamicLibs {
		args = append(args, n+".lib")
	}

	switch m.outputKind {
	case OutputDynamicLibrary, OutputDynamicLibraryLibc:
		args = append(args, "/DLL")
	case OutputDynamicNonPIE:
		args = append(args, "/DYNAMICBASE:NO")
	case OutputDynamicPIE, OutputStaticPIE:
		args = append(args, "/DYNAMICBASE")
	}

	if m.debugging {
		args = append(args, "/DEBUG")
	} else {
		args = append(args, "/DEBUG:NONE")
	}
	if m.entryPoint != "" {
		args = append(args, "/ENTRY:"+m.entryPoint)
	}

	// MSVC has no direct equivalent of -fvisibility=hidden at the linker
	// level; symbol export is controlled per-symbol via
	// __declspec(dllexport) at compile time, so m.visibility has no
	// corresponding link.exe flag.

	args = append(args, m.flags...)
	args = append(args, "/OUT:"+m.outputFile)
	return args
}

func (m *msvcBackend) Link() error {
	cmd := exec.Command("link.exe", m.buildArgs()...)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return fmt.Errorf("linker: link.exe exited with status %d", exitErr.ExitCode())
	}
	return fmt.Errorf("linker: failed to run link.exe: %w", err)
}
