package linker

import (
	"fmt"
	"os/exec"

	"golang.org/x/sys/unix"
)

// gccBackend drives gcc as the linker, the way lang/ya/main.go shells
// out to external tool binaries via os/exec and inspects their exit
// status.
type gccBackend struct {
	objects        []string
	libDirs        []string
	staticLibs     []string // by name, passed as -l
	staticLibPaths []string // by path, passed positionally
	dynamicLibs    []string
	dynamicLibPaths []string
	outputKind     OutputKind
	outputFile     string
	optLevel       OptimizationLevel
	debugging      bool
	entryPoint     string
	visibility     Visibility
	flags          []string
}

func newGCCBackend() *gccBackend {
	return &gccBackend{outputFile: "a.out"}
}

func (g *gccBackend) AddObject(path string)              { g.objects = append(g.objects, path) }
func (g *gccBackend) AddLibraryDirectory(path string)     { g.libDirs = append(g.libDirs, path) }
func (g *gccBackend) AddStaticLibraryByName(name string)  { g.staticLibs = append(g.staticLibs, name) }
func (g *gccBackend) AddStaticLibraryByPath(path string)  { g.staticLibPaths = append(g.staticLibPaths, path) }
func (g *gccBackend) AddDynamicLibraryByName(name string) { g.dynamicLibs = append(g.dynamicLibs, name) }
func (g *gccBackend) AddDynamicLibraryByPath(path string) {
	g.dynamicLibPaths = append(g.dynamicLibPaths, path)
}
func (g *gccBackend) SetOutputKind(kind OutputKind)             { g.outputKind = kind }
func (g *gccBackend) SetOutputFile(file string)                 { g.outputFile = file }
func (g *gccBackend) SetOptimizationLevel(lv OptimizationLevel) { g.optLevel = lv }
func (g *gccBackend) SetDebugging(enabled bool)                 { g.debugging = enabled }
func (g *gccBackend) SetEntryPoint(entry string)                { g.entryPoint = entry }
func (g *gccBackend) SetVisibility(v Visibility)                { g.visibility = v }
func (g *gccBackend) AddFlag(flag string)                       { g.flags = append(g.flags, flag) }

func (g *gccBackend) buildArgs() []string {
	var args []string
	args = append(args, g.objects...)
	for _, d := range g.libDirs {
		args = append(args, "-L"+d)
	}
	for _, p := range g.staticLibPaths {
		args = append(args, p)
	}
	for _, p := range g.dynamicLibPaths {
		args = append(args, p)
	}
	for _, n := range g.staticLibs {
		args = append(args, "-l:lib"+n+".a")
	}
	for _, n := range g.dynamicLibs {
		args = append(args, "-l"+n)
	}

	switch g.outputKind {
	case OutputDynamicPIE:
		args = append(args, "-pie")
	case OutputStaticNonPIE, OutputStaticPIE:
		args = append(args, "-static")
		if g.outputKind == OutputStaticPIE {
			args = append(args, "-pie")
		}
	case OutputDynamicLibrary, OutputDynamicLibraryLibc:
		args = append(args, "-shared")
		if g.outputKind == OutputDynamicLibraryLibc {
			args = append(args, "-static-libgcc")
		}
	}

	switch g.optLevel {
	case OptimizationNone:
		args = append(args, "-O0")
	case OptimizationLess:
		args = append(args, "-O1")
	case OptimizationDefault:
		args = append(args, "-O2")
	case OptimizationAggressive:
		args = append(args, "-O3")
	case OptimizationSize:
		args = append(args, "-Os")
	case OptimizationSpeed:
		args = append(args, "-Ofast")
	case OptimizationDebug:
		args = append(args, "-Og")
	}

	if g.debugging {
		args = append(args, "-g")
	}
	if g.entryPoint != "" {
		args = append(args, "-Wl,-e,"+g.entryPoint)
	}

	switch g.visibility {
	case VisibilityHidden:
		args = append(args, "-fvisibility=hidden")
	case VisibilityProtected:
		args = append(args, "-fvisibility=protected")
	}

	args = append(args, g.flags...)
	args = append(args, "-o", g.outputFile)
	return args
}

// Link invokes gcc with the accumulated configuration and translates
// its exit status into a Go error, unwrapping the wait status the way
// x/sys/unix exposes it so a killed-by-signal link step is reported
// distinctly from a plain nonzero exit.
func (g *gccBackend) Link() error {
	cmd := exec.Command("gcc", g.buildArgs()...)
	err := cmd.Run()
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if ok := asExitError(err, &exitErr); ok {
		if ws, ok := exitErr.Sys().(unix.WaitStatus); ok && ws.Signaled() {
			return fmt.Errorf("linker: gcc killed by signal %s", ws.Signal())
		}
		return fmt.Errorf("linker: gcc exited with status %d", exitErr.ExitCode())
	}
	return fmt.Errorf("linker: failed to run gcc: %w", err)
}

func asExitError(err error, target **exec.ExitError) bool {
	if ee, ok := err.(*exec.ExitError); ok {
		*target = ee
		return true
	}
	return false
}
