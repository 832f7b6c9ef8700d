// Package linker implements an abstract linker interface, dispatching
// to concrete backend implementations (gcc, which runs `gcc`, and
// msvc, which runs `link.exe`) so the driver can assemble an
// executable or library without knowing which underlying linker it's
// talking to.
//
// The vtable-of-function-pointers design in
// original_source/inc/linker/linker.h becomes a plain Go interface
// here — Backend — which is the idiomatic equivalent of a C vtable;
// Linker itself stays a thin wrapper the way lang/yld/linker.go wraps
// its own backend-agnostic object reader.
package linker

import "fmt"

// OutputKind is the kind of artifact the linker should produce.
type OutputKind int

const (
	OutputDynamicNonPIE OutputKind = iota
	OutputDynamicPIE
	OutputStaticNonPIE
	OutputStaticPIE
	OutputDynamicLibrary
	OutputDynamicLibraryLibc
)

// OptimizationLevel mirrors the backend's optimization flag set.
type OptimizationLevel int

const (
	OptimizationNone OptimizationLevel = iota
	OptimizationLess
	OptimizationDefault
	OptimizationAggressive
	OptimizationSize
	OptimizationSpeed
	OptimizationDebug
)

// Visibility is the default symbol visibility applied to the linked
// artifact.
type Visibility int

const (
	VisibilityDefault Visibility = iota
	VisibilityHidden
	VisibilityProtected
)

// Kind identifies a concrete backend implementation.
type Kind int

const (
	KindGCC Kind = iota
	KindMSVC
)

// Backend is implemented by one concrete linker driver (gcc, msvc,
// ...). Linker dispatches every operation to whichever Backend it was
// constructed with, the Go-native equivalent of the header's
// function-pointer vtable.
type Backend interface {
	AddObject(path string)
	AddLibraryDirectory(path string)
	AddStaticLibraryByName(name string)
	AddStaticLibraryByPath(path string)
	AddDynamicLibraryByName(name string)
	AddDynamicLibraryByPath(path string)
	SetOutputKind(kind OutputKind)
	SetOutputFile(file string)
	SetOptimizationLevel(level OptimizationLevel)
	SetDebugging(enabled bool)
	SetEntryPoint(entry string)
	SetVisibility(v Visibility)
	AddFlag(flag string)
	Link() error
}

// Linker is the backend-agnostic handle the compiler driver uses;
// every method forwards to the underlying Backend.
type Linker struct {
	backend Backend
}

// New constructs a Linker for the given backend kind.
func New(kind Kind) (*Linker, error) {
	switch kind {
	case KindGCC:
		return &Linker{backend: newGCCBackend()}, nil
	case KindMSVC:
		return &Linker{backend: newMSVCBackend()}, nil
	default:
		return nil, fmt.Errorf("linker: unknown backend kind %d", kind)
	}
}

func (l *Linker) AddObject(path string)                    { l.backend.AddObject(path) }
func (l *Linker) AddLibraryDirectory(path string)           { l.backend.AddLibraryDirectory(path) }
func (l *Linker) AddStaticLibraryByName(name string)        { l.backend.AddStaticLibraryByName(name) }
func (l *Linker) AddStaticLibraryByPath(path string)        { l.backend.AddStaticLibraryByPath(path) }
func (l *Linker) AddDynamicLibraryByName(name string)       { l.backend.AddDynamicLibraryByName(name) }
func (l *Linker) AddDynamicLibraryByPath(path string)       { l.backend.AddDynamicLibraryByPath(path) }
func (l *Linker) SetOutputKind(kind OutputKind)             { l.backend.SetOutputKind(kind) }
func (l *Linker) SetOutputFile(file string)                 { l.backend.SetOutputFile(file) }
func (l *Linker) SetOptimizationLevel(lv OptimizationLevel) { l.backend.SetOptimizationLevel(lv) }
func (l *Linker) SetDebugging(enabled bool)                 { l.backend.SetDebugging(enabled) }
func (l *Linker) SetEntryPoint(entry string)                { l.backend.SetEntryPoint(entry) }
func (l *Linker) SetVisibility(v Visibility)                { l.backend.SetVisibility(v) }
func (l *Linker) AddFlag(flag string)                       { l.backend.AddFlag(flag) }

// Link invokes the underlying toolchain to produce the configured
// output artifact.
func (l *Linker) Link() error { return l.backend.Link() }
