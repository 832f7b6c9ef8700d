package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Baleg00/tau/internal/ast"
	"github.com/Baleg00/tau/internal/codegen"
	"github.com/Baleg00/tau/internal/diag"
	"github.com/Baleg00/tau/internal/lexer"
	"github.com/Baleg00/tau/internal/linker"
	"github.com/Baleg00/tau/internal/logger"
	"github.com/Baleg00/tau/internal/parser"
	"github.com/Baleg00/tau/internal/sema"
	"github.com/Baleg00/tau/internal/sema/flow"
	"github.com/Baleg00/tau/internal/sema/resolve"
	"github.com/Baleg00/tau/internal/sema/typecheck"
	"github.com/Baleg00/tau/internal/source"
	"github.com/Baleg00/tau/internal/token"
)

// unit is one parsed and checked translation unit.
type unit struct {
	file *ast.File
	env  *sema.Environment
	bag  *diag.Bag
}

func runBuild(paths []string) error {
	paths, err := expandInputPaths(paths)
	if err != nil {
		return err
	}

	reg := source.NewRegistry()
	var units []*unit
	anyErrors := false

	for _, path := range paths {
		u, err := buildUnit(reg, path)
		if err != nil {
			return err
		}
		units = append(units, u)
		u.bag.Render(os.Stderr, os.Stderr, reg)
		if u.bag.HasErrors() {
			anyErrors = true
		}
	}

	if flagDumpTokens || flagDumpAST {
		return nil
	}
	if anyErrors {
		return fmt.Errorf("compilation failed")
	}

	combined := sema.NewEnvironment()
	for _, u := range units {
		if u.env.Valid() {
			sema.Merge(combined, u.env)
		}
	}

	if flagDumpIR {
		backend := codegen.NewDumpBackend(os.Stdout)
		for _, u := range units {
			if err := backend.Emit(u.file, combined.TypeTable); err != nil {
				return err
			}
		}
		return nil
	}

	return runLink(paths)
}

// expandInputPaths resolves any argument containing glob metacharacters
// (including "**") against the filesystem with doublestar.FilepathGlob.
// Plain literal paths pass through untouched, since Windows shells do not
// expand "**" the way POSIX shells do and the compiler targets both via
// its gcc/msvc linker backends.
func expandInputPaths(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if !doublestar.ValidatePattern(p) || !strings.ContainsAny(p, "*?[{") {
			out = append(out, p)
			continue
		}
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("expanding pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", p)
		}
		out = append(out, matches...)
	}
	return out, nil
}

func buildUnit(reg *source.Registry, path string) (*unit, error) {
	f, err := reg.Load(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	bag := diag.NewBag(diag.DefaultCapacity)

	if flagDumpTokens {
		dumpTokens(f)
		return &unit{bag: bag}, nil
	}

	env := sema.NewEnvironment()
	p, err := parser.New(f, env.AST, bag)
	if err != nil {
		return &unit{bag: bag}, nil
	}
	file := p.ParseFile()

	if flagDumpAST {
		dumpAST(file, 0)
		return &unit{file: file, env: env, bag: bag}, nil
	}

	if bag.Full() {
		return &unit{file: file, env: env, bag: bag}, nil
	}

	r := resolve.New(bag)
	r.Resolve(file, env.Root)

	chk := typecheck.New(bag, env.Types, env.TypeTable, r.Table())
	chk.Check(file)

	flow.New(bag).Check(file)

	return &unit{file: file, env: env, bag: bag}, nil
}

func dumpTokens(f *source.File) {
	lx := lexer.New(f)
	for {
		tok, err := lx.Next()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Println(tok.String())
		if tok.Kind == token.EOF {
			return
		}
	}
}

func dumpAST(file *ast.File, indent int) {
	pad := strings.Repeat("  ", indent)
	fmt.Printf("%sFile %s (%d decls)\n", pad, file.Path, len(file.Decls))
	for _, d := range file.Decls {
		fmt.Printf("%s  %T\n", pad, d)
	}
}

func runLink(paths []string) error {
	kind, err := parseLinkerKind(flagLinker)
	if err != nil {
		return err
	}
	opt, err := parseOptimizationLevel(flagOptimization)
	if err != nil {
		return err
	}
	vis, err := parseVisibility(flagVisibility)
	if err != nil {
		return err
	}

	l, err := linker.New(kind)
	if err != nil {
		return err
	}
	l.SetOutputKind(resolveOutputKind())
	l.SetOutputFile(flagOutput)
	l.SetOptimizationLevel(opt)
	l.SetDebugging(flagDebug)
	l.SetVisibility(vis)
	if flagEntry != "" {
		l.SetEntryPoint(flagEntry)
	}
	for _, d := range flagLibDirs {
		l.AddLibraryDirectory(d)
	}
	for _, n := range flagStaticLibs {
		l.AddStaticLibraryByName(n)
	}
	for _, n := range flagDynamicLibs {
		l.AddDynamicLibraryByName(n)
	}
	for _, flag := range flagLinkerFlags {
		l.AddFlag(flag)
	}

	var objects []string
	for _, path := range paths {
		obj := strings.TrimSuffix(path, filepath.Ext(path)) + ".o"
		if _, err := os.Stat(obj); err != nil {
			logger.Debug("no object file for source; skipping link step", "source", path, "expected", obj)
			return nil
		}
		objects = append(objects, obj)
	}
	for _, obj := range objects {
		l.AddObject(obj)
	}

	return l.Link()
}
