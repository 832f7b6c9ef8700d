// Package config loads compiler defaults from an optional .env file
// (via github.com/joho/godotenv) before cobra/pflag parse command-line
// overrides on top. Environment values always lose to an explicit
// flag; they exist only to let a project pin defaults (linker backend,
// output file, debug info, entry point, verbosity) without repeating
// flags on every invocation.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/Baleg00/tau/internal/linker"
)

// Config holds every compiler setting, whatever its source (.env file
// or CLI flag).
type Config struct {
	InputFiles       []string
	OutputFile       string
	LinkerKind       linker.Kind
	OutputKind       linker.OutputKind
	OptimizationLevel linker.OptimizationLevel
	Debugging        bool
	EntryPoint       string
	Visibility       linker.Visibility
	LibraryDirs      []string
	StaticLibs       []string
	DynamicLibs      []string
	LinkerFlags      []string
	Verbose          bool
	DumpTokens       bool
	DumpAST          bool
	DumpIR           bool
}

// Default returns a Config with the same baseline original_source's
// tau_options_ctx_init establishes: gcc backend, a non-PIE dynamic
// executable named a.out, no optimization, no debug info.
func Default() *Config {
	return &Config{
		OutputFile:        "a.out",
		LinkerKind:        linker.KindGCC,
		OutputKind:        linker.OutputDynamicNonPIE,
		OptimizationLevel: linker.OptimizationNone,
		Visibility:        linker.VisibilityDefault,
	}
}

// LoadEnvFile merges TAU_*-prefixed environment variables (optionally
// populated from a .env file at path, if one exists) into c. Flags
// parsed afterwards by the caller should still win; this only changes
// c's starting point.
func LoadEnvFile(c *Config, path string) error {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return err
			}
		}
	}

	if v, ok := os.LookupEnv("TAU_LINKER"); ok && v == "msvc" {
		c.LinkerKind = linker.KindMSVC
	}
	if v, ok := os.LookupEnv("TAU_OUTPUT"); ok {
		c.OutputFile = v
	}
	if v, ok := os.LookupEnv("TAU_DEBUG"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debugging = b
		}
	}
	if v, ok := os.LookupEnv("TAU_ENTRY"); ok {
		c.EntryPoint = v
	}
	if v, ok := os.LookupEnv("TAU_VERBOSE"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Verbose = b
		}
	}
	return nil
}
