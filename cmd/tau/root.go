// Command tau is the compiler's entry point, wiring the source
// registry, lexer, parser, the three semantic passes, diagnostic
// rendering, and the linker abstraction into a single CLI, the way
// cmd/hivectl/root.go wires its subcommands around one cobra root
// command and a shared set of persistent flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Baleg00/tau/internal/config"
	"github.com/Baleg00/tau/internal/linker"
	"github.com/Baleg00/tau/internal/logger"
)

var (
	flagOutput       string
	flagLinker       string
	flagOptimization string
	flagDebug        bool
	flagEntry        string
	flagVisibility   string
	flagLibDirs      []string
	flagStaticLibs   []string
	flagDynamicLibs  []string
	flagLinkerFlags  []string
	flagVerbose      bool
	flagDumpTokens   bool
	flagDumpAST      bool
	flagDumpIR       bool
	flagEnvFile      string
	flagShared       bool
	flagStatic       bool
	flagPIE          bool
)

var rootCmd = &cobra.Command{
	Use:     "tau [flags] <file...>",
	Short:   "Tau language compiler front end",
	Long:    `tau parses, resolves, and type-checks Tau source files, then links the result via a pluggable GCC/MSVC-style backend.`,
	Version: "0.1.0",
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		applyEnvDefaults(cmd)
		logger.Init(logger.Options{Verbose: flagVerbose})
		return runBuild(args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "a.out", "Output file path")
	rootCmd.PersistentFlags().StringVar(&flagLinker, "linker", "gcc", "Linker backend: gcc or msvc")
	rootCmd.PersistentFlags().StringVar(&flagOptimization, "opt", "none", "Optimization level: none, less, default, aggressive, size, speed, debug")
	rootCmd.PersistentFlags().BoolVarP(&flagDebug, "debug", "g", false, "Emit debugging information")
	rootCmd.PersistentFlags().StringVar(&flagEntry, "entry", "", "Override the entry point symbol")
	rootCmd.PersistentFlags().StringVar(&flagVisibility, "visibility", "default", "Symbol visibility: default, hidden, protected")
	rootCmd.PersistentFlags().StringSliceVarP(&flagLibDirs, "library-dir", "L", nil, "Add a library search directory")
	rootCmd.PersistentFlags().StringSliceVarP(&flagStaticLibs, "static", "l", nil, "Link a static library by name")
	rootCmd.PersistentFlags().StringSliceVar(&flagDynamicLibs, "dynamic", nil, "Link a dynamic library by name")
	rootCmd.PersistentFlags().StringSliceVar(&flagLinkerFlags, "linker-flag", nil, "Pass a raw flag through to the linker")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug-level) logging")
	rootCmd.PersistentFlags().BoolVar(&flagDumpTokens, "dump-tokens", false, "Dump the token stream for each input file and exit")
	rootCmd.PersistentFlags().BoolVar(&flagDumpAST, "dump-ast", false, "Dump the parsed AST for each input file and exit")
	rootCmd.PersistentFlags().BoolVar(&flagDumpIR, "dump-ir", false, "Dump pseudo-IR instead of invoking the linker")
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", ".env", "Path to an optional .env file of TAU_* defaults")
	rootCmd.PersistentFlags().BoolVar(&flagShared, "shared", false, "Produce a dynamic library instead of an executable")
	rootCmd.PersistentFlags().BoolVar(&flagStatic, "static-link", false, "Link statically")
	rootCmd.PersistentFlags().BoolVar(&flagPIE, "pie", false, "Produce a position-independent executable")
}

// applyEnvDefaults seeds any flag the user did not explicitly pass
// from a .env file / TAU_* environment variables, so a project can pin
// defaults without repeating flags on every invocation.
func applyEnvDefaults(cmd *cobra.Command) {
	cfg := config.Default()
	if err := config.LoadEnvFile(cfg, flagEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "tau: warning: failed to load %s: %v\n", flagEnvFile, err)
		return
	}
	if !cmd.Flags().Changed("output") && cfg.OutputFile != "" {
		flagOutput = cfg.OutputFile
	}
	if !cmd.Flags().Changed("linker") && cfg.LinkerKind == linker.KindMSVC {
		flagLinker = "msvc"
	}
	if !cmd.Flags().Changed("debug") {
		flagDebug = cfg.Debugging
	}
	if !cmd.Flags().Changed("entry") && cfg.EntryPoint != "" {
		flagEntry = cfg.EntryPoint
	}
	if !cmd.Flags().Changed("verbose") {
		flagVerbose = cfg.Verbose
	}
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseLinkerKind(s string) (linker.Kind, error) {
	switch s {
	case "gcc":
		return linker.KindGCC, nil
	case "msvc":
		return linker.KindMSVC, nil
	default:
		return 0, fmt.Errorf("unknown linker backend %q", s)
	}
}

func parseOptimizationLevel(s string) (linker.OptimizationLevel, error) {
	switch s {
	case "none":
		return linker.OptimizationNone, nil
	case "less":
		return linker.OptimizationLess, nil
	case "default":
		return linker.OptimizationDefault, nil
	case "aggressive":
		return linker.OptimizationAggressive, nil
	case "size":
		return linker.OptimizationSize, nil
	case "speed":
		return linker.OptimizationSpeed, nil
	case "debug":
		return linker.OptimizationDebug, nil
	default:
		return 0, fmt.Errorf("unknown optimization level %q", s)
	}
}

func parseVisibility(s string) (linker.Visibility, error) {
	switch s {
	case "default":
		return linker.VisibilityDefault, nil
	case "hidden":
		return linker.VisibilityHidden, nil
	case "protected":
		return linker.VisibilityProtected, nil
	default:
		return 0, fmt.Errorf("unknown visibility %q", s)
	}
}

func resolveOutputKind() linker.OutputKind {
	switch {
	case flagShared:
		return linker.OutputDynamicLibrary
	case flagStatic && flagPIE:
		return linker.OutputStaticPIE
	case flagStatic:
		return linker.OutputStaticNonPIE
	case flagPIE:
		return linker.OutputDynamicPIE
	default:
		return linker.OutputDynamicNonPIE
	}
}
