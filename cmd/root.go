// Package cmd wires the girdoc subcommands.
package cmd

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/config"
	"github.com/girkit/girdoc/internal/diag"
	"github.com/girkit/girdoc/internal/gir"
)

var rootCmd = &cobra.Command{
	Use:   "girdoc",
	Short: "Documentation generator for GObject-Introspection namespaces",
	Long: `girdoc parses GIR XML files, resolves the cross-referenced type graph,
and produces HTML reference documentation, search indices, and a
queryable symbol database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		switch {
		case quiet:
			level = slog.LevelError
		case verbose:
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
}

var (
	configPath    string
	includePaths  []string
	quiet         bool
	verbose       bool
	fatalWarnings bool
	storePath     string
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "C", "", "path to the project configuration file (default girdoc.toml)")
	pf.StringSliceVar(&includePaths, "add-include-path", nil, "prepend a directory to the GIR search path (repeatable)")
	pf.BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log debug detail")
	pf.BoolVar(&fatalWarnings, "fatal-warnings", false, "exit nonzero when warnings were emitted")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(genDepsCmd)
	rootCmd.AddCommand(genIndexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadProject parses and resolves the project's GIR file. The positional
// argument, when given, overrides the configured gir_file.
func loadProject(args []string) (*gir.Repository, *config.Config, *diag.Reporter, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	girPath := cfg.GirPath()
	if len(args) > 0 {
		girPath = args[0]
	}

	reporter := diag.New(slog.Default())
	parser := gir.NewParser(cfg.ResolvedSearchPaths(), reporter)
	for _, p := range includePaths {
		parser.PrependSearchPath(p)
	}

	repo, err := parser.ParseFile(girPath)
	if err != nil {
		return nil, nil, nil, err
	}
	return repo, cfg, reporter, nil
}

// exitPerReporter terminates the process when the run accumulated errors,
// or warnings under --fatal-warnings.
func exitPerReporter(reporter *diag.Reporter) {
	if reporter.Failed(fatalWarnings) {
		slog.Error("run finished with diagnostics",
			"errors", reporter.Errors(),
			"warnings", reporter.Warnings())
		os.Exit(1)
	}
}

// symbolStorePath returns the --store override or the default location
// inside the configured output directory.
func symbolStorePath(cfg *config.Config) string {
	if storePath != "" {
		return storePath
	}
	return filepath.Join(cfg.OutputDir(), "symbols.duckdb")
}
