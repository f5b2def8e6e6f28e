package cmd

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/index"
)

var genIndexCmd = &cobra.Command{
	Use:   "gen-index [GIR-FILE]",
	Short: "Build the search index and symbol database",
	Long: `Gen-index writes the index.json search artifact into the output
directory (plus index.json.zst when compression is configured) and
re-indexes the namespace in the symbol database queried by
"girdoc search" and "girdoc serve".`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenIndex,
}

func init() {
	genIndexCmd.Flags().StringVar(&storePath, "store", "", "symbol database path (default <output-dir>/symbols.duckdb)")
}

func runGenIndex(cmd *cobra.Command, args []string) {
	repo, cfg, reporter, err := loadProject(args)
	if err != nil {
		log.Fatalf("failed to load project: %v", err)
	}

	outDir := cfg.OutputDir()
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	ix := index.Build(repo)

	indexPath := filepath.Join(outDir, "index.json")
	if err := ix.Write(indexPath, cfg.Output.CompressIndex); err != nil {
		log.Fatalf("failed to write search index: %v", err)
	}
	slog.Info("search index written", "path", indexPath, "symbols", len(ix.Symbols))

	store, err := index.OpenStore(symbolStorePath(cfg))
	if err != nil {
		log.Fatalf("failed to open symbol store: %v", err)
	}
	defer store.Close()

	if err := store.Replace(ix); err != nil {
		log.Fatalf("failed to index symbols: %v", err)
	}
	slog.Info("symbol store updated", "namespace", repo.Namespace().String())

	exitPerReporter(reporter)
}
