package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/config"
	"github.com/girkit/girdoc/internal/index"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed symbol database",
	Example: `  girdoc search widget
  girdoc search --namespace Gtk show
  girdoc search --limit 5 gtk_widget_show`,
	Args: cobra.ExactArgs(1),
	Run:  runSearch,
}

var (
	searchNamespace string
	searchLimit     int
)

func init() {
	searchCmd.Flags().StringVar(&searchNamespace, "namespace", "", "restrict to one namespace")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 20, "max results")
	searchCmd.Flags().StringVar(&storePath, "store", "", "symbol database path (default <output-dir>/symbols.duckdb)")
}

func runSearch(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := index.OpenStore(symbolStorePath(cfg))
	if err != nil {
		log.Fatalf("failed to open symbol store: %v", err)
	}
	defer store.Close()

	results, err := store.Search(args[0], searchNamespace, searchLimit)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}

	if len(results) == 0 {
		fmt.Println("no results")
		return
	}

	for _, r := range results {
		name := r.Name
		if r.Identifier != "" {
			name = r.Identifier
		}
		fmt.Printf("  %-10s %-40s %s-%s  %s\n", r.Kind, name, r.Namespace, r.Version, r.Href)
		if r.Summary != "" {
			fmt.Printf("    %s\n", r.Summary)
		}
	}
}
