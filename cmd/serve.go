package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/config"
	"github.com/girkit/girdoc/internal/index"
	"github.com/girkit/girdoc/internal/mcpserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the symbol database over MCP (stdio)",
	Long: `Serve exposes the indexed symbol database to MCP clients over stdio:
symbol search, C-identifier lookup, and the generated documentation
pages as resources. Run "girdoc gen-index" first.`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&storePath, "store", "", "symbol database path (default <output-dir>/symbols.duckdb)")
}

func runServe(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, err := index.OpenStore(symbolStorePath(cfg))
	if err != nil {
		log.Fatalf("failed to open symbol store: %v", err)
	}
	defer store.Close()

	server := mcpserver.NewServer(store, cfg.OutputDir())

	errCh := make(chan error)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func waitForSignal(errCh chan error) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigs:
		slog.Info("received signal", "signal", sig.String())
		return nil
	case err := <-errCh:
		return err
	}
}
