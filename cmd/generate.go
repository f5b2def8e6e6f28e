package cmd

import (
	"log"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/girkit/girdoc/internal/render"
)

var generateCmd = &cobra.Command{
	Use:   "generate [GIR-FILE]",
	Short: "Generate HTML reference documentation",
	Example: `  girdoc generate
  girdoc generate Gtk-4.0.gir
  girdoc generate --add-include-path /usr/share/gir-1.0 --output-dir docs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenerate,
}

var generateOutputDir string

func init() {
	generateCmd.Flags().StringVar(&generateOutputDir, "output-dir", "", "output directory (overrides the configured one)")
}

func runGenerate(cmd *cobra.Command, args []string) {
	repo, cfg, reporter, err := loadProject(args)
	if err != nil {
		log.Fatalf("failed to load project: %v", err)
	}

	outDir := cfg.OutputDir()
	if generateOutputDir != "" {
		outDir = generateOutputDir
	}

	r, err := render.New(repo, cfg, slog.Default())
	if err != nil {
		log.Fatalf("failed to initialize renderer: %v", err)
	}
	if err := r.Run(cmd.Context(), outDir); err != nil {
		log.Fatalf("failed to generate documentation: %v", err)
	}

	slog.Info("documentation generated",
		"namespace", repo.Namespace().String(),
		"output", outDir)
	exitPerReporter(reporter)
}
