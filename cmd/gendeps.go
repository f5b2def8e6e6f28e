package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"
)

var genDepsCmd = &cobra.Command{
	Use:   "gen-deps [GIR-FILE]",
	Short: "List the GIR files the project depends on",
	Long: `Gen-deps prints the project's GIR file followed by every transitive
dependency that was found in the search paths, one path per line. Build
systems use the list as a dependency manifest for regeneration.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGenDeps,
}

func runGenDeps(cmd *cobra.Command, args []string) {
	repo, _, reporter, err := loadProject(args)
	if err != nil {
		log.Fatalf("failed to load project: %v", err)
	}

	fmt.Println(repo.GirFile)

	var deps []string
	for _, dep := range repo.Includes {
		if dep.GirFile != "" {
			deps = append(deps, dep.GirFile)
		}
	}
	sort.Strings(deps)
	for _, path := range deps {
		fmt.Println(path)
	}

	exitPerReporter(reporter)
}
