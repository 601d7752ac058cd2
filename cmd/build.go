package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mvcgen/internal/build"
)

var buildCmd = &cobra.Command{
	Use:     "build",
	Aliases: []string{"b"},
	Short:   "Parse controllers and views and generate code once",
	Long: `Parse every controller and view, then write the generated view render
functions, the views and controllers index files and the dispatch file.

Examples:
  mvcgen build                             # Use .mvcgen.yml or the defaults
  mvcgen build --root ./site               # Generate into ./site
  mvcgen build --views templates -l debug  # Read views from ./templates`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	addDirFlags(buildCmd.Flags())
	addServerFlags(buildCmd.Flags())
	buildCmd.Flags().BoolP("verbose", "v", false, "List every generated file")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	pipeline := build.NewPipeline(cfg.Dirs(), cfg.Target(), nil, logger)
	result := pipeline.Build(cmd.Context())
	if result.Error != nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		for _, file := range result.Generated.Files {
			fmt.Fprintf(out, "  %s\n", file)
		}
		for _, file := range result.Generated.Removed {
			fmt.Fprintf(out, "- %s\n", file)
		}
	}
	fmt.Fprintln(out, result.Summary())
	return nil
}
