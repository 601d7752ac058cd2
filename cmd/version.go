package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/mvcgen/internal/version"
)

var versionFormats = []string{"text", "json", "yaml"}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	addFormatFlag(versionCmd.Flags(), versionFormats...)
	versionCmd.Flags().Bool("short", false, "Show the version only")
}

func runVersion(cmd *cobra.Command, args []string) error {
	f, err := format(cmd, versionFormats...)
	if err != nil {
		return err
	}

	info := version.GetBuildInfo()
	out := cmd.OutOrStdout()

	switch f {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		defer encoder.Close()
		return encoder.Encode(info)
	}

	if short, _ := cmd.Flags().GetBool("short"); short {
		_, err := fmt.Fprintln(out, info.Short())
		return err
	}
	fmt.Fprintf(out, "mvcgen %s\n", info.Short())
	fmt.Fprintf(out, "Built: %s\n", info.BuildTime)
	fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
	fmt.Fprintf(out, "Platform: %s\n", info.Platform)
	return nil
}
