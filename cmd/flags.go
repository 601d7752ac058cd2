package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/conneroisu/mvcgen/internal/config"
)

// dirFlags maps directory flags to their configuration keys.
var dirFlags = map[string]string{
	"root":        "root_dir",
	"controllers": "controller_dir",
	"views":       "view_dir",
}

// serverFlags maps server flags to their configuration keys.
var serverFlags = map[string]string{
	"host": "server.host",
	"port": "server.port",
}

// addDirFlags adds the source and output directory flags to fs.
func addDirFlags(fs *pflag.FlagSet) {
	fs.StringP("root", "r", config.DefaultRootDir, "Root output directory")
	fs.String("controllers", config.DefaultControllerDir, "Controllers directory under the root")
	fs.String("views", config.DefaultViewDir, "Views directory under the root")
}

// addServerFlags adds the flags baked into the generated Run function.
func addServerFlags(fs *pflag.FlagSet) {
	fs.String("host", config.DefaultHost, "Host the generated server listens on")
	fs.Int("port", config.DefaultPort, "Port the generated server listens on")
}

// addFormatFlag adds --format/-f limited to formats.
func addFormatFlag(fs *pflag.FlagSet, formats ...string) {
	fs.StringP("format", "f", formats[0], "Output format ("+strings.Join(formats, "|")+")")
}

// format returns the validated --format value.
func format(cmd *cobra.Command, formats ...string) (string, error) {
	f, err := cmd.Flags().GetString("format")
	if err != nil {
		return "", err
	}
	f = strings.ToLower(f)
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf("unsupported format: %s (supported: %s)", f, strings.Join(formats, ", "))
	}
	return f, nil
}

// loadConfig binds the command's flags that were set explicitly and loads
// the configuration. Unset flags leave file and environment values alone.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	for _, keys := range []map[string]string{dirFlags, serverFlags} {
		for name, key := range keys {
			if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
				if err := viper.BindPFlag(key, flag); err != nil {
					return nil, err
				}
			}
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
