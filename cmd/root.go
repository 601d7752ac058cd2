// Package cmd provides the mvcgen command-line interface.
//
// Configuration is read, from highest to lowest priority, from command-line
// flags, MVCGEN_* environment variables (also loaded from an optional .env
// file), the file named by --config or MVCGEN_CONFIG_FILE, and .mvcgen.yml in
// the current directory.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/mvcgen/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mvcgen",
	Short: "Generate routing and view code for MVC web applications",
	Long: `mvcgen scans controller sources (*_controller.go) for //mvc: routing
directives and compiles HTML view templates into Go render functions. It then
generates the dispatch code that routes requests to actions and views.

Quick Start:
  mvcgen build                    Generate code once
  mvcgen watch                    Regenerate on every change
  mvcgen list                     Show the parsed application`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .mvcgen.yml, can also use MVCGEN_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("MVCGEN_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mvcgen")
	}

	viper.SetEnvPrefix("MVCGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the CLI logger from --log-level and --log-format.
func newLogger(cmd *cobra.Command) (logging.Logger, error) {
	for _, name := range []string{"log-level", "log-format"} {
		if flag := cmd.Flags().Lookup(name); flag != nil {
			if err := viper.BindPFlag(name, flag); err != nil {
				return nil, err
			}
		}
	}

	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    viper.GetString("log-format"),
		Output:    cmd.ErrOrStderr(),
		Component: "mvcgen",
	}), nil
}
