package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/mvcgen/internal/scaffolding"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Create a starter application",
	Long: `Create .mvcgen.yml, a main package that serves the generated Run function,
a home controller and its index view. Existing files are left untouched.

Run it inside a Go module, then run "mvcgen build".`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a controller or a view",
}

var newControllerCmd = &cobra.Command{
	Use:   "controller NAME",
	Short: "Create <controllers>/NAME_controller.go with one routed action",
	Long: `Examples:
  mvcgen new controller planets                    # Index action on /planets
  mvcgen new controller planets --action List --path /planets/list`,
	Args: cobra.ExactArgs(1),
	RunE: runNewController,
}

var newViewCmd = &cobra.Command{
	Use:   "view NAME",
	Short: "Create <views>/NAME.html",
	Long: `Examples:
  mvcgen new view index
  mvcgen new view planet --model "*models.Planet"`,
	Args: cobra.ExactArgs(1),
	RunE: runNewView,
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(newCmd)
	newCmd.AddCommand(newControllerCmd)
	newCmd.AddCommand(newViewCmd)

	addDirFlags(initCmd.Flags())
	addDirFlags(newControllerCmd.Flags())
	addDirFlags(newViewCmd.Flags())

	newControllerCmd.Flags().String("action", "Index", "Name of the routed function")
	newControllerCmd.Flags().String("path", "", "Routed URL path (default /NAME)")
	newViewCmd.Flags().String("model", "", "Model type expression")
}

func scaffolder(cmd *cobra.Command) (*scaffolding.Scaffolder, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return scaffolding.New(cfg.Dirs()), nil
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := scaffolder(cmd)
	if err != nil {
		return err
	}

	created, err := s.Project()
	for _, file := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", file)
	}
	if err != nil {
		return err
	}
	if len(created) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to do, all starter files exist.")
	}
	return nil
}

func runNewController(cmd *cobra.Command, args []string) error {
	s, err := scaffolder(cmd)
	if err != nil {
		return err
	}
	action, _ := cmd.Flags().GetString("action")
	path, _ := cmd.Flags().GetString("path")

	file, err := s.Controller(scaffolding.ControllerOptions{Name: args[0], Action: action, Path: path})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", file)
	return nil
}

func runNewView(cmd *cobra.Command, args []string) error {
	s, err := scaffolder(cmd)
	if err != nil {
		return err
	}
	model, _ := cmd.Flags().GetString("model")

	file, err := s.View(scaffolding.ViewOptions{Name: args[0], Model: model})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", file)
	return nil
}
