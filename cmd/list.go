package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ddddddO/gtree"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/mvcgen/internal/parser"
	"github.com/conneroisu/mvcgen/internal/types"
)

var listFormats = []string{"table", "json", "yaml", "tree"}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"l"},
	Short:   "List the parsed controllers, actions and views",
	Long: `Parse the controllers and views and print the application model without
generating any code.

Examples:
  mvcgen list                 # Table of actions and views
  mvcgen list -f tree         # Tree of controllers, actions and arguments
  mvcgen list -f json         # Full model as JSON, including view parts`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	addDirFlags(listCmd.Flags())
	addFormatFlag(listCmd.Flags(), listFormats...)
}

func runList(cmd *cobra.Command, args []string) error {
	f, err := format(cmd, listFormats...)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	app, err := parser.New(logger, nil).Parse(cmd.Context(), cfg.Dirs())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch f {
	case "json":
		return outputListJSON(out, app)
	case "yaml":
		return outputListYAML(out, app)
	case "tree":
		return outputListTree(out, app)
	default:
		return outputListTable(out, app)
	}
}

func outputListJSON(w io.Writer, app *types.Application) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(app)
}

func outputListYAML(w io.Writer, app *types.Application) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(app)
}

func outputListTable(w io.Writer, app *types.Application) error {
	if len(app.Controllers) == 0 && len(app.Views) == 0 {
		_, err := fmt.Fprintln(w, "No controllers or views found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTROLLER\tACTION\tMETHODS\tPATH\tARGUMENTS")
	for _, c := range app.Controllers {
		for _, a := range c.Actions {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", c.Name, a.Name, strings.Join(a.Verbs(), ","), a.Path, arguments(a))
		}
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "VIEW\tMODEL\tPARTS\tFILE")
	for _, v := range app.Views {
		model := v.Model
		if model == "" {
			model = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", v.Name, model, len(v.Parts), v.File)
	}
	return tw.Flush()
}

func arguments(a types.ControllerAction) string {
	if len(a.Arguments) == 0 {
		return "-"
	}
	parts := make([]string, len(a.Arguments))
	for i, arg := range a.Arguments {
		parts[i] = arg.Name + " " + arg.Type
	}
	return strings.Join(parts, ", ")
}

func outputListTree(w io.Writer, app *types.Application) error {
	root := gtree.NewRoot("application")

	controllers := root.Add("controllers")
	for _, c := range app.Controllers {
		node := controllers.Add(c.Name)
		for _, a := range c.Actions {
			action := node.Add(fmt.Sprintf("%s %s %s", a.Name, strings.Join(a.Verbs(), "|"), a.Path))
			for _, arg := range a.Arguments {
				action.Add(arg.Name + " " + arg.Type)
			}
		}
	}

	views := root.Add("views")
	for _, v := range app.Views {
		name := v.Name
		if v.HasModel() {
			name += " (" + v.Model + ")"
		}
		node := views.Add(name)
		for _, ns := range v.UseNamespaces {
			node.Add("use " + ns)
		}
	}

	return gtree.OutputProgrammably(w, root)
}
