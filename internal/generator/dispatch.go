package generator

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/conneroisu/mvcgen/internal/types"
)

// Dispatch names the packages the dispatch file ties together.
type Dispatch struct {
	// Package is the package clause of the dispatch file.
	Package string
	// ControllersImport and ViewsImport are the import paths of the
	// controllers and views packages; ControllersPkg and ViewsPkg are their
	// package names.
	ControllersImport string
	ControllersPkg    string
	ViewsImport       string
	ViewsPkg          string
	Host              string
	Port              int
}

type dispatchData struct {
	Header     string
	Package    string
	Imports    []string
	ViewsPkg   string
	Branches   []branchData
	Views      []viewCase
	ModelViews []viewCase
	Host       string
	Port       int
}

type branchData struct {
	Action  string
	Path    string
	Methods string
	Args    []argData
	Call    string
}

type argData struct {
	Var      string
	Expr     string
	Fallible bool
}

type viewCase struct {
	Key   string
	Func  string
	Model string
}

// Argument types bound from the request instead of the query string.
const (
	viewContextType = "*mvc.ViewContext"
	requestType     = "*mvc.Request"
	contextType     = "context.Context"
)

// RenderDispatch produces the URL resolution and view invocation code for app.
//
// Branches are emitted per controller and action in application order, so the
// first declared match wins. View cases are keyed by lower-cased view name;
// when two views share a key the first one is used.
func RenderDispatch(app *types.Application, d Dispatch) ([]byte, error) {
	data := dispatchData{
		Header:   Header,
		Package:  d.Package,
		ViewsPkg: d.ViewsPkg,
		Host:     d.Host,
		Port:     d.Port,
	}

	var namespaces []string
	for _, v := range app.Views {
		namespaces = append(namespaces, v.UseNamespaces...)
	}
	data.Imports = appendImports(nil, namespaces...)
	data.Imports = appendImports(data.Imports,
		`"strings"`,
		importAs(d.ControllersPkg, d.ControllersImport),
		importAs(d.ViewsPkg, d.ViewsImport),
		strconv.Quote(RuntimeImportPath),
	)

	for _, c := range app.Controllers {
		for _, a := range c.Actions {
			data.Branches = append(data.Branches, branch(d.ControllersPkg, a))
		}
	}

	seen := make(map[string]bool)
	for _, v := range app.Views {
		key := strings.ToLower(v.Name)
		if seen[key] {
			continue
		}
		seen[key] = true

		vc := viewCase{Key: key, Func: Identifier(v.Name), Model: v.Model}
		if v.HasModel() {
			data.ModelViews = append(data.ModelViews, vc)
		} else {
			data.Views = append(data.Views, vc)
		}
	}

	return execute(dispatchTemplate, data)
}

func branch(controllersPkg string, a types.ControllerAction) branchData {
	b := branchData{
		Action:  a.Name,
		Path:    a.Path,
		Methods: methods(a),
	}

	callArgs := make([]string, 0, len(a.Arguments))
	for i, arg := range a.Arguments {
		switch arg.Type {
		case viewContextType:
			callArgs = append(callArgs, "request.ViewContext()")
		case requestType:
			callArgs = append(callArgs, "request")
		case contextType:
			callArgs = append(callArgs, "request.Context()")
		default:
			v := fmt.Sprintf("arg%d", i)
			typ, variadic := strings.CutPrefix(arg.Type, "...")
			if variadic {
				typ = "[]" + typ
			}
			b.Args = append(b.Args, argData{
				Var:      v,
				Expr:     fmt.Sprintf("mvc.Param[%s](request, %s)", typ, strconv.Quote(arg.Name)),
				Fallible: true,
			})
			if variadic {
				v += "..."
			}
			callArgs = append(callArgs, v)
		}
	}

	b.Call = fmt.Sprintf("%s.%s(%s)", controllersPkg, a.Name, strings.Join(callArgs, ", "))
	return b
}

func methods(a types.ControllerAction) string {
	var ms []string
	for _, verb := range a.Verbs() {
		ms = append(ms, "mvc.Method"+verb[:1]+strings.ToLower(verb[1:]))
	}
	return strings.Join(ms, "|")
}

// importAs renders an import spec, adding an alias when the package name
// differs from the last path element.
func importAs(pkg, importPath string) string {
	if pkg == "" || pkg == path.Base(importPath) {
		return strconv.Quote(importPath)
	}
	return pkg + " " + strconv.Quote(importPath)
}
