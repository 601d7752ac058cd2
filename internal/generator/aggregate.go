package generator

import "github.com/conneroisu/mvcgen/internal/types"

type indexData struct {
	Header  string
	Package string
	Var     string
	What    string
	Names   []string
}

// RenderViewIndex lists every view name, one entry per view in application
// order.
func RenderViewIndex(pkg string, views []types.View) ([]byte, error) {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, v.Name)
	}
	return execute(indexTemplate, indexData{
		Header:  Header,
		Package: pkg,
		Var:     "Views",
		What:    "compiled views",
		Names:   names,
	})
}

// RenderControllerIndex lists every controller name in application order.
func RenderControllerIndex(pkg string, controllers []types.Controller) ([]byte, error) {
	names := make([]string, 0, len(controllers))
	for _, c := range controllers {
		names = append(names, c.Name)
	}
	return execute(indexTemplate, indexData{
		Header:  Header,
		Package: pkg,
		Var:     "Controllers",
		What:    "routed controllers",
		Names:   names,
	})
}
