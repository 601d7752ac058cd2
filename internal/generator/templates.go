package generator

import (
	"bytes"
	"strconv"
	"text/template"
)

// Header opens every generated file.
const Header = "// Code generated by mvcgen. DO NOT EDIT.\n" +
	"// Changes to this file are overwritten on the next build.\n"

var templateFuncs = template.FuncMap{
	"quote": strconv.Quote,
}

var viewTemplate = template.Must(template.New("view").Funcs(templateFuncs).Parse(`{{.Header}}
package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// {{.Func}} renders {{.Source}}.
func {{.Func}}({{if .Model}}model {{.Model}}{{end}}) string {
	var b mvc.Builder
{{- range .Parts}}
{{- if .Static}}
	b.Static({{quote .Text}})
{{- else}}
	b.Value({{.Text}})
{{- end}}
{{- end}}
	return b.String()
}
`))

var indexTemplate = template.Must(template.New("index").Funcs(templateFuncs).Parse(`{{.Header}}
package {{.Package}}

// {{.Var}} lists the {{.What}} in build order.
var {{.Var}} = []string{
{{- range .Names}}
	{{quote .}},
{{- end}}
}
`))

var dispatchTemplate = template.Must(template.New("dispatch").Funcs(templateFuncs).Parse(`{{.Header}}
package {{.Package}}

import (
{{- range .Imports}}
	{{.}}
{{- end}}
)

// resolveURL invokes the first action whose path and verbs match request.
func resolveURL(request *mvc.Request) (string, mvc.ViewResult, error) {
{{- range .Branches}}
	if request.Match({{quote .Path}}, {{.Methods}}) {
{{- range .Args}}{{if .Fallible}}
		{{.Var}}, err := {{.Expr}}
		if err != nil {
			return "", mvc.ViewResult{}, err
		}
{{- end}}{{end}}
		result, err := {{.Call}}
		return {{quote .Action}}, result, err
	}
{{- end}}
	return "", mvc.ViewResult{}, mvc.ErrURLNotFound
}

// executeView renders a view that takes no model.
func executeView(viewName string) (string, bool) {
	switch strings.ToLower(viewName) {
{{- range .Views}}
	case {{quote .Key}}:
		return {{$.ViewsPkg}}.{{.Func}}(), true
{{- end}}
	}
	return "", false
}

// executeViewWithModel renders a view that declares a model. It reports false
// when model is not of the declared type.
func executeViewWithModel(viewName string, model any) (string, bool) {
	switch strings.ToLower(viewName) {
{{- range .ModelViews}}
	case {{quote .Key}}:
		m, ok := model.({{.Model}})
		if !ok {
			return "", false
		}
		return {{$.ViewsPkg}}.{{.Func}}(m), true
{{- end}}
	}
	return "", false
}

// Run creates the application server.
func Run() *mvc.Server {
	return mvc.NewServer({{quote .Host}}, {{.Port}}, resolveURL, executeView, executeViewWithModel)
}
`))

func execute(t *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
