package generator

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/mvcgen/internal/types"
)

// RuntimeImportPath is the import path of the runtime package generated code
// depends on.
const RuntimeImportPath = "github.com/conneroisu/mvcgen/pkg/mvc"

// ViewFileSuffix is appended to a view name to form its generated file name.
const ViewFileSuffix = ".gen.go"

// IndexFile is the aggregator file written to the controllers and views
// directories.
const IndexFile = "mod.gen.go"

// DispatchFile is the dispatch file written to the root directory.
const DispatchFile = "run.gen.go"

type viewData struct {
	Header  string
	Package string
	Imports []string
	Func    string
	Source  string
	Model   string
	Parts   []partData
}

type partData struct {
	Static bool
	Text   string
}

// RenderView produces the render function source for view, unformatted.
func RenderView(pkg string, view types.View) ([]byte, error) {
	data := viewData{
		Header:  Header,
		Package: pkg,
		Imports: []string{strconv.Quote(RuntimeImportPath)},
		Func:    Identifier(view.Name),
		Source:  view.Name + ".html",
		Model:   view.Model,
	}
	data.Imports = appendImports(data.Imports, view.UseNamespaces...)
	for _, part := range view.Parts {
		data.Parts = append(data.Parts, partData{
			Static: part.Kind == types.PartStatic,
			Text:   part.Text,
		})
	}

	return execute(viewTemplate, data)
}

// appendImports adds the import specs of namespaces to specs, skipping empty
// and repeated ones. First occurrence wins.
func appendImports(specs []string, namespaces ...string) []string {
	seen := make(map[string]bool, len(specs))
	for _, s := range specs {
		seen[s] = true
	}
	for _, ns := range namespaces {
		spec := ImportSpec(ns)
		if spec == "" || seen[spec] {
			continue
		}
		seen[spec] = true
		specs = append(specs, spec)
	}
	return specs
}

// Identifier turns a file stem into an exported Go identifier:
// "planet_list" becomes "PlanetList".
func Identifier(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)

	var b strings.Builder
	for _, field := range strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		b.WriteString(caser.String(field))
	}

	id := b.String()
	if !token.IsExported(id) {
		id = "View" + id
	}
	return id
}

// ImportSpec normalizes a use declaration into a Go import spec. Both
// `"path"` and `alias "path"` forms are accepted; a bare path is quoted.
// An empty declaration yields "".
func ImportSpec(ns string) string {
	fields := strings.Fields(ns)
	if len(fields) == 0 {
		return ""
	}

	last := fields[len(fields)-1]
	if !strings.HasPrefix(last, `"`) && !strings.HasPrefix(last, "`") {
		fields[len(fields)-1] = strconv.Quote(last)
	}
	return strings.Join(fields, " ")
}
