package parser

import (
	"path/filepath"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/types"
)

func TestCompileView(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		model string
		uses  []string
		parts []types.ViewPart
	}{
		{
			name:  "static only",
			src:   "<h1>Hello</h1>\n",
			parts: []types.ViewPart{types.Static("<h1>Hello</h1>\n")},
		},
		{
			name:  "blank",
			src:   "  \n\t\n",
			parts: []types.ViewPart{},
		},
		{
			name:  "empty",
			src:   "",
			parts: []types.ViewPart{},
		},
		{
			name: "static text is verbatim",
			src:  "<p> #[name] </p>",
			parts: []types.ViewPart{
				types.Static("<p> "),
				types.Code("name"),
				types.Static(" </p>"),
			},
		},
		{
			name: "nested brackets",
			src:  "#[items[0]]",
			parts: []types.ViewPart{
				types.Code("items[0]"),
			},
		},
		{
			name: "brackets inside strings",
			src:  `#["]"]#['[']` + "#[`[[`]",
			parts: []types.ViewPart{
				types.Code(`"]"`),
				types.Code(`'['`),
				types.Code("`[[`"),
			},
		},
		{
			name: "escaped quote",
			src:  `#["a\"]b"]`,
			parts: []types.ViewPart{
				types.Code(`"a\"]b"`),
			},
		},
		{
			name:  "use and model directives",
			src:   "#[use \"example.com/app/models\"]\n#[model *models.Planet]\n<h1>#[model.Name]</h1>\n",
			model: "*models.Planet",
			uses:  []string{`"example.com/app/models"`},
			parts: []types.ViewPart{
				types.Static("\n<h1>"),
				types.Code("model.Name"),
				types.Static("</h1>\n"),
			},
		},
		{
			name: "aliased use keeps first-seen order",
			src:  "#[use m \"example.com/app/models\"]#[use \"strings\"]#[use \"strings\"]",
			uses: []string{`m "example.com/app/models"`, `"strings"`, `"strings"`},
			parts: []types.ViewPart{},
		},
		{
			name: "model after code is code",
			src:  "#[x]#[model Foo]",
			parts: []types.ViewPart{
				types.Code("x"),
				types.Code("model Foo"),
			},
		},
		{
			name: "use after static is code",
			src:  "<p>#[use \"strings\"]",
			parts: []types.ViewPart{
				types.Static("<p>"),
				types.Code(`use "strings"`),
			},
		},
		{
			name: "leading expression is kept",
			src:  "#[title]<hr>",
			parts: []types.ViewPart{
				types.Code("title"),
				types.Static("<hr>"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := CompileView("index", tt.src)
			require.NoError(t, err)

			assert.Equal(t, "index", view.Name)
			assert.Equal(t, tt.model, view.Model)
			assert.Equal(t, tt.uses, view.UseNamespaces)
			assert.Equal(t, tt.parts, view.Parts)
		})
	}
}

func TestCompileViewUnterminatedSpan(t *testing.T) {
	src := dedent.Dedent(`
		<ul>
		#[range]
		<li>#[items[0]</li>
		</ul>
	`)

	_, err := CompileView("list", src)
	require.Error(t, err)
	assert.True(t, mvcerrors.IsFileError(err))

	var pe *mvcerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "list.html", pe.File)
	assert.Equal(t, 4, pe.Line)
	assert.Contains(t, err.Error(), "unterminated #[ span opened on line 4")
}

func TestCompileViewFile(t *testing.T) {
	path := filepath.Join("app", "views", "planet.html")

	view, err := compileViewFile(path, []byte("#[model Planet]<b>#[model.Name]</b>"))
	require.NoError(t, err)
	assert.Equal(t, "planet", view.Name)
	assert.Equal(t, path, view.File)
	assert.Equal(t, "Planet", view.Model)
	assert.True(t, view.HasModel())
	assert.Len(t, view.Parts, 3)

	bad := filepath.Join("app", "views", "bad.html")
	_, err = compileViewFile(bad, []byte("#[oops"))
	require.Error(t, err)
	assert.True(t, mvcerrors.IsFileError(err))

	var pe *mvcerrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, bad, pe.File)
}

func TestViewFileNames(t *testing.T) {
	assert.True(t, IsViewFile("index.html"))
	assert.False(t, IsViewFile("index.gen.go"))
	assert.False(t, IsViewFile("index.htm"))
	assert.Equal(t, "index", ViewName("/app/views/index.html"))
}
