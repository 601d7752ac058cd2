package parser

import (
	"strings"
	"testing"

	"github.com/conneroisu/mvcgen/internal/types"
)

// FuzzCompileView checks that arbitrary templates never panic and that
// compiled parts never lose text: every static part appears in the source
// and no static part is blank.
func FuzzCompileView(f *testing.F) {
	f.Add("<h1>Hello</h1>")
	f.Add("#[use \"strings\"]#[model *Planet]<p>#[model.Name]</p>")
	f.Add("#[items[0]]#[\"]\"]")
	f.Add("#[")
	f.Add("#[\"")
	f.Add("]]#[[[]]]")

	f.Fuzz(func(t *testing.T, src string) {
		view, err := CompileView("fuzz", src)
		if err != nil {
			return
		}

		for _, part := range view.Parts {
			switch part.Kind {
			case types.PartStatic:
				if strings.TrimSpace(part.Text) == "" {
					t.Fatalf("blank static part in %q", src)
				}
				if !strings.Contains(src, part.Text) {
					t.Fatalf("static part %q not in source", part.Text)
				}
			case types.PartCode:
				if !strings.Contains(src, CodeOpen+part.Text+"]") {
					t.Fatalf("code part %q not in source", part.Text)
				}
			}
		}
	})
}
