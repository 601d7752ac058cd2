package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/types"
)

// ViewExtension is the extension of view template files.
const ViewExtension = ".html"

// CodeOpen starts an embedded expression in a view template. The span ends at
// the matching ].
const CodeOpen = "#["

// Directive prefixes recognized at the head of a view.
const (
	directiveUse   = "use "
	directiveModel = "model "
)

// IsViewFile reports whether name is a view template file name.
func IsViewFile(name string) bool {
	return filepath.Ext(name) == ViewExtension
}

// ViewName derives the view name from its file path.
func ViewName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// compileViewFile compiles the template src read from path and attributes
// any parse error to path.
func compileViewFile(path string, src []byte) (types.View, error) {
	view, err := CompileView(ViewName(path), string(src))
	if err != nil {
		var pe *mvcerrors.ParseError
		if errors.As(err, &pe) {
			pe.File = path
		}
		return types.View{}, err
	}
	view.File = path

	return view, nil
}

// CompileView splits src into static text and code spans.
//
// Spans whose expression starts with "use " or "model " are declarations as
// long as no part has been emitted yet; they set the view's imports and model
// type and produce no part. Blank static text is dropped, other static text is
// kept verbatim.
func CompileView(name, src string) (types.View, error) {
	view := types.View{Name: name, Parts: []types.ViewPart{}}

	rest := src
	line := 1
	for len(rest) > 0 {
		open := strings.Index(rest, CodeOpen)
		if open < 0 {
			break
		}

		if text := rest[:open]; strings.TrimSpace(text) != "" {
			view.Parts = append(view.Parts, types.Static(text))
		}
		line += strings.Count(rest[:open], "\n")

		end, ok := matchSpan(rest[open:])
		if !ok {
			return types.View{}, mvcerrors.NewFileError(name+ViewExtension,
				fmt.Errorf("unterminated %s span opened on line %d", CodeOpen, line)).
				WithLocation(name+ViewExtension, line, 0)
		}

		span := rest[open : open+end]
		expr := span[len(CodeOpen) : len(span)-1]

		switch {
		case len(view.Parts) == 0 && strings.HasPrefix(expr, directiveUse):
			view.UseNamespaces = append(view.UseNamespaces, strings.TrimSpace(expr[len(directiveUse):]))
		case len(view.Parts) == 0 && strings.HasPrefix(expr, directiveModel):
			view.Model = strings.TrimSpace(expr[len(directiveModel):])
		default:
			view.Parts = append(view.Parts, types.Code(expr))
		}

		line += strings.Count(span, "\n")
		rest = rest[open+end:]
	}

	if strings.TrimSpace(rest) != "" {
		view.Parts = append(view.Parts, types.Static(rest))
	}

	return view, nil
}

// matchSpan returns the length of the code span at the start of s, including
// both delimiters. Brackets inside quoted strings do not count. ok is false
// when the span never closes.
func matchSpan(s string) (n int, ok bool) {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			switch {
			case c == '\\' && quote != '`':
				i++
			case c == quote:
				quote = 0
			}
			continue
		}

		switch c {
		case '"', '\'', '`':
			quote = c
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}

	return 0, false
}
