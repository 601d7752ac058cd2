package generator

import (
	"golang.org/x/tools/imports"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
)

var formatOptions = &imports.Options{
	Comments:   true,
	TabIndent:  true,
	TabWidth:   8,
	FormatOnly: false,
}

// Format gofmts src and prunes imports it does not use. filename places the
// source for import resolution and error messages.
func Format(filename string, src []byte) ([]byte, error) {
	out, err := imports.Process(filename, src, formatOptions)
	if err != nil {
		pe := mvcerrors.NewUnexpectedNode("generated code is not valid Go").WithFile(filename)
		pe.Cause = err
		return nil, pe
	}
	return out, nil
}
