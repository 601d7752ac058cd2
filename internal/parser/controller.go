package parser

import (
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/scanner"
	"github.com/conneroisu/mvcgen/internal/types"
)

// ControllerSuffix is the file stem suffix that marks a controller source.
const ControllerSuffix = "_controller"

// Routing attribute names.
const (
	AttrURL    = "http_url"
	AttrGet    = "http_get"
	AttrPost   = "http_post"
	AttrPut    = "http_put"
	AttrDelete = "http_delete"
)

// IsControllerFile reports whether name is a controller source file name.
func IsControllerFile(name string) bool {
	return strings.HasSuffix(name, ControllerSuffix+".go")
}

// ControllerName derives the controller name from its file path.
func ControllerName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.TrimSuffix(stem, ControllerSuffix)
}

// ParseController finds the routed functions in tokens and appends a
// controller to app when at least one was found.
//
// A function is routed when it is exported and carries an http_url attribute
// with a non-empty path. Methods and function literals are skipped. Routed
// functions must be non-generic and name their parameters, since the
// dispatcher binds arguments by name.
func ParseController(app *types.Application, tokens scanner.Tokens, name, file string) error {
	controller := types.Controller{Name: name, File: file}

	for i, tok := range tokens {
		if tok.Tok != token.FUNC {
			continue
		}

		ident, ok := tokens.At(i + 1)
		if !ok || ident.Kind != scanner.KindIdent || !token.IsExported(ident.Text) {
			continue
		}

		attrs := FindAttributesReversed(tokens, i)
		url, ok := attrs.Find(AttrURL)
		if !ok || len(url.Args) == 0 || url.Args[0] == "" {
			continue
		}

		if next, ok := tokens.At(i + 2); ok && next.Kind == scanner.KindLBrack {
			return mvcerrors.NewUnexpectedNode(
				fmt.Sprintf("generic function %s cannot be a routed action", ident.Text),
			).WithLocation(ident.Pos.Filename, ident.Pos.Line, ident.Pos.Column)
		}

		args, err := ParseArguments(tokens, i+2, ident.Text)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			if next, ok := tokens.At(i + 3); ok && next.Kind != scanner.KindRParen {
				return mvcerrors.NewUnexpectedNode(
					fmt.Sprintf("routed action %s has unnamed parameters", ident.Text),
				).WithLocation(ident.Pos.Filename, ident.Pos.Line, ident.Pos.Column)
			}
		}

		action := types.ControllerAction{
			Name:        ident.Text,
			Path:        url.Args[0],
			AllowGet:    attrs.Has(AttrGet),
			AllowPost:   attrs.Has(AttrPost),
			AllowPut:    attrs.Has(AttrPut),
			AllowDelete: attrs.Has(AttrDelete),
			Arguments:   args,
		}
		if !action.AllowGet && !action.AllowPost && !action.AllowPut && !action.AllowDelete {
			action.AllowGet = true
		}

		controller.Actions = append(controller.Actions, action)
	}

	if len(controller.Actions) > 0 {
		app.Controllers = append(app.Controllers, controller)
	}

	return nil
}
