package parser

import (
	"fmt"
	"strings"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/scanner"
	"github.com/conneroisu/mvcgen/internal/types"
)

// signatureKinds are the token kinds that may appear inside a parameter
// list. Everything else aborts the build.
var signatureKinds = map[scanner.Kind]bool{
	scanner.KindIdent:     true,
	scanner.KindKeyword:   true,
	scanner.KindLiteral:   true,
	scanner.KindLParen:    true,
	scanner.KindRParen:    true,
	scanner.KindLBrack:    true,
	scanner.KindRBrack:    true,
	scanner.KindLBrace:    true,
	scanner.KindRBrace:    true,
	scanner.KindComma:     true,
	scanner.KindPeriod:    true,
	scanner.KindSemicolon: true,
	scanner.KindStar:      true,
	scanner.KindEllipsis:  true,
	scanner.KindArrow:     true,
	scanner.KindOperator:  true,
}

// ParseArguments reads the parameter list that opens at tokens[start] and
// returns its named parameters.
//
// Nesting is tracked across (), [] and {} so commas inside func types,
// generic instantiations or struct literals never split a parameter. At the
// top level the first identifier of a parameter is its name and the rest of
// the parameter is its type; names without a type (a, b int) take the type
// of the next typed parameter. Types are rebuilt from tokens with
// canonical spacing.
func ParseArguments(tokens scanner.Tokens, start int, fnName string) ([]types.ControllerActionArgument, error) {
	open, ok := tokens.At(start)
	if !ok {
		return nil, unexpectedEnd(tokens, fnName)
	}
	if open.Kind != scanner.KindLParen {
		return nil, mvcerrors.Expected(fmt.Sprintf("( after func %s", fnName), open.String()).
			WithLocation(open.Pos.Filename, open.Pos.Line, open.Pos.Column)
	}

	p := &paramList{}
	depth := 0

	for i := start; i < len(tokens); i++ {
		tok := tokens[i]
		if !signatureKinds[tok.Kind] {
			return nil, mvcerrors.NewUnexpectedNode(
				fmt.Sprintf("unexpected %s in signature of %s", tok, fnName),
			).WithLocation(tok.Pos.Filename, tok.Pos.Line, tok.Pos.Column)
		}

		switch {
		case tok.Kind.IsOpen():
			depth++
			if depth == 1 {
				continue
			}
		case tok.Kind.IsClose():
			depth--
			if depth == 0 {
				p.flush()
				return p.finish(), nil
			}
		case depth == 1 && tok.Kind == scanner.KindComma:
			p.flush()
			continue
		case depth == 1 && tok.Kind == scanner.KindSemicolon:
			return nil, mvcerrors.Expected(fmt.Sprintf(", or ) in signature of %s", fnName), "newline").
				WithLocation(tok.Pos.Filename, tok.Pos.Line, tok.Pos.Column)
		}

		// An opening delimiter already raised depth; it still belongs to the
		// parameter that sits at the top level.
		topLevel := depth == 1 || (depth == 2 && tok.Kind.IsOpen())
		p.add(tok, topLevel)
	}

	return nil, unexpectedEnd(tokens, fnName)
}

func unexpectedEnd(tokens scanner.Tokens, fnName string) error {
	err := mvcerrors.NewUnexpectedNode("unexpected end of function signature " + fnName)
	if last, ok := tokens.At(len(tokens) - 1); ok {
		err = err.WithLocation(last.Pos.Filename, last.Pos.Line, last.Pos.Column)
	}
	return err
}

// paramList accumulates parameters while ParseArguments walks a signature.
type paramList struct {
	args        []types.ControllerActionArgument
	pending     []string
	name        strings.Builder
	typ         strings.Builder
	parsingName bool
	started     bool
	unnamed     bool
	prev        scanner.Token
}

func (p *paramList) add(tok scanner.Token, topLevel bool) {
	if !p.started {
		p.started = true
		p.parsingName = true
	}

	if p.parsingName {
		if topLevel && tok.Kind == scanner.KindIdent && p.name.Len() == 0 {
			p.name.WriteString(tok.Text)
			p.prev = tok
			return
		}
		p.parsingName = false
		p.prev = scanner.Token{}
	}

	writeTypeToken(&p.typ, p.prev, tok)
	p.prev = tok
}

// flush closes the current parameter.
func (p *paramList) flush() {
	name, typ := p.name.String(), p.typ.String()
	p.name.Reset()
	p.typ.Reset()
	p.started = false
	p.prev = scanner.Token{}

	switch {
	case name != "" && typ == "":
		p.pending = append(p.pending, name)
	case name == "" && typ != "", strings.HasPrefix(typ, ".") && !strings.HasPrefix(typ, "..."):
		// *T, []T or pkg.T on their own: the list is unnamed. A named
		// variadic parameter (tags ...string) is not.
		p.unnamed = true
	case typ != "":
		for _, pendingName := range p.pending {
			p.args = append(p.args, types.ControllerActionArgument{Name: pendingName, Type: typ})
		}
		p.pending = nil
		if name != "" {
			p.args = append(p.args, types.ControllerActionArgument{Name: name, Type: typ})
		}
	}
}

// finish drops names that never received a type: in Go those were unnamed
// parameters, e.g. func(int, string). Go forbids mixing named and unnamed
// parameters, so one unnamed parameter makes the whole list unnamed.
func (p *paramList) finish() []types.ControllerActionArgument {
	p.pending = nil
	if p.args == nil || p.unnamed {
		return []types.ControllerActionArgument{}
	}
	return p.args
}

// writeTypeToken appends tok to a type expression using gofmt-like spacing.
func writeTypeToken(b *strings.Builder, prev, tok scanner.Token) {
	if b.Len() > 0 && needsSpace(prev, tok) {
		b.WriteByte(' ')
	}
	b.WriteString(tok.Text)
}

func needsSpace(prev, tok scanner.Token) bool {
	word := func(t scanner.Token) bool {
		return t.Kind == scanner.KindIdent || t.Kind == scanner.KindKeyword || t.Kind == scanner.KindLiteral
	}

	switch prev.Kind {
	case scanner.KindComma, scanner.KindSemicolon:
		return true
	case scanner.KindRParen:
		return word(tok) || tok.Kind == scanner.KindLParen || tok.Kind == scanner.KindStar || tok.Kind == scanner.KindLBrack
	case scanner.KindArrow:
		return tok.Text != "chan"
	case scanner.KindLBrace:
		return tok.Kind != scanner.KindRBrace
	}

	if tok.Kind == scanner.KindRBrace {
		return prev.Kind != scanner.KindLBrace
	}
	if tok.Kind == scanner.KindLBrace {
		return false
	}

	return word(prev) && word(tok)
}
