package parser

import (
	"fmt"
	"strconv"

	"github.com/conneroisu/mvcgen/internal/scanner"
)

// Attribute is one decoded routing annotation, e.g. http_url("/") becomes
// {Name: "http_url", Args: ["/"]}.
type Attribute struct {
	Name string
	Args []string
}

// Attributes is an ordered attribute list as declared in source.
type Attributes []Attribute

// Find returns the first attribute called name.
func (as Attributes) Find(name string) (Attribute, bool) {
	for _, a := range as {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

// Has reports whether an attribute called name is present.
func (as Attributes) Has(name string) bool {
	_, ok := as.Find(name)
	return ok
}

// attributeKinds is the closed set of token kinds an attribute run may
// contain. Backward boundary search and forward decoding both rely on it.
var attributeKinds = map[scanner.Kind]bool{
	scanner.KindMarker:  true,
	scanner.KindLBrack:  true,
	scanner.KindRBrack:  true,
	scanner.KindLParen:  true,
	scanner.KindRParen:  true,
	scanner.KindIdent:   true,
	scanner.KindLiteral: true,
	scanner.KindComma:   true,
}

// FindAttributesReversed decodes the attribute run that immediately precedes
// anchor. It walks backward from anchor-1 while tokens belong to the
// attribute kind set; the first token outside the set bounds the region
// [boundary, anchor).
func FindAttributesReversed(tokens scanner.Tokens, anchor int) Attributes {
	if anchor > len(tokens) {
		anchor = len(tokens)
	}

	start := anchor
	for start > 0 && attributeKinds[tokens[start-1].Kind] {
		start--
	}

	return FindAttributes(tokens, start, anchor)
}

// FindAttributes decodes tokens[start:end] into (name, args) pairs. Markers
// and opening delimiters are no-ops; commas and closing delimiters flush the
// pending pair. The first identifier or literal of a run names the attribute,
// the following ones are its arguments. String literals are unquoted.
//
// The region must only contain attribute kinds; anything else means the
// boundary search was bypassed and FindAttributes panics.
func FindAttributes(tokens scanner.Tokens, start, end int) Attributes {
	var result Attributes

	var name string
	var args []string
	flush := func() {
		if name != "" {
			result = append(result, Attribute{Name: name, Args: args})
		}
		name = ""
		args = nil
	}
	push := func(text string) {
		if name == "" {
			name = text
		} else {
			args = append(args, text)
		}
	}

	for i := start; i < end; i++ {
		tok := tokens[i]
		switch tok.Kind {
		case scanner.KindMarker, scanner.KindLBrack, scanner.KindLParen:
		case scanner.KindComma, scanner.KindRParen, scanner.KindRBrack:
			flush()
		case scanner.KindIdent:
			push(tok.Text)
		case scanner.KindLiteral:
			push(literalText(tok))
		default:
			panic(fmt.Sprintf("attribute decoding: unexpected %s at %s", tok, tok.Pos))
		}
	}
	flush()

	return result
}

// literalText unwraps string literals to their raw text; other literals keep
// their source spelling.
func literalText(tok scanner.Token) string {
	if len(tok.Text) > 0 && (tok.Text[0] == '"' || tok.Text[0] == '`') {
		if s, err := strconv.Unquote(tok.Text); err == nil {
			return s
		}
	}
	return tok.Text
}
