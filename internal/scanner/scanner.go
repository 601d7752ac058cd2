// Package scanner turns a Go controller source file into an indexable token
// sequence.
//
// The sequence is produced by go/scanner and differs from the raw Go token
// stream in two ways: ordinary comments are dropped, and every routing
// directive comment
//
//	//mvc:http_url("/planets"), http_post
//
// is expanded in place into the attribute run
//
//	Marker [ http_url ( "/planets" ) , http_post ]
//
// so that attribute discovery can walk backward from a function declaration
// over a closed set of token kinds. The end-of-file token is never part of the
// sequence.
package scanner

import (
	"fmt"
	goscanner "go/scanner"
	"go/token"
	"strings"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
)

// DirectivePrefix starts a routing directive comment.
const DirectivePrefix = "//mvc:"

// Kind is the closed set of token categories the parsers reason about.
type Kind int

const (
	KindIllegal Kind = iota
	KindIdent
	KindKeyword
	KindLiteral
	KindMarker
	KindLParen
	KindRParen
	KindLBrack
	KindRBrack
	KindLBrace
	KindRBrace
	KindComma
	KindPeriod
	KindColon
	KindSemicolon
	KindStar
	KindEllipsis
	KindArrow
	KindOperator
)

var kindNames = [...]string{
	KindIllegal:   "illegal",
	KindIdent:     "identifier",
	KindKeyword:   "keyword",
	KindLiteral:   "literal",
	KindMarker:    "attribute marker",
	KindLParen:    "(",
	KindRParen:    ")",
	KindLBrack:    "[",
	KindRBrack:    "]",
	KindLBrace:    "{",
	KindRBrace:    "}",
	KindComma:     ",",
	KindPeriod:    ".",
	KindColon:     ":",
	KindSemicolon: ";",
	KindStar:      "*",
	KindEllipsis:  "...",
	KindArrow:     "<-",
	KindOperator:  "operator",
}

// String returns a human readable name for the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsOpen reports whether k opens a nesting level.
func (k Kind) IsOpen() bool {
	return k == KindLParen || k == KindLBrack || k == KindLBrace
}

// IsClose reports whether k closes a nesting level.
func (k Kind) IsClose() bool {
	return k == KindRParen || k == KindRBrack || k == KindRBrace
}

// Token is one element of a scanned file.
type Token struct {
	Kind Kind
	// Tok is the underlying Go token. Synthetic brackets around a directive
	// carry token.LBRACK/token.RBRACK; markers carry token.COMMENT.
	Tok token.Token
	// Text is the source spelling: identifier name, literal text including
	// quotes, or operator.
	Text string
	Pos  token.Position
}

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Text == "" {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// IsIdent reports whether t is the identifier name.
func (t Token) IsIdent(name string) bool {
	return t.Kind == KindIdent && t.Text == name
}

// Tokens is an indexable token sequence supporting lookback and lookahead.
type Tokens []Token

// At returns the token at i and whether i is in range.
func (ts Tokens) At(i int) (Token, bool) {
	if i < 0 || i >= len(ts) {
		return Token{}, false
	}
	return ts[i], true
}

// IndexFrom returns the index of the first token at or after start that
// satisfies match, or -1.
func (ts Tokens) IndexFrom(start int, match func(Token) bool) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(ts); i++ {
		if match(ts[i]) {
			return i
		}
	}
	return -1
}

// Scan tokenizes src. filename is used for positions only.
func Scan(filename string, src []byte) (Tokens, error) {
	fset := token.NewFileSet()
	file := fset.AddFile(filename, -1, len(src))

	var errs goscanner.ErrorList
	var s goscanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, goscanner.ScanComments)

	var tokens Tokens
	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		position := file.Position(pos)
		if tok == token.COMMENT {
			if strings.HasPrefix(lit, DirectivePrefix) {
				tokens = appendDirective(tokens, position, lit, &errs)
			}
			continue
		}

		tokens = append(tokens, newToken(tok, lit, position))
	}

	if errs.Len() > 0 {
		errs.Sort()
		first := errs[0]
		return nil, mvcerrors.NewUnexpectedNode(first.Msg).
			WithLocation(filename, first.Pos.Line, first.Pos.Column)
	}

	return tokens, nil
}

// appendDirective expands a //mvc: comment into Marker [ body ].
func appendDirective(tokens Tokens, at token.Position, comment string, errs *goscanner.ErrorList) Tokens {
	body := comment[len(DirectivePrefix):]
	offset := len(DirectivePrefix)

	shift := func(delta int) token.Position {
		return token.Position{
			Filename: at.Filename,
			Offset:   at.Offset + delta,
			Line:     at.Line,
			Column:   at.Column + delta,
		}
	}

	tokens = append(tokens,
		Token{Kind: KindMarker, Tok: token.COMMENT, Text: DirectivePrefix, Pos: at},
		Token{Kind: KindLBrack, Tok: token.LBRACK, Text: "[", Pos: shift(offset)},
	)

	fset := token.NewFileSet()
	file := fset.AddFile(at.Filename, -1, len(body))

	var s goscanner.Scanner
	s.Init(file, []byte(body), func(pos token.Position, msg string) {
		errs.Add(shift(offset+pos.Offset), msg)
	}, 0)

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}
		// The scanner terminates the directive line with an automatic
		// semicolon; it is not part of the attribute run.
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		tokens = append(tokens, newToken(tok, lit, shift(offset+file.Offset(pos))))
	}

	return append(tokens, Token{Kind: KindRBrack, Tok: token.RBRACK, Text: "]", Pos: shift(len(comment))})
}

func newToken(tok token.Token, lit string, pos token.Position) Token {
	t := Token{Kind: classify(tok), Tok: tok, Text: lit, Pos: pos}
	if t.Text == "" {
		t.Text = tok.String()
	}
	if tok == token.SEMICOLON && lit == "\n" {
		t.Text = ";"
	}
	return t
}

func classify(tok token.Token) Kind {
	switch {
	case tok == token.IDENT:
		return KindIdent
	case tok.IsKeyword():
		return KindKeyword
	case tok.IsLiteral():
		return KindLiteral
	}

	switch tok {
	case token.LPAREN:
		return KindLParen
	case token.RPAREN:
		return KindRParen
	case token.LBRACK:
		return KindLBrack
	case token.RBRACK:
		return KindRBrack
	case token.LBRACE:
		return KindLBrace
	case token.RBRACE:
		return KindRBrace
	case token.COMMA:
		return KindComma
	case token.PERIOD:
		return KindPeriod
	case token.COLON:
		return KindColon
	case token.SEMICOLON:
		return KindSemicolon
	case token.MUL:
		return KindStar
	case token.ELLIPSIS:
		return KindEllipsis
	case token.ARROW:
		return KindArrow
	case token.ILLEGAL:
		return KindIllegal
	}

	return KindOperator
}
