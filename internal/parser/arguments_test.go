package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mvcerrors "github.com/conneroisu/mvcgen/internal/errors"
	"github.com/conneroisu/mvcgen/internal/scanner"
	"github.com/conneroisu/mvcgen/internal/types"
)

// signatureTokens scans "func F(<params>) {}" and returns the tokens and the
// index of the opening parenthesis.
func signatureTokens(t *testing.T, params string) (scanner.Tokens, int) {
	t.Helper()

	tokens, err := scanner.Scan("sig.go", []byte("package a\nfunc F("+params+") {}\n"))
	require.NoError(t, err)
	require.Equal(t, scanner.KindLParen, tokens[5].Kind)

	return tokens, 5
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name   string
		params string
		want   []types.ControllerActionArgument
	}{
		{
			name:   "empty",
			params: "",
			want:   []types.ControllerActionArgument{},
		},
		{
			name:   "basic and slice",
			params: "a int32, b []string",
			want: []types.ControllerActionArgument{
				{Name: "a", Type: "int32"},
				{Name: "b", Type: "[]string"},
			},
		},
		{
			name:   "generic instantiation keeps inner comma",
			params: "p Pair[int, string], n int",
			want: []types.ControllerActionArgument{
				{Name: "p", Type: "Pair[int, string]"},
				{Name: "n", Type: "int"},
			},
		},
		{
			name:   "grouped names share a type",
			params: "a, b int, c string",
			want: []types.ControllerActionArgument{
				{Name: "a", Type: "int"},
				{Name: "b", Type: "int"},
				{Name: "c", Type: "string"},
			},
		},
		{
			name:   "qualified pointer",
			params: "ctx *mvc.ViewContext, id int",
			want: []types.ControllerActionArgument{
				{Name: "ctx", Type: "*mvc.ViewContext"},
				{Name: "id", Type: "int"},
			},
		},
		{
			name:   "func type",
			params: "f func(int, string) (bool, error)",
			want: []types.ControllerActionArgument{
				{Name: "f", Type: "func(int, string) (bool, error)"},
			},
		},
		{
			name:   "map of slices",
			params: "m map[string][]int",
			want: []types.ControllerActionArgument{
				{Name: "m", Type: "map[string][]int"},
			},
		},
		{
			name:   "channels",
			params: "in <-chan int, out chan<- string",
			want: []types.ControllerActionArgument{
				{Name: "in", Type: "<-chan int"},
				{Name: "out", Type: "chan<- string"},
			},
		},
		{
			name:   "anonymous struct",
			params: "s struct{ A int }",
			want: []types.ControllerActionArgument{
				{Name: "s", Type: "struct{ A int }"},
			},
		},
		{
			name:   "empty interface",
			params: "v interface{}",
			want: []types.ControllerActionArgument{
				{Name: "v", Type: "interface{}"},
			},
		},
		{
			name:   "variadic",
			params: "ctx *mvc.ViewContext, tags ...string",
			want: []types.ControllerActionArgument{
				{Name: "ctx", Type: "*mvc.ViewContext"},
				{Name: "tags", Type: "...string"},
			},
		},
		{
			name:   "variadic only",
			params: "tags ...string",
			want: []types.ControllerActionArgument{
				{Name: "tags", Type: "...string"},
			},
		},
		{
			name:   "qualified variadic",
			params: "id int, ids ...uuid.UUID",
			want: []types.ControllerActionArgument{
				{Name: "id", Type: "int"},
				{Name: "ids", Type: "...uuid.UUID"},
			},
		},
		{
			name:   "multi-line with trailing comma",
			params: "\n\ta int,\n\tb string,\n",
			want: []types.ControllerActionArgument{
				{Name: "a", Type: "int"},
				{Name: "b", Type: "string"},
			},
		},
		{
			name:   "unnamed builtins",
			params: "int, string",
			want:   []types.ControllerActionArgument{},
		},
		{
			name:   "unnamed qualified",
			params: "context.Context, int",
			want:   []types.ControllerActionArgument{},
		},
		{
			name:   "unnamed variadic",
			params: "int, ...string",
			want:   []types.ControllerActionArgument{},
		},
		{
			name:   "unnamed pointer",
			params: "int, *Foo",
			want:   []types.ControllerActionArgument{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, start := signatureTokens(t, tt.params)

			got, err := ParseArguments(tokens, start, "F")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgumentsErrors(t *testing.T) {
	t.Run("missing open paren", func(t *testing.T) {
		tokens, start := signatureTokens(t, "a int")

		_, err := ParseArguments(tokens, start-1, "F")
		require.Error(t, err)
		assert.True(t, mvcerrors.IsUnexpectedNode(err))
		assert.Contains(t, err.Error(), "expected ( after func F")
	})

	t.Run("unterminated list", func(t *testing.T) {
		tokens, start := signatureTokens(t, "a int, b string")

		_, err := ParseArguments(tokens[:start+4], start, "F")
		require.Error(t, err)
		assert.True(t, mvcerrors.IsUnexpectedNode(err))
		assert.Contains(t, err.Error(), "unexpected end of function signature F")
	})

	t.Run("start out of range", func(t *testing.T) {
		tokens, _ := signatureTokens(t, "")

		_, err := ParseArguments(tokens, len(tokens), "F")
		require.Error(t, err)
		assert.True(t, mvcerrors.IsUnexpectedNode(err))
	})

	t.Run("newline without trailing comma", func(t *testing.T) {
		tokens, start := signatureTokens(t, "\n\ta int\n")

		_, err := ParseArguments(tokens, start, "F")
		require.Error(t, err)
		assert.True(t, mvcerrors.IsUnexpectedNode(err))

		var pe *mvcerrors.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "sig.go", pe.File)
		assert.Equal(t, 3, pe.Line)
	})

	t.Run("foreign separator", func(t *testing.T) {
		tokens, start := signatureTokens(t, "a: int")

		_, err := ParseArguments(tokens, start, "F")
		require.Error(t, err)
		assert.True(t, mvcerrors.IsUnexpectedNode(err))
		assert.Contains(t, err.Error(), "in signature of F")
	})
}
