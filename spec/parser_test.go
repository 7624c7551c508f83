package spec

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/nihei9/slrkit/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	prod := func(row int, head string, body ...string) *ProductionNode {
		return &ProductionNode{
			Head: head,
			Body: body,
			Row:  row,
		}
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
	}{
		{
			caption: "a single production is a valid grammar",
			src:     `S :: a`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "S", "a"),
				},
			},
		},
		{
			caption: "the expression grammar",
			src: `
E :: E + T
E :: T
T :: T * F
T :: F
F :: ( E )
F :: id
`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(2, "E", "E", "+", "T"),
					prod(3, "E", "T"),
					prod(4, "T", "T", "*", "F"),
					prod(5, "T", "F"),
					prod(6, "F", "(", "E", ")"),
					prod(7, "F", "id"),
				},
			},
		},
		{
			caption: "`empty` denotes an empty body",
			src: `A :: B
B :: empty`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "A", "B"),
					prod(2, "B"),
				},
			},
		},
		{
			caption: "whitespace around symbols and the separator is insignificant",
			src:     "  S\t::a   b\t c  ",
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "S", "a", "b", "c"),
				},
			},
		},
		{
			caption: "comment lines are skipped",
			src: `# statements
S :: s ;
# end`,
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(2, "S", "s", ";"),
				},
			},
		},
		{
			caption: "a comment may follow a production",
			src:     "S :: a b # the rest is ignored :: c\nS :: c#d",
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "S", "a", "b"),
					prod(2, "S", "c#d"),
				},
			},
		},
		{
			caption: "a single colon is a symbol",
			src:     "Pair :: key : value",
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "Pair", "key", ":", "value"),
				},
			},
		},
		{
			caption: "CRLF line breaks",
			src:     "S :: a S\r\nS :: empty\r\n",
			ast: &RootNode{
				Productions: []*ProductionNode{
					prod(1, "S", "a", "S"),
					prod(2, "S"),
				},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.ast, ast)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		synErrs []*SyntaxError
		rows    []int
		cols    []int
	}{
		{
			caption: "a grammar without productions is invalid",
			src:     "\n# nothing here\n",
			synErrs: []*SyntaxError{synErrNoProduction},
			rows:    []int{0},
			cols:    []int{0},
		},
		{
			caption: "a line without the separator is invalid",
			src:     "S a b",
			synErrs: []*SyntaxError{synErrNoSeparator},
			rows:    []int{1},
			cols:    []int{1},
		},
		{
			caption: "a line with two separators is invalid",
			src:     "S :: a :: b",
			synErrs: []*SyntaxError{synErrExtraSeparator},
			rows:    []int{1},
			cols:    []int{8},
		},
		{
			caption: "a head is required",
			src:     ":: a",
			synErrs: []*SyntaxError{synErrNoProductionName},
			rows:    []int{1},
			cols:    []int{1},
		},
		{
			caption: "a head must be one symbol",
			src:     "S T :: a",
			synErrs: []*SyntaxError{synErrInvalidHead},
			rows:    []int{1},
			cols:    []int{3},
		},
		{
			caption: "a body is required",
			src:     "S ::",
			synErrs: []*SyntaxError{synErrNoBody},
			rows:    []int{1},
			cols:    []int{3},
		},
		{
			caption: "`empty` must stand alone",
			src:     "S :: a empty",
			synErrs: []*SyntaxError{synErrEmptyWithSymbols},
			rows:    []int{1},
			cols:    []int{8},
		},
		{
			caption: "every malformed line is reported",
			src: `S :: a
S a
S :: b
T ::`,
			synErrs: []*SyntaxError{synErrNoSeparator, synErrNoBody},
			rows:    []int{2, 4},
			cols:    []int{1, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Nil(t, ast)

			var specErrs verr.SpecErrors
			require.True(t, errors.As(err, &specErrs))
			require.Len(t, specErrs, len(tt.synErrs))
			for i, specErr := range specErrs {
				assert.Equal(t, tt.synErrs[i], specErr.Cause)
				assert.Equal(t, tt.rows[i], specErr.Row)
				assert.Equal(t, tt.cols[i], specErr.Col)
			}
		})
	}
}

func TestParse_LongLine(t *testing.T) {
	// A line longer than bufio.Scanner's default token limit.
	body := make([]string, 20000)
	for i := range body {
		body[i] = "sym"
	}
	src := "S :: " + strings.Join(body, " ") + "\n"

	ast, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, ast.Productions, 1)
	assert.Len(t, ast.Productions[0].Body, len(body))
}

func TestCompileGrammarLexSpec(t *testing.T) {
	clspec, err := compileGrammarLexSpec()
	require.NoError(t, err)
	assert.Equal(t, grammarLexSpec.Name, clspec.Name)
}
