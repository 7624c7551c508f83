package driver

import (
	"strings"
	"testing"

	"github.com/nihei9/slrkit/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		input   []string
	}{
		{
			caption: "arithmetic expression",
			src:     exprGrammarSrc,
			input:   []string{"id", "+", "id", "*", "id"},
		},
		{
			caption: "nested parentheses",
			src:     exprGrammarSrc,
			input:   []string{"(", "(", "id", ")", ")", "*", "id", "$"},
		},
		{
			caption: "empty productions",
			src: `
S :: A b A
A :: a
A :: empty
`,
			input: []string{"b", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c := compileTestGrammar(t, tt.src)
			toks := NewTokens(tt.input...)
			trace, err := NewParser(c, toks).Parse()
			require.NoError(t, err)

			root, err := BuildTree(c.Grammar, trace, toks)
			require.NoError(t, err)
			assert.Equal(t, c.Grammar.StartSymbol(), root.Symbol)

			// The leaves of the tree spell the input again.
			var leaves []string
			for _, leaf := range collectTerminalLeaves(c.Grammar, root, nil) {
				leaves = append(leaves, leaf.Text)
			}
			input := tt.input
			if input[len(input)-1] == "$" {
				input = input[:len(input)-1]
			}
			assert.Equal(t, input, leaves)
		})
	}
}

func TestBuildTree_RejectsFailedTrace(t *testing.T) {
	c := compileTestGrammar(t, exprGrammarSrc)
	toks := NewTokens("id", "+", "+")
	trace, err := NewParser(c, toks).Parse()
	require.Error(t, err)

	_, err = BuildTree(c.Grammar, trace, toks)
	assert.Error(t, err)
}

func TestBuildTree_MismatchedTokens(t *testing.T) {
	c := compileTestGrammar(t, exprGrammarSrc)
	trace, err := NewParser(c, NewTokens("id", "+", "id")).Parse()
	require.NoError(t, err)

	_, err = BuildTree(c.Grammar, trace, NewTokens("id", "*", "id"))
	assert.Error(t, err)
	_, err = BuildTree(c.Grammar, trace, NewTokens("id"))
	assert.Error(t, err)
}

func TestSententialForms(t *testing.T) {
	c := compileTestGrammar(t, exprGrammarSrc)
	trace, err := NewParser(c, NewTokens("id", "+", "id")).Parse()
	require.NoError(t, err)

	forms, err := SententialForms(c.Grammar, trace.Derivation())
	require.NoError(t, err)

	var actual []string
	for _, form := range forms {
		syms := make([]string, len(form))
		for i, sym := range form {
			syms[i] = sym.String()
		}
		actual = append(actual, strings.Join(syms, " "))
	}
	assert.Equal(t, []string{
		"E",
		"E + T",
		"E + F",
		"E + id",
		"T + id",
		"F + id",
		"id + id",
	}, actual)
}

func TestSententialForms_NotRightmost(t *testing.T) {
	c := compileTestGrammar(t, exprGrammarSrc)
	prods := c.Grammar.ProductionsOf("F")
	require.NotEmpty(t, prods)

	_, err := SententialForms(c.Grammar, []*grammar.Production{prods[0]})
	assert.Error(t, err)
}

func TestPrintTree(t *testing.T) {
	c := compileTestGrammar(t, exprGrammarSrc)
	toks := NewTokens("id", "*", "id")
	trace, err := NewParser(c, toks).Parse()
	require.NoError(t, err)
	root, err := BuildTree(c.Grammar, trace, toks)
	require.NoError(t, err)

	var b strings.Builder
	PrintTree(&b, root)
	expected := `E
└─ T
   ├─ T
   │  └─ F
   │     └─ id "id"
   ├─ * "*"
   └─ F
      └─ id "id"
`
	assert.Equal(t, expected, b.String())
}
