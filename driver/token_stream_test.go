package driver

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTokens(t *testing.T) {
	tests := []struct {
		caption string
		src     string
		tokens  []*Token
	}{
		{
			caption: "tokens separated by spaces and newlines",
			src:     "id + id\n  *\t(id)\n",
			tokens: []*Token{
				{Text: "id", Row: 1, Col: 1},
				{Text: "+", Row: 1, Col: 4},
				{Text: "id", Row: 1, Col: 6},
				{Text: "*", Row: 2, Col: 3},
				{Text: "(id)", Row: 2, Col: 5},
			},
		},
		{
			caption: "a trailing end-of-input marker is dropped",
			src:     "id $",
			tokens: []*Token{
				{Text: "id", Row: 1, Col: 1},
			},
		},
		{
			caption: "an end-of-input marker in the middle is kept",
			src:     "id $ id",
			tokens: []*Token{
				{Text: "id", Row: 1, Col: 1},
				{Text: "$", Row: 1, Col: 4},
				{Text: "id", Row: 1, Col: 6},
			},
		},
		{
			caption: "an empty input",
			src:     "",
		},
		{
			caption: "whitespace only",
			src:     " \n\t\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := ReadTokens(strings.NewReader(tt.src))
			require.NoError(t, err)
			assert.Equal(t, tt.tokens, toks)
		})
	}
}

func TestTokenStream_Next(t *testing.T) {
	s, err := NewTokenStream(strings.NewReader("a b"))
	require.NoError(t, err)

	tok, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, &Token{Text: "a", Row: 1, Col: 1}, tok)
	tok, err = s.Next()
	require.NoError(t, err)
	assert.Equal(t, &Token{Text: "b", Row: 1, Col: 3}, tok)

	// The end of input is reported repeatedly.
	for i := 0; i < 2; i++ {
		tok, err = s.Next()
		require.NoError(t, err)
		assert.Nil(t, tok)
	}
}

func TestNewTokens(t *testing.T) {
	assert.Equal(t, []*Token{
		{Text: "id", Row: 1, Col: 1},
		{Text: "+", Row: 1, Col: 2},
	}, NewTokens("id", "+"))
	assert.Empty(t, NewTokens())
}

func TestCompileTokenLexSpec(t *testing.T) {
	clspec, kindIDs, err := compileTokenLexSpec()
	require.NoError(t, err)
	require.NotNil(t, clspec)
	assert.Equal(t, tokenLexSpec.Name, clspec.Name)
	for _, kind := range []string{lexKindWhiteSpace, lexKindNewline, lexKindToken} {
		_, ok := kindIDs[kind]
		assert.True(t, ok, kind)
	}
}
