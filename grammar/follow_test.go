package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenFollow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.grammar")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		follow  map[string][]string
	}{
		{
			caption: "productions contain only non-empty productions",
			src:     exprGrammarSrc,
			follow: map[string][]string{
				"E": {"$", ")", "+"},
				"T": {"$", ")", "*", "+"},
				"F": {"$", ")", "*", "+"},
			},
		},
		{
			caption: "the start symbol is followed by EOF",
			src:     `S :: empty`,
			follow: map[string][]string{
				"S": {"$"},
			},
		},
		{
			caption: "FOLLOW of the head flows through nullable suffixes",
			src: `
S :: A B C d
A :: a
B :: b
B :: empty
C :: c
C :: empty
`,
			follow: map[string][]string{
				"S": {"$"},
				"A": {"b", "c", "d"},
				"B": {"c", "d"},
				"C": {"d"},
			},
		},
		{
			caption: "FOLLOW of the head reaches the last symbol",
			src: `
S :: x A
A :: y B
B :: z
B :: empty
`,
			follow: map[string][]string{
				"S": {"$"},
				"A": {"$"},
				"B": {"$"},
			},
		},
		{
			caption: "a nullable cycle",
			src: `
A :: B a
B :: A
B :: empty
`,
			follow: map[string][]string{
				"A": {"$", "a"},
				"B": {"a"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			a, err := Analyze(buildTestGrammar(t, tt.src))
			require.NoError(t, err)
			for sym, expected := range tt.follow {
				assert.Equal(t, symbols(expected...), a.Follow(Symbol(sym)), "FOLLOW(%v)", sym)
			}
		})
	}
}

func TestFollowNeverContainsEpsilon(t *testing.T) {
	srcs := []string{
		exprGrammarSrc,
		`
A :: B
B :: A
B :: empty
`,
		`
S :: A B C d
A :: a
A :: empty
B :: b
B :: empty
C :: empty
`,
	}
	for _, src := range srcs {
		g := buildTestGrammar(t, src)
		a, err := Analyze(g)
		require.NoError(t, err)
		assert.Contains(t, a.Follow(g.StartSymbol()), SymbolEOF)
		for _, sym := range g.NonTerminals() {
			assert.NotContains(t, a.Follow(sym), SymbolEpsilon, "FOLLOW(%v)", sym)
		}
	}
}
