package grammar

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type expectedLR0State struct {
	kernel []Item
	next   map[Symbol]int
}

func TestGenLR0Automaton(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrkit.grammar")
	defer teardown()

	g := buildTestGrammar(t, exprGrammarSrc)
	ag, err := g.Augment()
	require.NoError(t, err)

	automaton, err := genLR0Automaton(ag, DedupOrdered)
	require.NoError(t, err)

	genItem := newTestItemGenerator(t, ag.Grammar)

	expectedStates := []*expectedLR0State{
		{
			kernel: []Item{
				genItem("E'", 0, "E"),
			},
			next: map[Symbol]int{
				"(":  1,
				"id": 2,
				"E":  3,
				"T":  4,
				"F":  5,
			},
		},
		{
			kernel: []Item{
				genItem("F", 1, "(", "E", ")"),
			},
			next: map[Symbol]int{
				"(":  1,
				"id": 2,
				"E":  6,
				"T":  4,
				"F":  5,
			},
		},
		{
			kernel: []Item{
				genItem("F", 1, "id"),
			},
		},
		{
			kernel: []Item{
				genItem("E'", 1, "E"),
				genItem("E", 1, "E", "+", "T"),
			},
			next: map[Symbol]int{
				"+": 7,
			},
		},
		{
			kernel: []Item{
				genItem("E", 1, "T"),
				genItem("T", 1, "T", "*", "F"),
			},
			next: map[Symbol]int{
				"*": 8,
			},
		},
		{
			kernel: []Item{
				genItem("T", 1, "F"),
			},
		},
		{
			kernel: []Item{
				genItem("F", 2, "(", "E", ")"),
				genItem("E", 1, "E", "+", "T"),
			},
			next: map[Symbol]int{
				"+": 7,
				")": 9,
			},
		},
		{
			kernel: []Item{
				genItem("E", 2, "E", "+", "T"),
			},
			next: map[Symbol]int{
				"(":  1,
				"id": 2,
				"T":  10,
				"F":  5,
			},
		},
		{
			kernel: []Item{
				genItem("T", 2, "T", "*", "F"),
			},
			next: map[Symbol]int{
				"(":  1,
				"id": 2,
				"F":  11,
			},
		},
		{
			kernel: []Item{
				genItem("F", 3, "(", "E", ")"),
			},
		},
		{
			kernel: []Item{
				genItem("E", 3, "E", "+", "T"),
				genItem("T", 1, "T", "*", "F"),
			},
			next: map[Symbol]int{
				"*": 8,
			},
		},
		{
			kernel: []Item{
				genItem("T", 3, "T", "*", "F"),
			},
		},
	}

	require.Len(t, automaton.States, len(expectedStates))
	for num, expected := range expectedStates {
		state := automaton.States[num]
		assert.Equal(t, num, state.Num)
		assert.True(t, Kernel(expected.kernel).equalsOrdered(state.Kernel), "state %v: unexpected kernel: %v", num, state.Kernel)
		if expected.next == nil {
			assert.Empty(t, state.Next, "state %v", num)
		} else {
			assert.Equal(t, expected.next, state.Next, "state %v", num)
		}
		assert.Len(t, state.NextSymbols, len(state.Next))
	}

	// Terminals come before non-terminals.
	assert.Equal(t, symbols("(", "id", "E", "T", "F"), automaton.InitialState().NextSymbols)
}

func TestGenLR0Closure(t *testing.T) {
	g := buildTestGrammar(t, exprGrammarSrc)
	ag, err := g.Augment()
	require.NoError(t, err)
	genItem := newTestItemGenerator(t, ag.Grammar)

	items, err := genLR0Closure(Kernel{genItem("E'", 0, "E")}, ag.Grammar)
	require.NoError(t, err)

	expected := []Item{
		genItem("E'", 0, "E"),
		genItem("E", 0, "E", "+", "T"),
		genItem("E", 0, "T"),
		genItem("T", 0, "T", "*", "F"),
		genItem("T", 0, "F"),
		genItem("F", 0, "(", "E", ")"),
		genItem("F", 0, "id"),
	}
	require.Len(t, items, len(expected))
	for i, item := range items {
		assert.True(t, expected[i].Equals(item), "#%v: want %v, got %v", i, expected[i], item)
	}
}

func TestGenLR0Automaton_Idempotent(t *testing.T) {
	srcs := []string{
		exprGrammarSrc,
		dedupGrammarSrc,
		`
S :: A
A :: B
B :: A
B :: empty
`,
	}
	for _, src := range srcs {
		g := buildTestGrammar(t, src)
		for _, mode := range []DedupMode{DedupOrdered, DedupSet} {
			c1, err := Compile(g, WithDedupMode(mode))
			require.NoError(t, err)
			c2, err := Compile(g, WithDedupMode(mode))
			require.NoError(t, err)

			require.Len(t, c2.Automaton.States, len(c1.Automaton.States))
			for i, s1 := range c1.Automaton.States {
				s2 := c2.Automaton.States[i]
				assert.True(t, s1.Kernel.equalsOrdered(s2.Kernel))
				assert.Equal(t, s1.Next, s2.Next)
				assert.Equal(t, s1.NextSymbols, s2.NextSymbols)
			}
			require.Equal(t, c1.Table.StateCount(), c2.Table.StateCount())
			for state := 0; state < c1.Table.StateCount(); state++ {
				r1 := c1.Table.Row(state)
				r2 := c2.Table.Row(state)
				require.Len(t, r2, len(r1))
				for sym, act := range r1 {
					assert.True(t, act.Equals(r2[sym]), "state %v, symbol %v", state, sym)
				}
			}
		}
	}
}

// In dedupGrammarSrc, the goto function on x yields the same two items from
// states 1 and 2 but lists them in a different order.
const dedupGrammarSrc = `
S :: a L
S :: b R
L :: X
L :: Y
R :: Y
R :: X
X :: x
Y :: x y
`

func TestGenLR0Automaton_DedupMode(t *testing.T) {
	tests := []struct {
		caption    string
		mode       DedupMode
		stateCount int
		xFrom1     int
		xFrom2     int
	}{
		{
			caption:    "ordered kernels keep item order significant",
			mode:       DedupOrdered,
			stateCount: 13,
			xFrom1:     4,
			xFrom2:     8,
		},
		{
			caption:    "set kernels ignore item order",
			mode:       DedupSet,
			stateCount: 12,
			xFrom1:     4,
			xFrom2:     4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c := compileTestGrammar(t, dedupGrammarSrc, WithDedupMode(tt.mode))
			assert.Equal(t, tt.mode, c.Automaton.Mode)
			assert.Len(t, c.Automaton.States, tt.stateCount)
			assert.Equal(t, tt.xFrom1, c.Automaton.States[1].Next["x"])
			assert.Equal(t, tt.xFrom2, c.Automaton.States[2].Next["x"])
			assert.Empty(t, c.Table.Conflicts())
		})
	}
}

func TestParseDedupMode(t *testing.T) {
	for s, expected := range map[string]DedupMode{
		"":        DedupOrdered,
		"ordered": DedupOrdered,
		"set":     DedupSet,
	} {
		mode, err := ParseDedupMode(s)
		require.NoError(t, err)
		assert.Equal(t, expected, mode)
		if s != "" {
			assert.Equal(t, s, mode.String())
		}
	}

	_, err := ParseDedupMode("sorted")
	assert.Error(t, err)
}
