/*
Package grammar turns a context-free grammar into an SLR(1) parsing table.

The work is done in four stages, each a pure function of the previous ones:

  - Analyze computes nullability and the FIRST and FOLLOW sets of every
    non-terminal as iterative fixed points.
  - Augment extends the grammar with a fresh start symbol S' and S' -> S.
  - The LR(0) automaton is built from the closure of the kernel {S' -> ・S}
    and the goto function. States are numbered in the order they are
    discovered.
  - The parsing table is filled with shift and goto actions taken from the
    transitions of each state, then with reduce actions on FOLLOW(A) for every
    completed item A -> α・, and an accept action on $ for S' -> S・.
    A later write to a cell replaces the earlier one and is recorded as a
    conflict.

Compile runs all stages. The result is read-only and may be shared by any
number of parsers.

Example:

	b := &grammar.GrammarBuilder{}
	b.AddProduction("E", "E", "+", "T")
	b.AddProduction("E", "T")
	b.AddProduction("T", "id")
	g, err := b.Build()
	...
	c, err := grammar.Compile(g)
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.grammar")
}
