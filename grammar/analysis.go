package grammar

import (
	"fmt"
)

// Analysis holds the nullability and the FIRST and FOLLOW sets of a grammar.
//
// FIRST(A) contains SymbolEpsilon exactly when A is nullable. FOLLOW(A) never
// contains SymbolEpsilon, and FOLLOW of the start symbol contains SymbolEOF.
type Analysis struct {
	grammar  *Grammar
	nullable map[Symbol]bool
	first    map[Symbol]*symbolSet
	follow   map[Symbol]*symbolSet
}

// Analyze computes nullability, FIRST and FOLLOW in that order. Each one is
// a fixed point reached by repeating passes over all productions until a pass
// changes nothing.
func Analyze(g *Grammar) (*Analysis, error) {
	limit := passLimit(g)

	nullable, err := genNullable(g, limit)
	if err != nil {
		return nil, err
	}
	first, err := genFirstSet(g, nullable, limit)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(g, nullable, first, limit)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		grammar:  g,
		nullable: nullable,
		first:    first,
		follow:   follow,
	}, nil
}

// Nullable reports whether sym derives the empty string. Terminals are never
// nullable.
func (a *Analysis) Nullable(sym Symbol) bool {
	return a.nullable[sym]
}

// First returns FIRST(sym) in symbol name order. FIRST of a terminal is the
// terminal itself.
func (a *Analysis) First(sym Symbol) []Symbol {
	if a.grammar.IsTerminal(sym) {
		return []Symbol{sym}
	}
	e, ok := a.first[sym]
	if !ok {
		return nil
	}
	return e.symbols()
}

// Follow returns FOLLOW(sym) in symbol name order.
func (a *Analysis) Follow(sym Symbol) []Symbol {
	e, ok := a.follow[sym]
	if !ok {
		return nil
	}
	return e.symbols()
}

// FirstOfSequence returns FIRST of a sentential form and whether the whole
// form is nullable. The returned set doesn't contain SymbolEpsilon.
func (a *Analysis) FirstOfSequence(seq []Symbol) ([]Symbol, bool) {
	acc := newSymbolSet()
	_, nullable := mergeFirstOfSequence(a.grammar, a.nullable, a.first, acc, seq)
	return acc.symbols(), nullable
}

// passLimit bounds the number of passes of a fixed point computation. Every
// productive pass adds at least one symbol to some set, and no set of
// a non-terminal can hold more than all terminals plus EOF and epsilon.
func passLimit(g *Grammar) int {
	return len(g.symbolTable.nonTerminals)*(len(g.symbolTable.terminals)+2) + 1
}

// fixedPoint repeats pass until it reports no change and returns the number of
// passes made.
func fixedPoint(name string, limit int, pass func() (bool, error)) (int, error) {
	passes := 0
	for {
		passes++
		if passes > limit {
			return passes, fmt.Errorf("%v didn't converge within %v passes", name, limit)
		}
		more, err := pass()
		if err != nil {
			return passes, err
		}
		if !more {
			break
		}
	}
	tracer().Debugf("%v converged after %v passes", name, passes)
	return passes, nil
}
