package grammar

import (
	"fmt"
)

func genFirstSet(g *Grammar, nullable map[Symbol]bool, limit int) (map[Symbol]*symbolSet, error) {
	first := map[Symbol]*symbolSet{}
	for _, sym := range g.symbolTable.nonTerminals {
		first[sym] = newSymbolSet()
	}

	_, err := fixedPoint("FIRST", limit, func() (bool, error) {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			acc, ok := first[prod.Head]
			if !ok {
				return false, fmt.Errorf("an entry of FIRST was not found; symbol: %v", prod.Head)
			}
			changed, bodyNullable := mergeFirstOfSequence(g, nullable, first, acc, prod.Body)
			if changed {
				more = true
			}
			if bodyNullable && acc.add(SymbolEpsilon) {
				more = true
			}
		}
		return more, nil
	})
	if err != nil {
		return nil, err
	}

	for sym, acc := range first {
		if nullable[sym] != acc.contains(SymbolEpsilon) {
			return nil, fmt.Errorf("FIRST(%v) disagrees with the nullability of %v", sym, sym)
		}
	}

	return first, nil
}

// mergeFirstOfSequence adds FIRST(seq) without epsilon to acc. It reports
// whether acc grew and whether seq is nullable.
func mergeFirstOfSequence(g *Grammar, nullable map[Symbol]bool, first map[Symbol]*symbolSet, acc *symbolSet, seq []Symbol) (bool, bool) {
	changed := false
	for _, sym := range seq {
		if g.IsTerminal(sym) {
			if acc.add(sym) {
				changed = true
			}
			return changed, false
		}
		if acc.mergeExcept(first[sym], SymbolEpsilon) {
			changed = true
		}
		if !nullable[sym] {
			return changed, false
		}
	}
	return changed, true
}
