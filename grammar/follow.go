package grammar

import (
	"fmt"
)

// genFollowSet puts EOF into FOLLOW of the start symbol, and for every
// occurrence A -> α B β adds FIRST(β) to FOLLOW(B), plus FOLLOW(A) when β is
// nullable.
func genFollowSet(g *Grammar, nullable map[Symbol]bool, first map[Symbol]*symbolSet, limit int) (map[Symbol]*symbolSet, error) {
	follow := map[Symbol]*symbolSet{}
	for _, sym := range g.symbolTable.nonTerminals {
		follow[sym] = newSymbolSet()
	}
	follow[g.startSymbol].add(SymbolEOF)

	_, err := fixedPoint("FOLLOW", limit, func() (bool, error) {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			for i, sym := range prod.Body {
				if !g.IsNonTerminal(sym) {
					continue
				}
				acc, ok := follow[sym]
				if !ok {
					return false, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", sym)
				}
				changed, restNullable := mergeFirstOfSequence(g, nullable, first, acc, prod.Body[i+1:])
				if changed {
					more = true
				}
				if restNullable && acc.mergeExcept(follow[prod.Head], SymbolEpsilon) {
					more = true
				}
			}
		}
		return more, nil
	})
	if err != nil {
		return nil, err
	}

	return follow, nil
}
