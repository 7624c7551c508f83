package grammar

// genNullable marks a non-terminal nullable when one of its productions has
// a body consisting only of nullable symbols. An empty body qualifies
// trivially. Cycles such as A -> B, B -> A need no special care because
// a pass only ever turns a flag on.
func genNullable(g *Grammar, limit int) (map[Symbol]bool, error) {
	nullable := map[Symbol]bool{}
	_, err := fixedPoint("nullable", limit, func() (bool, error) {
		more := false
		for _, prod := range g.productionSet.getAllProductions() {
			if nullable[prod.Head] {
				continue
			}
			if !isNullableSequence(g, nullable, prod.Body) {
				continue
			}
			nullable[prod.Head] = true
			more = true
		}
		return more, nil
	})
	if err != nil {
		return nil, err
	}
	return nullable, nil
}

func isNullableSequence(g *Grammar, nullable map[Symbol]bool, seq []Symbol) bool {
	for _, sym := range seq {
		if g.IsTerminal(sym) || !nullable[sym] {
			return false
		}
	}
	return true
}
