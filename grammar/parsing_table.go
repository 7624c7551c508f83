package grammar

import (
	"fmt"
)

type ActionType string

const (
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeGoTo   = ActionType("goto")
	ActionTypeAccept = ActionType("accept")
)

// Action is an entry of the parsing table. State is the destination of
// a shift or goto action, and Production is the production a reduce action
// reduces by.
type Action struct {
	Type       ActionType
	State      int
	Production *Production
}

func (a *Action) Equals(b *Action) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ActionTypeShift, ActionTypeGoTo:
		return a.State == b.State
	case ActionTypeReduce:
		return a.Production.Equals(b.Production)
	}
	return true
}

func (a *Action) String() string {
	switch a.Type {
	case ActionTypeShift:
		return fmt.Sprintf("SHIFT %v", a.State)
	case ActionTypeGoTo:
		return fmt.Sprintf("GOTO %v", a.State)
	case ActionTypeReduce:
		return fmt.Sprintf("REDUCE %v", a.Production)
	case ActionTypeAccept:
		return "ACCEPT"
	}
	return fmt.Sprintf("<invalid action: %v>", a.Type)
}

// Abbrev returns a compact notation used in table listings, e.g. `s5`, `r2`,
// `g3`, and `acc`.
func (a *Action) Abbrev() string {
	switch a.Type {
	case ActionTypeShift:
		return fmt.Sprintf("s%v", a.State)
	case ActionTypeGoTo:
		return fmt.Sprintf("g%v", a.State)
	case ActionTypeReduce:
		return fmt.Sprintf("r%v", a.Production.Num)
	case ActionTypeAccept:
		return "acc"
	}
	return "?"
}

// Conflict records a table cell that was written twice with different
// actions. The later write wins, so Adopted is what the table holds.
type Conflict struct {
	State    int
	Symbol   Symbol
	Replaced *Action
	Adopted  *Action
}

// Kind names the conflict after the two action types, e.g. `shift/reduce`.
func (c *Conflict) Kind() string {
	return fmt.Sprintf("%v/%v", c.Replaced.Type, c.Adopted.Type)
}

func (c *Conflict) String() string {
	return fmt.Sprintf("%v conflict in state %v on %v: %v replaced by %v", c.Kind(), c.State, c.Symbol, c.Replaced, c.Adopted)
}

// ParsingTable maps a state and a symbol to an action. Terminal columns hold
// shift, reduce, or accept actions and non-terminal columns hold goto
// actions.
type ParsingTable struct {
	rows      []map[Symbol]*Action
	conflicts []*Conflict

	InitialState int
}

// NewParsingTable makes a table from rows written elsewhere, e.g. by hand.
// Row i belongs to state i and state 0 is the initial state. Nothing checks
// that the rows are consistent with any grammar.
func NewParsingTable(rows []map[Symbol]*Action) *ParsingTable {
	ptab := &ParsingTable{
		rows:         make([]map[Symbol]*Action, len(rows)),
		InitialState: stateNumInitial,
	}
	for i, row := range rows {
		ptab.rows[i] = map[Symbol]*Action{}
		for sym, act := range row {
			ptab.write(i, sym, act)
		}
	}
	return ptab
}

func (t *ParsingTable) StateCount() int {
	return len(t.rows)
}

// Action looks up the cell of a state and a symbol. It returns false for an
// empty cell.
func (t *ParsingTable) Action(state int, sym Symbol) (*Action, bool) {
	if state < 0 || state >= len(t.rows) {
		return nil, false
	}
	act, ok := t.rows[state][sym]
	return act, ok
}

// Row returns a copy of the non-empty cells of a state.
func (t *ParsingTable) Row(state int) map[Symbol]*Action {
	row := map[Symbol]*Action{}
	if state < 0 || state >= len(t.rows) {
		return row
	}
	for sym, act := range t.rows[state] {
		row[sym] = act
	}
	return row
}

// Conflicts returns the overwrites in the order they happened.
func (t *ParsingTable) Conflicts() []*Conflict {
	cs := make([]*Conflict, len(t.conflicts))
	copy(cs, t.conflicts)
	return cs
}

func (t *ParsingTable) write(state int, sym Symbol, act *Action) {
	row := t.rows[state]
	if prev, ok := row[sym]; ok && !prev.Equals(act) {
		c := &Conflict{
			State:    state,
			Symbol:   sym,
			Replaced: prev,
			Adopted:  act,
		}
		t.conflicts = append(t.conflicts, c)
		tracer().Infof("%v", c)
	}
	row[sym] = act
}

type lrTableBuilder struct {
	automaton *LR0Automaton
	grammar   *AugmentedGrammar
	analysis  *Analysis
}

// build fills each row in state order. Shift and goto actions come from the
// transitions, then every completed item adds its reduce or accept actions.
// Any write may replace an earlier one.
func (b *lrTableBuilder) build() (*ParsingTable, error) {
	ptab := &ParsingTable{
		rows:         make([]map[Symbol]*Action, len(b.automaton.States)),
		InitialState: stateNumInitial,
	}
	for i := range ptab.rows {
		ptab.rows[i] = map[Symbol]*Action{}
	}

	for _, state := range b.automaton.States {
		for _, sym := range state.NextSymbols {
			next := state.Next[sym]
			if b.grammar.IsNonTerminal(sym) {
				ptab.write(state.Num, sym, &Action{
					Type:  ActionTypeGoTo,
					State: next,
				})
				continue
			}
			ptab.write(state.Num, sym, &Action{
				Type:  ActionTypeShift,
				State: next,
			})
		}

		for _, item := range state.Items {
			if !item.IsCompleted() {
				continue
			}
			if item.Prod.Equals(b.grammar.StartProduction) {
				ptab.write(state.Num, SymbolEOF, &Action{
					Type: ActionTypeAccept,
				})
				continue
			}
			follow := b.analysis.Follow(item.Prod.Head)
			if follow == nil {
				return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %v", item.Prod.Head)
			}
			for _, sym := range follow {
				ptab.write(state.Num, sym, &Action{
					Type:       ActionTypeReduce,
					Production: item.Prod,
				})
			}
		}
	}

	return ptab, nil
}
