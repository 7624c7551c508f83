package report

import (
	"encoding/json"
	"io"

	"github.com/nihei9/slrkit/grammar"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrkit.report'.
func tracer() tracing.Trace {
	return tracing.Select("slrkit.report")
}

type Production struct {
	Number int      `json:"number"`
	Head   string   `json:"head"`
	Body   []string `json:"body"`
}

type Item struct {
	Production int `json:"production"`
	Dot        int `json:"dot"`
}

type Transition struct {
	Symbol string `json:"symbol"`
	State  int    `json:"state"`
}

type Reduce struct {
	LookAhead  []string `json:"look_ahead"`
	Production int      `json:"production"`
}

type Conflict struct {
	Kind     string `json:"kind"`
	Symbol   string `json:"symbol"`
	Replaced string `json:"replaced"`
	Adopted  string `json:"adopted"`
}

type SymbolSets struct {
	Symbol   string   `json:"symbol"`
	Nullable bool     `json:"nullable"`
	First    []string `json:"first"`
	Follow   []string `json:"follow"`
}

type State struct {
	Number    int           `json:"number"`
	Kernel    []*Item       `json:"kernel"`
	Closure   []*Item       `json:"closure"`
	Next      []*Transition `json:"next"`
	Shift     []*Transition `json:"shift"`
	Reduce    []*Reduce     `json:"reduce"`
	GoTo      []*Transition `json:"goto"`
	Accept    bool          `json:"accept"`
	Conflicts []*Conflict   `json:"conflicts"`
}

// Report describes a compiled grammar using plain values only, so it can be
// saved as JSON and rendered again later without the grammar.
type Report struct {
	StartSymbol  string        `json:"start_symbol"`
	DedupMode    string        `json:"dedup_mode"`
	Terminals    []string      `json:"terminals"`
	NonTerminals []string      `json:"non_terminals"`
	Productions  []*Production `json:"productions"`
	Sets         []*SymbolSets `json:"sets"`
	States       []*State      `json:"states"`
}

// NewReport collects the symbols, the productions including the augmented
// start production, FIRST and FOLLOW of every non-terminal, and the states
// together with their parsing table rows.
func NewReport(c *grammar.Compiled) *Report {
	r := &Report{
		StartSymbol:  c.Grammar.StartSymbol().String(),
		DedupMode:    c.Automaton.Mode.String(),
		Terminals:    symbolStrings(c.Grammar.Terminals()),
		NonTerminals: symbolStrings(c.Grammar.NonTerminals()),
	}

	for _, prod := range c.Augmented.Productions() {
		r.Productions = append(r.Productions, &Production{
			Number: prod.Num,
			Head:   prod.Head.String(),
			Body:   symbolStrings(prod.Body),
		})
	}

	for _, sym := range c.Grammar.NonTerminals() {
		r.Sets = append(r.Sets, &SymbolSets{
			Symbol:   sym.String(),
			Nullable: c.Analysis.Nullable(sym),
			First:    symbolStrings(c.Analysis.First(sym)),
			Follow:   symbolStrings(c.Analysis.Follow(sym)),
		})
	}

	conflicts := map[int][]*grammar.Conflict{}
	for _, conflict := range c.Table.Conflicts() {
		conflicts[conflict.State] = append(conflicts[conflict.State], conflict)
	}

	lookAheads := append(c.Grammar.Terminals(), grammar.SymbolEOF)
	for _, state := range c.Automaton.States {
		s := &State{
			Number:  state.Num,
			Kernel:  newItems(state.Kernel),
			Closure: newItems(state.Items[len(state.Kernel):]),
		}

		for _, sym := range state.NextSymbols {
			s.Next = append(s.Next, &Transition{
				Symbol: sym.String(),
				State:  state.Next[sym],
			})
		}

		// Shift and goto actions are read back from the table because a
		// conflict may have replaced them.
		for _, sym := range state.NextSymbols {
			act, ok := c.Table.Action(state.Num, sym)
			if !ok {
				continue
			}
			switch act.Type {
			case grammar.ActionTypeShift:
				s.Shift = append(s.Shift, &Transition{
					Symbol: sym.String(),
					State:  act.State,
				})
			case grammar.ActionTypeGoTo:
				s.GoTo = append(s.GoTo, &Transition{
					Symbol: sym.String(),
					State:  act.State,
				})
			}
		}

		// Reduce actions are grouped by production in the order the completed
		// items appear in the state.
		reduces := map[int]*Reduce{}
		for _, item := range state.Items {
			if !item.IsCompleted() {
				continue
			}
			for _, sym := range lookAheads {
				act, ok := c.Table.Action(state.Num, sym)
				if !ok {
					continue
				}
				if act.Type == grammar.ActionTypeAccept {
					s.Accept = true
					continue
				}
				if act.Type != grammar.ActionTypeReduce || !act.Production.Equals(item.Prod) {
					continue
				}
				red, ok := reduces[act.Production.Num]
				if !ok {
					red = &Reduce{
						Production: act.Production.Num,
					}
					reduces[act.Production.Num] = red
					s.Reduce = append(s.Reduce, red)
				}
				red.LookAhead = append(red.LookAhead, sym.String())
			}
		}

		for _, conflict := range conflicts[state.Num] {
			s.Conflicts = append(s.Conflicts, &Conflict{
				Kind:     conflict.Kind(),
				Symbol:   conflict.Symbol.String(),
				Replaced: conflict.Replaced.String(),
				Adopted:  conflict.Adopted.String(),
			})
		}

		r.States = append(r.States, s)
	}

	tracer().Debugf("report: %v productions, %v states", len(r.Productions), len(r.States))

	return r
}

func newItems(items []grammar.Item) []*Item {
	is := make([]*Item, len(items))
	for i, item := range items {
		is[i] = &Item{
			Production: item.Prod.Num,
			Dot:        item.Dot,
		}
	}
	return is
}

func symbolStrings(syms []grammar.Symbol) []string {
	strs := make([]string, len(syms))
	for i, sym := range syms {
		strs[i] = sym.String()
	}
	return strs
}

// ConflictCount returns the number of overwritten table cells.
func (r *Report) ConflictCount() int {
	n := 0
	for _, s := range r.States {
		n += len(s.Conflicts)
	}
	return n
}

// production finds a production by number. Productions are stored in number
// order, but a report read from a file may not be.
func (r *Report) production(num int) *Production {
	if num >= 0 && num < len(r.Productions) && r.Productions[num].Number == num {
		return r.Productions[num]
	}
	for _, prod := range r.Productions {
		if prod.Number == num {
			return prod
		}
	}
	return nil
}

func WriteJSON(w io.Writer, r *Report) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func ReadJSON(src io.Reader) (*Report, error) {
	d, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	r := &Report{}
	err = json.Unmarshal(d, r)
	if err != nil {
		return nil, err
	}
	return r, nil
}
