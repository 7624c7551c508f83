package grammar

import (
	"fmt"

	"github.com/cnf/structhash"
)

// DedupMode decides when a kernel produced by the goto function is the same
// as the kernel of a known state.
type DedupMode int

const (
	// DedupOrdered treats kernels as equal only when they list the same items
	// in the same order.
	DedupOrdered DedupMode = iota

	// DedupSet treats kernels as equal when they contain the same items.
	DedupSet
)

func (m DedupMode) String() string {
	switch m {
	case DedupOrdered:
		return "ordered"
	case DedupSet:
		return "set"
	}
	return fmt.Sprintf("<invalid dedup mode: %d>", int(m))
}

func ParseDedupMode(s string) (DedupMode, error) {
	switch s {
	case "", "ordered":
		return DedupOrdered, nil
	case "set":
		return DedupSet, nil
	}
	return DedupOrdered, fmt.Errorf("invalid dedup mode: %v; it must be either `ordered` or `set`", s)
}

const stateNumInitial = 0

type State struct {
	Num    int
	Kernel Kernel

	// Items is the closure of the kernel. The kernel items come first.
	Items []Item

	// Next maps a symbol to the state the goto function leads to.
	// NextSymbols lists the same symbols in the order the transitions were
	// computed: terminals first, then non-terminals.
	Next        map[Symbol]int
	NextSymbols []Symbol
}

type LR0Automaton struct {
	States []*State
	Mode   DedupMode
}

func (a *LR0Automaton) InitialState() *State {
	return a.States[stateNumInitial]
}

func genLR0Automaton(ag *AugmentedGrammar, mode DedupMode) (*LR0Automaton, error) {
	automaton := &LR0Automaton{
		Mode: mode,
	}
	index := newKernelIndex(mode)

	newState := func(k Kernel) (*State, error) {
		state := &State{
			Num:    len(automaton.States),
			Kernel: k,
			Next:   map[Symbol]int{},
		}
		err := index.add(state)
		if err != nil {
			return nil, err
		}
		automaton.States = append(automaton.States, state)
		tracer().Debugf("state %v: %v", state.Num, k)
		return state, nil
	}

	var uncheckedStates []*State

	// Generate an initial state.
	{
		initialItem, err := newItem(ag.StartProduction, 0)
		if err != nil {
			return nil, err
		}
		state, err := newState(Kernel{initialItem})
		if err != nil {
			return nil, err
		}
		uncheckedStates = append(uncheckedStates, state)
	}

	for len(uncheckedStates) > 0 {
		nextUncheckedStates := []*State{}
		for _, state := range uncheckedStates {
			items, err := genLR0Closure(state.Kernel, ag.Grammar)
			if err != nil {
				return nil, err
			}
			state.Items = items

			neighbours, err := genNeighbourKernels(items, ag.Grammar)
			if err != nil {
				return nil, err
			}
			for _, n := range neighbours {
				next, known, err := index.find(n.kernel)
				if err != nil {
					return nil, err
				}
				if !known {
					next, err = newState(n.kernel)
					if err != nil {
						return nil, err
					}
					nextUncheckedStates = append(nextUncheckedStates, next)
				}
				state.Next[n.symbol] = next.Num
				state.NextSymbols = append(state.NextSymbols, n.symbol)
			}
		}
		uncheckedStates = nextUncheckedStates
	}

	tracer().Debugf("LR(0) automaton: %v states (dedup mode: %v)", len(automaton.States), mode)

	return automaton, nil
}

// genLR0Closure appends, for every item whose dot precedes a non-terminal B,
// an item B -> ・γ for each production of B, until nothing new is added. The
// result keeps the kernel items first and the rest in the order they were
// added.
func genLR0Closure(k Kernel, g *Grammar) ([]Item, error) {
	items := []Item{}
	knownItems := map[itemID]struct{}{}
	for _, item := range k {
		items = append(items, item)
		knownItems[item.id()] = struct{}{}
	}
	for n := 0; n < len(items); n++ {
		sym, ok := items[n].DottedSymbol()
		if !ok || !g.IsNonTerminal(sym) {
			continue
		}
		for _, prod := range g.productionSet.findByHead(sym) {
			item, err := newItem(prod, 0)
			if err != nil {
				return nil, err
			}
			if _, exist := knownItems[item.id()]; exist {
				continue
			}
			items = append(items, item)
			knownItems[item.id()] = struct{}{}
		}
	}

	return items, nil
}

type itemID struct {
	prod productionID
	dot  int
}

func (i Item) id() itemID {
	return itemID{
		prod: i.Prod.id,
		dot:  i.Dot,
	}
}

type neighbourKernel struct {
	symbol Symbol
	kernel Kernel
}

// genNeighbourKernels computes goto(items, X) for every symbol X, trying the
// terminals first and then the non-terminals, each in grammar order.
func genNeighbourKernels(items []Item, g *Grammar) ([]*neighbourKernel, error) {
	syms := make([]Symbol, 0, len(g.symbolTable.terminals)+len(g.symbolTable.nonTerminals))
	syms = append(syms, g.symbolTable.terminals...)
	syms = append(syms, g.symbolTable.nonTerminals...)

	kernels := []*neighbourKernel{}
	for _, sym := range syms {
		var k Kernel
		for _, item := range items {
			dotted, ok := item.DottedSymbol()
			if !ok || dotted != sym {
				continue
			}
			kItem, err := newItem(item.Prod, item.Dot+1)
			if err != nil {
				return nil, err
			}
			k = append(k, kItem)
		}
		if len(k) == 0 {
			continue
		}
		kernels = append(kernels, &neighbourKernel{
			symbol: sym,
			kernel: k,
		})
	}

	return kernels, nil
}

// kernelIndex finds a known state by its kernel. Kernels are bucketed by
// a structural hash and then compared item by item, so a hash collision
// never merges two different states.
type kernelIndex struct {
	mode    DedupMode
	buckets map[string][]*State
}

func newKernelIndex(mode DedupMode) *kernelIndex {
	return &kernelIndex{
		mode:    mode,
		buckets: map[string][]*State{},
	}
}

type kernelFingerprint struct {
	Items []itemKey
}

func (idx *kernelIndex) fingerprint(k Kernel) (string, error) {
	fp := kernelFingerprint{}
	switch idx.mode {
	case DedupSet:
		fp.Items = k.sortedKeys()
	default:
		fp.Items = k.keys()
	}
	return structhash.Hash(fp, 1)
}

func (idx *kernelIndex) equals(k, l Kernel) bool {
	if idx.mode == DedupSet {
		return k.equalsAsSet(l)
	}
	return k.equalsOrdered(l)
}

func (idx *kernelIndex) find(k Kernel) (*State, bool, error) {
	h, err := idx.fingerprint(k)
	if err != nil {
		return nil, false, err
	}
	for _, state := range idx.buckets[h] {
		if idx.equals(state.Kernel, k) {
			return state, true, nil
		}
	}
	return nil, false, nil
}

func (idx *kernelIndex) add(state *State) error {
	h, err := idx.fingerprint(state.Kernel)
	if err != nil {
		return err
	}
	idx.buckets[h] = append(idx.buckets[h], state)
	return nil
}
