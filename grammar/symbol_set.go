package grammar

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// symbolSet is an ordered set of symbols.
type symbolSet struct {
	set *treeset.Set
}

func newSymbolSet(syms ...Symbol) *symbolSet {
	s := &symbolSet{
		set: treeset.NewWith(symbolComparator),
	}
	for _, sym := range syms {
		s.set.Add(sym)
	}
	return s
}

func (s *symbolSet) add(sym Symbol) bool {
	if s.set.Contains(sym) {
		return false
	}
	s.set.Add(sym)
	return true
}

// mergeExcept adds all symbols of t except the given one and reports whether
// s grew.
func (s *symbolSet) mergeExcept(t *symbolSet, except Symbol) bool {
	if t == nil {
		return false
	}
	changed := false
	it := t.set.Iterator()
	for it.Next() {
		sym := it.Value().(Symbol)
		if sym == except {
			continue
		}
		if s.add(sym) {
			changed = true
		}
	}
	return changed
}

func (s *symbolSet) contains(sym Symbol) bool {
	return s.set.Contains(sym)
}

func (s *symbolSet) size() int {
	return s.set.Size()
}

func (s *symbolSet) symbols() []Symbol {
	vals := s.set.Values()
	syms := make([]Symbol, len(vals))
	for i, v := range vals {
		syms[i] = v.(Symbol)
	}
	return syms
}
