package grammar

import (
	"fmt"

	"github.com/emirpasic/gods/utils"
)

// Symbol is a grammar symbol identified by its name. Whether it is a terminal
// or a non-terminal depends on the grammar it belongs to.
type Symbol string

const (
	// SymbolEOF marks the end of input. It is treated as a terminal but is
	// never listed among the terminals of a grammar.
	SymbolEOF = Symbol("$")

	// SymbolEpsilon stands for the empty string in FIRST sets. The angle
	// brackets keep it from colliding with user-defined symbols.
	SymbolEpsilon = Symbol("<ε>")
)

func (s Symbol) String() string {
	return string(s)
}

func (s Symbol) isReserved() bool {
	return s == SymbolEOF || s == SymbolEpsilon
}

// symbolComparator orders symbols by name so that symbol sets enumerate the
// same way every run.
func symbolComparator(a, b interface{}) int {
	return utils.StringComparator(string(a.(Symbol)), string(b.(Symbol)))
}

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

// symbolTable keeps terminals and non-terminals in the order they were
// registered. A name belongs to at most one of them.
type symbolTable struct {
	kinds        map[Symbol]symbolKind
	terminals    []Symbol
	nonTerminals []Symbol
}

func newSymbolTable() *symbolTable {
	return &symbolTable{
		kinds: map[Symbol]symbolKind{},
	}
}

func (t *symbolTable) registerNonTerminal(sym Symbol) error {
	if sym.isReserved() {
		return fmt.Errorf("a reserved symbol cannot be used as a non-terminal: %v", sym)
	}
	if kind, ok := t.kinds[sym]; ok {
		if kind != symbolKindNonTerminal {
			return fmt.Errorf("symbol %v is already registered as a %v", sym, kind)
		}
		return nil
	}
	t.kinds[sym] = symbolKindNonTerminal
	t.nonTerminals = append(t.nonTerminals, sym)
	return nil
}

func (t *symbolTable) registerTerminal(sym Symbol) error {
	if sym.isReserved() {
		return fmt.Errorf("a reserved symbol cannot be used as a terminal: %v", sym)
	}
	if kind, ok := t.kinds[sym]; ok {
		if kind != symbolKindTerminal {
			return fmt.Errorf("symbol %v is already registered as a %v", sym, kind)
		}
		return nil
	}
	t.kinds[sym] = symbolKindTerminal
	t.terminals = append(t.terminals, sym)
	return nil
}

func (t *symbolTable) isTerminal(sym Symbol) bool {
	if sym == SymbolEOF {
		return true
	}
	return t.kinds[sym] == symbolKindTerminal
}

func (t *symbolTable) isNonTerminal(sym Symbol) bool {
	return t.kinds[sym] == symbolKindNonTerminal
}

func (t *symbolTable) clone() *symbolTable {
	c := newSymbolTable()
	for sym, kind := range t.kinds {
		c.kinds[sym] = kind
	}
	c.terminals = append(c.terminals, t.terminals...)
	c.nonTerminals = append(c.nonTerminals, t.nonTerminals...)
	return c
}
