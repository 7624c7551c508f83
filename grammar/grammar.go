package grammar

import (
	"fmt"

	verr "github.com/nihei9/slrkit/error"
	"github.com/nihei9/slrkit/spec"
)

// Grammar is a context-free grammar. Its start symbol is the head of the
// first production. A Grammar doesn't change once it is built; Augment returns
// a new value.
type Grammar struct {
	symbolTable   *symbolTable
	productionSet *productionSet
	startSymbol   Symbol
}

func (g *Grammar) StartSymbol() Symbol {
	return g.startSymbol
}

// Terminals returns the terminal symbols in order of first appearance. The
// EOF symbol isn't included.
func (g *Grammar) Terminals() []Symbol {
	syms := make([]Symbol, len(g.symbolTable.terminals))
	copy(syms, g.symbolTable.terminals)
	return syms
}

// NonTerminals returns the non-terminal symbols in order of first appearance
// as a production head.
func (g *Grammar) NonTerminals() []Symbol {
	syms := make([]Symbol, len(g.symbolTable.nonTerminals))
	copy(syms, g.symbolTable.nonTerminals)
	return syms
}

func (g *Grammar) Productions() []*Production {
	prods := g.productionSet.getAllProductions()
	ps := make([]*Production, len(prods))
	copy(ps, prods)
	return ps
}

func (g *Grammar) ProductionsOf(head Symbol) []*Production {
	prods := g.productionSet.findByHead(head)
	ps := make([]*Production, len(prods))
	copy(ps, prods)
	return ps
}

func (g *Grammar) IsTerminal(sym Symbol) bool {
	return g.symbolTable.isTerminal(sym)
}

func (g *Grammar) IsNonTerminal(sym Symbol) bool {
	return g.symbolTable.isNonTerminal(sym)
}

// AugmentedGrammar is a grammar extended with a fresh start symbol S' and the
// production S' -> S.
type AugmentedGrammar struct {
	*Grammar

	// Base is the grammar the augmented one was derived from. It is left
	// untouched.
	Base *Grammar

	StartProduction *Production
}

// Augment returns a copy of the grammar with a new start symbol. The name of
// the new symbol is the original start symbol followed by as many `'` as are
// needed to make it unique.
func (g *Grammar) Augment() (*AugmentedGrammar, error) {
	start := g.startSymbol + "'"
	for {
		if _, used := g.symbolTable.kinds[start]; !used {
			break
		}
		start += "'"
	}

	symTab := g.symbolTable.clone()
	err := symTab.registerNonTerminal(start)
	if err != nil {
		return nil, err
	}
	prods := g.productionSet.clone()
	startProd, err := prods.append(start, []Symbol{g.startSymbol})
	if err != nil {
		return nil, err
	}

	return &AugmentedGrammar{
		Grammar: &Grammar{
			symbolTable:   symTab,
			productionSet: prods,
			startSymbol:   start,
		},
		Base:            g,
		StartProduction: startProd,
	}, nil
}

type rule struct {
	head string
	body []string
	row  int
}

// GrammarBuilder builds a Grammar from an AST of a grammar source, from
// productions added by AddProduction, or from both. Productions of the AST
// come first.
type GrammarBuilder struct {
	AST *spec.RootNode

	rules []*rule
	errs  verr.SpecErrors
}

// AddProduction adds a production. Passing no body symbols adds an empty
// production.
func (b *GrammarBuilder) AddProduction(head string, body ...string) *GrammarBuilder {
	b.rules = append(b.rules, &rule{
		head: head,
		body: body,
	})
	return b
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	b.errs = nil

	var rules []*rule
	if b.AST != nil {
		for _, prod := range b.AST.Productions {
			rules = append(rules, &rule{
				head: prod.Head,
				body: prod.Body,
				row:  prod.Row,
			})
		}
	}
	rules = append(rules, b.rules...)
	if len(rules) == 0 {
		return nil, verr.SpecErrors{
			&verr.SpecError{
				Cause: semErrNoProduction,
			},
		}
	}

	symTab := newSymbolTable()
	for _, r := range rules {
		err := symTab.registerNonTerminal(Symbol(r.head))
		if err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedSymbol,
				Detail: r.head,
				Row:    r.row,
			})
		}
	}
	for _, r := range rules {
		for _, sym := range r.body {
			if symTab.isNonTerminal(Symbol(sym)) {
				continue
			}
			err := symTab.registerTerminal(Symbol(sym))
			if err != nil {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrReservedSymbol,
					Detail: sym,
					Row:    r.row,
				})
			}
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	prods := newProductionSet()
	for _, r := range rules {
		body := make([]Symbol, len(r.body))
		for i, sym := range r.body {
			body[i] = Symbol(sym)
		}
		_, err := prods.append(Symbol(r.head), body)
		if err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateProduction,
				Detail: fmt.Sprintf("%v :: %v", r.head, newProduction(0, Symbol(r.head), body).BodyString()),
				Row:    r.row,
			})
		}
	}
	if len(b.errs) > 0 {
		return nil, b.errs
	}

	g := &Grammar{
		symbolTable:   symTab,
		productionSet: prods,
		startSymbol:   Symbol(rules[0].head),
	}
	tracer().Debugf("grammar: %v terminals, %v non-terminals, %v productions, start symbol %v",
		len(symTab.terminals), len(symTab.nonTerminals), len(prods.prods), g.startSymbol)

	return g, nil
}
