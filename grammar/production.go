package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(head Symbol, body []Symbol) productionID {
	var b strings.Builder
	b.WriteString(string(head))
	for _, sym := range body {
		// NUL never appears in a symbol name read from a grammar source.
		b.WriteByte(0)
		b.WriteString(string(sym))
	}
	return productionID(sha256.Sum256([]byte(b.String())))
}

// Production is a rewrite rule `Head -> Body`. An empty body derives the
// empty string. Num is the position of the production in its grammar.
type Production struct {
	id   productionID
	Num  int
	Head Symbol
	Body []Symbol
}

func newProduction(num int, head Symbol, body []Symbol) *Production {
	b := make([]Symbol, len(body))
	copy(b, body)
	return &Production{
		id:   genProductionID(head, b),
		Num:  num,
		Head: head,
		Body: b,
	}
}

// Equals compares productions by value.
func (p *Production) Equals(q *Production) bool {
	return q.id == p.id
}

func (p *Production) IsEmpty() bool {
	return len(p.Body) == 0
}

// BodyString joins the body symbols with spaces. An empty body is written as
// `empty` as in a grammar source.
func (p *Production) BodyString() string {
	if p.IsEmpty() {
		return "empty"
	}
	syms := make([]string, len(p.Body))
	for i, sym := range p.Body {
		syms[i] = string(sym)
	}
	return strings.Join(syms, " ")
}

func (p *Production) String() string {
	return fmt.Sprintf("%v :: %v", p.Head, p.BodyString())
}

type productionSet struct {
	prods      []*Production
	head2Prods map[Symbol][]*Production
	id2Prod    map[productionID]*Production
}

func newProductionSet() *productionSet {
	return &productionSet{
		head2Prods: map[Symbol][]*Production{},
		id2Prod:    map[productionID]*Production{},
	}
}

func (ps *productionSet) append(head Symbol, body []Symbol) (*Production, error) {
	prod := newProduction(len(ps.prods), head, body)
	if _, exist := ps.id2Prod[prod.id]; exist {
		return nil, fmt.Errorf("duplicate production: %v", prod)
	}
	ps.prods = append(ps.prods, prod)
	ps.head2Prods[head] = append(ps.head2Prods[head], prod)
	ps.id2Prod[prod.id] = prod
	return prod, nil
}

func (ps *productionSet) findByHead(head Symbol) []*Production {
	return ps.head2Prods[head]
}

func (ps *productionSet) getAllProductions() []*Production {
	return ps.prods
}

func (ps *productionSet) clone() *productionSet {
	c := newProductionSet()
	for _, prod := range ps.prods {
		c.prods = append(c.prods, prod)
		c.head2Prods[prod.Head] = append(c.head2Prods[prod.Head], prod)
		c.id2Prod[prod.id] = prod
	}
	return c
}
