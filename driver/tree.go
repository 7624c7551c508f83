package driver

import (
	"fmt"
	"io"

	"github.com/nihei9/slrkit/grammar"
)

// Node is a node of a concrete syntax tree. Leaves for terminals carry the
// token they were built from. A non-terminal derived by an empty production
// has no children.
type Node struct {
	Symbol   grammar.Symbol
	Text     string
	Row      int
	Col      int
	Children []*Node
}

// BuildTree reconstructs the parse tree of an accepted trace. It reads the
// REDUCE actions last-first, expanding the rightmost non-terminal each time,
// and then attaches the tokens to the terminal leaves from left to right.
func BuildTree(g *grammar.Grammar, trace *Trace, tokens []*Token) (*Node, error) {
	if !trace.Accepted() {
		return nil, fmt.Errorf("a parse tree can be built only from an accepted trace")
	}
	if n := len(tokens); n > 0 && tokens[n-1].Text == grammar.SymbolEOF.String() {
		tokens = tokens[:n-1]
	}

	b := &treeBuilder{
		gram:  g,
		prods: trace.Derivation(),
	}
	root := &Node{
		Symbol: g.StartSymbol(),
	}
	err := b.expand(root)
	if err != nil {
		return nil, err
	}
	if b.next != len(b.prods) {
		return nil, fmt.Errorf("%v reductions were left over", len(b.prods)-b.next)
	}

	leaves := collectTerminalLeaves(g, root, nil)
	if len(leaves) != len(tokens) {
		return nil, fmt.Errorf("the derivation yields %v terminals, but the input has %v tokens", len(leaves), len(tokens))
	}
	for i, leaf := range leaves {
		tok := tokens[i]
		if leaf.Symbol.String() != tok.Text {
			return nil, fmt.Errorf("the derivation yields %v at offset %v, but the input has %v", leaf.Symbol, i+1, tok.Text)
		}
		leaf.Text = tok.Text
		leaf.Row = tok.Row
		leaf.Col = tok.Col
	}

	return root, nil
}

type treeBuilder struct {
	gram  *grammar.Grammar
	prods []*grammar.Production
	next  int
}

func (b *treeBuilder) expand(node *Node) error {
	if b.next >= len(b.prods) {
		return fmt.Errorf("the derivation ended before %v was expanded", node.Symbol)
	}
	prod := b.prods[b.next]
	b.next++
	if prod.Head != node.Symbol {
		return fmt.Errorf("cannot expand %v by %v", node.Symbol, prod)
	}

	node.Children = make([]*Node, len(prod.Body))
	for i, sym := range prod.Body {
		node.Children[i] = &Node{
			Symbol: sym,
		}
	}
	for i := len(node.Children) - 1; i >= 0; i-- {
		child := node.Children[i]
		if !b.gram.IsNonTerminal(child.Symbol) {
			continue
		}
		err := b.expand(child)
		if err != nil {
			return err
		}
	}
	return nil
}

func collectTerminalLeaves(g *grammar.Grammar, node *Node, leaves []*Node) []*Node {
	if !g.IsNonTerminal(node.Symbol) {
		return append(leaves, node)
	}
	for _, child := range node.Children {
		leaves = collectTerminalLeaves(g, child, leaves)
	}
	return leaves
}

// SententialForms expands the start symbol by a rightmost derivation step by
// step. The first form is the start symbol alone and the last one is the
// derived terminal string.
func SententialForms(g *grammar.Grammar, derivation []*grammar.Production) ([][]grammar.Symbol, error) {
	form := []grammar.Symbol{g.StartSymbol()}
	forms := [][]grammar.Symbol{form}
	for _, prod := range derivation {
		pos := -1
		for i := len(form) - 1; i >= 0; i-- {
			if g.IsNonTerminal(form[i]) {
				pos = i
				break
			}
		}
		if pos < 0 || form[pos] != prod.Head {
			return nil, fmt.Errorf("%v doesn't rewrite the rightmost non-terminal of the sentential form", prod)
		}
		next := make([]grammar.Symbol, 0, len(form)-1+len(prod.Body))
		next = append(next, form[:pos]...)
		next = append(next, prod.Body...)
		next = append(next, form[pos+1:]...)
		forms = append(forms, next)
		form = next
	}
	return forms, nil
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.Symbol, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.Symbol)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}
