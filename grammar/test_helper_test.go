package grammar

import (
	"strings"
	"testing"

	"github.com/nihei9/slrkit/spec"
)

const exprGrammarSrc = `
E :: E + T
E :: T
T :: T * F
T :: F
F :: ( E )
F :: id
`

func buildTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := spec.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	g, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func compileTestGrammar(t *testing.T, src string, opts ...CompileOption) *Compiled {
	t.Helper()

	c, err := Compile(buildTestGrammar(t, src), opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

type testItemGenerator func(head string, dot int, body ...string) Item

func newTestItemGenerator(t *testing.T, g *Grammar) testItemGenerator {
	return func(head string, dot int, body ...string) Item {
		t.Helper()

		for _, prod := range g.ProductionsOf(Symbol(head)) {
			if prod.BodyString() != strings.Join(body, " ") && !(prod.IsEmpty() && len(body) == 0) {
				continue
			}
			item, err := newItem(prod, dot)
			if err != nil {
				t.Fatal(err)
			}
			return item
		}
		t.Fatalf("a production was not found: %v :: %v", head, body)
		return Item{}
	}
}

func symbols(names ...string) []Symbol {
	syms := make([]Symbol, len(names))
	for i, name := range names {
		syms[i] = Symbol(name)
	}
	return syms
}
